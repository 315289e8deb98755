package interaction

import (
	"graphcanvas/domain/core/valueobjects"
)

// EventKind tags a normalized input event
type EventKind string

const (
	EventPointerDown        EventKind = "pointer_down"
	EventPointerMove        EventKind = "pointer_move"
	EventPointerUp          EventKind = "pointer_up"
	EventWheel              EventKind = "wheel"
	EventKeyEscape          EventKind = "key_escape"
	EventContextMenuRequest EventKind = "context_menu_request"
	EventMenuSelect         EventKind = "menu_select"
	EventMenuDismiss        EventKind = "menu_dismiss"
	EventFieldActivate      EventKind = "field_activate"
	EventFieldInput         EventKind = "field_input"
	EventFieldCommit        EventKind = "field_commit"
	EventSurfaceResize      EventKind = "surface_resize"
)

// Button identifies a pointer button
type Button string

const (
	ButtonLeft  Button = "left"
	ButtonRight Button = "right"
)

// InputEvent is a normalized event from the host surface. Pointer
// positions are in surface (screen) coordinates; the machine converts
// to graph space through the viewport.
type InputEvent struct {
	Kind     EventKind
	Position valueobjects.Position
	Button   Button
	Delta    float64 // wheel: positive zooms in
	Index    int     // menu selection
	NodeID   valueobjects.NodeID
	Field    string
	Text     string  // field editing buffer replacement
	Width    float64 // surface resize
	Height   float64
}

// PointerDown builds a pointer press event
func PointerDown(pos valueobjects.Position, button Button) InputEvent {
	return InputEvent{Kind: EventPointerDown, Position: pos, Button: button}
}

// PointerMove builds a pointer move event
func PointerMove(pos valueobjects.Position) InputEvent {
	return InputEvent{Kind: EventPointerMove, Position: pos}
}

// PointerUp builds a pointer release event
func PointerUp(pos valueobjects.Position) InputEvent {
	return InputEvent{Kind: EventPointerUp, Position: pos}
}

// Wheel builds a zoom event at the given surface position
func Wheel(pos valueobjects.Position, delta float64) InputEvent {
	return InputEvent{Kind: EventWheel, Position: pos, Delta: delta}
}

// KeyEscape builds a cancel keypress
func KeyEscape() InputEvent {
	return InputEvent{Kind: EventKeyEscape}
}

// ContextMenuRequest builds a menu open request; groupID rides in Field
func ContextMenuRequest(pos valueobjects.Position, groupID string) InputEvent {
	return InputEvent{Kind: EventContextMenuRequest, Position: pos, Field: groupID}
}

// MenuSelect builds a menu entry selection
func MenuSelect(index int) InputEvent {
	return InputEvent{Kind: EventMenuSelect, Index: index}
}

// MenuDismiss builds a menu dismissal
func MenuDismiss() InputEvent {
	return InputEvent{Kind: EventMenuDismiss}
}

// FieldActivate builds a field editing activation on a node
func FieldActivate(nodeID valueobjects.NodeID, field string) InputEvent {
	return InputEvent{Kind: EventFieldActivate, NodeID: nodeID, Field: field}
}

// FieldInput replaces the editing buffer with the given text
func FieldInput(text string) InputEvent {
	return InputEvent{Kind: EventFieldInput, Text: text}
}

// FieldCommit builds a field editing commit
func FieldCommit() InputEvent {
	return InputEvent{Kind: EventFieldCommit}
}

// SurfaceResize builds a surface bounds update
func SurfaceResize(width, height float64) InputEvent {
	return InputEvent{Kind: EventSurfaceResize, Width: width, Height: height}
}
