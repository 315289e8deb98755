package interaction

import (
	"graphcanvas/application/menu"
	"graphcanvas/domain/core/valueobjects"
)

// ModeKind tags the interaction state variant
type ModeKind string

const (
	ModeIdle              ModeKind = "idle"
	ModeDraggingNode      ModeKind = "dragging_node"
	ModePanningViewport   ModeKind = "panning_viewport"
	ModeDrawingConnection ModeKind = "drawing_connection"
	ModeResizingNode      ModeKind = "resizing_node"
	ModeEditingField      ModeKind = "editing_field"
	ModeContextMenuOpen   ModeKind = "context_menu_open"
)

// Mode is the machine's current interaction state as a tagged variant.
// Only the fields of the active variant are meaningful; every non-idle
// variant carries what its committing and cancelling exits need.
type Mode struct {
	Kind ModeKind

	// dragging_node and resizing_node
	NodeID valueobjects.NodeID

	// dragging_node: pointer grab offset from the node origin, and the
	// live preview position, all in graph space
	GrabDX   float64
	GrabDY   float64
	DragPos  valueobjects.Position
	DragLive bool // a move event has arrived since the press

	// panning_viewport: last pointer position in surface space and the
	// offset to restore on cancel
	LastScreen   valueobjects.Position
	SavedOffsetX float64
	SavedOffsetY float64

	// drawing_connection: the slot the gesture started from and the
	// current pointer position in graph space
	Origin     valueobjects.Endpoint
	PointerPos valueobjects.Position

	// resizing_node: live preview size in graph units
	PreviewWidth  float64
	PreviewHeight float64

	// editing_field
	Field  string
	Buffer string

	// context_menu_open
	Menu *menu.State
}

// Idle is the machine's rest state
func Idle() Mode {
	return Mode{Kind: ModeIdle}
}

// IsIdle reports whether the machine is at rest
func (m Mode) IsIdle() bool {
	return m.Kind == ModeIdle
}
