// Package menu drives the node creation context menu: which templates
// it offers and where it is placed on the surface.
package menu

import (
	"graphcanvas/domain/core/valueobjects"
	"graphcanvas/domain/schema"
)

const (
	// DefaultWidth and DefaultHeight are the menu panel dimensions used
	// for placement clamping
	DefaultWidth  = 400.0
	DefaultHeight = 100.0
)

// Entry is a single selectable menu item
type Entry struct {
	Template string `json:"template"`
	Label    string `json:"label"`
}

// State is an open menu: its clamped placement and the offered entries.
// Position doubles as the spawn anchor for the selected template, so a
// node created from the menu lands inside the surface with the panel.
type State struct {
	Position valueobjects.Position `json:"position"`
	GroupID  string                `json:"group_id,omitempty"`
	Entries  []Entry               `json:"entries"`
}

// Controller builds menu states from the schema registry
type Controller struct {
	registry *schema.Registry
	width    float64
	height   float64
}

// NewController creates a menu controller with the default panel size
func NewController(registry *schema.Registry) *Controller {
	return &Controller{registry: registry, width: DefaultWidth, height: DefaultHeight}
}

// NewControllerWithSize creates a menu controller with an explicit panel size
func NewControllerWithSize(registry *schema.Registry, width, height float64) *Controller {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Controller{registry: registry, width: width, height: height}
}

// Open builds the menu for a request at the given surface position.
// groupID filters the offered templates; empty means every creatable
// template. The panel is clamped so it stays inside the surface bounds.
func (c *Controller) Open(requested valueobjects.Position, groupID string, surface valueobjects.Rect) (*State, error) {
	var templates []*schema.NodeTemplate
	if groupID == "" {
		templates = c.registry.CreatableTemplates()
	} else {
		var err error
		templates, err = c.registry.TemplatesInGroup(groupID)
		if err != nil {
			return nil, err
		}
	}

	entries := make([]Entry, 0, len(templates))
	for _, tmpl := range templates {
		entries = append(entries, Entry{Template: tmpl.Name, Label: tmpl.Name})
	}

	return &State{
		Position: c.clamp(requested, surface),
		GroupID:  groupID,
		Entries:  entries,
	}, nil
}

// Select resolves a menu index to its template name
func (s *State) Select(index int) (string, bool) {
	if index < 0 || index >= len(s.Entries) {
		return "", false
	}
	return s.Entries[index].Template, true
}

// clamp shifts the panel origin so the whole panel fits in the surface.
// A panel larger than the surface pins to the surface origin.
func (c *Controller) clamp(requested valueobjects.Position, surface valueobjects.Rect) valueobjects.Position {
	minX := surface.Origin().X()
	minY := surface.Origin().Y()
	maxX := minX + surface.Size().Width() - c.width
	maxY := minY + surface.Size().Height() - c.height

	x := requested.X()
	y := requested.Y()
	if x > maxX {
		x = maxX
	}
	if y > maxY {
		y = maxY
	}
	if x < minX {
		x = minX
	}
	if y < minY {
		y = minY
	}

	pos, _ := valueobjects.NewPosition(x, y)
	return pos
}
