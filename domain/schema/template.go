package schema

import (
	"graphcanvas/domain/core/valueobjects"
)

// SlotDirection declares which way a slot's edges run
type SlotDirection string

const (
	DirectionOutgoing SlotDirection = "outgoing"
	DirectionIncoming SlotDirection = "incoming"
)

// IsValid reports whether the direction is one of the known variants
func (d SlotDirection) IsValid() bool {
	return d == DirectionOutgoing || d == DirectionIncoming
}

// SlotAnchor is the edge of the node box a slot is laid out on
type SlotAnchor string

const (
	AnchorLeft   SlotAnchor = "left"
	AnchorRight  SlotAnchor = "right"
	AnchorTop    SlotAnchor = "top"
	AnchorBottom SlotAnchor = "bottom"
)

// IsValid reports whether the anchor is one of the known variants
func (a SlotAnchor) IsValid() bool {
	switch a {
	case AnchorLeft, AnchorRight, AnchorTop, AnchorBottom:
		return true
	}
	return false
}

// UnboundedConnections marks a slot with no maximum connection count
const UnboundedConnections = -1

// SlotTemplate is the schema-level definition of a connection point:
// direction, allowed counterpart types, and min/max cardinality
type SlotTemplate struct {
	Name               string
	Anchor             SlotAnchor
	Direction          SlotDirection
	AllowedConnections []string
	MinConnections     int
	MaxConnections     int // UnboundedConnections for no limit
}

// Allows reports whether the counterpart template name is in the slot's
// allowed-connections set
func (st SlotTemplate) Allows(templateName string) bool {
	for _, allowed := range st.AllowedConnections {
		if allowed == templateName {
			return true
		}
	}
	return false
}

// IsUnbounded reports whether the slot has no maximum connection count
func (st SlotTemplate) IsUnbounded() bool {
	return st.MaxConnections == UnboundedConnections
}

// HasCapacity reports whether one more edge fits under max_connections
func (st SlotTemplate) HasCapacity(currentCount int) bool {
	return st.IsUnbounded() || currentCount < st.MaxConnections
}

// FieldTemplate is the schema-level definition of a typed node field
type FieldTemplate struct {
	Name         string
	Type         valueobjects.FieldType
	DefaultValue string // literal, parsed against Type at registry load
}

// NodeTemplate is the schema-level definition of a node kind. Immutable
// after registry load.
type NodeTemplate struct {
	Name          string
	Slots         []SlotTemplate
	Fields        []FieldTemplate
	DefaultWidth  float64
	DefaultHeight float64
	CanCreate     bool // offered by the creation menu
	Resizable     bool
}

// Slot looks up a slot template by name
func (nt *NodeTemplate) Slot(name string) (*SlotTemplate, bool) {
	for i := range nt.Slots {
		if nt.Slots[i].Name == name {
			return &nt.Slots[i], true
		}
	}
	return nil, false
}

// Field looks up a field template by name
func (nt *NodeTemplate) Field(name string) (*FieldTemplate, bool) {
	for i := range nt.Fields {
		if nt.Fields[i].Name == name {
			return &nt.Fields[i], true
		}
	}
	return nil, false
}

// SlotsOnAnchor returns the template's slots declared on the given edge,
// in declaration order
func (nt *NodeTemplate) SlotsOnAnchor(anchor SlotAnchor) []SlotTemplate {
	var slots []SlotTemplate
	for _, st := range nt.Slots {
		if st.Anchor == anchor {
			slots = append(slots, st)
		}
	}
	return slots
}

// TemplateGroup is a named, curated subset of node templates surfaced
// together in the creation menu
type TemplateGroup struct {
	ID          string
	Name        string
	Description string
	Templates   []string
}
