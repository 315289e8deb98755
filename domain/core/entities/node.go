package entities

import (
	"time"

	"graphcanvas/domain/core/valueobjects"
	"graphcanvas/domain/events"
	"graphcanvas/domain/schema"
	pkgerrors "graphcanvas/pkg/errors"
)

// Node is a graph node instantiated from a schema template
// This is a rich domain model with encapsulated business logic
type Node struct {
	// Private fields ensure encapsulation
	id          valueobjects.NodeID
	template    *schema.NodeTemplate
	position    valueobjects.Position
	size        valueobjects.Size
	fieldValues map[string]valueobjects.FieldValue
	canDelete   bool
	canMove     bool
	createdAt   time.Time
	updatedAt   time.Time

	// Domain events that occurred during this entity's lifetime
	events []events.DomainEvent
}

// NewNode instantiates a node from its template at the given position.
// Field values start at the template defaults; the registry has already
// proven those defaults parse, so a failure here is a programming error.
func NewNode(template *schema.NodeTemplate, position valueobjects.Position) (*Node, error) {
	if template == nil {
		return nil, pkgerrors.ErrUnknownTemplate
	}

	size, err := valueobjects.NewSize(template.DefaultWidth, template.DefaultHeight)
	if err != nil {
		return nil, err
	}

	fieldValues := make(map[string]valueobjects.FieldValue, len(template.Fields))
	for _, field := range template.Fields {
		value, err := valueobjects.ParseFieldValue(field.Type, field.DefaultValue)
		if err != nil {
			return nil, err
		}
		fieldValues[field.Name] = value
	}

	now := time.Now()
	node := &Node{
		id:          valueobjects.NewNodeID(),
		template:    template,
		position:    position,
		size:        size,
		fieldValues: fieldValues,
		canDelete:   true,
		canMove:     true,
		createdAt:   now,
		updatedAt:   now,
		events:      []events.DomainEvent{},
	}

	node.addEvent(events.NewNodeAdded(node.id, template.Name, position, now))

	return node, nil
}

// ID returns the node's unique identifier
func (n *Node) ID() valueobjects.NodeID {
	return n.id
}

// Template returns the schema template this node was created from
func (n *Node) Template() *schema.NodeTemplate {
	return n.template
}

// TemplateName returns the name of the node's template
func (n *Node) TemplateName() string {
	return n.template.Name
}

// Position returns the node's position
func (n *Node) Position() valueobjects.Position {
	return n.position
}

// Size returns the node's dimensions
func (n *Node) Size() valueobjects.Size {
	return n.size
}

// Bounds returns the node's axis-aligned bounding box
func (n *Node) Bounds() valueobjects.Rect {
	return valueobjects.NewRect(n.position, n.size)
}

// CanDelete reports whether the instance allows deletion
func (n *Node) CanDelete() bool {
	return n.canDelete
}

// CanMove reports whether the instance allows movement
func (n *Node) CanMove() bool {
	return n.canMove
}

// SetDeletable toggles the per-instance deletion flag
func (n *Node) SetDeletable(deletable bool) {
	n.canDelete = deletable
	n.updatedAt = time.Now()
}

// SetMovable toggles the per-instance movement flag
func (n *Node) SetMovable(movable bool) {
	n.canMove = movable
	n.updatedAt = time.Now()
}

// MoveTo moves the node to a new position
func (n *Node) MoveTo(position valueobjects.Position) {
	if position.Equals(n.position) {
		return // No movement needed
	}

	oldPosition := n.position
	n.position = position
	n.updatedAt = time.Now()

	n.addEvent(events.NewNodeMoved(n.id, oldPosition, position, n.updatedAt))
}

// Resize changes the node's dimensions
func (n *Node) Resize(size valueobjects.Size) {
	if size.Equals(n.size) {
		return // No change needed
	}

	oldSize := n.size
	n.size = size
	n.updatedAt = time.Now()

	n.addEvent(events.NewNodeResized(n.id, oldSize, size, n.updatedAt))
}

// SetField parses the literal against the field's declared type and assigns it
func (n *Node) SetField(name string, literal string) error {
	field, ok := n.template.Field(name)
	if !ok {
		return pkgerrors.ErrFieldNotFound.
			WithDetail("node_id", n.id.String()).
			WithDetail("field", name)
	}

	value, err := valueobjects.ParseFieldValue(field.Type, literal)
	if err != nil {
		return err
	}

	oldValue := n.fieldValues[name]
	if value.Equals(oldValue) {
		return nil // No change needed
	}

	n.fieldValues[name] = value
	n.updatedAt = time.Now()

	n.addEvent(events.NewNodeFieldChanged(n.id, name, oldValue, value, n.updatedAt))

	return nil
}

// Field returns the current value of a field
func (n *Node) Field(name string) (valueobjects.FieldValue, error) {
	value, ok := n.fieldValues[name]
	if !ok {
		return valueobjects.FieldValue{}, pkgerrors.ErrFieldNotFound.
			WithDetail("node_id", n.id.String()).
			WithDetail("field", name)
	}
	return value, nil
}

// Fields returns a copy of the node's field values
func (n *Node) Fields() map[string]valueobjects.FieldValue {
	// Return a copy to maintain encapsulation
	out := make(map[string]valueobjects.FieldValue, len(n.fieldValues))
	for k, v := range n.fieldValues {
		out[k] = v
	}
	return out
}

// CreatedAt returns when the node was created
func (n *Node) CreatedAt() time.Time {
	return n.createdAt
}

// UpdatedAt returns when the node was last updated
func (n *Node) UpdatedAt() time.Time {
	return n.updatedAt
}

// GetUncommittedEvents returns all uncommitted domain events
func (n *Node) GetUncommittedEvents() []events.DomainEvent {
	return n.events
}

// MarkEventsAsCommitted clears the uncommitted events
func (n *Node) MarkEventsAsCommitted() {
	n.events = []events.DomainEvent{}
}

// addEvent adds a domain event to the uncommitted list
func (n *Node) addEvent(event events.DomainEvent) {
	n.events = append(n.events, event)
}
