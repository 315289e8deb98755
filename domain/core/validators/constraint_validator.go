package validators

import (
	"graphcanvas/domain/core/entities"
	"graphcanvas/domain/core/valueobjects"
	"graphcanvas/domain/schema"
	pkgerrors "graphcanvas/pkg/errors"
)

// GraphView is the read surface the validator needs over the graph store.
// The aggregate satisfies it; tests can supply a fake.
type GraphView interface {
	Node(id valueobjects.NodeID) (*entities.Node, bool)
	SlotEdgeCount(endpoint valueobjects.Endpoint) int
	HasEdgeBetween(a, b valueobjects.Endpoint) bool
}

// IncompleteSlot describes a slot whose connection count is below its
// declared minimum. It is advisory only and never blocks a mutation.
type IncompleteSlot struct {
	NodeID   valueobjects.NodeID
	SlotName string
	Required int
	Actual   int
}

// ConstraintValidator answers every "may this mutation happen" question
// for the graph. It is stateless; all state comes from the GraphView.
type ConstraintValidator struct{}

// NewConstraintValidator creates a constraint validator
func NewConstraintValidator() *ConstraintValidator {
	return &ConstraintValidator{}
}

// CanConnect checks whether an edge may be created between two slot
// instances, in either gesture order. A nil return means the edge is
// admissible; otherwise the error carries the first failing rule.
func (v *ConstraintValidator) CanConnect(view GraphView, a, b valueobjects.Endpoint) error {
	slotA, nodeA, err := resolveSlot(view, a)
	if err != nil {
		return err
	}
	slotB, nodeB, err := resolveSlot(view, b)
	if err != nil {
		return err
	}

	if nodeA.ID().Equals(nodeB.ID()) {
		return pkgerrors.ErrSelfReferentialEdge.
			WithDetail("node_id", nodeA.ID().String())
	}

	// Exactly one endpoint must be outgoing and the other incoming
	if slotA.Direction == slotB.Direction {
		return pkgerrors.ErrDirectionMismatch.
			WithDetail("from_slot", a.SlotName()).
			WithDetail("to_slot", b.SlotName()).
			WithDetail("direction", string(slotA.Direction))
	}

	// Each slot's allowed set must include the counterpart's template
	if !slotA.Allows(nodeB.TemplateName()) {
		return pkgerrors.ErrTypeNotAllowed.
			WithDetail("slot", a.SlotName()).
			WithDetail("counterpart_template", nodeB.TemplateName())
	}
	if !slotB.Allows(nodeA.TemplateName()) {
		return pkgerrors.ErrTypeNotAllowed.
			WithDetail("slot", b.SlotName()).
			WithDetail("counterpart_template", nodeA.TemplateName())
	}

	if view.HasEdgeBetween(a, b) {
		return pkgerrors.ErrDuplicateEdge.
			WithDetail("from", a.String()).
			WithDetail("to", b.String())
	}

	if !slotA.HasCapacity(view.SlotEdgeCount(a)) {
		return pkgerrors.ErrCardinalityExceeded.
			WithDetail("endpoint", a.String()).
			WithDetail("max_connections", slotA.MaxConnections)
	}
	if !slotB.HasCapacity(view.SlotEdgeCount(b)) {
		return pkgerrors.ErrCardinalityExceeded.
			WithDetail("endpoint", b.String()).
			WithDetail("max_connections", slotB.MaxConnections)
	}

	return nil
}

// Canonicalize orders two admissible endpoints as (source, target) by
// their declared slot directions. Gesture order never decides direction.
func (v *ConstraintValidator) Canonicalize(view GraphView, a, b valueobjects.Endpoint) (source, target valueobjects.Endpoint, err error) {
	slotA, _, err := resolveSlot(view, a)
	if err != nil {
		return valueobjects.Endpoint{}, valueobjects.Endpoint{}, err
	}
	if slotA.Direction == schema.DirectionOutgoing {
		return a, b, nil
	}
	return b, a, nil
}

// CanDisconnect checks whether an existing edge may be removed.
// Disconnection is always permitted.
func (v *ConstraintValidator) CanDisconnect(_ *entities.Edge) error {
	return nil
}

// CanDelete checks whether a node may be deleted
func (v *ConstraintValidator) CanDelete(node *entities.Node) error {
	if !node.CanDelete() {
		return pkgerrors.ErrDeletionForbidden.
			WithDetail("node_id", node.ID().String())
	}
	return nil
}

// CanMove checks whether a node may be moved
func (v *ConstraintValidator) CanMove(node *entities.Node) error {
	if !node.CanMove() {
		return pkgerrors.ErrMovementForbidden.
			WithDetail("node_id", node.ID().String())
	}
	return nil
}

// CanResize checks whether a node may be resized
func (v *ConstraintValidator) CanResize(node *entities.Node) error {
	if !node.Template().Resizable {
		return pkgerrors.ErrResizeForbidden.
			WithDetail("node_id", node.ID().String()).
			WithDetail("template", node.TemplateName())
	}
	return nil
}

// IncompleteSlots lists the node's slots whose current connection count
// is below min_connections. Soft warnings: the graph stays mutable.
func (v *ConstraintValidator) IncompleteSlots(view GraphView, node *entities.Node) []IncompleteSlot {
	var incomplete []IncompleteSlot
	for _, slot := range node.Template().Slots {
		if slot.MinConnections == 0 {
			continue
		}
		endpoint, err := valueobjects.NewEndpoint(node.ID(), slot.Name)
		if err != nil {
			continue
		}
		actual := view.SlotEdgeCount(endpoint)
		if actual < slot.MinConnections {
			incomplete = append(incomplete, IncompleteSlot{
				NodeID:   node.ID(),
				SlotName: slot.Name,
				Required: slot.MinConnections,
				Actual:   actual,
			})
		}
	}
	return incomplete
}

// resolveSlot looks up an endpoint's node and slot template
func resolveSlot(view GraphView, endpoint valueobjects.Endpoint) (*schema.SlotTemplate, *entities.Node, error) {
	node, ok := view.Node(endpoint.NodeID())
	if !ok {
		return nil, nil, pkgerrors.ErrNodeNotFound.
			WithDetail("node_id", endpoint.NodeID().String())
	}
	slot, ok := node.Template().Slot(endpoint.SlotName())
	if !ok {
		return nil, nil, pkgerrors.ErrSlotNotFound.
			WithDetail("node_id", endpoint.NodeID().String()).
			WithDetail("slot", endpoint.SlotName())
	}
	return slot, node, nil
}
