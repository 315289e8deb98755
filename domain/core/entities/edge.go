package entities

import (
	"time"

	"graphcanvas/domain/core/valueobjects"
	pkgerrors "graphcanvas/pkg/errors"
)

// Edge is a directed connection between two slot instances. Direction is
// fixed at creation: the source endpoint is always the outgoing slot and
// the target the incoming one, regardless of gesture order.
type Edge struct {
	id        valueobjects.EdgeID
	source    valueobjects.Endpoint
	target    valueobjects.Endpoint
	createdAt time.Time
}

// NewEdge creates an edge between a source and target endpoint
func NewEdge(source, target valueobjects.Endpoint) (*Edge, error) {
	if source.IsZero() || target.IsZero() {
		return nil, pkgerrors.NewValidationError("edge endpoints cannot be zero")
	}
	if source.NodeID().Equals(target.NodeID()) {
		return nil, pkgerrors.ErrSelfReferentialEdge.
			WithDetail("node_id", source.NodeID().String())
	}

	return &Edge{
		id:        valueobjects.NewEdgeID(),
		source:    source,
		target:    target,
		createdAt: time.Now(),
	}, nil
}

// ID returns the edge's unique identifier
func (e *Edge) ID() valueobjects.EdgeID {
	return e.id
}

// Source returns the outgoing endpoint
func (e *Edge) Source() valueobjects.Endpoint {
	return e.source
}

// Target returns the incoming endpoint
func (e *Edge) Target() valueobjects.Endpoint {
	return e.target
}

// CreatedAt returns when the edge was created
func (e *Edge) CreatedAt() time.Time {
	return e.createdAt
}

// Touches reports whether the edge is incident to the given node
func (e *Edge) Touches(nodeID valueobjects.NodeID) bool {
	return e.source.NodeID().Equals(nodeID) || e.target.NodeID().Equals(nodeID)
}

// UsesSlot reports whether the edge is attached to the given slot instance
func (e *Edge) UsesSlot(endpoint valueobjects.Endpoint) bool {
	return e.source.Equals(endpoint) || e.target.Equals(endpoint)
}
