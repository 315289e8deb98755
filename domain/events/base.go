package events

import (
	"time"

	"graphcanvas/domain/core/valueobjects"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// Node Events

// NodeAdded is raised when a node is instantiated from a template
type NodeAdded struct {
	BaseEvent
	NodeID   valueobjects.NodeID   `json:"node_id"`
	Template string                `json:"template"`
	Position valueobjects.Position `json:"position"`
}

// NewNodeAdded creates a NodeAdded event
func NewNodeAdded(nodeID valueobjects.NodeID, template string, pos valueobjects.Position, timestamp time.Time) NodeAdded {
	return NodeAdded{
		BaseEvent: BaseEvent{
			AggregateID: nodeID.String(),
			EventType:   "node.added",
			Timestamp:   timestamp,
			Version:     1,
		},
		NodeID:   nodeID,
		Template: template,
		Position: pos,
	}
}

// NodeRemoved is raised when a node and its incident edges are deleted
type NodeRemoved struct {
	BaseEvent
	NodeID       valueobjects.NodeID   `json:"node_id"`
	Template     string                `json:"template"`
	RemovedEdges []valueobjects.EdgeID `json:"removed_edges"`
}

// NewNodeRemoved creates a NodeRemoved event carrying the cascade-deleted edges
func NewNodeRemoved(nodeID valueobjects.NodeID, template string, removedEdges []valueobjects.EdgeID, timestamp time.Time) NodeRemoved {
	return NodeRemoved{
		BaseEvent: BaseEvent{
			AggregateID: nodeID.String(),
			EventType:   "node.removed",
			Timestamp:   timestamp,
			Version:     1,
		},
		NodeID:       nodeID,
		Template:     template,
		RemovedEdges: removedEdges,
	}
}

// NodeMoved is raised when a node is moved to a new position
type NodeMoved struct {
	BaseEvent
	NodeID      valueobjects.NodeID   `json:"node_id"`
	OldPosition valueobjects.Position `json:"old_position"`
	NewPosition valueobjects.Position `json:"new_position"`
}

// NewNodeMoved creates a NodeMoved event
func NewNodeMoved(nodeID valueobjects.NodeID, oldPos, newPos valueobjects.Position, timestamp time.Time) NodeMoved {
	return NodeMoved{
		BaseEvent: BaseEvent{
			AggregateID: nodeID.String(),
			EventType:   "node.moved",
			Timestamp:   timestamp,
			Version:     1,
		},
		NodeID:      nodeID,
		OldPosition: oldPos,
		NewPosition: newPos,
	}
}

// NodeResized is raised when a node's dimensions change
type NodeResized struct {
	BaseEvent
	NodeID  valueobjects.NodeID `json:"node_id"`
	OldSize valueobjects.Size   `json:"old_size"`
	NewSize valueobjects.Size   `json:"new_size"`
}

// NewNodeResized creates a NodeResized event
func NewNodeResized(nodeID valueobjects.NodeID, oldSize, newSize valueobjects.Size, timestamp time.Time) NodeResized {
	return NodeResized{
		BaseEvent: BaseEvent{
			AggregateID: nodeID.String(),
			EventType:   "node.resized",
			Timestamp:   timestamp,
			Version:     1,
		},
		NodeID:  nodeID,
		OldSize: oldSize,
		NewSize: newSize,
	}
}

// NodeFieldChanged is raised when a typed field on a node is assigned
type NodeFieldChanged struct {
	BaseEvent
	NodeID   valueobjects.NodeID     `json:"node_id"`
	Field    string                  `json:"field"`
	OldValue valueobjects.FieldValue `json:"old_value"`
	NewValue valueobjects.FieldValue `json:"new_value"`
}

// NewNodeFieldChanged creates a NodeFieldChanged event
func NewNodeFieldChanged(nodeID valueobjects.NodeID, field string, oldValue, newValue valueobjects.FieldValue, timestamp time.Time) NodeFieldChanged {
	return NodeFieldChanged{
		BaseEvent: BaseEvent{
			AggregateID: nodeID.String(),
			EventType:   "node.field_changed",
			Timestamp:   timestamp,
			Version:     1,
		},
		NodeID:   nodeID,
		Field:    field,
		OldValue: oldValue,
		NewValue: newValue,
	}
}

// Edge Events

// EdgeAdded is raised when a validated edge is committed
type EdgeAdded struct {
	BaseEvent
	EdgeID valueobjects.EdgeID   `json:"edge_id"`
	Source valueobjects.Endpoint `json:"source"`
	Target valueobjects.Endpoint `json:"target"`
}

// NewEdgeAdded creates an EdgeAdded event
func NewEdgeAdded(edgeID valueobjects.EdgeID, source, target valueobjects.Endpoint, timestamp time.Time) EdgeAdded {
	return EdgeAdded{
		BaseEvent: BaseEvent{
			AggregateID: edgeID.String(),
			EventType:   "edge.added",
			Timestamp:   timestamp,
			Version:     1,
		},
		EdgeID: edgeID,
		Source: source,
		Target: target,
	}
}

// EdgeRemoved is raised when an edge is deleted, directly or by cascade
type EdgeRemoved struct {
	BaseEvent
	EdgeID valueobjects.EdgeID   `json:"edge_id"`
	Source valueobjects.Endpoint `json:"source"`
	Target valueobjects.Endpoint `json:"target"`
}

// NewEdgeRemoved creates an EdgeRemoved event
func NewEdgeRemoved(edgeID valueobjects.EdgeID, source, target valueobjects.Endpoint, timestamp time.Time) EdgeRemoved {
	return EdgeRemoved{
		BaseEvent: BaseEvent{
			AggregateID: edgeID.String(),
			EventType:   "edge.removed",
			Timestamp:   timestamp,
			Version:     1,
		},
		EdgeID: edgeID,
		Source: source,
		Target: target,
	}
}

// Interaction Events

// ConnectionStarted is raised when a connection drag begins from a slot
type ConnectionStarted struct {
	BaseEvent
	Origin valueobjects.Endpoint `json:"origin"`
}

// NewConnectionStarted creates a ConnectionStarted event
func NewConnectionStarted(origin valueobjects.Endpoint, timestamp time.Time) ConnectionStarted {
	return ConnectionStarted{
		BaseEvent: BaseEvent{
			AggregateID: origin.NodeID().String(),
			EventType:   "connection.started",
			Timestamp:   timestamp,
			Version:     1,
		},
		Origin: origin,
	}
}

// ConnectionRejected is raised when a connection gesture ends without
// producing an edge; Reason carries the rejection code, empty when the
// gesture was released over empty space
type ConnectionRejected struct {
	BaseEvent
	Origin valueobjects.Endpoint `json:"origin"`
	Reason string                `json:"reason,omitempty"`
}

// NewConnectionRejected creates a ConnectionRejected event
func NewConnectionRejected(origin valueobjects.Endpoint, reason string, timestamp time.Time) ConnectionRejected {
	return ConnectionRejected{
		BaseEvent: BaseEvent{
			AggregateID: origin.NodeID().String(),
			EventType:   "connection.rejected",
			Timestamp:   timestamp,
			Version:     1,
		},
		Origin: origin,
		Reason: reason,
	}
}

// ContextMenuOpened is raised when the creation menu is shown
type ContextMenuOpened struct {
	BaseEvent
	Position valueobjects.Position `json:"position"`
	GroupID  string                `json:"group_id,omitempty"`
}

// NewContextMenuOpened creates a ContextMenuOpened event
func NewContextMenuOpened(pos valueobjects.Position, groupID string, timestamp time.Time) ContextMenuOpened {
	return ContextMenuOpened{
		BaseEvent: BaseEvent{
			AggregateID: "menu",
			EventType:   "menu.opened",
			Timestamp:   timestamp,
			Version:     1,
		},
		Position: pos,
		GroupID:  groupID,
	}
}

// ContextMenuClosed is raised when the creation menu is dismissed
type ContextMenuClosed struct {
	BaseEvent
}

// NewContextMenuClosed creates a ContextMenuClosed event
func NewContextMenuClosed(timestamp time.Time) ContextMenuClosed {
	return ContextMenuClosed{
		BaseEvent: BaseEvent{
			AggregateID: "menu",
			EventType:   "menu.closed",
			Timestamp:   timestamp,
			Version:     1,
		},
	}
}
