// Package editor is the application facade over the graph, the
// interaction machine, and the event bus. Hosts talk to an Editor and
// nothing below it.
package editor

import (
	"go.uber.org/zap"

	"graphcanvas/application/interaction"
	"graphcanvas/domain/core/aggregates"
	"graphcanvas/domain/core/entities"
	"graphcanvas/domain/core/validators"
	"graphcanvas/domain/core/valueobjects"
	"graphcanvas/domain/events"
	"graphcanvas/domain/schema"
	pkgerrors "graphcanvas/pkg/errors"
)

// Editor owns one graph and its interaction machine. All methods run on
// the caller's goroutine; the editor is single-threaded by contract.
type Editor struct {
	registry *schema.Registry
	graph    *aggregates.Graph
	machine  *interaction.Machine
	bus      *events.Bus
	logger   *zap.Logger
}

// New constructs an editor over a loaded schema registry. Construction
// fails only on fatal schema problems; a constructed editor is ready
// for input.
func New(registry *schema.Registry, logger *zap.Logger, cfg interaction.Config) (*Editor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	graph, err := aggregates.NewGraph(registry, validators.NewConstraintValidator())
	if err != nil {
		return nil, err
	}

	bus := events.NewBus()
	machine := interaction.NewMachine(graph, bus, logger, cfg)

	return &Editor{
		registry: registry,
		graph:    graph,
		machine:  machine,
		bus:      bus,
		logger:   logger,
	}, nil
}

// Registry returns the schema registry the editor runs against
func (e *Editor) Registry() *schema.Registry {
	return e.registry
}

// Graph returns the underlying graph aggregate
func (e *Editor) Graph() *aggregates.Graph {
	return e.graph
}

// Machine returns the interaction state machine
func (e *Editor) Machine() *interaction.Machine {
	return e.machine
}

// Subscribe registers a handler for all domain and interaction events
func (e *Editor) Subscribe(h events.Handler) {
	e.bus.Subscribe(h)
}

// HandleInput routes a normalized input event through the machine
func (e *Editor) HandleInput(ev interaction.InputEvent) error {
	return e.machine.HandleEvent(ev)
}

// Snapshot returns a detached copy of the current graph state
func (e *Editor) Snapshot() aggregates.GraphSnapshot {
	return e.graph.Snapshot()
}

// Mode returns the machine's current interaction state
func (e *Editor) Mode() interaction.Mode {
	return e.machine.Mode()
}

// Programmatic mutations. These bypass the gesture layer but run the
// same validation, and publish the same events.

// AddNode instantiates a template at the given coordinates
func (e *Editor) AddNode(template string, x, y float64) (string, error) {
	pos, err := valueobjects.NewPosition(x, y)
	if err != nil {
		return "", err
	}
	node, err := e.graph.AddNode(template, pos)
	if err != nil {
		e.logger.Warn("add node failed",
			zap.String("template", template),
			zap.Error(err))
		return "", err
	}
	e.flush()
	e.logger.Info("node added",
		zap.String("node_id", node.ID().String()),
		zap.String("template", template))
	return node.ID().String(), nil
}

// RemoveNode deletes a node and its incident edges
func (e *Editor) RemoveNode(nodeID string) error {
	id, err := valueobjects.NewNodeIDFromString(nodeID)
	if err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	if err := e.graph.RemoveNode(id); err != nil {
		return err
	}
	e.flush()
	e.logger.Info("node removed", zap.String("node_id", nodeID))
	return nil
}

// MoveNode repositions a node
func (e *Editor) MoveNode(nodeID string, x, y float64) error {
	id, err := valueobjects.NewNodeIDFromString(nodeID)
	if err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	pos, err := valueobjects.NewPosition(x, y)
	if err != nil {
		return err
	}
	if err := e.graph.MoveNode(id, pos); err != nil {
		return err
	}
	e.flush()
	return nil
}

// ResizeNode changes a node's dimensions
func (e *Editor) ResizeNode(nodeID string, width, height float64) error {
	id, err := valueobjects.NewNodeIDFromString(nodeID)
	if err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	size, err := valueobjects.NewSize(width, height)
	if err != nil {
		return err
	}
	if err := e.graph.ResizeNode(id, size); err != nil {
		return err
	}
	e.flush()
	return nil
}

// SetField assigns a typed field on a node from its literal form
func (e *Editor) SetField(nodeID, field, literal string) error {
	id, err := valueobjects.NewNodeIDFromString(nodeID)
	if err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	if err := e.graph.SetField(id, field, literal); err != nil {
		return err
	}
	e.flush()
	return nil
}

// AddEdge connects two slot instances, given in either order
func (e *Editor) AddEdge(nodeA, slotA, nodeB, slotB string) (string, error) {
	a, err := parseEndpoint(nodeA, slotA)
	if err != nil {
		return "", err
	}
	b, err := parseEndpoint(nodeB, slotB)
	if err != nil {
		return "", err
	}
	edge, err := e.graph.AddEdge(a, b)
	if err != nil {
		e.logger.Debug("edge rejected",
			zap.String("from", a.String()),
			zap.String("to", b.String()),
			zap.Error(err))
		return "", err
	}
	e.flush()
	return edge.ID().String(), nil
}

// RemoveEdge deletes an edge by id
func (e *Editor) RemoveEdge(edgeID string) error {
	id, err := valueobjects.NewEdgeIDFromString(edgeID)
	if err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	if err := e.graph.RemoveEdge(id); err != nil {
		return err
	}
	e.flush()
	return nil
}

// SetDeletable toggles whether a node instance may be removed
func (e *Editor) SetDeletable(nodeID string, deletable bool) error {
	node, err := e.node(nodeID)
	if err != nil {
		return err
	}
	node.SetDeletable(deletable)
	return nil
}

// SetMovable toggles whether a node instance may be repositioned
func (e *Editor) SetMovable(nodeID string, movable bool) error {
	node, err := e.node(nodeID)
	if err != nil {
		return err
	}
	node.SetMovable(movable)
	return nil
}

// IncompleteSlots lists the graph's under-connected slots
func (e *Editor) IncompleteSlots() []validators.IncompleteSlot {
	return e.graph.IncompleteSlots()
}

// flush publishes pending graph events to the bus
func (e *Editor) flush() {
	pending := e.graph.GetUncommittedEvents()
	if len(pending) == 0 {
		return
	}
	e.bus.PublishAll(pending)
	e.graph.MarkEventsAsCommitted()
}

// node resolves a node entity from its string id
func (e *Editor) node(nodeID string) (*entities.Node, error) {
	id, err := valueobjects.NewNodeIDFromString(nodeID)
	if err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}
	node, ok := e.graph.Node(id)
	if !ok {
		return nil, pkgerrors.ErrNodeNotFound.WithDetail("node_id", nodeID)
	}
	return node, nil
}

// parseEndpoint builds an endpoint from string form
func parseEndpoint(nodeID, slot string) (valueobjects.Endpoint, error) {
	id, err := valueobjects.NewNodeIDFromString(nodeID)
	if err != nil {
		return valueobjects.Endpoint{}, pkgerrors.NewValidationError(err.Error())
	}
	endpoint, err := valueobjects.NewEndpoint(id, slot)
	if err != nil {
		return valueobjects.Endpoint{}, pkgerrors.NewValidationError(err.Error())
	}
	return endpoint, nil
}
