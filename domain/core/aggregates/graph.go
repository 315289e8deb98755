package aggregates

import (
	"time"

	"graphcanvas/domain/core/entities"
	"graphcanvas/domain/core/validators"
	"graphcanvas/domain/core/valueobjects"
	"graphcanvas/domain/events"
	"graphcanvas/domain/schema"
	pkgerrors "graphcanvas/pkg/errors"
)

// Graph is the aggregate root for the editable node graph.
// It ensures consistency boundaries for every mutation: each operation
// either commits fully or leaves the graph untouched, with the validator
// consulted before any state changes. Single-threaded by contract.
type Graph struct {
	registry  *schema.Registry
	validator *validators.ConstraintValidator

	nodes     map[valueobjects.NodeID]*entities.Node
	nodeOrder []valueobjects.NodeID
	edges     map[valueobjects.EdgeID]*entities.Edge
	edgeOrder []valueobjects.EdgeID

	createdAt time.Time
	updatedAt time.Time
	events    []events.DomainEvent
}

// NewGraph creates an empty graph bound to a loaded schema registry
func NewGraph(registry *schema.Registry, validator *validators.ConstraintValidator) (*Graph, error) {
	if registry == nil {
		return nil, pkgerrors.ErrSchemaIntegrity.
			WithDetail("reason", "graph requires a loaded registry")
	}
	if validator == nil {
		validator = validators.NewConstraintValidator()
	}

	now := time.Now()
	return &Graph{
		registry:  registry,
		validator: validator,
		nodes:     make(map[valueobjects.NodeID]*entities.Node),
		edges:     make(map[valueobjects.EdgeID]*entities.Edge),
		createdAt: now,
		updatedAt: now,
		events:    []events.DomainEvent{},
	}, nil
}

// Registry returns the schema registry the graph runs against
func (g *Graph) Registry() *schema.Registry {
	return g.registry
}

// Validator returns the graph's constraint validator
func (g *Graph) Validator() *validators.ConstraintValidator {
	return g.validator
}

// AddNode instantiates a node from the named template at the given position
func (g *Graph) AddNode(templateName string, position valueobjects.Position) (*entities.Node, error) {
	tmpl, ok := g.registry.Template(templateName)
	if !ok {
		return nil, pkgerrors.ErrUnknownTemplate.
			WithDetail("template", templateName)
	}

	node, err := entities.NewNode(tmpl, position)
	if err != nil {
		return nil, err
	}

	g.nodes[node.ID()] = node
	g.nodeOrder = append(g.nodeOrder, node.ID())
	g.touch()
	g.collectNodeEvents(node)

	return node, nil
}

// RemoveNode deletes a node together with every incident edge. The
// cascade is atomic: if deletion is forbidden nothing is removed.
func (g *Graph) RemoveNode(nodeID valueobjects.NodeID) error {
	node, ok := g.nodes[nodeID]
	if !ok {
		return pkgerrors.ErrNodeNotFound.
			WithDetail("node_id", nodeID.String())
	}

	if err := g.validator.CanDelete(node); err != nil {
		return err
	}

	now := time.Now()
	var removedEdges []valueobjects.EdgeID
	for _, edgeID := range g.edgeOrder {
		edge := g.edges[edgeID]
		if edge.Touches(nodeID) {
			removedEdges = append(removedEdges, edgeID)
			g.addEvent(events.NewEdgeRemoved(edgeID, edge.Source(), edge.Target(), now))
		}
	}
	for _, edgeID := range removedEdges {
		g.dropEdge(edgeID)
	}

	delete(g.nodes, nodeID)
	g.nodeOrder = removeNodeID(g.nodeOrder, nodeID)
	g.touch()
	g.addEvent(events.NewNodeRemoved(nodeID, node.TemplateName(), removedEdges, now))

	return nil
}

// MoveNode moves a node to a new position
func (g *Graph) MoveNode(nodeID valueobjects.NodeID, position valueobjects.Position) error {
	node, ok := g.nodes[nodeID]
	if !ok {
		return pkgerrors.ErrNodeNotFound.
			WithDetail("node_id", nodeID.String())
	}

	if err := g.validator.CanMove(node); err != nil {
		return err
	}

	node.MoveTo(position)
	g.touch()
	g.collectNodeEvents(node)
	return nil
}

// ResizeNode changes a node's dimensions
func (g *Graph) ResizeNode(nodeID valueobjects.NodeID, size valueobjects.Size) error {
	node, ok := g.nodes[nodeID]
	if !ok {
		return pkgerrors.ErrNodeNotFound.
			WithDetail("node_id", nodeID.String())
	}

	if err := g.validator.CanResize(node); err != nil {
		return err
	}

	node.Resize(size)
	g.touch()
	g.collectNodeEvents(node)
	return nil
}

// SetField assigns a typed field on a node from its literal form
func (g *Graph) SetField(nodeID valueobjects.NodeID, field, literal string) error {
	node, ok := g.nodes[nodeID]
	if !ok {
		return pkgerrors.ErrNodeNotFound.
			WithDetail("node_id", nodeID.String())
	}

	if err := node.SetField(field, literal); err != nil {
		return err
	}

	g.touch()
	g.collectNodeEvents(node)
	return nil
}

// AddEdge validates and commits an edge between two slot instances.
// The endpoints may arrive in either gesture order; the stored edge
// always runs outgoing to incoming.
func (g *Graph) AddEdge(a, b valueobjects.Endpoint) (*entities.Edge, error) {
	if err := g.validator.CanConnect(g, a, b); err != nil {
		return nil, err
	}

	source, target, err := g.validator.Canonicalize(g, a, b)
	if err != nil {
		return nil, err
	}

	edge, err := entities.NewEdge(source, target)
	if err != nil {
		return nil, err
	}

	g.edges[edge.ID()] = edge
	g.edgeOrder = append(g.edgeOrder, edge.ID())
	g.touch()
	g.addEvent(events.NewEdgeAdded(edge.ID(), source, target, time.Now()))

	return edge, nil
}

// RemoveEdge deletes an edge by id
func (g *Graph) RemoveEdge(edgeID valueobjects.EdgeID) error {
	edge, ok := g.edges[edgeID]
	if !ok {
		return pkgerrors.ErrEdgeNotFound.
			WithDetail("edge_id", edgeID.String())
	}

	if err := g.validator.CanDisconnect(edge); err != nil {
		return err
	}

	g.dropEdge(edgeID)
	g.touch()
	g.addEvent(events.NewEdgeRemoved(edgeID, edge.Source(), edge.Target(), time.Now()))
	return nil
}

// Node looks up a node by id
func (g *Graph) Node(nodeID valueobjects.NodeID) (*entities.Node, bool) {
	node, ok := g.nodes[nodeID]
	return node, ok
}

// Edge looks up an edge by id
func (g *Graph) Edge(edgeID valueobjects.EdgeID) (*entities.Edge, bool) {
	edge, ok := g.edges[edgeID]
	return edge, ok
}

// Nodes returns all nodes in insertion order
func (g *Graph) Nodes() []*entities.Node {
	out := make([]*entities.Node, 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		out = append(out, g.nodes[id])
	}
	return out
}

// Edges returns all edges in insertion order
func (g *Graph) Edges() []*entities.Edge {
	out := make([]*entities.Edge, 0, len(g.edgeOrder))
	for _, id := range g.edgeOrder {
		out = append(out, g.edges[id])
	}
	return out
}

// NodeCount returns the number of nodes
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// IncidentEdges returns the edges touching a node, in insertion order
func (g *Graph) IncidentEdges(nodeID valueobjects.NodeID) []*entities.Edge {
	var out []*entities.Edge
	for _, id := range g.edgeOrder {
		if g.edges[id].Touches(nodeID) {
			out = append(out, g.edges[id])
		}
	}
	return out
}

// SlotEdgeCount returns how many edges are attached to a slot instance
func (g *Graph) SlotEdgeCount(endpoint valueobjects.Endpoint) int {
	count := 0
	for _, edge := range g.edges {
		if edge.UsesSlot(endpoint) {
			count++
		}
	}
	return count
}

// HasEdgeBetween reports whether an edge already joins the two slot
// instances, in either orientation
func (g *Graph) HasEdgeBetween(a, b valueobjects.Endpoint) bool {
	for _, edge := range g.edges {
		if (edge.Source().Equals(a) && edge.Target().Equals(b)) ||
			(edge.Source().Equals(b) && edge.Target().Equals(a)) {
			return true
		}
	}
	return false
}

// IncompleteSlots lists every slot in the graph whose connection count is
// below its declared minimum. Advisory only.
func (g *Graph) IncompleteSlots() []validators.IncompleteSlot {
	var out []validators.IncompleteSlot
	for _, id := range g.nodeOrder {
		out = append(out, g.validator.IncompleteSlots(g, g.nodes[id])...)
	}
	return out
}

// CreatedAt returns when the graph was created
func (g *Graph) CreatedAt() time.Time {
	return g.createdAt
}

// UpdatedAt returns when the graph last changed
func (g *Graph) UpdatedAt() time.Time {
	return g.updatedAt
}

// GetUncommittedEvents returns all uncommitted domain events in the
// order they occurred
func (g *Graph) GetUncommittedEvents() []events.DomainEvent {
	return g.events
}

// MarkEventsAsCommitted clears the uncommitted events
func (g *Graph) MarkEventsAsCommitted() {
	g.events = []events.DomainEvent{}
}

// dropEdge removes an edge from the map and the order slice
func (g *Graph) dropEdge(edgeID valueobjects.EdgeID) {
	delete(g.edges, edgeID)
	for i, id := range g.edgeOrder {
		if id.Equals(edgeID) {
			g.edgeOrder = append(g.edgeOrder[:i], g.edgeOrder[i+1:]...)
			break
		}
	}
}

// collectNodeEvents pulls a node's uncommitted events into the graph's
// single ordered stream
func (g *Graph) collectNodeEvents(node *entities.Node) {
	for _, event := range node.GetUncommittedEvents() {
		g.addEvent(event)
	}
	node.MarkEventsAsCommitted()
}

// addEvent adds a domain event to the uncommitted list
func (g *Graph) addEvent(event events.DomainEvent) {
	g.events = append(g.events, event)
}

// touch updates the aggregate's modification time
func (g *Graph) touch() {
	g.updatedAt = time.Now()
}

// removeNodeID drops an id from an order slice preserving order
func removeNodeID(ids []valueobjects.NodeID, target valueobjects.NodeID) []valueobjects.NodeID {
	for i, id := range ids {
		if id.Equals(target) {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
