package aggregates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphcanvas/domain/core/valueobjects"
	"graphcanvas/domain/events"
	"graphcanvas/domain/schema"
	pkgerrors "graphcanvas/pkg/errors"
)

func testRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	reg, err := schema.Load([]schema.NodeTemplate{
		{
			Name: "task",
			Slots: []schema.SlotTemplate{
				{
					Name:               "next",
					Anchor:             schema.AnchorRight,
					Direction:          schema.DirectionOutgoing,
					AllowedConnections: []string{"task", "sink"},
					MaxConnections:     schema.UnboundedConnections,
				},
				{
					Name:               "prev",
					Anchor:             schema.AnchorLeft,
					Direction:          schema.DirectionIncoming,
					AllowedConnections: []string{"task"},
					MinConnections:     1,
					MaxConnections:     1,
				},
			},
			Fields: []schema.FieldTemplate{
				{Name: "done", Type: valueobjects.FieldTypeBoolean, DefaultValue: "false"},
				{Name: "title", Type: valueobjects.FieldTypeString, DefaultValue: "untitled"},
			},
			DefaultWidth:  160,
			DefaultHeight: 80,
			CanCreate:     true,
			Resizable:     true,
		},
		{
			Name: "sink",
			Slots: []schema.SlotTemplate{
				{
					Name:               "in",
					Anchor:             schema.AnchorLeft,
					Direction:          schema.DirectionIncoming,
					AllowedConnections: []string{"task"},
					MaxConnections:     2,
				},
				{
					Name:               "chain",
					Anchor:             schema.AnchorRight,
					Direction:          schema.DirectionOutgoing,
					AllowedConnections: []string{"sink"},
					MaxConnections:     schema.UnboundedConnections,
				},
			},
			DefaultWidth:  100,
			DefaultHeight: 60,
			CanCreate:     true,
			Resizable:     false,
		},
	}, nil)
	require.NoError(t, err)
	return reg
}

func testGraph(t *testing.T) *Graph {
	t.Helper()
	g, err := NewGraph(testRegistry(t), nil)
	require.NoError(t, err)
	return g
}

func mustPos(t *testing.T, x, y float64) valueobjects.Position {
	t.Helper()
	p, err := valueobjects.NewPosition(x, y)
	require.NoError(t, err)
	return p
}

func endpoint(t *testing.T, nodeID valueobjects.NodeID, slot string) valueobjects.Endpoint {
	t.Helper()
	ep, err := valueobjects.NewEndpoint(nodeID, slot)
	require.NoError(t, err)
	return ep
}

func TestAddNode(t *testing.T) {
	g := testGraph(t)

	node, err := g.AddNode("task", mustPos(t, 10, 20))
	require.NoError(t, err)
	assert.Equal(t, "task", node.TemplateName())
	assert.Equal(t, 1, g.NodeCount())

	// Fields start at template defaults
	done, err := node.Field("done")
	require.NoError(t, err)
	assert.False(t, done.Bool())
	title, err := node.Field("title")
	require.NoError(t, err)
	assert.Equal(t, "untitled", title.Str())

	_, err = g.AddNode("missing", mustPos(t, 0, 0))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsFatal(err))
	assert.Equal(t, 1, g.NodeCount())
}

func TestAddEdge_CanonicalDirection(t *testing.T) {
	g := testGraph(t)
	a, err := g.AddNode("task", mustPos(t, 0, 0))
	require.NoError(t, err)
	b, err := g.AddNode("task", mustPos(t, 300, 0))
	require.NoError(t, err)

	// Gesture runs incoming-first; stored edge must still be outgoing->incoming
	edge, err := g.AddEdge(endpoint(t, b.ID(), "prev"), endpoint(t, a.ID(), "next"))
	require.NoError(t, err)
	assert.True(t, edge.Source().NodeID().Equals(a.ID()))
	assert.Equal(t, "next", edge.Source().SlotName())
	assert.True(t, edge.Target().NodeID().Equals(b.ID()))
	assert.Equal(t, "prev", edge.Target().SlotName())
}

func TestAddEdge_RejectionsLeaveGraphUnchanged(t *testing.T) {
	g := testGraph(t)
	a, _ := g.AddNode("task", mustPos(t, 0, 0))
	b, _ := g.AddNode("task", mustPos(t, 300, 0))
	sink, _ := g.AddNode("sink", mustPos(t, 600, 0))

	tests := []struct {
		name string
		from valueobjects.Endpoint
		to   valueobjects.Endpoint
		code string
	}{
		{
			name: "self referential",
			from: endpoint(t, a.ID(), "next"),
			to:   endpoint(t, a.ID(), "prev"),
			code: "SELF_REFERENTIAL_EDGE",
		},
		{
			name: "direction mismatch outgoing to outgoing",
			from: endpoint(t, a.ID(), "next"),
			to:   endpoint(t, b.ID(), "next"),
			code: "DIRECTION_MISMATCH",
		},
		{
			name: "both incoming",
			from: endpoint(t, sink.ID(), "in"),
			to:   endpoint(t, b.ID(), "prev"),
			code: "DIRECTION_MISMATCH",
		},
		{
			name: "type not allowed",
			from: endpoint(t, sink.ID(), "chain"),
			to:   endpoint(t, b.ID(), "prev"),
			code: "TYPE_NOT_ALLOWED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := g.EdgeCount()
			_, err := g.AddEdge(tt.from, tt.to)
			require.Error(t, err)
			assert.True(t, pkgerrors.IsCode(err, tt.code))
			assert.Equal(t, before, g.EdgeCount(), "rejected mutation must not change the graph")
		})
	}
}

func TestAddEdge_CardinalityAndDuplicates(t *testing.T) {
	g := testGraph(t)
	a, _ := g.AddNode("task", mustPos(t, 0, 0))
	b, _ := g.AddNode("task", mustPos(t, 300, 0))
	c, _ := g.AddNode("task", mustPos(t, 600, 0))

	_, err := g.AddEdge(endpoint(t, a.ID(), "next"), endpoint(t, b.ID(), "prev"))
	require.NoError(t, err)

	// Same endpoints again, in reversed gesture order
	_, err = g.AddEdge(endpoint(t, b.ID(), "prev"), endpoint(t, a.ID(), "next"))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, "DUPLICATE_EDGE"))

	// "prev" is capped at one connection
	_, err = g.AddEdge(endpoint(t, c.ID(), "next"), endpoint(t, b.ID(), "prev"))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, "CARDINALITY_EXCEEDED"))
	assert.Equal(t, 1, g.EdgeCount())
}

func TestRemoveNode_CascadesAtomically(t *testing.T) {
	g := testGraph(t)
	a, _ := g.AddNode("task", mustPos(t, 0, 0))
	b, _ := g.AddNode("task", mustPos(t, 300, 0))
	sink, _ := g.AddNode("sink", mustPos(t, 600, 0))

	_, err := g.AddEdge(endpoint(t, a.ID(), "next"), endpoint(t, b.ID(), "prev"))
	require.NoError(t, err)
	_, err = g.AddEdge(endpoint(t, a.ID(), "next"), endpoint(t, sink.ID(), "in"))
	require.NoError(t, err)
	require.Equal(t, 2, g.EdgeCount())

	require.NoError(t, g.RemoveNode(a.ID()))

	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 0, g.EdgeCount(), "every incident edge goes with the node")
	for _, edge := range g.Edges() {
		_, ok := g.Node(edge.Source().NodeID())
		assert.True(t, ok, "no edge may reference a missing node")
		_, ok = g.Node(edge.Target().NodeID())
		assert.True(t, ok)
	}
}

func TestRemoveNode_ForbiddenLeavesEverything(t *testing.T) {
	g := testGraph(t)
	a, _ := g.AddNode("task", mustPos(t, 0, 0))
	b, _ := g.AddNode("task", mustPos(t, 300, 0))
	_, err := g.AddEdge(endpoint(t, a.ID(), "next"), endpoint(t, b.ID(), "prev"))
	require.NoError(t, err)

	a.SetDeletable(false)

	err = g.RemoveNode(a.ID())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, "DELETION_FORBIDDEN"))
	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 1, g.EdgeCount(), "forbidden deletion must not cascade")
}

func TestMoveAndResizeGuards(t *testing.T) {
	g := testGraph(t)
	task, _ := g.AddNode("task", mustPos(t, 0, 0))
	sink, _ := g.AddNode("sink", mustPos(t, 300, 0))

	require.NoError(t, g.MoveNode(task.ID(), mustPos(t, 50, 50)))
	assert.InDelta(t, 50.0, task.Position().X(), 1e-9)

	task.SetMovable(false)
	err := g.MoveNode(task.ID(), mustPos(t, 99, 99))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, "MOVEMENT_FORBIDDEN"))
	assert.InDelta(t, 50.0, task.Position().X(), 1e-9)

	size, err := valueobjects.NewSize(200, 120)
	require.NoError(t, err)
	require.NoError(t, g.ResizeNode(task.ID(), size))

	err = g.ResizeNode(sink.ID(), size)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, "RESIZE_FORBIDDEN"))
}

func TestSetField(t *testing.T) {
	g := testGraph(t)
	task, _ := g.AddNode("task", mustPos(t, 0, 0))

	require.NoError(t, g.SetField(task.ID(), "done", "true"))
	done, err := task.Field("done")
	require.NoError(t, err)
	assert.True(t, done.Bool())

	err = g.SetField(task.ID(), "done", "not-a-bool")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, "INVALID_FIELD_VALUE"))
	done, _ = task.Field("done")
	assert.True(t, done.Bool(), "failed parse must not clobber the value")

	err = g.SetField(task.ID(), "missing", "x")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestIncompleteSlots(t *testing.T) {
	g := testGraph(t)
	a, _ := g.AddNode("task", mustPos(t, 0, 0))
	b, _ := g.AddNode("task", mustPos(t, 300, 0))

	// Both "prev" slots start below their minimum of one
	incomplete := g.IncompleteSlots()
	require.Len(t, incomplete, 2)
	assert.Equal(t, "prev", incomplete[0].SlotName)
	assert.Equal(t, 1, incomplete[0].Required)
	assert.Equal(t, 0, incomplete[0].Actual)

	_, err := g.AddEdge(endpoint(t, a.ID(), "next"), endpoint(t, b.ID(), "prev"))
	require.NoError(t, err)

	incomplete = g.IncompleteSlots()
	require.Len(t, incomplete, 1)
	assert.True(t, incomplete[0].NodeID.Equals(a.ID()))
}

func TestEventStream(t *testing.T) {
	g := testGraph(t)
	a, _ := g.AddNode("task", mustPos(t, 0, 0))
	b, _ := g.AddNode("task", mustPos(t, 300, 0))
	_, err := g.AddEdge(endpoint(t, a.ID(), "next"), endpoint(t, b.ID(), "prev"))
	require.NoError(t, err)
	require.NoError(t, g.MoveNode(b.ID(), mustPos(t, 400, 0)))
	require.NoError(t, g.RemoveNode(b.ID()))

	stream := g.GetUncommittedEvents()
	var types []string
	for _, e := range stream {
		types = append(types, e.GetEventType())
	}
	assert.Equal(t, []string{
		"node.added",
		"node.added",
		"edge.added",
		"node.moved",
		"edge.removed",
		"node.removed",
	}, types)

	removed, ok := stream[len(stream)-1].(events.NodeRemoved)
	require.True(t, ok)
	assert.Len(t, removed.RemovedEdges, 1)

	g.MarkEventsAsCommitted()
	assert.Empty(t, g.GetUncommittedEvents())
}

func TestSnapshotIsDetached(t *testing.T) {
	g := testGraph(t)
	a, _ := g.AddNode("task", mustPos(t, 10, 20))
	b, _ := g.AddNode("sink", mustPos(t, 300, 0))
	_, err := g.AddEdge(endpoint(t, a.ID(), "next"), endpoint(t, b.ID(), "in"))
	require.NoError(t, err)

	snap := g.Snapshot()
	require.Len(t, snap.Nodes, 2)
	require.Len(t, snap.Edges, 1)
	assert.Equal(t, "task", snap.Nodes[0].Template)
	assert.Equal(t, "false", snap.Nodes[0].Fields["done"])
	assert.Equal(t, a.ID().String(), snap.Edges[0].SourceNode)

	// Mutating the live graph must not alter the snapshot
	require.NoError(t, g.MoveNode(a.ID(), mustPos(t, 999, 999)))
	assert.InDelta(t, 10.0, snap.Nodes[0].X, 1e-9)
}

func TestInsertionOrderIsStable(t *testing.T) {
	g := testGraph(t)
	first, _ := g.AddNode("task", mustPos(t, 0, 0))
	second, _ := g.AddNode("task", mustPos(t, 0, 0))
	third, _ := g.AddNode("task", mustPos(t, 0, 0))

	require.NoError(t, g.RemoveNode(second.ID()))
	fourth, _ := g.AddNode("task", mustPos(t, 0, 0))

	nodes := g.Nodes()
	require.Len(t, nodes, 3)
	assert.True(t, nodes[0].ID().Equals(first.ID()))
	assert.True(t, nodes[1].ID().Equals(third.ID()))
	assert.True(t, nodes[2].ID().Equals(fourth.ID()))
}
