package hittest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphcanvas/domain/core/aggregates"
	"graphcanvas/domain/core/valueobjects"
	"graphcanvas/domain/schema"
)

func buildGraph(t *testing.T) *aggregates.Graph {
	t.Helper()
	reg, err := schema.Load([]schema.NodeTemplate{
		{
			Name: "task",
			Slots: []schema.SlotTemplate{
				{
					Name:               "next",
					Anchor:             schema.AnchorRight,
					Direction:          schema.DirectionOutgoing,
					AllowedConnections: []string{"task"},
					MaxConnections:     schema.UnboundedConnections,
				},
				{
					Name:               "prev",
					Anchor:             schema.AnchorLeft,
					Direction:          schema.DirectionIncoming,
					AllowedConnections: []string{"task"},
					MaxConnections:     schema.UnboundedConnections,
				},
			},
			DefaultWidth:  160,
			DefaultHeight: 80,
			CanCreate:     true,
			Resizable:     true,
		},
	}, nil)
	require.NoError(t, err)

	g, err := aggregates.NewGraph(reg, nil)
	require.NoError(t, err)
	return g
}

func pos(t *testing.T, x, y float64) valueobjects.Position {
	t.Helper()
	p, err := valueobjects.NewPosition(x, y)
	require.NoError(t, err)
	return p
}

func TestHitTest_Priority(t *testing.T) {
	g := buildGraph(t)
	node, err := g.AddNode("task", pos(t, 0, 0))
	require.NoError(t, err)
	tester := NewTester(g)

	// Bottom-right corner: handle beats the node body underneath it
	hit := tester.HitTest(pos(t, 160, 80))
	assert.Equal(t, TargetResizeHandle, hit.Kind)
	assert.True(t, hit.NodeID.Equals(node.ID()))

	// Left-edge anchor disk: slot beats the node body
	hit = tester.HitTest(pos(t, 0, 40))
	assert.Equal(t, TargetSlot, hit.Kind)
	assert.Equal(t, "prev", hit.Endpoint.SlotName())

	// Just inside the slot radius
	hit = tester.HitTest(pos(t, 8, 45))
	assert.Equal(t, TargetSlot, hit.Kind)

	// Body interior, clear of anchors and handle
	hit = tester.HitTest(pos(t, 80, 20))
	assert.Equal(t, TargetNode, hit.Kind)
	assert.True(t, hit.NodeID.Equals(node.ID()))

	// Empty canvas
	hit = tester.HitTest(pos(t, 500, 500))
	assert.Equal(t, TargetNothing, hit.Kind)
	assert.True(t, hit.IsNothing())
}

func TestHitTest_EdgeDistance(t *testing.T) {
	g := buildGraph(t)
	a, _ := g.AddNode("task", pos(t, 0, 0))
	b, _ := g.AddNode("task", pos(t, 400, 0))

	src, err := valueobjects.NewEndpoint(a.ID(), "next")
	require.NoError(t, err)
	dst, err := valueobjects.NewEndpoint(b.ID(), "prev")
	require.NoError(t, err)
	edge, err := g.AddEdge(src, dst)
	require.NoError(t, err)

	tester := NewTester(g)

	// The anchors share y=40, so the curve degenerates to a horizontal line
	hit := tester.HitTest(pos(t, 280, 42))
	assert.Equal(t, TargetEdge, hit.Kind)
	assert.True(t, hit.EdgeID.Equals(edge.ID()))

	// Beyond the distance threshold
	hit = tester.HitTest(pos(t, 280, 50))
	assert.Equal(t, TargetNothing, hit.Kind)
}

func TestHitTest_LastAddedWins(t *testing.T) {
	g := buildGraph(t)
	_, err := g.AddNode("task", pos(t, 0, 0))
	require.NoError(t, err)
	top, err := g.AddNode("task", pos(t, 40, 20))
	require.NoError(t, err)

	tester := NewTester(g)

	// Interior of the overlap region belongs to the most recent node
	hit := tester.HitTest(pos(t, 100, 40))
	assert.Equal(t, TargetNode, hit.Kind)
	assert.True(t, hit.NodeID.Equals(top.ID()))
}

func TestHitTest_Deterministic(t *testing.T) {
	g := buildGraph(t)
	a, _ := g.AddNode("task", pos(t, 0, 0))
	b, _ := g.AddNode("task", pos(t, 400, 0))
	src, _ := valueobjects.NewEndpoint(a.ID(), "next")
	dst, _ := valueobjects.NewEndpoint(b.ID(), "prev")
	_, err := g.AddEdge(src, dst)
	require.NoError(t, err)

	tester := NewTester(g)
	probes := []valueobjects.Position{
		pos(t, 160, 80),
		pos(t, 0, 40),
		pos(t, 80, 20),
		pos(t, 280, 42),
		pos(t, 999, 999),
	}

	for _, probe := range probes {
		first := tester.HitTest(probe)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, tester.HitTest(probe))
		}
	}
}
