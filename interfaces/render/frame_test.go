package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphcanvas/application/editor"
	"graphcanvas/application/interaction"
	"graphcanvas/domain/core/valueobjects"
	"graphcanvas/domain/schema"
)

func newEditor(t *testing.T) *editor.Editor {
	t.Helper()
	reg, err := schema.Load([]schema.NodeTemplate{
		{
			Name: "stage",
			Slots: []schema.SlotTemplate{
				{
					Name:               "out",
					Anchor:             schema.AnchorRight,
					Direction:          schema.DirectionOutgoing,
					AllowedConnections: []string{"stage"},
					MaxConnections:     schema.UnboundedConnections,
				},
				{
					Name:               "in",
					Anchor:             schema.AnchorLeft,
					Direction:          schema.DirectionIncoming,
					AllowedConnections: []string{"stage"},
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

	ed, err := editor.New(reg, nil, interaction.DefaultConfig())
	require.NoError(t, err)
	return ed
}

func TestBuild_StaticScene(t *testing.T) {
	ed := newEditor(t)
	a, err := ed.AddNode("stage", 0, 0)
	require.NoError(t, err)
	b, err := ed.AddNode("stage", 400, 0)
	require.NoError(t, err)
	_, err = ed.AddEdge(a, "out", b, "in")
	require.NoError(t, err)

	frame := NewBuilder().Build(ed.Graph(), ed.Machine())

	assert.Equal(t, "idle", frame.Mode)
	assert.InDelta(t, 1.0, frame.Transform.Scale, 1e-9)
	require.Len(t, frame.Nodes, 2)
	require.Len(t, frame.Slots, 4)
	require.Len(t, frame.Handles, 2)
	require.Len(t, frame.Edges, 1)

	// Z-order follows insertion order
	assert.Equal(t, a, frame.Nodes[0].ID)
	assert.Equal(t, b, frame.Nodes[1].ID)

	// Edge anchors sit on the node box edges
	edge := frame.Edges[0]
	assert.InDelta(t, 160.0, edge.X0, 1e-9)
	assert.InDelta(t, 40.0, edge.Y0, 1e-9)
	assert.InDelta(t, 400.0, edge.X1, 1e-9)
	assert.InDelta(t, 40.0, edge.Y1, 1e-9)

	// Control points push outward along the anchor normals
	assert.InDelta(t, 235.0, edge.C1X, 1e-9)
	assert.InDelta(t, 325.0, edge.C2X, 1e-9)
}

func TestBuild_DragPreview(t *testing.T) {
	ed := newEditor(t)
	a, err := ed.AddNode("stage", 100, 100)
	require.NoError(t, err)

	down, _ := valueobjects.NewPosition(150, 120)
	move, _ := valueobjects.NewPosition(350, 320)
	require.NoError(t, ed.HandleInput(interaction.PointerDown(down, interaction.ButtonLeft)))
	require.NoError(t, ed.HandleInput(interaction.PointerMove(move)))

	frame := NewBuilder().Build(ed.Graph(), ed.Machine())
	require.Len(t, frame.Nodes, 1)
	assert.Equal(t, a, frame.Nodes[0].ID)
	assert.True(t, frame.Nodes[0].Dragging)
	assert.InDelta(t, 300.0, frame.Nodes[0].X, 1e-9, "preview shows the snapped drag position")
	assert.InDelta(t, 300.0, frame.Nodes[0].Y, 1e-9)
}

func TestBuild_PendingConnectionAndMenu(t *testing.T) {
	ed := newEditor(t)
	_, err := ed.AddNode("stage", 0, 0)
	require.NoError(t, err)

	down, _ := valueobjects.NewPosition(160, 40)
	move, _ := valueobjects.NewPosition(300, 200)
	require.NoError(t, ed.HandleInput(interaction.PointerDown(down, interaction.ButtonLeft)))
	require.NoError(t, ed.HandleInput(interaction.PointerMove(move)))

	frame := NewBuilder().Build(ed.Graph(), ed.Machine())
	require.NotNil(t, frame.Pending)
	assert.Equal(t, "out", frame.Pending.FromSlot)
	assert.InDelta(t, 160.0, frame.Pending.X0, 1e-9)
	assert.InDelta(t, 300.0, frame.Pending.X1, 1e-9)

	// Abandon the gesture, then open the menu
	require.NoError(t, ed.HandleInput(interaction.KeyEscape()))
	menuAt, _ := valueobjects.NewPosition(200, 200)
	require.NoError(t, ed.HandleInput(interaction.ContextMenuRequest(menuAt, "")))

	frame = NewBuilder().Build(ed.Graph(), ed.Machine())
	require.NotNil(t, frame.Menu)
	assert.Equal(t, []string{"stage"}, frame.Menu.Entries)
	assert.Nil(t, frame.Pending)
}
