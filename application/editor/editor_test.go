package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphcanvas/application/interaction"
	"graphcanvas/domain/core/valueobjects"
	"graphcanvas/domain/events"
	"graphcanvas/domain/schema"
	pkgerrors "graphcanvas/pkg/errors"
)

func newEditor(t *testing.T) *Editor {
	t.Helper()
	reg, err := schema.Load([]schema.NodeTemplate{
		{
			Name: "step",
			Slots: []schema.SlotTemplate{
				{
					Name:               "out",
					Anchor:             schema.AnchorRight,
					Direction:          schema.DirectionOutgoing,
					AllowedConnections: []string{"step"},
					MaxConnections:     schema.UnboundedConnections,
				},
				{
					Name:               "in",
					Anchor:             schema.AnchorLeft,
					Direction:          schema.DirectionIncoming,
					AllowedConnections: []string{"step"},
					MinConnections:     1,
					MaxConnections:     1,
				},
			},
			Fields: []schema.FieldTemplate{
				{Name: "label", Type: valueobjects.FieldTypeString, DefaultValue: ""},
			},
			DefaultWidth:  160,
			DefaultHeight: 80,
			CanCreate:     true,
			Resizable:     true,
		},
	}, nil)
	require.NoError(t, err)

	ed, err := New(reg, nil, interaction.DefaultConfig())
	require.NoError(t, err)
	return ed
}

func TestEditor_ProgrammaticLifecycle(t *testing.T) {
	ed := newEditor(t)

	var seen []string
	ed.Subscribe(func(e events.DomainEvent) {
		seen = append(seen, e.GetEventType())
	})

	a, err := ed.AddNode("step", 0, 0)
	require.NoError(t, err)
	b, err := ed.AddNode("step", 400, 0)
	require.NoError(t, err)

	edgeID, err := ed.AddEdge(b, "in", a, "out")
	require.NoError(t, err)
	require.NotEmpty(t, edgeID)

	require.NoError(t, ed.MoveNode(a, 40, 60))
	require.NoError(t, ed.SetField(a, "label", "start"))
	require.NoError(t, ed.ResizeNode(a, 200, 100))
	require.NoError(t, ed.RemoveEdge(edgeID))
	require.NoError(t, ed.RemoveNode(b))

	assert.Equal(t, []string{
		"node.added",
		"node.added",
		"edge.added",
		"node.moved",
		"node.field_changed",
		"node.resized",
		"edge.removed",
		"node.removed",
	}, seen)

	snap := ed.Snapshot()
	require.Len(t, snap.Nodes, 1)
	assert.Equal(t, "start", snap.Nodes[0].Fields["label"])
	assert.Empty(t, snap.Edges)
}

func TestEditor_RejectionsSurface(t *testing.T) {
	ed := newEditor(t)

	_, err := ed.AddNode("missing", 0, 0)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsFatal(err))

	a, _ := ed.AddNode("step", 0, 0)
	_, err = ed.AddEdge(a, "out", a, "in")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, "SELF_REFERENTIAL_EDGE"))

	err = ed.RemoveNode("not-a-uuid")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))

	err = ed.RemoveEdge(valueobjects.NewEdgeID().String())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestEditor_InputGoesThroughMachine(t *testing.T) {
	ed := newEditor(t)
	_, err := ed.AddNode("step", 100, 100)
	require.NoError(t, err)

	pos, _ := valueobjects.NewPosition(150, 120)
	require.NoError(t, ed.HandleInput(interaction.PointerDown(pos, interaction.ButtonLeft)))
	assert.Equal(t, interaction.ModeDraggingNode, ed.Mode().Kind)

	require.NoError(t, ed.HandleInput(interaction.KeyEscape()))
	assert.True(t, ed.Mode().IsIdle())
}

func TestEditor_PermissionOverrides(t *testing.T) {
	ed := newEditor(t)
	a, _ := ed.AddNode("step", 0, 0)

	require.NoError(t, ed.SetDeletable(a, false))
	require.NoError(t, ed.SetMovable(a, false))

	err := ed.RemoveNode(a)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, "DELETION_FORBIDDEN"))

	err = ed.MoveNode(a, 100, 100)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, "MOVEMENT_FORBIDDEN"))

	// Restoring the flags restores the operations
	require.NoError(t, ed.SetDeletable(a, true))
	require.NoError(t, ed.SetMovable(a, true))
	require.NoError(t, ed.MoveNode(a, 100, 100))
	require.NoError(t, ed.RemoveNode(a))

	err = ed.SetDeletable(valueobjects.NewNodeID().String(), false)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestEditor_IncompleteSlots(t *testing.T) {
	ed := newEditor(t)
	a, _ := ed.AddNode("step", 0, 0)
	b, _ := ed.AddNode("step", 400, 0)

	require.Len(t, ed.IncompleteSlots(), 2)

	_, err := ed.AddEdge(a, "out", b, "in")
	require.NoError(t, err)

	incomplete := ed.IncompleteSlots()
	require.Len(t, incomplete, 1)
	assert.Equal(t, a, incomplete[0].NodeID.String())
}
