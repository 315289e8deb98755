package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphcanvas/domain/core/valueobjects"
	"graphcanvas/domain/schema"
)

func buildRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	reg, err := schema.Load(
		[]schema.NodeTemplate{
			{Name: "task", DefaultWidth: 160, DefaultHeight: 80, CanCreate: true},
			{Name: "note", DefaultWidth: 120, DefaultHeight: 60, CanCreate: true},
			{Name: "anchor", DefaultWidth: 40, DefaultHeight: 40, CanCreate: false},
		},
		[]schema.TemplateGroup{
			{ID: "writing", Name: "Writing", Templates: []string{"note", "anchor"}},
		},
	)
	require.NoError(t, err)
	return reg
}

func surface(t *testing.T, w, h float64) valueobjects.Rect {
	t.Helper()
	origin, err := valueobjects.NewPosition(0, 0)
	require.NoError(t, err)
	size, err := valueobjects.NewSize(w, h)
	require.NoError(t, err)
	return valueobjects.NewRect(origin, size)
}

func at(t *testing.T, x, y float64) valueobjects.Position {
	t.Helper()
	p, err := valueobjects.NewPosition(x, y)
	require.NoError(t, err)
	return p
}

func TestOpen_AllCreatableTemplates(t *testing.T) {
	ctrl := NewController(buildRegistry(t))

	state, err := ctrl.Open(at(t, 100, 100), "", surface(t, 1920, 1080))
	require.NoError(t, err)
	require.Len(t, state.Entries, 2, "non-creatable templates stay out of the menu")
	assert.Equal(t, "task", state.Entries[0].Template)
	assert.Equal(t, "note", state.Entries[1].Template)
}

func TestOpen_GroupFilter(t *testing.T) {
	ctrl := NewController(buildRegistry(t))

	state, err := ctrl.Open(at(t, 100, 100), "writing", surface(t, 1920, 1080))
	require.NoError(t, err)
	require.Len(t, state.Entries, 1)
	assert.Equal(t, "note", state.Entries[0].Template)
	assert.Equal(t, "writing", state.GroupID)

	_, err = ctrl.Open(at(t, 0, 0), "missing", surface(t, 1920, 1080))
	assert.Error(t, err)
}

func TestOpen_ClampsInsideSurface(t *testing.T) {
	ctrl := NewController(buildRegistry(t))
	bounds := surface(t, 800, 600)

	// Near the bottom-right corner the panel shifts back inside; the
	// clamped point is also where a selected template spawns
	state, err := ctrl.Open(at(t, 790, 590), "", bounds)
	require.NoError(t, err)
	assert.InDelta(t, 800-DefaultWidth, state.Position.X(), 1e-9)
	assert.InDelta(t, 600-DefaultHeight, state.Position.Y(), 1e-9)

	// Well inside the surface nothing moves
	state, err = ctrl.Open(at(t, 100, 100), "", bounds)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, state.Position.X(), 1e-9)
	assert.InDelta(t, 100.0, state.Position.Y(), 1e-9)
}

func TestSelect(t *testing.T) {
	ctrl := NewController(buildRegistry(t))
	state, err := ctrl.Open(at(t, 0, 0), "", surface(t, 1920, 1080))
	require.NoError(t, err)

	name, ok := state.Select(1)
	assert.True(t, ok)
	assert.Equal(t, "note", name)

	_, ok = state.Select(5)
	assert.False(t, ok)
	_, ok = state.Select(-1)
	assert.False(t, ok)
}
