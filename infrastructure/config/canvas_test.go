package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCanvas = `
canvas:
  snap_to_grid: true
  grid_size: 20
  min_node_width: 40
  min_node_height: 30
  surface:
    width: 1280
    height: 720
  menu:
    width: 320
    height: 90
templates:
  - name: task
    width: 160
    height: 80
    can_create: true
    resizable: true
    slots:
      - name: next
        anchor: right
        direction: outgoing
        allows: [task]
      - name: prev
        anchor: left
        direction: incoming
        allows: [task]
        min_connections: 1
        max_connections: 1
    fields:
      - name: done
        type: boolean
        default: "false"
  - name: note
    width: 120
    height: 60
    can_create: true
groups:
  - id: basics
    name: Basics
    templates: [task, note]
initial_nodes:
  - template: task
    x: 100
    y: 120
    fields:
      done: "true"
  - template: note
    x: 300
    y: 120
    can_delete: false
    can_move: false
`

func TestParseCanvas(t *testing.T) {
	cfg, err := ParseCanvas([]byte(sampleCanvas))
	require.NoError(t, err)

	assert.True(t, cfg.Canvas.SnapToGrid)
	assert.InDelta(t, 20.0, cfg.Canvas.GridSize, 1e-9)
	require.Len(t, cfg.Templates, 2)
	require.Len(t, cfg.Templates[0].Slots, 2)

	// Omitted max_connections means unbounded
	assert.Nil(t, cfg.Templates[0].Slots[0].MaxConnections)
	require.NotNil(t, cfg.Templates[0].Slots[1].MaxConnections)
	assert.Equal(t, 1, *cfg.Templates[0].Slots[1].MaxConnections)

	require.Len(t, cfg.InitialNodes, 2)
	assert.Equal(t, "task", cfg.InitialNodes[0].Template)
	assert.Equal(t, "true", cfg.InitialNodes[0].Fields["done"])

	// Omitted permission flags stay nil, set ones carry their value
	assert.Nil(t, cfg.InitialNodes[0].CanDelete)
	assert.Nil(t, cfg.InitialNodes[0].CanMove)
	require.NotNil(t, cfg.InitialNodes[1].CanDelete)
	assert.False(t, *cfg.InitialNodes[1].CanDelete)
	require.NotNil(t, cfg.InitialNodes[1].CanMove)
	assert.False(t, *cfg.InitialNodes[1].CanMove)
}

func TestParseCanvas_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "no templates",
			yaml: "canvas:\n  grid_size: 20\n",
		},
		{
			name: "bad anchor",
			yaml: `
templates:
  - name: task
    width: 100
    height: 50
    slots:
      - name: out
        anchor: center
        direction: outgoing
        allows: [task]
`,
		},
		{
			name: "bad field type",
			yaml: `
templates:
  - name: task
    width: 100
    height: 50
    fields:
      - name: weight
        type: float
`,
		},
		{
			name: "not yaml",
			yaml: "{{{",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCanvas([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestBuildRegistry(t *testing.T) {
	cfg, err := ParseCanvas([]byte(sampleCanvas))
	require.NoError(t, err)

	reg, err := cfg.BuildRegistry()
	require.NoError(t, err)

	tmpl, ok := reg.Template("task")
	require.True(t, ok)
	slot, ok := tmpl.Slot("next")
	require.True(t, ok)
	assert.True(t, slot.IsUnbounded())

	grp, ok := reg.Group("basics")
	require.True(t, ok)
	assert.Len(t, grp.Templates, 2)
}

func TestBuildRegistry_IntegrityFailure(t *testing.T) {
	broken := `
templates:
  - name: task
    width: 100
    height: 50
    slots:
      - name: out
        anchor: right
        direction: outgoing
        allows: [ghost]
`
	cfg, err := ParseCanvas([]byte(broken))
	require.NoError(t, err, "structurally valid YAML parses")

	_, err = cfg.BuildRegistry()
	assert.Error(t, err, "referential integrity fails at registry load")
}

func TestInteractionConfig(t *testing.T) {
	cfg, err := ParseCanvas([]byte(sampleCanvas))
	require.NoError(t, err)

	ic := cfg.InteractionConfig()
	assert.True(t, ic.SnapToGrid)
	assert.InDelta(t, 1280.0, ic.SurfaceWidth, 1e-9)
	assert.InDelta(t, 720.0, ic.SurfaceHeight, 1e-9)
	assert.InDelta(t, 320.0, ic.MenuWidth, 1e-9)
	assert.InDelta(t, 90.0, ic.MenuHeight, 1e-9)

	// Unset tuning falls back to defaults
	minimal, err := ParseCanvas([]byte("templates:\n  - name: n\n    width: 10\n    height: 10\n"))
	require.NoError(t, err)
	ic = minimal.InteractionConfig()
	assert.InDelta(t, 1920.0, ic.SurfaceWidth, 1e-9)
	assert.InDelta(t, 400.0, ic.MenuWidth, 1e-9)
}
