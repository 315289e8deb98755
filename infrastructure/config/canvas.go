package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"graphcanvas/application/interaction"
	"graphcanvas/domain/core/valueobjects"
	"graphcanvas/domain/schema"
)

// CanvasConfig is the YAML-defined editor setup: the node templates and
// groups the schema registry is built from, plus interaction tuning.
type CanvasConfig struct {
	Canvas       CanvasSettings      `yaml:"canvas"`
	Templates    []TemplateConfig    `yaml:"templates" validate:"required,min=1,dive"`
	Groups       []GroupConfig       `yaml:"groups" validate:"dive"`
	InitialNodes []InitialNodeConfig `yaml:"initial_nodes" validate:"dive"`
}

// CanvasSettings tunes the interaction machine
type CanvasSettings struct {
	SnapToGrid    bool          `yaml:"snap_to_grid"`
	GridSize      float64       `yaml:"grid_size" validate:"gte=0"`
	MinNodeWidth  float64       `yaml:"min_node_width" validate:"gte=0"`
	MinNodeHeight float64       `yaml:"min_node_height" validate:"gte=0"`
	Surface       SurfaceConfig `yaml:"surface"`
	Menu          MenuConfig    `yaml:"menu"`
}

// MenuConfig is the context menu panel size
type MenuConfig struct {
	Width  float64 `yaml:"width" validate:"gte=0"`
	Height float64 `yaml:"height" validate:"gte=0"`
}

// SurfaceConfig is the initial surface size
type SurfaceConfig struct {
	Width  float64 `yaml:"width" validate:"gte=0"`
	Height float64 `yaml:"height" validate:"gte=0"`
}

// TemplateConfig is one node template definition
type TemplateConfig struct {
	Name      string        `yaml:"name" validate:"required"`
	Width     float64       `yaml:"width" validate:"required,gt=0"`
	Height    float64       `yaml:"height" validate:"required,gt=0"`
	CanCreate bool          `yaml:"can_create"`
	Resizable bool          `yaml:"resizable"`
	Slots     []SlotConfig  `yaml:"slots" validate:"dive"`
	Fields    []FieldConfig `yaml:"fields" validate:"dive"`
}

// SlotConfig is one slot definition. A nil max_connections means the
// slot is unbounded.
type SlotConfig struct {
	Name           string   `yaml:"name" validate:"required"`
	Anchor         string   `yaml:"anchor" validate:"required,oneof=left right top bottom"`
	Direction      string   `yaml:"direction" validate:"required,oneof=outgoing incoming"`
	Allows         []string `yaml:"allows" validate:"required,min=1"`
	MinConnections int      `yaml:"min_connections" validate:"gte=0"`
	MaxConnections *int     `yaml:"max_connections"`
}

// FieldConfig is one typed field definition
type FieldConfig struct {
	Name    string `yaml:"name" validate:"required"`
	Type    string `yaml:"type" validate:"required,oneof=boolean string integer"`
	Default string `yaml:"default"`
}

// InitialNodeConfig seeds one node into a freshly built editor. The nil
// permission flags keep the instance defaults (deletable, movable).
type InitialNodeConfig struct {
	Template  string            `yaml:"template" validate:"required"`
	X         float64           `yaml:"x"`
	Y         float64           `yaml:"y"`
	Fields    map[string]string `yaml:"fields"`
	CanDelete *bool             `yaml:"can_delete"`
	CanMove   *bool             `yaml:"can_move"`
}

// GroupConfig is one context menu template group
type GroupConfig struct {
	ID          string   `yaml:"id" validate:"required"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Templates   []string `yaml:"templates" validate:"required,min=1"`
}

// LoadCanvas reads and validates a canvas YAML file
func LoadCanvas(path string) (*CanvasConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read canvas file: %w", err)
	}
	return ParseCanvas(data)
}

// ParseCanvas parses and validates canvas YAML bytes
func ParseCanvas(data []byte) (*CanvasConfig, error) {
	var cfg CanvasConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse canvas YAML: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("canvas config validation failed: %w", err)
	}

	return &cfg, nil
}

// BuildRegistry converts the canvas definition into a loaded schema
// registry. Referential integrity failures surface as fatal schema errors.
func (c *CanvasConfig) BuildRegistry() (*schema.Registry, error) {
	templates := make([]schema.NodeTemplate, 0, len(c.Templates))
	for _, tc := range c.Templates {
		slots := make([]schema.SlotTemplate, 0, len(tc.Slots))
		for _, sc := range tc.Slots {
			max := schema.UnboundedConnections
			if sc.MaxConnections != nil {
				max = *sc.MaxConnections
			}
			slots = append(slots, schema.SlotTemplate{
				Name:               sc.Name,
				Anchor:             schema.SlotAnchor(sc.Anchor),
				Direction:          schema.SlotDirection(sc.Direction),
				AllowedConnections: sc.Allows,
				MinConnections:     sc.MinConnections,
				MaxConnections:     max,
			})
		}

		fields := make([]schema.FieldTemplate, 0, len(tc.Fields))
		for _, fc := range tc.Fields {
			fields = append(fields, schema.FieldTemplate{
				Name:         fc.Name,
				Type:         valueobjects.FieldType(fc.Type),
				DefaultValue: fc.Default,
			})
		}

		templates = append(templates, schema.NodeTemplate{
			Name:          tc.Name,
			Slots:         slots,
			Fields:        fields,
			DefaultWidth:  tc.Width,
			DefaultHeight: tc.Height,
			CanCreate:     tc.CanCreate,
			Resizable:     tc.Resizable,
		})
	}

	groups := make([]schema.TemplateGroup, 0, len(c.Groups))
	for _, gc := range c.Groups {
		groups = append(groups, schema.TemplateGroup{
			ID:          gc.ID,
			Name:        gc.Name,
			Description: gc.Description,
			Templates:   gc.Templates,
		})
	}

	return schema.Load(templates, groups)
}

// InteractionConfig converts the canvas tuning into machine settings,
// falling back to defaults for anything unset
func (c *CanvasConfig) InteractionConfig() interaction.Config {
	cfg := interaction.DefaultConfig()
	cfg.SnapToGrid = c.Canvas.SnapToGrid
	if c.Canvas.GridSize > 0 {
		cfg.GridSize = c.Canvas.GridSize
	}
	if c.Canvas.MinNodeWidth > 0 {
		cfg.MinNodeWidth = c.Canvas.MinNodeWidth
	}
	if c.Canvas.MinNodeHeight > 0 {
		cfg.MinNodeHeight = c.Canvas.MinNodeHeight
	}
	if c.Canvas.Surface.Width > 0 {
		cfg.SurfaceWidth = c.Canvas.Surface.Width
	}
	if c.Canvas.Surface.Height > 0 {
		cfg.SurfaceHeight = c.Canvas.Surface.Height
	}
	if c.Canvas.Menu.Width > 0 {
		cfg.MenuWidth = c.Canvas.Menu.Width
	}
	if c.Canvas.Menu.Height > 0 {
		cfg.MenuHeight = c.Canvas.Menu.Height
	}
	return cfg
}
