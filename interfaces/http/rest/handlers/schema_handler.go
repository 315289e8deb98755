package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"graphcanvas/application/editor"
	"graphcanvas/domain/schema"
	"graphcanvas/pkg/common"
)

// SchemaHandler serves the loaded template registry
type SchemaHandler struct {
	host   *editor.Host
	logger *zap.Logger
}

// NewSchemaHandler creates a new schema handler
func NewSchemaHandler(host *editor.Host, logger *zap.Logger) *SchemaHandler {
	return &SchemaHandler{host: host, logger: logger}
}

// SlotView is the wire form of a slot template
type SlotView struct {
	Name           string   `json:"name"`
	Anchor         string   `json:"anchor"`
	Direction      string   `json:"direction"`
	Allows         []string `json:"allows"`
	MinConnections int      `json:"min_connections"`
	MaxConnections *int     `json:"max_connections,omitempty"` // nil means unbounded
}

// FieldView is the wire form of a field template
type FieldView struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Default string `json:"default"`
}

// TemplateView is the wire form of a node template
type TemplateView struct {
	Name      string      `json:"name"`
	Width     float64     `json:"width"`
	Height    float64     `json:"height"`
	CanCreate bool        `json:"can_create"`
	Resizable bool        `json:"resizable"`
	Slots     []SlotView  `json:"slots"`
	Fields    []FieldView `json:"fields"`
}

// GroupView is the wire form of a template group
type GroupView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Templates   []string `json:"templates"`
}

// ListTemplates handles GET /schema/templates
func (h *SchemaHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	var views []TemplateView
	_ = h.host.WithEditor(func(ed *editor.Editor) error {
		for _, tmpl := range ed.Registry().Templates() {
			views = append(views, templateView(tmpl))
		}
		return nil
	})
	common.RespondJSON(w, http.StatusOK, views)
}

// ListGroups handles GET /schema/groups
func (h *SchemaHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	var views []GroupView
	_ = h.host.WithEditor(func(ed *editor.Editor) error {
		for _, grp := range ed.Registry().Groups() {
			views = append(views, GroupView{
				ID:          grp.ID,
				Name:        grp.Name,
				Description: grp.Description,
				Templates:   grp.Templates,
			})
		}
		return nil
	})
	common.RespondJSON(w, http.StatusOK, views)
}

// templateView converts a template to its wire form
func templateView(tmpl *schema.NodeTemplate) TemplateView {
	view := TemplateView{
		Name:      tmpl.Name,
		Width:     tmpl.DefaultWidth,
		Height:    tmpl.DefaultHeight,
		CanCreate: tmpl.CanCreate,
		Resizable: tmpl.Resizable,
		Slots:     []SlotView{},
		Fields:    []FieldView{},
	}
	for _, slot := range tmpl.Slots {
		sv := SlotView{
			Name:           slot.Name,
			Anchor:         string(slot.Anchor),
			Direction:      string(slot.Direction),
			Allows:         slot.AllowedConnections,
			MinConnections: slot.MinConnections,
		}
		if !slot.IsUnbounded() {
			max := slot.MaxConnections
			sv.MaxConnections = &max
		}
		view.Slots = append(view.Slots, sv)
	}
	for _, field := range tmpl.Fields {
		view.Fields = append(view.Fields, FieldView{
			Name:    field.Name,
			Type:    string(field.Type),
			Default: field.DefaultValue,
		})
	}
	return view
}
