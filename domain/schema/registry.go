package schema

import (
	"fmt"

	"graphcanvas/domain/core/valueobjects"
	pkgerrors "graphcanvas/pkg/errors"
)

// Registry holds the immutable set of node templates and template groups
// the editor runs against. It is built once at startup; a registry that
// fails its integrity checks is never constructed, so every lookup after
// Load can trust that referenced names resolve.
type Registry struct {
	templates     map[string]*NodeTemplate
	templateOrder []string
	groups        map[string]*TemplateGroup
	groupOrder    []string
}

// Load validates the template and group definitions and builds a registry.
// Any referential integrity failure is fatal: the caller gets a schema
// error and no registry.
func Load(templates []NodeTemplate, groups []TemplateGroup) (*Registry, error) {
	r := &Registry{
		templates: make(map[string]*NodeTemplate, len(templates)),
		groups:    make(map[string]*TemplateGroup, len(groups)),
	}

	for i := range templates {
		tmpl := templates[i]
		if tmpl.Name == "" {
			return nil, pkgerrors.ErrSchemaIntegrity.
				WithDetail("reason", "template with empty name")
		}
		if _, exists := r.templates[tmpl.Name]; exists {
			return nil, pkgerrors.ErrSchemaIntegrity.
				WithDetail("reason", "duplicate template name").
				WithDetail("template", tmpl.Name)
		}
		if err := validateTemplate(&tmpl); err != nil {
			return nil, err
		}
		r.templates[tmpl.Name] = &tmpl
		r.templateOrder = append(r.templateOrder, tmpl.Name)
	}

	// allowed_connections may only name templates that exist
	for _, name := range r.templateOrder {
		tmpl := r.templates[name]
		for _, slot := range tmpl.Slots {
			for _, allowed := range slot.AllowedConnections {
				if _, ok := r.templates[allowed]; !ok {
					return nil, pkgerrors.ErrUnknownTemplate.
						WithDetail("template", tmpl.Name).
						WithDetail("slot", slot.Name).
						WithDetail("references", allowed)
				}
			}
		}
	}

	for i := range groups {
		grp := groups[i]
		if grp.ID == "" {
			return nil, pkgerrors.ErrSchemaIntegrity.
				WithDetail("reason", "group with empty id")
		}
		if _, exists := r.groups[grp.ID]; exists {
			return nil, pkgerrors.ErrSchemaIntegrity.
				WithDetail("reason", "duplicate group id").
				WithDetail("group", grp.ID)
		}
		for _, member := range grp.Templates {
			if _, ok := r.templates[member]; !ok {
				return nil, pkgerrors.ErrUnknownTemplate.
					WithDetail("group", grp.ID).
					WithDetail("references", member)
			}
		}
		r.groups[grp.ID] = &grp
		r.groupOrder = append(r.groupOrder, grp.ID)
	}

	return r, nil
}

// validateTemplate checks a single template's internal consistency
func validateTemplate(tmpl *NodeTemplate) error {
	if tmpl.DefaultWidth <= 0 || tmpl.DefaultHeight <= 0 {
		return pkgerrors.ErrSchemaIntegrity.
			WithDetail("reason", "non-positive default size").
			WithDetail("template", tmpl.Name)
	}

	slotNames := make(map[string]bool, len(tmpl.Slots))
	for _, slot := range tmpl.Slots {
		if slot.Name == "" {
			return pkgerrors.ErrSchemaIntegrity.
				WithDetail("reason", "slot with empty name").
				WithDetail("template", tmpl.Name)
		}
		if slotNames[slot.Name] {
			return pkgerrors.ErrSchemaIntegrity.
				WithDetail("reason", "duplicate slot name").
				WithDetail("template", tmpl.Name).
				WithDetail("slot", slot.Name)
		}
		slotNames[slot.Name] = true

		if !slot.Direction.IsValid() {
			return pkgerrors.ErrSchemaIntegrity.
				WithDetail("reason", fmt.Sprintf("invalid slot direction %q", slot.Direction)).
				WithDetail("template", tmpl.Name).
				WithDetail("slot", slot.Name)
		}
		if !slot.Anchor.IsValid() {
			return pkgerrors.ErrSchemaIntegrity.
				WithDetail("reason", fmt.Sprintf("invalid slot anchor %q", slot.Anchor)).
				WithDetail("template", tmpl.Name).
				WithDetail("slot", slot.Name)
		}
		if slot.MinConnections < 0 {
			return pkgerrors.ErrSchemaIntegrity.
				WithDetail("reason", "negative min_connections").
				WithDetail("template", tmpl.Name).
				WithDetail("slot", slot.Name)
		}
		if !slot.IsUnbounded() {
			if slot.MaxConnections < 1 {
				return pkgerrors.ErrSchemaIntegrity.
					WithDetail("reason", "max_connections must be positive or unbounded").
					WithDetail("template", tmpl.Name).
					WithDetail("slot", slot.Name)
			}
			if slot.MinConnections > slot.MaxConnections {
				return pkgerrors.ErrSchemaIntegrity.
					WithDetail("reason", "min_connections exceeds max_connections").
					WithDetail("template", tmpl.Name).
					WithDetail("slot", slot.Name)
			}
		}
	}

	fieldNames := make(map[string]bool, len(tmpl.Fields))
	for _, field := range tmpl.Fields {
		if field.Name == "" {
			return pkgerrors.ErrSchemaIntegrity.
				WithDetail("reason", "field with empty name").
				WithDetail("template", tmpl.Name)
		}
		if fieldNames[field.Name] {
			return pkgerrors.ErrSchemaIntegrity.
				WithDetail("reason", "duplicate field name").
				WithDetail("template", tmpl.Name).
				WithDetail("field", field.Name)
		}
		fieldNames[field.Name] = true

		if !field.Type.IsValid() {
			return pkgerrors.ErrSchemaIntegrity.
				WithDetail("reason", fmt.Sprintf("invalid field type %q", field.Type)).
				WithDetail("template", tmpl.Name).
				WithDetail("field", field.Name)
		}
		if _, err := valueobjects.ParseFieldValue(field.Type, field.DefaultValue); err != nil {
			return pkgerrors.ErrSchemaIntegrity.
				WithDetail("reason", "default value does not parse as declared type").
				WithDetail("template", tmpl.Name).
				WithDetail("field", field.Name).
				WithCause(err)
		}
	}

	return nil
}

// Template looks up a node template by name
func (r *Registry) Template(name string) (*NodeTemplate, bool) {
	tmpl, ok := r.templates[name]
	return tmpl, ok
}

// Templates returns all templates in declaration order
func (r *Registry) Templates() []*NodeTemplate {
	out := make([]*NodeTemplate, 0, len(r.templateOrder))
	for _, name := range r.templateOrder {
		out = append(out, r.templates[name])
	}
	return out
}

// Group looks up a template group by id
func (r *Registry) Group(id string) (*TemplateGroup, bool) {
	grp, ok := r.groups[id]
	return grp, ok
}

// Groups returns all groups in declaration order
func (r *Registry) Groups() []*TemplateGroup {
	out := make([]*TemplateGroup, 0, len(r.groupOrder))
	for _, id := range r.groupOrder {
		out = append(out, r.groups[id])
	}
	return out
}

// TemplatesInGroup returns the group's creatable templates in the group's
// declared order. Templates whose can_create flag is off are filtered out
// rather than surfaced as dead menu entries.
func (r *Registry) TemplatesInGroup(groupID string) ([]*NodeTemplate, error) {
	grp, ok := r.groups[groupID]
	if !ok {
		return nil, pkgerrors.ErrUnknownTemplate.
			WithDetail("group", groupID)
	}
	var out []*NodeTemplate
	for _, name := range grp.Templates {
		tmpl := r.templates[name]
		if tmpl.CanCreate {
			out = append(out, tmpl)
		}
	}
	return out, nil
}

// CreatableTemplates returns every template offered for creation, in
// declaration order
func (r *Registry) CreatableTemplates() []*NodeTemplate {
	var out []*NodeTemplate
	for _, name := range r.templateOrder {
		if r.templates[name].CanCreate {
			out = append(out, r.templates[name])
		}
	}
	return out
}
