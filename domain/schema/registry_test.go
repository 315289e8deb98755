package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphcanvas/domain/core/valueobjects"
	pkgerrors "graphcanvas/pkg/errors"
)

func taskTemplate() NodeTemplate {
	return NodeTemplate{
		Name: "task",
		Slots: []SlotTemplate{
			{
				Name:               "out",
				Anchor:             AnchorRight,
				Direction:          DirectionOutgoing,
				AllowedConnections: []string{"task", "note"},
				MinConnections:     0,
				MaxConnections:     UnboundedConnections,
			},
			{
				Name:               "in",
				Anchor:             AnchorLeft,
				Direction:          DirectionIncoming,
				AllowedConnections: []string{"task"},
				MinConnections:     1,
				MaxConnections:     3,
			},
		},
		Fields: []FieldTemplate{
			{Name: "done", Type: valueobjects.FieldTypeBoolean, DefaultValue: "false"},
			{Name: "priority", Type: valueobjects.FieldTypeInteger, DefaultValue: "0"},
		},
		DefaultWidth:  160,
		DefaultHeight: 80,
		CanCreate:     true,
		Resizable:     true,
	}
}

func noteTemplate() NodeTemplate {
	return NodeTemplate{
		Name: "note",
		Slots: []SlotTemplate{
			{
				Name:               "in",
				Anchor:             AnchorLeft,
				Direction:          DirectionIncoming,
				AllowedConnections: []string{"task"},
				MinConnections:     0,
				MaxConnections:     1,
			},
		},
		Fields: []FieldTemplate{
			{Name: "text", Type: valueobjects.FieldTypeString, DefaultValue: ""},
		},
		DefaultWidth:  120,
		DefaultHeight: 60,
		CanCreate:     true,
		Resizable:     false,
	}
}

func TestLoad_Success(t *testing.T) {
	reg, err := Load(
		[]NodeTemplate{taskTemplate(), noteTemplate()},
		[]TemplateGroup{{ID: "basics", Name: "Basics", Templates: []string{"task", "note"}}},
	)
	require.NoError(t, err)
	require.NotNil(t, reg)

	tmpl, ok := reg.Template("task")
	require.True(t, ok)
	assert.Equal(t, "task", tmpl.Name)

	slot, ok := tmpl.Slot("in")
	require.True(t, ok)
	assert.Equal(t, DirectionIncoming, slot.Direction)
	assert.Equal(t, 3, slot.MaxConnections)
	assert.True(t, slot.Allows("task"))
	assert.False(t, slot.Allows("note"))

	grp, ok := reg.Group("basics")
	require.True(t, ok)
	assert.Len(t, grp.Templates, 2)
}

func TestLoad_UnknownAllowedConnection(t *testing.T) {
	broken := taskTemplate()
	broken.Slots[0].AllowedConnections = []string{"missing"}

	reg, err := Load([]NodeTemplate{broken}, nil)
	assert.Nil(t, reg)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, "UNKNOWN_TEMPLATE"))
	assert.True(t, pkgerrors.IsFatal(err))
}

func TestLoad_UnknownGroupMember(t *testing.T) {
	reg, err := Load(
		[]NodeTemplate{taskTemplate(), noteTemplate()},
		[]TemplateGroup{{ID: "basics", Templates: []string{"task", "missing"}}},
	)
	assert.Nil(t, reg)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, "UNKNOWN_TEMPLATE"))
}

func TestLoad_IntegrityFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*NodeTemplate)
	}{
		{
			name:   "duplicate slot name",
			mutate: func(tmpl *NodeTemplate) { tmpl.Slots[1].Name = tmpl.Slots[0].Name },
		},
		{
			name:   "invalid direction",
			mutate: func(tmpl *NodeTemplate) { tmpl.Slots[0].Direction = "sideways" },
		},
		{
			name:   "invalid anchor",
			mutate: func(tmpl *NodeTemplate) { tmpl.Slots[0].Anchor = "center" },
		},
		{
			name:   "min above max",
			mutate: func(tmpl *NodeTemplate) { tmpl.Slots[1].MinConnections = 5 },
		},
		{
			name:   "negative min",
			mutate: func(tmpl *NodeTemplate) { tmpl.Slots[0].MinConnections = -1 },
		},
		{
			name:   "invalid field type",
			mutate: func(tmpl *NodeTemplate) { tmpl.Fields[0].Type = "float" },
		},
		{
			name:   "default does not parse",
			mutate: func(tmpl *NodeTemplate) { tmpl.Fields[1].DefaultValue = "not-a-number" },
		},
		{
			name:   "non-positive default size",
			mutate: func(tmpl *NodeTemplate) { tmpl.DefaultWidth = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			broken := taskTemplate()
			tt.mutate(&broken)

			reg, err := Load([]NodeTemplate{broken, noteTemplate()}, nil)
			assert.Nil(t, reg)
			require.Error(t, err)
			assert.True(t, pkgerrors.IsFatal(err))
		})
	}
}

func TestLoad_DuplicateTemplateName(t *testing.T) {
	reg, err := Load([]NodeTemplate{taskTemplate(), taskTemplate()}, nil)
	assert.Nil(t, reg)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, "SCHEMA_INTEGRITY"))
}

func TestTemplatesInGroup_FiltersNonCreatable(t *testing.T) {
	hidden := noteTemplate()
	hidden.CanCreate = false

	reg, err := Load(
		[]NodeTemplate{taskTemplate(), hidden},
		[]TemplateGroup{{ID: "basics", Templates: []string{"task", "note"}}},
	)
	require.NoError(t, err)

	members, err := reg.TemplatesInGroup("basics")
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "task", members[0].Name)

	_, err = reg.TemplatesInGroup("missing")
	assert.Error(t, err)
}

func TestRegistry_DeclarationOrder(t *testing.T) {
	reg, err := Load([]NodeTemplate{noteTemplate(), taskTemplate()}, nil)
	require.NoError(t, err)

	all := reg.Templates()
	require.Len(t, all, 2)
	assert.Equal(t, "note", all[0].Name)
	assert.Equal(t, "task", all[1].Name)
}
