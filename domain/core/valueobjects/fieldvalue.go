package valueobjects

import (
	"strconv"

	pkgerrors "graphcanvas/pkg/errors"
)

// FieldType is the closed set of value types a field template may declare
type FieldType string

const (
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
)

// IsValid reports whether the type tag is one of the known variants
func (t FieldType) IsValid() bool {
	switch t {
	case FieldTypeBoolean, FieldTypeString, FieldTypeInteger:
		return true
	}
	return false
}

// FieldValue is a tagged-variant value object. Exactly one of the payloads
// is meaningful, selected by the type tag; values are validated per variant
// at construction so an ill-typed value is unrepresentable.
type FieldValue struct {
	fieldType FieldType
	boolVal   bool
	strVal    string
	intVal    int64
}

// NewBooleanValue creates a boolean field value
func NewBooleanValue(v bool) FieldValue {
	return FieldValue{fieldType: FieldTypeBoolean, boolVal: v}
}

// NewStringValue creates a string field value
func NewStringValue(v string) FieldValue {
	return FieldValue{fieldType: FieldTypeString, strVal: v}
}

// NewIntegerValue creates an integer field value
func NewIntegerValue(v int64) FieldValue {
	return FieldValue{fieldType: FieldTypeInteger, intVal: v}
}

// ParseFieldValue parses a literal against the declared field type.
// Used both for template defaults at registry load and for per-instance
// assignments.
func ParseFieldValue(fieldType FieldType, literal string) (FieldValue, error) {
	switch fieldType {
	case FieldTypeBoolean:
		v, err := strconv.ParseBool(literal)
		if err != nil {
			return FieldValue{}, pkgerrors.ErrInvalidFieldValue.
				WithDetail("expected", string(fieldType)).
				WithDetail("literal", literal).
				WithCause(err)
		}
		return NewBooleanValue(v), nil
	case FieldTypeString:
		return NewStringValue(literal), nil
	case FieldTypeInteger:
		v, err := strconv.ParseInt(literal, 10, 64)
		if err != nil {
			return FieldValue{}, pkgerrors.ErrInvalidFieldValue.
				WithDetail("expected", string(fieldType)).
				WithDetail("literal", literal).
				WithCause(err)
		}
		return NewIntegerValue(v), nil
	default:
		return FieldValue{}, pkgerrors.ErrInvalidFieldValue.
			WithDetail("expected", string(fieldType)).
			WithDetail("literal", literal)
	}
}

// Type returns the value's type tag
func (v FieldValue) Type() FieldType {
	return v.fieldType
}

// Bool returns the boolean payload; meaningful only for boolean values
func (v FieldValue) Bool() bool {
	return v.boolVal
}

// Str returns the string payload; meaningful only for string values
func (v FieldValue) Str() string {
	return v.strVal
}

// Int returns the integer payload; meaningful only for integer values
func (v FieldValue) Int() int64 {
	return v.intVal
}

// String returns the canonical literal form of the value
func (v FieldValue) String() string {
	switch v.fieldType {
	case FieldTypeBoolean:
		return strconv.FormatBool(v.boolVal)
	case FieldTypeInteger:
		return strconv.FormatInt(v.intVal, 10)
	default:
		return v.strVal
	}
}

// Equals checks if two field values are equal
func (v FieldValue) Equals(other FieldValue) bool {
	return v.fieldType == other.fieldType &&
		v.boolVal == other.boolVal &&
		v.strVal == other.strVal &&
		v.intVal == other.intVal
}
