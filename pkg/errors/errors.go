package errors

import (
	"errors"
	"fmt"
)

// DomainErrorType represents the category of domain error
type DomainErrorType string

const (
	// DomainValidationError indicates input validation failure
	DomainValidationError DomainErrorType = "VALIDATION_ERROR"

	// DomainConstraintError indicates a rejected graph mutation; the store
	// is left unchanged and the caller receives the typed reason
	DomainConstraintError DomainErrorType = "CONSTRAINT_ERROR"

	// DomainNotFoundError indicates a referenced entity was not found
	DomainNotFoundError DomainErrorType = "NOT_FOUND"

	// DomainConflictError indicates a conflict with existing state
	DomainConflictError DomainErrorType = "CONFLICT"

	// DomainSchemaError indicates a fatal schema or configuration failure
	// raised once at construction; no editor is created
	DomainSchemaError DomainErrorType = "SCHEMA_ERROR"
)

// DomainError represents a domain-specific error with rich context
type DomainError struct {
	Type       DomainErrorType        `json:"type"`
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Cause      error                  `json:"-"`
	StatusCode int                    `json:"status_code"`
}

// NewDomainError creates a new domain error
func NewDomainError(errorType DomainErrorType, code string, message string) *DomainError {
	return &DomainError{
		Type:       errorType,
		Code:       code,
		Message:    message,
		Details:    make(map[string]interface{}),
		StatusCode: domainErrorTypeToStatusCode(errorType),
	}
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Type, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Type, e.Code, e.Message)
}

// WithCause adds a cause to the error
func (e *DomainError) WithCause(cause error) *DomainError {
	c := e.clone()
	c.Cause = cause
	return c
}

// WithDetail adds a detail to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	c := e.clone()
	c.Details[key] = value
	return c
}

// WithDetails adds multiple details to the error
func (e *DomainError) WithDetails(details map[string]interface{}) *DomainError {
	c := e.clone()
	for k, v := range details {
		c.Details[k] = v
	}
	return c
}

// clone copies the error so that the predefined sentinels stay immutable
// when call sites attach details
func (e *DomainError) clone() *DomainError {
	details := make(map[string]interface{}, len(e.Details))
	for k, v := range e.Details {
		details[k] = v
	}
	return &DomainError{
		Type:       e.Type,
		Code:       e.Code,
		Message:    e.Message,
		Details:    details,
		Cause:      e.Cause,
		StatusCode: e.StatusCode,
	}
}

// Is checks if the error is of a specific type and code
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Code == t.Code
}

// Unwrap returns the underlying cause
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// domainErrorTypeToStatusCode maps error types to HTTP status codes
func domainErrorTypeToStatusCode(errorType DomainErrorType) int {
	switch errorType {
	case DomainValidationError:
		return 400 // Bad Request
	case DomainConstraintError:
		return 422 // Unprocessable Entity
	case DomainNotFoundError:
		return 404 // Not Found
	case DomainConflictError:
		return 409 // Conflict
	case DomainSchemaError:
		return 500 // Internal Server Error
	default:
		return 500 // Internal Server Error
	}
}

// Common domain errors - these are pre-defined errors that can be reused

var (
	// Constraint rejections: every mutation attempt that trips one of these
	// leaves the graph unchanged

	ErrDirectionMismatch = NewDomainError(
		DomainConstraintError,
		"DIRECTION_MISMATCH",
		"An edge must run from an outgoing slot to an incoming slot",
	)

	ErrTypeNotAllowed = NewDomainError(
		DomainConstraintError,
		"TYPE_NOT_ALLOWED",
		"The counterpart template is not in the slot's allowed-connections set",
	)

	ErrCardinalityExceeded = NewDomainError(
		DomainConstraintError,
		"CARDINALITY_EXCEEDED",
		"Adding the edge would exceed the slot's maximum connection count",
	)

	ErrSelfReferentialEdge = NewDomainError(
		DomainConstraintError,
		"SELF_REFERENTIAL_EDGE",
		"Cannot create an edge from a node to itself",
	)

	ErrDuplicateEdge = NewDomainError(
		DomainConflictError,
		"DUPLICATE_EDGE",
		"An edge between these endpoints already exists",
	)

	ErrDeletionForbidden = NewDomainError(
		DomainConstraintError,
		"DELETION_FORBIDDEN",
		"The node is flagged as undeletable",
	)

	ErrMovementForbidden = NewDomainError(
		DomainConstraintError,
		"MOVEMENT_FORBIDDEN",
		"The node is flagged as immovable",
	)

	ErrResizeForbidden = NewDomainError(
		DomainConstraintError,
		"RESIZE_FORBIDDEN",
		"The node's template does not allow resizing",
	)

	// Lookup failures

	ErrNodeNotFound = NewDomainError(
		DomainNotFoundError,
		"NODE_NOT_FOUND",
		"The requested node does not exist",
	)

	ErrEdgeNotFound = NewDomainError(
		DomainNotFoundError,
		"EDGE_NOT_FOUND",
		"The requested edge does not exist",
	)

	ErrSlotNotFound = NewDomainError(
		DomainNotFoundError,
		"SLOT_NOT_FOUND",
		"The node's template declares no slot with this name",
	)

	ErrFieldNotFound = NewDomainError(
		DomainNotFoundError,
		"FIELD_NOT_FOUND",
		"The node's template declares no field with this name",
	)

	// Validation failures

	ErrInvalidFieldValue = NewDomainError(
		DomainValidationError,
		"INVALID_FIELD_VALUE",
		"The value does not match the field's declared type",
	)

	ErrInvalidPosition = NewDomainError(
		DomainValidationError,
		"INVALID_POSITION",
		"Position coordinates must be finite numbers",
	)

	ErrInvalidSize = NewDomainError(
		DomainValidationError,
		"INVALID_SIZE",
		"Width and height must be positive finite numbers",
	)

	// Fatal construction failures

	ErrSchemaIntegrity = NewDomainError(
		DomainSchemaError,
		"SCHEMA_INTEGRITY",
		"Schema referential integrity check failed",
	)

	ErrUnknownTemplate = NewDomainError(
		DomainSchemaError,
		"UNKNOWN_TEMPLATE",
		"Configuration references a template that does not exist",
	)
)

// Convenience constructors

// NewValidationError creates a validation error with a custom message
func NewValidationError(message string) *DomainError {
	return NewDomainError(DomainValidationError, "VALIDATION_FAILED", message)
}

// NewNotFoundError creates a not found error for a resource
func NewNotFoundError(resource string) *DomainError {
	return NewDomainError(DomainNotFoundError, "NOT_FOUND", resource+" not found")
}

// Helper functions

// GetDomainError extracts a DomainError from an error chain
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// IsType checks if an error is of a specific type
func IsType(err error, errType DomainErrorType) bool {
	domainErr := GetDomainError(err)
	return domainErr != nil && domainErr.Type == errType
}

// IsCode checks if an error carries a specific rejection code
func IsCode(err error, code string) bool {
	domainErr := GetDomainError(err)
	return domainErr != nil && domainErr.Code == code
}

// IsConstraintRejection checks if an error is a non-fatal rejected mutation
func IsConstraintRejection(err error) bool {
	return IsType(err, DomainConstraintError) || IsType(err, DomainConflictError)
}

// IsFatal checks if an error belongs to the fatal construction class
func IsFatal(err error) bool {
	return IsType(err, DomainSchemaError)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return IsType(err, DomainNotFoundError)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return IsType(err, DomainValidationError)
}
