package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for callers that only need to classify, not inspect details.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("resource not found")
	ErrInternal        = errors.New("internal error")
	ErrDatabaseError   = errors.New("database error")
	ErrExternalService = errors.New("external service error")
)

// AppError represents a structured application error.
type AppError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Err     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with context.
func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
		Details: make(map[string]interface{}),
	}
}

// WithDetail adds a detail to the error.
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	e.Details[key] = value
	return e
}

// ValidationError creates a validation error.
func ValidationError(message string, field string, value interface{}) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: message,
		Details: map[string]interface{}{
			"field": field,
			"value": value,
		},
	}
}

// NotFoundError creates a not found error.
func NotFoundError(resourceType string, identifier string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found", resourceType),
		Details: map[string]interface{}{
			"resource_type": resourceType,
			"identifier":    identifier,
		},
	}
}

// DatabaseError creates a database error.
func DatabaseError(operation string, err error) *AppError {
	return &AppError{
		Code:    "DATABASE_ERROR",
		Message: fmt.Sprintf("database operation failed: %s", operation),
		Err:     err,
		Details: map[string]interface{}{
			"operation": operation,
		},
	}
}

// ExternalServiceError creates an external service error.
func ExternalServiceError(service string, err error) *AppError {
	return &AppError{
		Code:    "EXTERNAL_SERVICE_ERROR",
		Message: fmt.Sprintf("external service error: %s", service),
		Err:     err,
		Details: map[string]interface{}{
			"service": service,
		},
	}
}

// The four error kinds the planning core itself can raise. Each carries a
// stable Code so callers can branch without string-matching Message.

// EmptyGeometryError reports a geometry index built from fewer than 1 waypoint.
func EmptyGeometryError() *AppError {
	return &AppError{
		Code:    "EMPTY_GEOMETRY",
		Message: "geometry index requires at least one waypoint",
		Details: make(map[string]interface{}),
	}
}

// InconsistentSegmentsError reports segments that disagree with the route geometry.
func InconsistentSegmentsError(reason string) *AppError {
	return &AppError{
		Code:    "INCONSISTENT_SEGMENTS",
		Message: fmt.Sprintf("segments inconsistent with route geometry: %s", reason),
		Details: map[string]interface{}{
			"reason": reason,
		},
	}
}

// NonPositiveDurationError reports a segment with positive distance but
// zero or negative duration, which leaves its driving speed undefined.
func NonPositiveDurationError(segmentIndex int) *AppError {
	return &AppError{
		Code:    "NON_POSITIVE_DURATION",
		Message: fmt.Sprintf("segment %d has distance > 0 but duration <= 0", segmentIndex),
		Details: map[string]interface{}{
			"segment_index": segmentIndex,
		},
	}
}

// CycleExceededError reports a trip whose starting cycle hours already
// exceed the regulatory maximum on entry.
func CycleExceededError(startCycleHours string) *AppError {
	return &AppError{
		Code:    "CYCLE_EXCEEDED",
		Message: "start_cycle_hours exceeds the 70-hour cycle limit",
		Details: map[string]interface{}{
			"start_cycle_hours": startCycleHours,
		},
	}
}
