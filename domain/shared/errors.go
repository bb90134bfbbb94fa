package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Business-rule failures are notifications, not errors. The errors below are
// for the cases a request cannot go on: missing aggregates, lost races and
// broken infrastructure.

// ============================================================================
// Sentinel errors
// ============================================================================

var (
	ErrNotFound = errors.New("not found")

	// ErrConflict covers optimistic lock failures and unique constraint violations.
	ErrConflict = errors.New("conflict")

	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidState is returned when an aggregate refuses a transition.
	ErrInvalidState = errors.New("invalid state")
)

// ============================================================================
// DomainError
// ============================================================================

// DomainError wraps a sentinel with the entity it concerns and the call site
// where it was created. The stack is formatted lazily.
type DomainError struct {
	Err     error
	Entity  string
	Message string
	Field   string

	stack []uintptr
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Stack formats the captured frames.
func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// CaptureStack records the caller frames. skip is usually 3:
// runtime.Callers, CaptureStack and the constructor.
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack renders up to ten non-runtime frames as "file:line function".
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) > 10 {
			break
		}
	}
	return result
}

// ============================================================================
// Constructors
// ============================================================================

func NewNotFoundError(entity, id string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: entity + " not found: " + id,
		stack:   CaptureStack(3),
	}
}

func NewConflictError(entity, message string) error {
	return &DomainError{
		Err:     ErrConflict,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

func NewInvalidStateError(entity, message string) error {
	return &DomainError{
		Err:     ErrInvalidState,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// Stacker is implemented by errors that carry a creation stack.
type Stacker interface {
	Stack() []string
}
