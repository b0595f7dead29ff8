// Package errors provides standardized internal error values for colt.
// These describe bugs in the front-end itself, never mistakes in user code.
package errors

import (
	"fmt"
	"runtime"
)

// ErrorCategory represents different categories of errors
type ErrorCategory string

const (
	CategoryInvariant ErrorCategory = "INVARIANT"
	CategoryBounds    ErrorCategory = "BOUNDS"
)

// StandardError provides a consistent error format
type StandardError struct {
	Category ErrorCategory
	Code     string
	Message  string
	Context  map[string]interface{}
	Caller   string
}

// Error implements the error interface
func (e *StandardError) Error() string {
	return fmt.Sprintf("[%s:%s] %s (caller: %s)", e.Category, e.Code, e.Message, e.Caller)
}

// Is matches errors of the same category and code.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	return ok && t.Category == e.Category && t.Code == e.Code
}

// NewStandardError creates a new standardized error
func NewStandardError(category ErrorCategory, code, message string, context map[string]interface{}) *StandardError {
	// skip the constructor helpers to report the actual offender
	pc, _, _, ok := runtime.Caller(2)
	caller := "unknown"
	if ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			caller = fn.Name()
		}
	}

	return &StandardError{
		Category: category,
		Code:     code,
		Message:  message,
		Context:  context,
		Caller:   caller,
	}
}

// Common error constructors

// CrossArena is raised when a handle minted by one arena is used with another.
func CrossArena(kind string, owner, used uint32) *StandardError {
	return NewStandardError(CategoryInvariant, "CROSS_ARENA",
		fmt.Sprintf("%s handle owned by arena %d used with arena %d", kind, owner, used),
		map[string]interface{}{"kind": kind, "owner": owner, "used": used})
}

func InvalidHandle(kind string, index, length int) *StandardError {
	return NewStandardError(CategoryBounds, "INVALID_HANDLE",
		fmt.Sprintf("%s handle %d out of bounds for length %d", kind, index, length),
		map[string]interface{}{"kind": kind, "index": index, "length": length})
}

func InvalidStateMerge(a, b uint8) *StandardError {
	return NewStandardError(CategoryInvariant, "INVALID_STATE_MERGE",
		fmt.Sprintf("merging variable states %03b and %03b has no meaning", a, b),
		map[string]interface{}{"a": a, "b": b})
}

// Precondition is raised when an arena operation is called with arguments
// the caller should have checked.
func Precondition(details string) *StandardError {
	return NewStandardError(CategoryInvariant, "PRECONDITION",
		fmt.Sprintf("precondition violated: %s", details),
		map[string]interface{}{"details": details})
}
