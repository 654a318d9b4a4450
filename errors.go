package sdk

import (
	"errors"
	"fmt"

	"github.com/gencompute/sdk/interpret"
	"github.com/gencompute/sdk/memory"
	"github.com/gencompute/sdk/reasoning"
)

// Sentinel errors for common coordinator error conditions.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrEmptyInstruction indicates an instruction compiled to zero tasks.
	ErrEmptyInstruction = errors.New("instruction produced no tasks")

	// ErrExecutionFailed indicates that a plan run failed part way through.
	// The underlying error should be wrapped for additional context.
	ErrExecutionFailed = errors.New("execution failed")
)

// Error kinds categorize errors by their type.
const (
	// KindNotFound represents errors where a slot or checkpoint was not found.
	KindNotFound = "not_found"

	// KindValidation represents errors related to input validation.
	KindValidation = "validation"

	// KindExecution represents errors that occur while running a plan.
	KindExecution = "execution"

	// KindCycle represents errors caused by unsatisfiable task dependencies.
	KindCycle = "cycle"

	// KindRange represents errors caused by out-of-range indices.
	KindRange = "range"

	// KindInternal represents internal SDK errors.
	KindInternal = "internal"
)

// SDKError is a structured error type that wraps underlying errors with
// additional context about the operation that failed and the category of error.
//
// SDKError implements the error interface and supports error unwrapping,
// making it compatible with errors.Is() and errors.As().
//
// Example usage:
//
//	err := &SDKError{
//		Op:   "System.ExecuteInstruction",
//		Kind: KindExecution,
//		Err:  ErrExecutionFailed,
//	}
type SDKError struct {
	// Op is the operation that failed (e.g., "System.ExecuteInstruction").
	Op string

	// Kind categorizes the error (e.g., KindNotFound, KindCycle).
	Kind string

	// Err is the underlying error that caused this error.
	Err error

	// Context provides additional context about the error (optional).
	// This can include slot IDs, checkpoint IDs, or other debugging information.
	Context map[string]any
}

// Error implements the error interface, returning a formatted error message
// that includes the operation, kind, and underlying error.
func (e *SDKError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("sdk: %s: %s", e.Op, e.Kind)
	}

	if len(e.Context) > 0 {
		return fmt.Sprintf("sdk: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}

	return fmt.Sprintf("sdk: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error, allowing errors.Is() and errors.As()
// to work correctly with wrapped errors.
func (e *SDKError) Unwrap() error {
	return e.Err
}

// Is implements error matching for SDKError, allowing comparison based on
// the underlying error or the SDKError itself.
func (e *SDKError) Is(target error) bool {
	if target == nil {
		return false
	}

	if t, ok := target.(*SDKError); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	return errors.Is(e.Err, target)
}

// WithContext returns a new SDKError with the provided context added.
// This is useful for adding debugging information to errors.
func (e *SDKError) WithContext(ctx map[string]any) *SDKError {
	newErr := *e
	if newErr.Context == nil {
		newErr.Context = make(map[string]any)
	}
	for k, v := range ctx {
		newErr.Context[k] = v
	}
	return &newErr
}

// wrapError classifies an error from one of the lower layers into an SDKError
// with the appropriate kind. Nil errors pass through unchanged.
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}

	kind := KindExecution
	switch {
	case errors.Is(err, memory.ErrSlotNotFound), errors.Is(err, memory.ErrCheckpointNotFound):
		kind = KindNotFound
	case errors.Is(err, interpret.ErrCycle):
		kind = KindCycle
	case errors.Is(err, interpret.ErrUnknownKind):
		kind = KindValidation
	case errors.Is(err, reasoning.ErrIndexOutOfRange):
		kind = KindRange
	case errors.Is(err, ErrEmptyInstruction):
		kind = KindValidation
	}

	return &SDKError{Op: op, Kind: kind, Err: err}
}
