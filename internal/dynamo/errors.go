package dynamo

import "errors"

// Domain errors for integration runs.
var (
	// ErrInvalidState indicates a state vector containing NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrInvalidStepCount indicates fewer than two grid points were requested.
	ErrInvalidStepCount = errors.New("dynamo: step count must be at least 2")

	// ErrEmptyState indicates an initial state with no components.
	ErrEmptyState = errors.New("dynamo: initial state is empty")

	// ErrNilFunc indicates a missing right-hand side function.
	ErrNilFunc = errors.New("dynamo: derivative function is nil")

	// ErrDimensionMismatch indicates the initial state does not match the equation order.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and equation")

	// ErrUnknownParam indicates a parameter name the equation does not define.
	ErrUnknownParam = errors.New("dynamo: unknown parameter")
)

// SimulationError wraps an error with integration context.
type SimulationError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return SimError{Time: e.Time, Step: e.Step, Message: e.Wrapped.Error()}.Error()
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
