package field

import (
	"errors"
	"fmt"
)

// Domain errors for field integration.
var (
	// ErrInvalidConfiguration indicates parameters rejected before any stepping.
	ErrInvalidConfiguration = errors.New("field: invalid configuration")

	// ErrNumericalDivergence indicates a non-finite value appeared in the field.
	ErrNumericalDivergence = errors.New("field: numerical divergence (NaN or Inf detected)")
)

// SimulationError wraps an error with the step at which it occurred.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}

// Invalidf builds an error wrapping ErrInvalidConfiguration.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}
