package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrMissingTarget indicates a leader whose target index resolves to no curve point.
	ErrMissingTarget = errors.New("dynamo: target index resolves to no curve point")

	// ErrEmptyTrail indicates a trail without particles.
	ErrEmptyTrail = errors.New("dynamo: trail has no particles")

	// ErrInvalidState indicates a leader position or velocity became NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrNotStarted indicates an operation that needs a running loop.
	ErrNotStarted = errors.New("dynamo: simulation not started")

	// ErrEmptySeries indicates a metric series with no samples.
	ErrEmptySeries = errors.New("dynamo: empty series")
)

// SimError wraps a per-trail fault with frame context.
type SimError struct {
	Frame   uint64
	Trail   int
	Wrapped error
}

func (e *SimError) Error() string {
	return fmt.Sprintf("frame %d trail %d: %v", e.Frame, e.Trail, e.Wrapped)
}

func (e *SimError) Unwrap() error {
	return e.Wrapped
}
