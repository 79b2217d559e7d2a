package sfoglia

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrTransitionActive indicates a navigation was dropped because another
	// transition holds the lock. This is normal flow control: rapid repeated
	// navigations collapse to a single transition.
	ErrTransitionActive = errors.New("transition already in progress")

	// ErrTimelineKilled indicates a timeline was cancelled before completing,
	// either by an explicit Reset or by the safety timeout.
	ErrTimelineKilled = errors.New("timeline killed")

	// ErrNotInitialized indicates a host surface (window, animator, overlay)
	// was missing. Transitions degrade to unanimated navigation in that case.
	ErrNotInitialized = errors.New("transition host not initialized")
)

// InfrastructureError represents a framework-level error that indicates
// something is wrong with sfoglia itself (overlay rasterization failed, SDL
// crashed, font missing, etc.). These errors are recovered locally: the worst
// user-visible outcome is a navigation without animation, never a navigation
// that stops working.
type InfrastructureError struct {
	Op  string // Operation that failed (e.g., "cover", "reveal", "load_emblem")
	Err error  // Underlying error
}

func (e *InfrastructureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sfoglia: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("sfoglia: %s", e.Op)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

// NewInfrastructureError creates a new infrastructure error.
func NewInfrastructureError(op string, err error) *InfrastructureError {
	return &InfrastructureError{Op: op, Err: err}
}

// IsInfrastructureError checks if an error is an infrastructure error.
func IsInfrastructureError(err error) bool {
	var infraErr *InfrastructureError
	return errors.As(err, &infraErr)
}
