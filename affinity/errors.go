package affinity

import (
	"errors"
	"fmt"
)

var (
	// ErrInvocation is returned when queued work panics on the affinity thread.
	// The concrete error is an *InvocationError carrying the panic value.
	ErrInvocation = errors.New("affinity: work panicked on the affinity thread")

	// ErrThreadUnavailable is returned once the runtime has been closed.
	// Every later submission fails with it.
	ErrThreadUnavailable = errors.New("affinity: affinity thread is not running")
)

// InvocationError describes a panic recovered from a unit of work.
type InvocationError struct {
	Value any    // value passed to panic
	Stack []byte // stack of the affinity thread at the time of the panic
}

// Error implements the error interface.
func (e *InvocationError) Error() string {
	return fmt.Sprintf("affinity: work panicked: %v", e.Value)
}

// Unwrap lets errors.Is match ErrInvocation.
func (e *InvocationError) Unwrap() error {
	return ErrInvocation
}
