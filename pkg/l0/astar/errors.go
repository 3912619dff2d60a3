package astar

import (
	"errors"
	"fmt"
)

var (
	// ErrBus indicates a failed bus transaction. All transaction errors
	// match it with errors.Is regardless of the phase that failed.
	ErrBus = errors.New("bus transaction failed")
	// ErrLayoutMismatch indicates values or bytes don't fit the layout.
	ErrLayoutMismatch = errors.New("layout mismatch")
	// ErrClosed indicates a transaction on a closed Engine.
	ErrClosed = errors.New("engine closed")
	// ErrNotASCII indicates a string field contains non-ASCII characters.
	ErrNotASCII = errors.New("not ascii")
)

// Phase is the step of a transaction.
type Phase string

// Transaction phases.
const (
	PhaseSelect Phase = "select"
	PhaseRead   Phase = "read"
	PhaseDecode Phase = "decode"
	PhaseEncode Phase = "encode"
	PhaseWrite  Phase = "write"
)

// TransactionError wraps the failure of a single transaction step.
type TransactionError struct {
	Register byte
	Phase    Phase
	Err      error
}

// Error implements error.
func (e *TransactionError) Error() string {
	return fmt.Sprintf("register %d %s: %v", e.Register, e.Phase, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// Is makes every TransactionError match ErrBus.
func (e *TransactionError) Is(target error) bool {
	return target == ErrBus
}
