package seed

import (
	"errors"
	"fmt"
)

// Phase names one step of the seed procedure.
type Phase string

const (
	PhaseTruncate    Phase = "truncate"
	PhaseReferences  Phase = "references"
	PhaseItems       Phase = "items"
	PhaseAttributes  Phase = "attributes"
	PhaseDenormalize Phase = "denormalize"
)

// Failure kinds, matched with errors.Is against a *PhaseError.
var (
	ErrTruncate    = errors.New("truncate failed")
	ErrReferences  = errors.New("reference generation failed")
	ErrBulkInsert  = errors.New("bulk insert failed")
	ErrDenormalize = errors.New("denormalization failed")
)

var (
	ErrNoCandidates   = errors.New("no candidate rows to sample from")
	ErrInvalidOptions = errors.New("invalid seed options")
)

// Kind returns the failure kind reported for the phase.
func (p Phase) Kind() error {
	switch p {
	case PhaseTruncate:
		return ErrTruncate
	case PhaseReferences:
		return ErrReferences
	case PhaseItems, PhaseAttributes:
		return ErrBulkInsert
	case PhaseDenormalize:
		return ErrDenormalize
	default:
		return nil
	}
}

// PhaseError reports where a seed run stopped. Batch is 1-based; 0 means the
// failure was not tied to a bulk-insert batch. Batches before Batch stay committed
// unless the run was atomic.
type PhaseError struct {
	Phase Phase
	Table string
	Batch int
	Err   error
}

func (e *PhaseError) Error() string {
	if e.Batch > 0 {
		return fmt.Sprintf("seed %s: %s batch %d: %v", e.Phase, e.Table, e.Batch, e.Err)
	}
	return fmt.Sprintf("seed %s: %s: %v", e.Phase, e.Table, e.Err)
}

func (e *PhaseError) Unwrap() error { return e.Err }

func (e *PhaseError) Is(target error) bool {
	kind := e.Phase.Kind()
	return kind != nil && target == kind
}
