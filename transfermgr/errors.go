// Error taxonomy of the orchestrator.
// Validation errors are caller-fixable and surfaced immediately. Phase
// errors name which two-phase step failed so the caller knows what is
// still valid: a failed Sign leaves Begin's output usable, a failed End
// leaves the signed transaction usable.

package transfermgr

import (
	"errors"
	"fmt"
)

var (
	ErrInvoiceRequired     = errors.New("invoice is required")
	ErrAddressRequired     = errors.New("destination address is required")
	ErrAmountRequired      = errors.New("amount must be positive")
	ErrUnsupportedAsset    = errors.New("asset has no mapping on this network")
	ErrInsufficientBalance = errors.New("spendable balance is below the requested amount")
	ErrWrongRequestKind    = errors.New("transfer request belongs to another operation family")
	ErrPhaseOutOfOrder     = errors.New("transfer request has not completed the preceding phase")
)

type Phase string

const (
	PhaseBegin Phase = "begin"
	PhaseSign  Phase = "sign"
	PhaseEnd   Phase = "end"
)

// PhaseError wraps a failure with the two-phase step that produced it.
type PhaseError struct {
	Phase Phase
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s phase failed: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

func phaseErr(phase Phase, err error) error {
	if err == nil {
		return nil
	}
	return &PhaseError{Phase: phase, Err: err}
}
