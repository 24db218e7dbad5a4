package engine

import (
	"fmt"

	"github.com/propease/lease-engine/lease"
)

// =============================================================================
// OUTCOME - Created entity plus post-commit warnings
// =============================================================================
// Once the lease row is committed, the operation is a success even if
// dependent writes partially fail. Instead of exceptions-as-control-flow,
// the orchestrator returns the entity together with an explicit list of
// sub-failures for the caller to inspect.

// Stage names the orchestration step a warning came from.
type Stage string

const (
	StageSchedule  Stage = "schedule"
	StageCharges   Stage = "charges"
	StageDocuments Stage = "documents"
	StageIntegrity Stage = "integrity"
	StageCleanup   Stage = "cleanup"
)

// Warning records one non-fatal sub-failure of an orchestration.
type Warning struct {
	Stage  Stage
	Detail string
	Err    error
}

func (w Warning) String() string {
	if w.Err != nil {
		return fmt.Sprintf("%s: %s: %v", w.Stage, w.Detail, w.Err)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Detail)
}

// Outcome is the result of a lease mutation. Lease is always set on a nil
// error; Warnings lists whatever best-effort steps did not complete.
type Outcome struct {
	Lease    *lease.Lease
	Periods  []lease.PaymentPeriod
	Warnings []Warning
}

func (o *Outcome) warnf(stage Stage, err error, format string, args ...any) {
	o.Warnings = append(o.Warnings, Warning{Stage: stage, Detail: fmt.Sprintf(format, args...), Err: err})
}

// PartialSuccess reports whether any best-effort step failed.
func (o *Outcome) PartialSuccess() bool { return len(o.Warnings) > 0 }
