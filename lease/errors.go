/*
errors.go - Error taxonomy for the lease engine

PURPOSE:
  All error types in one place. The taxonomy follows how callers must
  react, not where the failure happened:

  1. ValidationError     - bad input, nothing was written, fix and resubmit
  2. Sentinel errors     - not-found / guard conditions, use errors.Is()
  3. DataIntegrityWarning - inconsistent stored data repaired on read,
                            reported but never fatal

  Post-commit partial failures are NOT errors: they ride on the engine's
  Outcome as warnings alongside the successfully created lease.

SEE ALSO:
  - engine/outcome.go: Warning payloads for post-commit failures
*/
package lease

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrLeaseNotFound is returned when a referenced lease doesn't exist.
	ErrLeaseNotFound = errors.New("lease not found")

	// ErrPeriodNotFound is returned when a referenced payment period doesn't exist.
	ErrPeriodNotFound = errors.New("payment period not found")

	// ErrLeaseHasDependents is returned when deleting a lease that still has
	// payment periods or charges. Those must be removed first.
	ErrLeaseHasDependents = errors.New("lease has dependent records")

	// ErrEmptySchedule signals that schedule generation produced zero
	// periods (horizon at or before start). Reportable, not fatal.
	ErrEmptySchedule = errors.New("schedule generation produced no periods")
)

// =============================================================================
// VALIDATION ERROR - Structured field-level failures
// =============================================================================

// ValidationError carries a field→message map for everything wrong with a
// submitted input. The operation aborts before any write.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a field failure. First message per field wins.
func (e *ValidationError) Add(field, message string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = message
	}
}

// Empty reports whether any field failed.
func (e *ValidationError) Empty() bool { return len(e.Fields) == 0 }

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": " + e.Fields[f]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// =============================================================================
// DATA INTEGRITY WARNING - Repaired-on-read inconsistencies
// =============================================================================

// DataIntegrityWarning reports stored data that violated an invariant and
// was repaired during read (e.g. duplicate payment-period due dates that
// were deduplicated). Never fatal.
type DataIntegrityWarning struct {
	LeaseID LeaseID
	Detail  string
}

func (w *DataIntegrityWarning) Error() string {
	return fmt.Sprintf("data integrity warning for lease %s: %s", w.LeaseID, w.Detail)
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input
// or a guard the caller can resolve.
func IsClientError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) || errors.Is(err, ErrLeaseHasDependents)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrLeaseNotFound) || errors.Is(err, ErrPeriodNotFound)
}
