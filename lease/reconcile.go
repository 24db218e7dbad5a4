package lease

import (
	"strings"

	"github.com/propease/lease-engine/calendar"
)

// =============================================================================
// RECORD RECONCILIATION - Normalizing persisted rows for display
// =============================================================================
// The persisted schema allows end_date to be null for month-to-month leases
// and lease_terms to be a free-text label written under several historical
// rules. These functions produce one consistent in-memory view. The fallback
// tiers are load-bearing: existing rows were written under each of them.

// ResolveTermKind classifies a lease from its stored fields.
//
// The lease_terms label wins when present: any case-insensitive occurrence
// of "month" means month-to-month, anything else means fixed. Only when the
// label is absent does end-date presence decide.
func ResolveTermKind(leaseTerms string, end *calendar.Date) TermKind {
	if s := strings.TrimSpace(leaseTerms); s != "" {
		if strings.Contains(strings.ToLower(s), "month") {
			return TermMonthToMonth
		}
		return TermFixed
	}
	if end != nil {
		return TermFixed
	}
	return TermMonthToMonth
}

// DisplayEndDate produces the end date shown for a lease.
//
// Fixed leases show their stored end date verbatim. Month-to-month leases
// have no contractual end, so the UI shows a nominal one:
//
//   1. a stored end_date, if one was ever persisted (authoritative once written)
//   2. else start + 1 year - 1 day, projected from the start date
//   3. else (start date missing/invalid) today + 1 year - 1 day
func DisplayEndDate(kind TermKind, start calendar.Date, end *calendar.Date, today calendar.Date) calendar.Date {
	if kind == TermFixed {
		if end != nil {
			return *end
		}
		// Malformed fixed lease with no end date; project like month-to-month.
	}
	if end != nil {
		return *end
	}
	if !start.IsZero() {
		return calendar.OneYearMinusOneDay(start)
	}
	return calendar.OneYearMinusOneDay(today)
}

// NominalHorizon is the scheduling horizon for a month-to-month lease:
// one full year from the start date. It is start-date-relative and fixed at
// creation; reads re-derive it from start_date, never re-anchor to "now".
func NominalHorizon(start calendar.Date) calendar.Date {
	return start.AddYears(1)
}
