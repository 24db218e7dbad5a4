package schedule

import (
	"fmt"
	"sort"

	"github.com/propease/lease-engine/calendar"
	"github.com/propease/lease-engine/lease"
)

// =============================================================================
// DEDUPLICATION - Repairing duplicate due dates on read
// =============================================================================
// Historical writes occasionally produced two periods with the same due
// date for one lease. The invariant is one period per due date, so reads
// repair the set: prefer the period whose period_start equals its due date,
// else keep the most recently created. Repairs are surfaced as integrity
// warnings, never errors.

// Deduplicate returns the periods with duplicate due dates collapsed,
// sorted by due date, plus a warning per repaired due date.
func Deduplicate(leaseID lease.LeaseID, periods []lease.PaymentPeriod) ([]lease.PaymentPeriod, []lease.DataIntegrityWarning) {
	byDue := make(map[string]lease.PaymentPeriod, len(periods))
	var warnings []lease.DataIntegrityWarning

	for _, p := range periods {
		k := p.DueDate.String()
		existing, dup := byDue[k]
		if !dup {
			byDue[k] = p
			continue
		}
		byDue[k] = preferred(existing, p)
		warnings = append(warnings, lease.DataIntegrityWarning{
			LeaseID: leaseID,
			Detail:  fmt.Sprintf("duplicate payment periods due %s, kept one", p.DueDate),
		})
	}

	out := make([]lease.PaymentPeriod, 0, len(byDue))
	for _, p := range byDue {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, warnings
}

// preferred picks the survivor between two periods sharing a due date.
func preferred(a, b lease.PaymentPeriod) lease.PaymentPeriod {
	aSelf := a.PeriodStart.Equal(a.DueDate)
	bSelf := b.PeriodStart.Equal(b.DueDate)
	if aSelf != bSelf {
		if aSelf {
			return a
		}
		return b
	}
	// Neither (or both) self-anchored: most recently created wins,
	// later-listed on a tie.
	if a.CreatedAt.After(b.CreatedAt) {
		return a
	}
	return b
}

// =============================================================================
// CURRENT AND NEXT PAYMENT
// =============================================================================

// Current returns the period whose due date falls in today's calendar
// month, or nil. After deduplication at most one period qualifies per due
// date; with several due dates in the month, the earliest unpaid one (or
// the earliest overall) is the current obligation.
func Current(periods []lease.PaymentPeriod, today calendar.Date) *lease.PaymentPeriod {
	var inMonth []lease.PaymentPeriod
	for _, p := range periods {
		if p.DueDate.SameMonth(today) {
			inMonth = append(inMonth, p)
		}
	}
	if len(inMonth) == 0 {
		return nil
	}
	sort.Slice(inMonth, func(i, j int) bool { return inMonth[i].DueDate.Before(inMonth[j].DueDate) })
	for i := range inMonth {
		if inMonth[i].Status != lease.PaymentPaid {
			return &inMonth[i]
		}
	}
	return &inMonth[0]
}

// NextDueDate returns the earliest due date on or after today, or nil if
// the schedule is exhausted.
func NextDueDate(periods []lease.PaymentPeriod, today calendar.Date) *calendar.Date {
	var next *calendar.Date
	for _, p := range periods {
		if p.DueDate.Before(today) {
			continue
		}
		if next == nil || p.DueDate.Before(*next) {
			d := p.DueDate
			next = &d
		}
	}
	return next
}
