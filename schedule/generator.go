/*
Package schedule generates and reconciles recurring payment periods.

PURPOSE:
  Given a lease's start date, billing frequency, payment day-of-month and
  (for fixed terms) end date, produce the ordered sequence of payment
  periods the tenant owes. Also repairs the one integrity problem that
  shows up in stored period data: duplicate due dates.

GENERATION CONTRACT:
  - Horizon: the lease end date, or start + 1 year for month-to-month
    (a rolling window re-extended by an external scheduled process).
  - Every generated period records the FIRST period's start date as its
    period_start_date. Downstream consistency logic depends on that
    denormalization; do not "fix" it here.
  - Due day is clamped per month (day 31 in February becomes the 28th/29th)
    and bumped one month if it would land before its period start.
  - A horizon at or before the start date yields an empty schedule, not an
    error. Callers treat zero periods as reportable-but-non-fatal.
  - Hard cap of 100 periods guards against misconfigured frequencies.

SEE ALSO:
  - lease/frequency.go: The per-frequency calendar step
  - dedup.go: Duplicate due-date reconciliation on read
*/
package schedule

import (
	"github.com/shopspring/decimal"

	"github.com/propease/lease-engine/calendar"
	"github.com/propease/lease-engine/lease"
)

// MaxPeriods bounds a single generation run. At monthly frequency this is
// over eight years of schedule; anything hitting the cap is misconfigured.
const MaxPeriods = 100

// Generate produces the payment-period schedule for a lease.
//
// Periods are returned in ascending due-date order with status pending and
// no IDs; the caller assigns IDs when persisting.
func Generate(leaseID lease.LeaseID, start calendar.Date, freq lease.Frequency, paymentDay int, end *calendar.Date, rent decimal.Decimal) []lease.PaymentPeriod {
	horizon := lease.NominalHorizon(start)
	if end != nil {
		horizon = *end
	}
	if !horizon.After(start) {
		return nil
	}

	firstPeriodStart := start
	periodStart := start

	var periods []lease.PaymentPeriod
	for periodStart.Before(horizon) && len(periods) < MaxPeriods {
		due := dueDateFor(periodStart, paymentDay)

		periods = append(periods, lease.PaymentPeriod{
			LeaseID:     leaseID,
			PeriodStart: firstPeriodStart,
			DueDate:     due,
			TotalAmount: rent,
			Status:      lease.PaymentPending,
		})

		periodStart = freq.Advance(periodStart)
	}
	return periods
}

// dueDateFor places the payment day within the period's month, clamped to
// the month's length. A due day earlier in the month than the period start
// belongs to the NEXT month: day 1 with a mid-June start is due July 1.
func dueDateFor(periodStart calendar.Date, paymentDay int) calendar.Date {
	due := calendar.NewDate(
		periodStart.Year(),
		periodStart.Month(),
		calendar.ClampDay(paymentDay, periodStart.Year(), periodStart.Month()),
	)
	if due.Before(periodStart) {
		next := periodStart.WithDay(1).AddMonths(1)
		due = calendar.NewDate(
			next.Year(),
			next.Month(),
			calendar.ClampDay(paymentDay, next.Year(), next.Month()),
		)
	}
	return due
}
