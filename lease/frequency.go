package lease

import (
	"log/slog"
	"time"

	"github.com/propease/lease-engine/calendar"
)

// =============================================================================
// FREQUENCY - Billing frequencies and their calendar-step semantics
// =============================================================================

// Frequency enumerates the supported billing frequencies.
// The string values are the stored payment_frequency labels.
type Frequency string

const (
	Daily          Frequency = "Daily"
	Weekly         Frequency = "Weekly"
	EveryTwoWeeks  Frequency = "Every 2 Weeks"
	Monthly        Frequency = "Monthly"
	EveryTwoMonths Frequency = "Every 2 Months"
	Quarterly      Frequency = "Quarterly"
	EverySixMonths Frequency = "Every 6 Months"
	Annually       Frequency = "Annually"
)

// step describes one frequency advance. Day-granular steps add calendar
// days directly; month/year-granular steps clamp the resulting day-of-month
// against the target month.
type step struct {
	days   int
	months int
	years  int
}

var steps = map[Frequency]step{
	Daily:          {days: 1},
	Weekly:         {days: 7},
	EveryTwoWeeks:  {days: 14},
	Monthly:        {months: 1},
	EveryTwoMonths: {months: 2},
	Quarterly:      {months: 3},
	EverySixMonths: {months: 6},
	Annually:       {years: 1},
}

// ParseFrequency maps a stored label onto Frequency.
// Unknown values fall back to Monthly: a defensive default for historical
// rows, logged as a warning rather than rejected.
func ParseFrequency(s string) Frequency {
	if _, ok := steps[Frequency(s)]; ok {
		return Frequency(s)
	}
	slog.Warn("unknown payment frequency, falling back to Monthly", "value", s)
	return Monthly
}

// Valid reports whether f is one of the supported frequencies.
func (f Frequency) Valid() bool {
	_, ok := steps[f]
	return ok
}

// MonthGranular reports whether advancing by f clamps the day-of-month.
func (f Frequency) MonthGranular() bool {
	st := f.step()
	return st.months > 0 || st.years > 0
}

func (f Frequency) step() step {
	if st, ok := steps[f]; ok {
		return st
	}
	slog.Warn("unknown payment frequency, advancing as Monthly", "value", string(f))
	return steps[Monthly]
}

// Advance moves a date forward by one period of f.
//
// Month- and year-granular steps clamp the day-of-month of the result, and
// the clamp does not "recover": advancing Jan 31 Monthly yields Feb 29
// (2024), and advancing that again yields Mar 29, not Mar 31, because the
// step works from the date it is given.
func (f Frequency) Advance(d calendar.Date) calendar.Date {
	st := f.step()
	if st.months == 0 && st.years == 0 {
		return d.AddDays(st.days)
	}

	// Compute the target month directly rather than AddDate, which would
	// normalize Jan 31 + 1 month into March.
	months := int(d.Month()) - 1 + st.months + st.years*12
	year := d.Year() + months/12
	month := time.Month(months%12 + 1)
	day := calendar.ClampDay(d.Day(), year, month)
	return calendar.NewDate(year, month, day)
}
