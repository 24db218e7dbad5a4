/*
Package calendar provides day-granular date arithmetic for lease scheduling.

PURPOSE:
  Everything date-related in the lease engine goes through this package.
  Dates are calendar days with no time-of-day component — rent is due on
  a day, not at an instant. All arithmetic is done in UTC so a date never
  shifts across a midnight boundary in someone's local timezone.

KEY CONCEPTS:
  - Date: A calendar day. Comparison and arithmetic only, no clock.
  - Day clamping: "day 31" in February becomes the 28th (or 29th).
    Requested days are clamped, never rejected.

WHY NOT time.Time DIRECTLY?
  A bare time.Time carries hours, zones, and DST. Every one of those is a
  source of off-by-one bugs at month and year boundaries. Wrapping it in a
  Date that normalizes to midnight UTC makes the whole class of bugs
  unrepresentable.

USAGE:
  start := calendar.NewDate(2024, time.January, 31)
  due := start.WithDay(calendar.ClampDay(31, start.Year(), start.Month()))

SEE ALSO:
  - lease/frequency.go: Billing-frequency stepping built on this package
  - schedule/generator.go: Payment-period generation
*/
package calendar

import (
	"time"
)

// =============================================================================
// DATE - Calendar day, UTC, no time-of-day
// =============================================================================

type Date struct {
	t time.Time
}

// NewDate builds a Date for the given calendar day.
// Out-of-range values normalize the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime truncates a time.Time to its calendar day (in the time's own location)
// and re-anchors it in UTC.
func FromTime(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today returns the current calendar day.
func Today() Date {
	return FromTime(time.Now())
}

// Parse reads a Date from YYYY-MM-DD.
func Parse(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return FromTime(t), nil
}

// Comparison
func (d Date) Before(other Date) bool        { return d.t.Before(other.t) }
func (d Date) After(other Date) bool         { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool         { return d.t.Equal(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }

// Arithmetic
func (d Date) AddDays(n int) Date   { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) AddMonths(n int) Date { return Date{t: d.t.AddDate(0, n, 0)} }
func (d Date) AddYears(n int) Date  { return Date{t: d.t.AddDate(n, 0, 0)} }

// Properties
func (d Date) Year() int         { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int          { return d.t.Day() }
func (d Date) IsZero() bool      { return d.t.IsZero() }
func (d Date) Time() time.Time   { return d.t }

// SameMonth reports whether two dates fall in the same calendar month.
func (d Date) SameMonth(other Date) bool {
	return d.Year() == other.Year() && d.Month() == other.Month()
}

// WithDay returns the date with its day-of-month replaced.
// The caller is expected to have clamped day already; values past the end
// of the month normalize forward per time.Date semantics.
func (d Date) WithDay(day int) Date {
	return NewDate(d.Year(), d.Month(), day)
}

func (d Date) String() string {
	return d.t.Format("2006-01-02")
}

// MarshalJSON / UnmarshalJSON keep the wire format at YYYY-MM-DD.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// =============================================================================
// MONTH ARITHMETIC
// =============================================================================

// DaysIn returns the number of days in a month, leap-year aware.
func DaysIn(year int, month time.Month) int {
	// First of next month, minus one day.
	return time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1).Day()
}

// ClampDay reduces a requested day-of-month to the month's last valid day.
// ClampDay(31, 2024, time.February) == 29.
func ClampDay(day int, year int, month time.Month) int {
	if last := DaysIn(year, month); day > last {
		return last
	}
	return day
}

// OneYearMinusOneDay returns d + 1 year - 1 day, the nominal end of a
// 12-month horizon starting at d.
func OneYearMinusOneDay(d Date) Date {
	return d.AddYears(1).AddDays(-1)
}
