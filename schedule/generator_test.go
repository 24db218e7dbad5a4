package schedule

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/propease/lease-engine/calendar"
	"github.com/propease/lease-engine/lease"
)

var rent = decimal.NewFromInt(1000)

func TestGenerateFixedTermMonthly(t *testing.T) {
	start := calendar.NewDate(2024, time.January, 1)
	end := calendar.NewDate(2024, time.December, 31)

	periods := Generate("lease-1", start, lease.Monthly, 15, &end, rent)

	if len(periods) != 12 {
		t.Fatalf("got %d periods, want 12", len(periods))
	}
	for i, p := range periods {
		want := calendar.NewDate(2024, time.Month(i+1), 15)
		if !p.DueDate.Equal(want) {
			t.Errorf("period %d due %s, want %s", i, p.DueDate, want)
		}
		if !p.TotalAmount.Equal(rent) {
			t.Errorf("period %d amount %s, want %s", i, p.TotalAmount, rent)
		}
		if p.Status != lease.PaymentPending {
			t.Errorf("period %d status %s, want pending", i, p.Status)
		}
		// Denormalized first-period start on every record.
		if !p.PeriodStart.Equal(start) {
			t.Errorf("period %d period_start %s, want %s", i, p.PeriodStart, start)
		}
	}
}

func TestGenerateDayOverflowClamps(t *testing.T) {
	start := calendar.NewDate(2024, time.January, 1)
	end := calendar.NewDate(2024, time.April, 30)

	periods := Generate("lease-1", start, lease.Monthly, 31, &end, rent)

	want := []calendar.Date{
		calendar.NewDate(2024, time.January, 31),
		calendar.NewDate(2024, time.February, 29), // leap year, clamped, not an error
		calendar.NewDate(2024, time.March, 31),
		calendar.NewDate(2024, time.April, 30),
	}
	if len(periods) != len(want) {
		t.Fatalf("got %d periods, want %d", len(periods), len(want))
	}
	for i, p := range periods {
		if !p.DueDate.Equal(want[i]) {
			t.Errorf("period %d due %s, want %s", i, p.DueDate, want[i])
		}
	}
}

func TestGenerateMonthToMonthHorizon(t *testing.T) {
	start := calendar.NewDate(2024, time.March, 10)

	periods := Generate("lease-1", start, lease.Monthly, 10, nil, rent)

	// Horizon is start + 1 year: periods start Mar 10 2024 .. Feb 10 2025.
	if len(periods) != 12 {
		t.Fatalf("got %d periods, want 12", len(periods))
	}
	first := periods[0].DueDate
	last := periods[len(periods)-1].DueDate
	if !first.Equal(calendar.NewDate(2024, time.March, 10)) {
		t.Errorf("first due %s", first)
	}
	if !last.Equal(calendar.NewDate(2025, time.February, 10)) {
		t.Errorf("last due %s", last)
	}
}

func TestGenerateMonthToMonthDayThirtyOne(t *testing.T) {
	start := calendar.NewDate(2024, time.January, 15)

	periods := Generate("lease-1", start, lease.Monthly, 31, nil, rent)

	if len(periods) != 12 {
		t.Fatalf("got %d periods, want 12", len(periods))
	}
	want := []calendar.Date{
		calendar.NewDate(2024, time.January, 31),
		calendar.NewDate(2024, time.February, 29),
		calendar.NewDate(2024, time.March, 31),
	}
	for i, w := range want {
		if !periods[i].DueDate.Equal(w) {
			t.Errorf("period %d due %s, want %s", i, periods[i].DueDate, w)
		}
	}
}

func TestGenerateDueDateBumpsToNextMonth(t *testing.T) {
	// Payment day 1 with a mid-month start: the first due date is the 1st of
	// the NEXT month, never before the period it belongs to.
	start := calendar.NewDate(2024, time.June, 15)
	end := calendar.NewDate(2024, time.September, 15)

	periods := Generate("lease-1", start, lease.Monthly, 1, &end, rent)

	if len(periods) == 0 {
		t.Fatal("no periods generated")
	}
	if want := calendar.NewDate(2024, time.July, 1); !periods[0].DueDate.Equal(want) {
		t.Errorf("first due %s, want %s", periods[0].DueDate, want)
	}
	for i := 1; i < len(periods); i++ {
		if periods[i].DueDate.Before(periods[i-1].DueDate) {
			t.Errorf("due dates not monotonic at %d: %s < %s", i, periods[i].DueDate, periods[i-1].DueDate)
		}
	}
}

func TestGenerateMalformedHorizonIsEmpty(t *testing.T) {
	start := calendar.NewDate(2024, time.June, 1)
	end := calendar.NewDate(2024, time.May, 1) // end before start

	if periods := Generate("lease-1", start, lease.Monthly, 1, &end, rent); len(periods) != 0 {
		t.Errorf("got %d periods for inverted horizon, want 0", len(periods))
	}
	if periods := Generate("lease-1", start, lease.Monthly, 1, &start, rent); len(periods) != 0 {
		t.Errorf("got %d periods for zero-length horizon, want 0", len(periods))
	}
}

func TestGenerateCapsRunawaySchedules(t *testing.T) {
	start := calendar.NewDate(2024, time.January, 1)
	end := calendar.NewDate(2030, time.January, 1)

	periods := Generate("lease-1", start, lease.Daily, 1, &end, rent)

	if len(periods) != MaxPeriods {
		t.Errorf("got %d periods, want cap of %d", len(periods), MaxPeriods)
	}
}

func TestGenerateWeeklyAddsDaysDirectly(t *testing.T) {
	start := calendar.NewDate(2024, time.January, 31)
	end := calendar.NewDate(2024, time.February, 22)

	periods := Generate("lease-1", start, lease.Weekly, 7, &end, rent)

	// Period starts: Jan 31, Feb 7, Feb 14, Feb 21 — no month clamping.
	if len(periods) != 4 {
		t.Fatalf("got %d periods, want 4", len(periods))
	}
}
