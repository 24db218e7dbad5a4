package schedule

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/propease/lease-engine/calendar"
	"github.com/propease/lease-engine/lease"
)

func TestDeduplicatePrefersSelfAnchoredPeriod(t *testing.T) {
	due := calendar.NewDate(2024, time.June, 1)
	amount := decimal.NewFromInt(1500)

	periods := []lease.PaymentPeriod{
		{ID: "p-derived", LeaseID: "l-1", PeriodStart: calendar.NewDate(2024, time.May, 15), DueDate: due, TotalAmount: amount},
		{ID: "p-anchored", LeaseID: "l-1", PeriodStart: due, DueDate: due, TotalAmount: amount},
	}

	deduped, warnings := Deduplicate("l-1", periods)

	if len(deduped) != 1 {
		t.Fatalf("got %d periods, want 1", len(deduped))
	}
	if deduped[0].ID != "p-anchored" {
		t.Errorf("kept %s, want the period whose period_start equals its due date", deduped[0].ID)
	}
	if len(warnings) != 1 {
		t.Errorf("got %d warnings, want 1", len(warnings))
	}
}

func TestDeduplicateIdempotent(t *testing.T) {
	due := calendar.NewDate(2024, time.June, 1)
	periods := []lease.PaymentPeriod{
		{ID: "a", PeriodStart: due, DueDate: due},
		{ID: "b", PeriodStart: calendar.NewDate(2024, time.May, 1), DueDate: due},
	}

	once, _ := Deduplicate("l-1", periods)
	twice, warnings := Deduplicate("l-1", once)

	if len(twice) != 1 || twice[0].ID != once[0].ID {
		t.Errorf("second pass changed the result")
	}
	if len(warnings) != 0 {
		t.Errorf("second pass reported %d warnings on clean data", len(warnings))
	}
}

func TestDeduplicateNewestWinsWithoutAnchor(t *testing.T) {
	due := calendar.NewDate(2024, time.June, 1)
	anchor := calendar.NewDate(2024, time.May, 1)

	periods := []lease.PaymentPeriod{
		{ID: "older", PeriodStart: anchor, DueDate: due, CreatedAt: calendar.NewDate(2024, time.April, 1)},
		{ID: "newer", PeriodStart: anchor, DueDate: due, CreatedAt: calendar.NewDate(2024, time.April, 20)},
	}

	deduped, _ := Deduplicate("l-1", periods)
	if len(deduped) != 1 || deduped[0].ID != "newer" {
		t.Errorf("kept %v, want the most recently created period", deduped[0].ID)
	}
}

func TestDeduplicateSortsAndPreservesDistinctDueDates(t *testing.T) {
	periods := []lease.PaymentPeriod{
		{ID: "b", DueDate: calendar.NewDate(2024, time.July, 1)},
		{ID: "a", DueDate: calendar.NewDate(2024, time.June, 1)},
		{ID: "c", DueDate: calendar.NewDate(2024, time.August, 1)},
	}

	deduped, warnings := Deduplicate("l-1", periods)

	if len(deduped) != 3 || len(warnings) != 0 {
		t.Fatalf("clean data changed: %d periods, %d warnings", len(deduped), len(warnings))
	}
	for i := 1; i < len(deduped); i++ {
		if deduped[i].DueDate.Before(deduped[i-1].DueDate) {
			t.Errorf("output not sorted by due date")
		}
	}
}

func TestCurrentPeriod(t *testing.T) {
	today := calendar.NewDate(2024, time.June, 15)
	periods := []lease.PaymentPeriod{
		{ID: "may", DueDate: calendar.NewDate(2024, time.May, 1), Status: lease.PaymentPaid},
		{ID: "june", DueDate: calendar.NewDate(2024, time.June, 1), Status: lease.PaymentPending},
		{ID: "july", DueDate: calendar.NewDate(2024, time.July, 1), Status: lease.PaymentPending},
	}

	current := Current(periods, today)
	if current == nil || current.ID != "june" {
		t.Errorf("current period = %v, want june", current)
	}

	if got := Current(periods, calendar.NewDate(2024, time.September, 1)); got != nil {
		t.Errorf("expected no current period outside schedule months, got %v", got.ID)
	}
}

func TestNextDueDate(t *testing.T) {
	periods := []lease.PaymentPeriod{
		{DueDate: calendar.NewDate(2024, time.May, 1)},
		{DueDate: calendar.NewDate(2024, time.June, 1)},
		{DueDate: calendar.NewDate(2024, time.July, 1)},
	}

	next := NextDueDate(periods, calendar.NewDate(2024, time.May, 15))
	if next == nil || !next.Equal(calendar.NewDate(2024, time.June, 1)) {
		t.Errorf("next due = %v, want 2024-06-01", next)
	}

	// A due date today counts as next.
	next = NextDueDate(periods, calendar.NewDate(2024, time.June, 1))
	if next == nil || !next.Equal(calendar.NewDate(2024, time.June, 1)) {
		t.Errorf("next due = %v, want 2024-06-01", next)
	}

	if got := NextDueDate(periods, calendar.NewDate(2024, time.August, 1)); got != nil {
		t.Errorf("exhausted schedule returned %v", got)
	}
}
