package lease

import (
	"testing"
	"time"

	"github.com/propease/lease-engine/calendar"
)

func TestResolveStatus(t *testing.T) {
	today := calendar.NewDate(2024, time.June, 15)
	end := calendar.NewDate(2024, time.May, 31)
	futureEnd := calendar.NewDate(2025, time.May, 31)

	tests := []struct {
		name  string
		start calendar.Date
		end   *calendar.Date
		want  Status
	}{
		{"future start is pending", calendar.NewDate(2024, time.July, 1), nil, StatusPending},
		{"future start with end still pending", calendar.NewDate(2024, time.July, 1), &futureEnd, StatusPending},
		{"past start, no end, active", calendar.NewDate(2024, time.January, 1), nil, StatusActive},
		{"past start, end passed, ended", calendar.NewDate(2024, time.January, 1), &end, StatusEnded},
		{"past start, end in future, active", calendar.NewDate(2024, time.January, 1), &futureEnd, StatusActive},
		{"start today is active", today, nil, StatusActive},
		{"end today is still active", calendar.NewDate(2024, time.January, 1), &today, StatusActive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveStatus(tt.start, tt.end, today); got != tt.want {
				t.Errorf("ResolveStatus() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestResolverNeverProducesTerminated(t *testing.T) {
	// Terminated is an explicit staff override, not a time-derived state.
	today := calendar.Today()
	for _, start := range []calendar.Date{today.AddDays(-1000), today, today.AddDays(1000)} {
		for _, end := range []*calendar.Date{nil, &today} {
			if got := ResolveStatus(start, end, today); got == StatusTerminated {
				t.Fatalf("resolver produced Terminated for start=%s", start)
			}
		}
	}
}

func TestMonthToMonthHorizonDoesNotEndEarly(t *testing.T) {
	// A month-to-month lease evaluated within its nominal horizon stays Active.
	start := calendar.NewDate(2024, time.March, 10)
	horizon := NominalHorizon(start)
	today := calendar.NewDate(2025, time.March, 1)
	if got := ResolveStatus(start, &horizon, today); got != StatusActive {
		t.Errorf("status inside horizon = %s, want Active", got)
	}
	// Past the horizon the resolver does flip to Ended; re-extension is the
	// orchestrator's job, not the resolver's.
	later := calendar.NewDate(2025, time.March, 11)
	if got := ResolveStatus(start, &horizon, later); got != StatusEnded {
		t.Errorf("status past horizon = %s, want Ended", got)
	}
}
