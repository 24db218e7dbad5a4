package lease

import (
	"testing"
	"time"

	"github.com/propease/lease-engine/calendar"
)

func TestResolveTermKindLabelWins(t *testing.T) {
	end := calendar.NewDate(2025, time.May, 31)

	tests := []struct {
		name  string
		terms string
		end   *calendar.Date
		want  TermKind
	}{
		{"canonical month-to-month label", "Month-to-Month", nil, TermMonthToMonth},
		{"canonical fixed label", "Fixed Term", &end, TermFixed},
		{"label beats end date presence", "Month-to-Month", &end, TermMonthToMonth},
		{"case-insensitive substring", "MONTH TO MONTH tenancy", nil, TermMonthToMonth},
		{"non-month label means fixed", "12 year ground lease", nil, TermFixed},
		{"no label, end date present", "", &end, TermFixed},
		{"no label, no end date", "", nil, TermMonthToMonth},
		{"whitespace label treated as absent", "   ", &end, TermFixed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveTermKind(tt.terms, tt.end); got != tt.want {
				t.Errorf("ResolveTermKind(%q) = %s, want %s", tt.terms, got, tt.want)
			}
		})
	}
}

func TestDisplayEndDateTiers(t *testing.T) {
	today := calendar.NewDate(2024, time.June, 15)
	start := calendar.NewDate(2024, time.March, 10)
	stored := calendar.NewDate(2025, time.January, 31)

	t.Run("fixed uses stored end verbatim", func(t *testing.T) {
		if got := DisplayEndDate(TermFixed, start, &stored, today); !got.Equal(stored) {
			t.Errorf("got %s, want %s", got, stored)
		}
	})

	t.Run("month-to-month prefers stored end once persisted", func(t *testing.T) {
		if got := DisplayEndDate(TermMonthToMonth, start, &stored, today); !got.Equal(stored) {
			t.Errorf("got %s, want %s", got, stored)
		}
	})

	t.Run("month-to-month projects start plus a year minus a day", func(t *testing.T) {
		want := calendar.NewDate(2025, time.March, 9)
		if got := DisplayEndDate(TermMonthToMonth, start, nil, today); !got.Equal(want) {
			t.Errorf("got %s, want %s", got, want)
		}
	})

	t.Run("missing start falls back to today", func(t *testing.T) {
		want := calendar.NewDate(2025, time.June, 14)
		if got := DisplayEndDate(TermMonthToMonth, calendar.Date{}, nil, today); !got.Equal(want) {
			t.Errorf("got %s, want %s", got, want)
		}
	})
}

// Display end date must be stable under round-trip: derive, persist, re-read,
// re-derive — same answer, because a stored end date is authoritative.
func TestDisplayEndDateRoundTripStability(t *testing.T) {
	today := calendar.NewDate(2024, time.June, 15)
	start := calendar.NewDate(2024, time.March, 10)

	first := DisplayEndDate(TermMonthToMonth, start, nil, today)

	// Simulate persistence of the derived value and a later re-read.
	stored := first
	laterToday := today.AddDays(200)
	second := DisplayEndDate(TermMonthToMonth, start, &stored, laterToday)

	if !second.Equal(first) {
		t.Errorf("display end date drifted across round-trip: %s then %s", first, second)
	}
}

func TestNominalHorizon(t *testing.T) {
	start := calendar.NewDate(2024, time.March, 10)
	if got, want := NominalHorizon(start), calendar.NewDate(2025, time.March, 10); !got.Equal(want) {
		t.Errorf("NominalHorizon(%s) = %s, want %s", start, got, want)
	}
}
