package calendar

import (
	"testing"
	"time"
)

func TestDaysIn(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29}, // leap year
		{2023, time.February, 28},
		{2000, time.February, 29}, // divisible by 400
		{1900, time.February, 28}, // divisible by 100 but not 400
		{2024, time.January, 31},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}
	for _, tt := range tests {
		if got := DaysIn(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysIn(%d, %v) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestClampDay(t *testing.T) {
	if got := ClampDay(31, 2024, time.February); got != 29 {
		t.Errorf("ClampDay(31, 2024, Feb) = %d, want 29", got)
	}
	if got := ClampDay(31, 2023, time.February); got != 28 {
		t.Errorf("ClampDay(31, 2023, Feb) = %d, want 28", got)
	}
	if got := ClampDay(15, 2024, time.February); got != 15 {
		t.Errorf("ClampDay(15, 2024, Feb) = %d, want 15 (no clamping needed)", got)
	}
	if got := ClampDay(31, 2024, time.April); got != 30 {
		t.Errorf("ClampDay(31, 2024, Apr) = %d, want 30", got)
	}
}

func TestOneYearMinusOneDay(t *testing.T) {
	tests := []struct {
		in   Date
		want Date
	}{
		{NewDate(2024, time.March, 10), NewDate(2025, time.March, 9)},
		{NewDate(2024, time.January, 1), NewDate(2024, time.December, 31)},
		// Feb 29 start: +1 year normalizes to Mar 1, -1 day = Feb 28
		{NewDate(2024, time.February, 29), NewDate(2025, time.February, 28)},
	}
	for _, tt := range tests {
		if got := OneYearMinusOneDay(tt.in); !got.Equal(tt.want) {
			t.Errorf("OneYearMinusOneDay(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestDateComparison(t *testing.T) {
	a := NewDate(2024, time.June, 1)
	b := NewDate(2024, time.June, 2)

	if !a.Before(b) || b.Before(a) {
		t.Error("Before ordering wrong")
	}
	if !a.BeforeOrEqual(a) || !a.AfterOrEqual(a) {
		t.Error("OrEqual must hold for equal dates")
	}
}

func TestDateNoTimezoneDrift(t *testing.T) {
	// A date built from a local-zone time must land on the same calendar day.
	loc, err := time.LoadLocation("Pacific/Auckland")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	late := time.Date(2024, time.June, 30, 23, 30, 0, 0, loc)
	d := FromTime(late)
	if d.Day() != 30 || d.Month() != time.June {
		t.Errorf("FromTime shifted the day: got %s", d)
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.March, 10)
	b, err := d.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"2024-03-10"` {
		t.Errorf("MarshalJSON = %s", b)
	}
	var back Date
	if err := back.UnmarshalJSON(b); err != nil {
		t.Fatal(err)
	}
	if !back.Equal(d) {
		t.Errorf("round trip changed date: %s != %s", back, d)
	}
}
