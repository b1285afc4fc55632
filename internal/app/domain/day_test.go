package domain

import (
	"testing"
	"time"
)

func TestDayBoundsAreUTC(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+2", 2*60*60)
	day := DayOf(time.Date(2026, 3, 10, 1, 30, 0, 0, loc))

	if got := day.String(); got != "2026-03-09" {
		t.Fatalf("unexpected day: got=%s want=2026-03-09", got)
	}
	if !day.Start().Equal(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start: %s", day.Start())
	}
	if !day.End().Equal(time.Date(2026, 3, 9, 23, 59, 59, int(999*time.Millisecond), time.UTC)) {
		t.Fatalf("unexpected end: %s", day.End())
	}
}

func TestParseDayRoundTrip(t *testing.T) {
	t.Parallel()

	day, err := ParseDay("2026-02-28")
	if err != nil {
		t.Fatalf("parse day: %v", err)
	}
	if next := day.AddDays(1).String(); next != "2026-03-01" {
		t.Fatalf("unexpected next day: %s", next)
	}
	if !day.AddDays(-1).Before(day) {
		t.Fatal("expected previous day to sort before")
	}
	if _, err := ParseDay("28/02/2026"); err == nil {
		t.Fatal("expected parse error for invalid layout")
	}
}
