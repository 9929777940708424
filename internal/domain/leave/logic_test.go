package leave

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekdayCountFullWeek(t *testing.T) {
	// Monday 2025-03-03 through Sunday 2025-03-09.
	days, err := WeekdayCount(date(2025, 3, 3), date(2025, 3, 9))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 5 {
		t.Fatalf("expected 5 weekdays in a full week, got %d", days)
	}
}

func TestWeekdayCountWeekendOnly(t *testing.T) {
	// Saturday 2025-03-08 through Sunday 2025-03-09.
	days, err := WeekdayCount(date(2025, 3, 8), date(2025, 3, 9))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 0 {
		t.Fatalf("expected 0 weekdays on a weekend, got %d", days)
	}
}

func TestWeekdayCountSingleDay(t *testing.T) {
	days, err := WeekdayCount(date(2025, 3, 5), date(2025, 3, 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 1 {
		t.Fatalf("expected 1, got %d", days)
	}
}

func TestWeekdayCountAcrossMonthBoundary(t *testing.T) {
	// Friday 2025-02-28 through Tuesday 2025-03-04: Fri, Mon, Tue.
	days, err := WeekdayCount(date(2025, 2, 28), date(2025, 3, 4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 3 {
		t.Fatalf("expected 3, got %d", days)
	}
}

func TestWeekdayCountInvalidRange(t *testing.T) {
	if _, err := WeekdayCount(date(2025, 3, 5), date(2025, 3, 4)); err == nil {
		t.Fatal("expected error for inverted range")
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusCancelled, true},
		{StatusApproved, StatusRejected, false},
		{StatusRejected, StatusApproved, false},
		{StatusCancelled, StatusApproved, false},
		{StatusApproved, StatusPending, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Fatalf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
