package attendance

import (
	"testing"
	"time"
)

var testPolicy = Policy{WorkdayStart: "08:00", WorkdayHours: 8}

func TestIsLate(t *testing.T) {
	onTime := time.Date(2025, 3, 10, 7, 59, 0, 0, time.UTC)
	if testPolicy.IsLate(onTime) {
		t.Fatal("07:59 must not be late")
	}

	exact := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	if testPolicy.IsLate(exact) {
		t.Fatal("08:00 sharp must not be late")
	}

	late := time.Date(2025, 3, 10, 8, 1, 0, 0, time.UTC)
	if !testPolicy.IsLate(late) {
		t.Fatal("08:01 must be late")
	}
}

func TestWorkedHours(t *testing.T) {
	in := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	out := time.Date(2025, 3, 10, 17, 30, 0, 0, time.UTC)

	worked, overtime := testPolicy.WorkedHours(in, out, 60)
	if worked != 8.5 {
		t.Fatalf("expected 8.5 worked hours, got %v", worked)
	}
	if overtime != 0.5 {
		t.Fatalf("expected 0.5 overtime hours, got %v", overtime)
	}
}

func TestWorkedHoursNoOvertime(t *testing.T) {
	in := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	out := time.Date(2025, 3, 10, 16, 0, 0, 0, time.UTC)

	worked, overtime := testPolicy.WorkedHours(in, out, 0)
	if worked != 7 {
		t.Fatalf("expected 7 worked hours, got %v", worked)
	}
	if overtime != 0 {
		t.Fatalf("expected no overtime, got %v", overtime)
	}
	if !testPolicy.IsEarlyDeparture(in, out, 0) {
		t.Fatal("7 worked hours must count as early departure")
	}
}

func TestWorkedHoursInvalidRange(t *testing.T) {
	in := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	out := in.Add(-time.Hour)

	worked, overtime := testPolicy.WorkedHours(in, out, 0)
	if worked != 0 || overtime != 0 {
		t.Fatalf("expected zero hours for inverted range, got %v/%v", worked, overtime)
	}
}
