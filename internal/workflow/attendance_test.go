package workflow

import (
	"testing"
	"time"

	"auditra-backend/internal/models"
)

func at(hour, min int) time.Time {
	// Monday 2026-08-24
	return time.Date(2026, 8, 24, hour, min, 0, 0, time.UTC)
}

func TestWorkingDay(t *testing.T) {
	monday := at(9, 0)
	sunday := time.Date(2026, 8, 23, 9, 0, 0, 0, time.UTC)

	if !WorkingDay(monday, false) {
		t.Fatal("monday should be a working day")
	}
	if WorkingDay(sunday, false) {
		t.Fatal("sunday is never a working day")
	}
	if WorkingDay(monday, true) {
		t.Fatal("holidays are not working days")
	}
}

func TestCheckInWindow(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		ok   bool
	}{
		{"before window", at(5, 59), false},
		{"window opens", at(6, 0), true},
		{"just before close", at(7, 59), true},
		{"window closed", at(8, 0), false},
		{"mid-day", at(12, 0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := &models.Attendance{Status: models.AttendanceAbsent}
			err := CheckIn(a, tc.now, true)
			if tc.ok && err != nil {
				t.Fatalf("check-in: %v", err)
			}
			if !tc.ok && !IsViolation(err) {
				t.Fatalf("want violation, got %v", err)
			}
			if tc.ok && (a.CheckIn == nil || a.Status != models.AttendancePresent) {
				t.Fatal("check-in not recorded")
			}
		})
	}
}

func TestCheckInGuards(t *testing.T) {
	a := &models.Attendance{}
	if err := CheckIn(a, at(7, 0), false); !IsViolation(err) {
		t.Fatalf("non-working day: want violation, got %v", err)
	}
	if err := CheckIn(a, at(7, 0), true); err != nil {
		t.Fatalf("check-in: %v", err)
	}
	if err := CheckIn(a, at(7, 30), true); !IsViolation(err) {
		t.Fatalf("double check-in: want violation, got %v", err)
	}
}

func TestCheckOutComputesHoursAndStatus(t *testing.T) {
	cases := []struct {
		name   string
		in     time.Time
		out    time.Time
		hours  float64
		status models.AttendanceStatus
	}{
		// early check-in clamps to 8 AM, late checkout clamps to 5 PM
		{"full day", at(7, 0), at(18, 0), 9, models.AttendancePresent},
		{"half day", at(8, 0), at(13, 0), 5, models.AttendanceHalfDay},
		{"left before noon", at(8, 0), at(11, 0), 3, models.AttendanceAbsent},
		{"exact five pm", at(9, 0), at(17, 0), 8, models.AttendancePresent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := tc.in
			a := &models.Attendance{CheckIn: &in, Status: models.AttendancePresent}
			if err := CheckOut(a, tc.out); err != nil {
				t.Fatalf("check-out: %v", err)
			}
			if a.WorkingHours != tc.hours {
				t.Fatalf("working hours = %v, want %v", a.WorkingHours, tc.hours)
			}
			if a.Status != tc.status {
				t.Fatalf("status = %s, want %s", a.Status, tc.status)
			}
		})
	}
}

func TestCheckOutGuards(t *testing.T) {
	a := &models.Attendance{}
	if err := CheckOut(a, at(17, 0)); !IsViolation(err) {
		t.Fatalf("check-out without check-in: want violation, got %v", err)
	}

	in := at(7, 0)
	a = &models.Attendance{CheckIn: &in, Status: models.AttendancePresent}
	if err := CheckOut(a, at(17, 30)); err != nil {
		t.Fatalf("check-out: %v", err)
	}
	// a late checkout records 5 PM, not the actual time
	if a.CheckOut.Hour() != 17 || a.CheckOut.Minute() != 0 {
		t.Fatalf("check-out recorded at %v, want 5 PM cap", a.CheckOut)
	}
	if err := CheckOut(a, at(18, 0)); !IsViolation(err) {
		t.Fatalf("double check-out: want violation, got %v", err)
	}
}

func TestOvertimePair(t *testing.T) {
	in, out := at(7, 0), at(17, 0)

	a := &models.Attendance{CheckIn: &in, Status: models.AttendancePresent}
	if err := StartOvertime(a, at(18, 0)); !IsViolation(err) {
		t.Fatalf("overtime before checkout: want violation, got %v", err)
	}

	a.CheckOut = &out
	if err := StartOvertime(a, at(14, 0)); !IsViolation(err) {
		t.Fatalf("overtime during working hours: want violation, got %v", err)
	}
	if err := StartOvertime(a, at(18, 0)); err != nil {
		t.Fatalf("start overtime: %v", err)
	}
	if err := StartOvertime(a, at(19, 0)); !IsViolation(err) {
		t.Fatalf("double start: want violation, got %v", err)
	}

	if err := EndOvertime(a, at(20, 30)); err != nil {
		t.Fatalf("end overtime: %v", err)
	}
	if a.OvertimeHours != 2.5 {
		t.Fatalf("overtime hours = %v, want 2.5", a.OvertimeHours)
	}
	if err := EndOvertime(a, at(21, 0)); !IsViolation(err) {
		t.Fatalf("double end: want violation, got %v", err)
	}
}

func TestAbsenteeCannotStartOvertime(t *testing.T) {
	in, out := at(8, 0), at(11, 0)
	a := &models.Attendance{CheckIn: &in, Status: models.AttendancePresent}
	if err := CheckOut(a, out); err != nil {
		t.Fatalf("check-out: %v", err)
	}
	if a.Status != models.AttendanceAbsent {
		t.Fatalf("status = %s, want absent", a.Status)
	}
	if err := StartOvertime(a, at(18, 0)); !IsViolation(err) {
		t.Fatalf("absent overtime: want violation, got %v", err)
	}
}

func TestEndOvertimeRequiresStart(t *testing.T) {
	a := &models.Attendance{}
	if err := EndOvertime(a, at(20, 0)); !IsViolation(err) {
		t.Fatalf("end without start: want violation, got %v", err)
	}
}
