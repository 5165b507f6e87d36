package workflow

import (
	"fmt"
	"time"

	"auditra-backend/internal/models"
)

// Attendance day shape: check-in (6-8 AM window) -> check-out (capped at
// 5 PM) -> optional overtime start/end (5 PM to 8 AM). Working hours are
// clamped to the 8 AM - 5 PM band; the checkout time decides the status:
// before noon absent, before 5 PM half_day, otherwise present.

const (
	checkInOpenHour  = 6
	checkInCloseHour = 8
	workStartHour    = 8
	workEndHour      = 17
)

// WorkingDay: Sundays and holidays are off.
func WorkingDay(date time.Time, isHoliday bool) bool {
	return date.Weekday() != time.Sunday && !isHoliday
}

// CheckIn opens the attendance day.
func CheckIn(a *models.Attendance, now time.Time, workingDay bool) error {
	if !workingDay {
		return violation("Today is not a working day")
	}
	if now.Hour() < checkInOpenHour || now.Hour() >= checkInCloseHour {
		return violation(fmt.Sprintf("Check-in is only allowed between 6 AM and 8 AM. Current time: %s", now.Format("3:04 PM")))
	}
	if a.CheckIn != nil {
		return violation("Already checked in for today")
	}
	a.CheckIn = &now
	a.Status = models.AttendancePresent
	return nil
}

// CheckOut closes the regular working day. A checkout after 5 PM is recorded
// as 5 PM; anything past that is overtime territory.
func CheckOut(a *models.Attendance, now time.Time) error {
	if a.CheckIn == nil {
		return violation("Please check in first")
	}
	if a.CheckOut != nil {
		return violation("Already checked out for today")
	}
	fivePM := time.Date(now.Year(), now.Month(), now.Day(), workEndHour, 0, 0, 0, now.Location())
	out := now
	if out.After(fivePM) {
		out = fivePM
	}
	a.CheckOut = &out
	a.WorkingHours = regularHours(*a.CheckIn, out)
	switch {
	case out.Hour() < 12:
		a.Status = models.AttendanceAbsent
	case out.Hour() < workEndHour:
		a.Status = models.AttendanceHalfDay
	default:
		a.Status = models.AttendancePresent
	}
	return nil
}

// StartOvertime begins the after-hours pair; only after checkout and only
// between 5 PM and 8 AM.
func StartOvertime(a *models.Attendance, now time.Time) error {
	if a.Status == models.AttendanceAbsent {
		return violation("Cannot start overtime while marked absent for today")
	}
	if a.CheckOut == nil {
		return violation("Please check out first before starting overtime")
	}
	if a.OvertimeStart != nil {
		return violation("Overtime already started")
	}
	if now.Hour() < workEndHour && now.Hour() >= workStartHour {
		return violation(fmt.Sprintf("Overtime can only start between 5 PM and 8 AM. Current time: %s", now.Format("3:04 PM")))
	}
	a.OvertimeStart = &now
	return nil
}

func EndOvertime(a *models.Attendance, now time.Time) error {
	if a.OvertimeStart == nil {
		return violation("Overtime not started")
	}
	if a.OvertimeEnd != nil {
		return violation("Overtime already ended")
	}
	a.OvertimeEnd = &now
	a.OvertimeHours = spanHours(*a.OvertimeStart, now)
	return nil
}

// regularHours clamps the pair to the 8 AM - 5 PM band before measuring.
func regularHours(in, out time.Time) float64 {
	start := time.Date(in.Year(), in.Month(), in.Day(), workStartHour, 0, 0, 0, in.Location())
	if in.After(start) {
		start = in
	}
	end := time.Date(out.Year(), out.Month(), out.Day(), workEndHour, 0, 0, 0, out.Location())
	if out.Before(end) {
		end = out
	}
	return spanHours(start, end)
}

func spanHours(from, to time.Time) float64 {
	if to.Before(from) {
		return 0
	}
	return to.Sub(from).Hours()
}
