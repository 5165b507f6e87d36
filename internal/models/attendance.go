package models

import (
	"time"

	"gorm.io/gorm"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceHalfDay AttendanceStatus = "half_day"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceOnLeave AttendanceStatus = "leave"
)

// Attendance is one employee-day. Regular hours run 8 AM to 5 PM; overtime is
// a separate start/end pair after checkout.
type Attendance struct {
	gorm.Model
	UserID uint      `gorm:"not null;uniqueIndex:idx_attendance_user_date,priority:1" json:"user_id"`
	User   User      `json:"user"`
	Date   time.Time `gorm:"type:date;not null;uniqueIndex:idx_attendance_user_date,priority:2" json:"date"`

	CheckIn  *time.Time `json:"check_in"`
	CheckOut *time.Time `json:"check_out"`

	OvertimeStart *time.Time `json:"overtime_start"`
	OvertimeEnd   *time.Time `json:"overtime_end"`

	Status        AttendanceStatus `gorm:"type:varchar(20);not null;default:'absent'" json:"status"`
	WorkingHours  float64          `gorm:"type:numeric(5,2);default:0" json:"working_hours"`
	OvertimeHours float64          `gorm:"type:numeric(5,2);default:0" json:"overtime_hours"`

	Notes string `gorm:"type:text" json:"notes"`
}

// FullDay means at least 4.5 working hours.
func (a *Attendance) FullDay() bool {
	return a.WorkingHours >= 4.5
}

// Holiday dates are skipped by the working-day check.
type Holiday struct {
	gorm.Model
	Name     string    `gorm:"size:200;not null" json:"name"`
	Date     time.Time `gorm:"type:date;uniqueIndex;not null" json:"date"`
	IsActive bool      `gorm:"default:true" json:"is_active"`
}
