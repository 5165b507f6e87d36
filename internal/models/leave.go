package models

import (
	"time"

	"gorm.io/gorm"
)

type LeaveType string
type LeaveStatus string

const (
	LeaveAnnual    LeaveType = "annual"
	LeaveSick      LeaveType = "sick"
	LeaveCasual    LeaveType = "casual"
	LeaveEmergency LeaveType = "emergency"
	LeaveOther     LeaveType = "other"

	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

type LeaveRequest struct {
	gorm.Model
	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `json:"user"`

	LeaveType LeaveType   `gorm:"type:varchar(20);not null" json:"leave_type"`
	StartDate time.Time   `gorm:"not null" json:"start_date"`
	EndDate   time.Time   `gorm:"not null" json:"end_date"`
	Reason    string      `gorm:"type:text;not null" json:"reason"`
	Status    LeaveStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	ReviewedByID *uint      `json:"reviewed_by_id"`
	ReviewedBy   *User      `gorm:"foreignKey:ReviewedByID" json:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time `json:"reviewed_at"`
	Notes        string     `gorm:"type:text" json:"notes"`
}

// Days is inclusive of both endpoints.
func (l *LeaveRequest) Days() int {
	return int(l.EndDate.Sub(l.StartDate).Hours()/24) + 1
}

type PaymentSlipStatus string

const (
	SlipGenerated PaymentSlipStatus = "generated"
	SlipPaid      PaymentSlipStatus = "paid"
)

// PaymentSlip is a monthly salary slip generated by HR; employees see their
// own slips once published.
type PaymentSlip struct {
	gorm.Model
	UserID uint `gorm:"index;not null;uniqueIndex:idx_slip_user_month,priority:1" json:"user_id"`
	User   User `json:"user"`

	Month int `gorm:"not null;uniqueIndex:idx_slip_user_month,priority:2" json:"month"`
	Year  int `gorm:"not null;uniqueIndex:idx_slip_user_month,priority:3" json:"year"`

	Salary          float64 `gorm:"type:numeric(10,2);not null" json:"salary"`
	Allowances      float64 `gorm:"type:numeric(10,2);default:0" json:"allowances"`
	EPFContribution float64 `gorm:"type:numeric(10,2);default:0" json:"epf_contribution"`
	OvertimeHours   float64 `gorm:"type:numeric(5,2);default:0" json:"overtime_hours"`
	OvertimePay     float64 `gorm:"type:numeric(10,2);default:0" json:"overtime_pay"`
	NetSalary       float64 `gorm:"type:numeric(10,2);default:0" json:"net_salary"`

	RoleAtGeneration UserRole          `gorm:"type:varchar(30)" json:"role"`
	SlipNumber       string            `gorm:"size:50;uniqueIndex" json:"slip_number"`
	Status           PaymentSlipStatus `gorm:"type:varchar(20);not null;default:'generated'" json:"status"`
	Published        bool              `gorm:"default:false" json:"published"`

	GeneratedByID *uint      `json:"generated_by_id"`
	PublishedAt   *time.Time `json:"published_at"`
	PaidAt        *time.Time `json:"paid_at"`
}
