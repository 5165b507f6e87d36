package models

import (
	"time"

	"gorm.io/gorm"
)

type PaymentStatus string
type AgentPaymentStatus string

const (
	PaymentPending     PaymentStatus = "pending" // no request sent yet
	PaymentRequested   PaymentStatus = "requested"
	PaymentSubmitted   PaymentStatus = "submitted"
	PaymentUnderReview PaymentStatus = "under_review"
	PaymentRejected    PaymentStatus = "rejected"
	PaymentApproved    PaymentStatus = "approved"

	AgentPaymentPending AgentPaymentStatus = "pending"
	AgentPaymentPaid    AgentPaymentStatus = "paid"
)

// ProjectPayment is the single payment record of a project, created lazily
// when the coordinator first sends a payment request.
type ProjectPayment struct {
	gorm.Model
	ProjectID uint `gorm:"uniqueIndex;not null" json:"project_id"`

	EstimatedValue float64       `gorm:"type:numeric(12,2);not null" json:"estimated_value"`
	PaymentStatus  PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`

	BankSlipPath         string     `gorm:"size:500" json:"bank_slip_path"`
	BankSlipUploadedAt   *time.Time `json:"bank_slip_uploaded_at"`
	BankSlipUploadedByID *uint      `json:"bank_slip_uploaded_by_id"`

	PaymentRequestedAt   *time.Time `json:"payment_requested_at"`
	PaymentRequestedByID *uint      `json:"payment_requested_by_id"`
	PaymentApprovedAt    *time.Time `json:"payment_approved_at"`
	PaymentApprovedByID  *uint      `json:"payment_approved_by_id"`

	RejectionReason string     `gorm:"type:text" json:"rejection_reason"`
	RejectionCount  int        `gorm:"default:0" json:"rejection_count"`
	LastRejectedAt  *time.Time `json:"last_rejected_at"`

	CoordinatorNotes    string `gorm:"type:text" json:"coordinator_notes"`
	ClientNotes         string `gorm:"type:text" json:"client_notes"`
	PaymentInstructions string `gorm:"type:text" json:"payment_instructions"`

	// commission payout to the agent, independent of the client payment
	AgentPaymentStatus AgentPaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"agent_payment_status"`
	AgentPaymentAmount *float64           `gorm:"type:numeric(12,2)" json:"agent_payment_amount"`
	AgentPaidAt        *time.Time         `json:"agent_paid_at"`
	AgentPaidByID      *uint              `json:"agent_paid_by_id"`
	AgentPaymentNotes  string             `gorm:"type:text" json:"agent_payment_notes"`
}
