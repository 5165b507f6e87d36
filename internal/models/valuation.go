package models

import (
	"time"

	"gorm.io/gorm"
)

type ValuationStatus string
type ValuationCategory string

const (
	ValuationDraft      ValuationStatus = "draft"
	ValuationSubmitted  ValuationStatus = "submitted"
	ValuationReviewed   ValuationStatus = "reviewed"    // accepted by accessor
	ValuationApproved   ValuationStatus = "approved"    // approved by senior valuer
	ValuationMDApproved ValuationStatus = "md_approved" // final MD/GM approval
	ValuationRejected   ValuationStatus = "rejected"

	CategoryLand     ValuationCategory = "land"
	CategoryBuilding ValuationCategory = "building"
	CategoryVehicle  ValuationCategory = "vehicle"
	CategoryOther    ValuationCategory = "other"
)

// ValuationAction values recorded in the history trail.
const (
	ActionSubmitted          = "submitted"
	ActionResubmitted        = "resubmitted"
	ActionReviewed           = "reviewed"
	ActionRejectedByAccessor = "rejected_by_accessor"
	ActionApprovedBySV       = "approved_by_sv"
	ActionRejectedBySV       = "rejected_by_sv"
	ActionMDApproved         = "md_approved"
	ActionRejectedByMDGM     = "rejected_by_mdgm"
)

type Valuation struct {
	gorm.Model
	ProjectID      uint    `gorm:"index;not null" json:"project_id"`
	Project        Project `json:"project"`
	FieldOfficerID uint    `gorm:"index;not null" json:"field_officer_id"`
	FieldOfficer   User    `gorm:"foreignKey:FieldOfficerID" json:"field_officer"`

	Category       ValuationCategory `gorm:"type:varchar(20);not null" json:"category"`
	Status         ValuationStatus   `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	Description    string            `gorm:"type:text" json:"description"`
	EstimatedValue *float64          `gorm:"type:numeric(15,2)" json:"estimated_value"`
	Notes          string            `gorm:"type:text" json:"notes"`

	RejectionReason      string `gorm:"type:text" json:"rejection_reason"`
	AccessorComments     string `gorm:"type:text" json:"accessor_comments"`
	SeniorValuerComments string `gorm:"type:text" json:"senior_valuer_comments"`
	MDGMComments         string `gorm:"type:text" json:"md_gm_comments"`

	SubmittedReportPath string `gorm:"size:500" json:"submitted_report_path"`
	FinalReportPath     string `gorm:"size:500" json:"final_report_path"`

	SubmittedAt *time.Time         `json:"submitted_at"`
	History     []ValuationHistory `json:"history,omitempty"`
}

// ValuationHistory rows are append-only: one immutable record per gate transition.
type ValuationHistory struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	ValuationID   uint      `gorm:"index;not null" json:"valuation_id"`
	Action        string    `gorm:"size:50;not null" json:"action"`
	PerformedByID *uint     `json:"performed_by_id"`
	PerformedBy   *User     `gorm:"foreignKey:PerformedByID" json:"performed_by,omitempty"`
	Comments      string    `gorm:"type:text" json:"comments"`
}

type Notification struct {
	gorm.Model
	UserID      uint   `gorm:"index;not null" json:"user_id"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Message     string `gorm:"type:text" json:"message"`
	Type        string `gorm:"size:50;default:'rejection'" json:"notification_type"`
	IsRead      bool   `gorm:"default:false" json:"is_read"`
	ValuationID *uint  `json:"valuation_id"`
	ProjectID   *uint  `json:"project_id"`
}
