package models

import (
	"time"

	"gorm.io/gorm"
)

type SubmissionStatus string
type CoordinatorResponse string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionReviewed SubmissionStatus = "reviewed"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
	SubmissionAssigned SubmissionStatus = "assigned"

	ResponsePending  CoordinatorResponse = "pending"
	ResponseAccepted CoordinatorResponse = "accepted"
	ResponseRejected CoordinatorResponse = "rejected"
)

// ClientSubmission is the public intake form a prospective client files.
// Admin reviews it; once approved a coordinator is assigned and must accept
// the assignment before a project is created from it.
type ClientSubmission struct {
	gorm.Model
	FirstName   string `gorm:"size:100" json:"first_name"`
	LastName    string `gorm:"size:100" json:"last_name"`
	Email       string `gorm:"size:255;not null" json:"email"`
	Phone       string `gorm:"size:20" json:"phone"`
	NIC         string `gorm:"size:20" json:"nic"`
	Address     string `gorm:"type:text" json:"address"`
	CompanyName string `gorm:"size:200" json:"company_name"`

	ProjectTitle       string `gorm:"size:200;not null" json:"project_title"`
	ProjectDescription string `gorm:"type:text;not null" json:"project_description"`

	AgentName  string `gorm:"size:200" json:"agent_name"`
	AgentPhone string `gorm:"size:20" json:"agent_phone"`
	AgentEmail string `gorm:"size:255" json:"agent_email"`

	Status SubmissionStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Notes  string           `gorm:"type:text" json:"notes"`

	ReviewedByID *uint      `json:"reviewed_by_id"`
	ReviewedBy   *User      `gorm:"foreignKey:ReviewedByID" json:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time `json:"reviewed_at"`

	// current coordinator; the latest CoordinatorAssignment row is authoritative,
	// older rows are kept for the audit trail
	CoordinatorID       *uint               `json:"coordinator_id"`
	Coordinator         *User               `gorm:"foreignKey:CoordinatorID" json:"coordinator,omitempty"`
	CoordinatorResponse CoordinatorResponse `gorm:"type:varchar(20);not null;default:'pending'" json:"coordinator_response"`
	RejectionReason     string              `gorm:"type:text" json:"rejection_reason"`
	AssignedAt          *time.Time          `json:"assigned_at"`
	RespondedAt         *time.Time          `json:"responded_at"`

	ProjectCreated bool                    `gorm:"default:false" json:"project_created"`
	Assignments    []CoordinatorAssignment `json:"assignments,omitempty"`
}

// CoordinatorAssignment records one assign attempt; append-only.
type CoordinatorAssignment struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AssignedAt   time.Time `gorm:"autoCreateTime" json:"assigned_at"`
	SubmissionID uint      `gorm:"index;not null" json:"submission_id"`

	CoordinatorID uint  `gorm:"not null" json:"coordinator_id"`
	Coordinator   User  `gorm:"foreignKey:CoordinatorID" json:"coordinator"`
	AssignedByID  *uint `json:"assigned_by_id"`

	Status          CoordinatorResponse `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	RejectionReason string              `gorm:"type:text" json:"rejection_reason"`
	RespondedAt     *time.Time          `json:"responded_at"`
}
