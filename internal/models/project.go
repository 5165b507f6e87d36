package models

import (
	"time"

	"gorm.io/gorm"
)

type ProjectStatus string
type ProjectPriority string

const (
	ProjectPending    ProjectStatus = "pending"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectCancelled  ProjectStatus = "cancelled"

	PriorityHigh   ProjectPriority = "high"
	PriorityMedium ProjectPriority = "medium"
	PriorityLow    ProjectPriority = "low"
)

type Project struct {
	gorm.Model
	Title       string          `gorm:"size:200;not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	Priority    ProjectPriority `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	Status      ProjectStatus   `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	CoordinatorID uint `json:"coordinator_id"`
	Coordinator   User `json:"coordinator"`

	// team slots; agent is only required when HasAgent is set
	FieldOfficerID *uint `json:"field_officer_id"`
	FieldOfficer   *User `gorm:"foreignKey:FieldOfficerID" json:"field_officer,omitempty"`
	ClientID       *uint `json:"client_id"`
	Client         *User `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	AgentID        *uint `json:"agent_id"`
	Agent          *User `gorm:"foreignKey:AgentID" json:"agent,omitempty"`
	AccessorID     *uint `json:"accessor_id"`
	Accessor       *User `gorm:"foreignKey:AccessorID" json:"accessor,omitempty"`
	SeniorValuerID *uint `json:"senior_valuer_id"`
	SeniorValuer   *User `gorm:"foreignKey:SeniorValuerID" json:"senior_valuer,omitempty"`
	HasAgent       bool  `gorm:"default:false" json:"has_agent"`

	EstimatedValue float64    `gorm:"type:numeric(12,2);default:50000" json:"estimated_value"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`

	Documents []ProjectDocument      `json:"documents,omitempty"`
	History   []ProjectStatusHistory `json:"history,omitempty"`
}

type ProjectDocument struct {
	gorm.Model
	ProjectID    uint   `gorm:"index;not null" json:"project_id"`
	Name         string `gorm:"size:200;not null" json:"name"`
	Description  string `gorm:"type:text" json:"description"`
	FilePath     string `gorm:"size:500;not null" json:"file_path"`
	UploadedByID *uint  `json:"uploaded_by_id"`
	UploadedBy   *User  `gorm:"foreignKey:UploadedByID" json:"uploaded_by,omitempty"`
	// the assigned user this document is intended for
	AssignedToID *uint `json:"assigned_to_id"`
	AssignedTo   *User `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`
}

// ProjectStatusHistory rows are append-only.
type ProjectStatusHistory struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time     `json:"created_at"`
	ProjectID   uint          `gorm:"index;not null" json:"project_id"`
	Status      ProjectStatus `gorm:"type:varchar(20)" json:"status"`
	Notes       string        `gorm:"type:text" json:"notes"`
	CreatedByID *uint         `json:"created_by_id"`
	CreatedBy   *User         `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}

type CommissionReport struct {
	gorm.Model
	ProjectID        uint       `gorm:"index;not null" json:"project_id"`
	Project          Project    `json:"project"`
	GeneratedByID    *uint      `json:"generated_by_id"`
	GeneratedBy      *User      `gorm:"foreignKey:GeneratedByID" json:"generated_by,omitempty"`
	AgentID          *uint      `json:"agent_id"`
	Agent            *User      `gorm:"foreignKey:AgentID" json:"agent,omitempty"`
	ReportPath       string     `gorm:"size:500" json:"report_path"`
	CommissionAmount float64    `gorm:"type:numeric(12,2)" json:"commission_amount"`
	SentToAgent      bool       `gorm:"default:false" json:"sent_to_agent"`
	SentAt           *time.Time `json:"sent_at"`
}
