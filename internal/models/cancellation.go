package models

import (
	"time"

	"gorm.io/gorm"
)

type CancellationStatus string

const (
	CancellationPending  CancellationStatus = "pending"
	CancellationApproved CancellationStatus = "approved"
	CancellationRejected CancellationStatus = "rejected"
)

// CancellationRequest: at most one pending request per project; approval
// forces the project into cancelled.
type CancellationRequest struct {
	gorm.Model
	ProjectID     uint    `gorm:"index;not null" json:"project_id"`
	Project       Project `json:"project"`
	RequestedByID uint    `json:"requested_by_id"`
	RequestedBy   User    `gorm:"foreignKey:RequestedByID" json:"requested_by"`

	Reason string             `gorm:"type:text;not null" json:"reason"`
	Status CancellationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	ReviewedByID *uint      `json:"reviewed_by_id"`
	ReviewedBy   *User      `gorm:"foreignKey:ReviewedByID" json:"reviewed_by,omitempty"`
	AdminRemarks string     `gorm:"type:text" json:"admin_remarks"`
	ReviewedAt   *time.Time `json:"reviewed_at"`
}
