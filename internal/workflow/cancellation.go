package workflow

import (
	"fmt"
	"strings"
	"time"

	"auditra-backend/internal/models"
)

// NewCancellationRequest validates and builds a request for a project.
// hasPending is whether the project already has an outstanding request;
// at most one may be pending at a time.
func NewCancellationRequest(projectID, requestedByID uint, reason string, hasPending bool) (*models.CancellationRequest, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, violation("Cancellation reason is required")
	}
	if hasPending {
		return nil, violation("A cancellation request is already pending for this project")
	}
	return &models.CancellationRequest{
		ProjectID:     projectID,
		RequestedByID: requestedByID,
		Reason:        reason,
		Status:        models.CancellationPending,
	}, nil
}

// ApproveCancellation resolves the request and forces the parent project into
// cancelled, its terminal state.
func ApproveCancellation(req *models.CancellationRequest, p *models.Project, remarks string, reviewerID uint) error {
	if req.Status != models.CancellationPending {
		return violation(fmt.Sprintf("Request has already been %s", req.Status))
	}
	now := time.Now()
	req.Status = models.CancellationApproved
	req.ReviewedByID = &reviewerID
	req.AdminRemarks = strings.TrimSpace(remarks)
	req.ReviewedAt = &now
	p.Status = models.ProjectCancelled
	return nil
}

// RejectCancellation keeps the project alive; remarks are mandatory and the
// requester may file a new request afterwards.
func RejectCancellation(req *models.CancellationRequest, remarks string, reviewerID uint) error {
	remarks = strings.TrimSpace(remarks)
	if remarks == "" {
		return violation("Admin remarks are required when rejecting")
	}
	if req.Status != models.CancellationPending {
		return violation(fmt.Sprintf("Request has already been %s", req.Status))
	}
	now := time.Now()
	req.Status = models.CancellationRejected
	req.ReviewedByID = &reviewerID
	req.AdminRemarks = remarks
	req.ReviewedAt = &now
	return nil
}
