package workflow

import (
	"fmt"
	"strings"
	"time"

	"auditra-backend/internal/models"
)

// Client submission intake: pending -> reviewed -> approved -> assigned, with
// rejected reachable from pending/reviewed. coordinator_response is an
// orthogonal axis on top of the assignment; only the latest
// CoordinatorAssignment row decides the current coordinator.

// MarkSubmissionReviewed flags a submission as looked-at by the admin.
func MarkSubmissionReviewed(s *models.ClientSubmission, actorID uint) error {
	if s.Status != models.SubmissionPending {
		return violation(fmt.Sprintf("Only pending submissions can be marked reviewed (current status: %s)", s.Status))
	}
	now := time.Now()
	s.Status = models.SubmissionReviewed
	s.ReviewedByID = &actorID
	s.ReviewedAt = &now
	return nil
}

// ApproveSubmission enables coordinator assignment.
func ApproveSubmission(s *models.ClientSubmission, actorID uint) error {
	if s.Status == models.SubmissionApproved {
		return violation("This submission has already been approved")
	}
	if s.Status == models.SubmissionRejected {
		return violation("A rejected submission cannot be approved")
	}
	now := time.Now()
	s.Status = models.SubmissionApproved
	s.ReviewedByID = &actorID
	s.ReviewedAt = &now
	return nil
}

// RejectSubmission terminates the intake; a rejected submission can only be
// deleted afterwards, never resurrected.
func RejectSubmission(s *models.ClientSubmission, reason string, actorID uint) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return violation("Rejection reason is required")
	}
	if s.Status != models.SubmissionPending && s.Status != models.SubmissionReviewed {
		return violation(fmt.Sprintf("Cannot reject a submission with status: %s", s.Status))
	}
	now := time.Now()
	s.Status = models.SubmissionRejected
	s.Notes = reason
	s.ReviewedByID = &actorID
	s.ReviewedAt = &now
	return nil
}

// AssignCoordinator attaches a coordinator to an approved submission and
// returns the new assignment record to append. Re-assignment after a
// coordinator rejection goes through here again; prior records are kept.
func AssignCoordinator(s *models.ClientSubmission, coordinatorID, assignedByID uint) (*models.CoordinatorAssignment, error) {
	reassignable := s.Status == models.SubmissionAssigned && s.CoordinatorResponse == models.ResponseRejected
	if s.Status != models.SubmissionApproved && !reassignable {
		return nil, violation("Submission must be approved before a coordinator can be assigned")
	}
	if s.CoordinatorID != nil && s.CoordinatorResponse != models.ResponseRejected {
		return nil, violation("A coordinator already holds this assignment")
	}
	now := time.Now()
	s.Status = models.SubmissionAssigned
	s.CoordinatorID = &coordinatorID
	s.Coordinator = nil
	s.CoordinatorResponse = models.ResponsePending
	s.RejectionReason = ""
	s.RespondedAt = nil
	s.AssignedAt = &now
	return &models.CoordinatorAssignment{
		SubmissionID:  s.ID,
		CoordinatorID: coordinatorID,
		AssignedByID:  &assignedByID,
		Status:        models.ResponsePending,
	}, nil
}

// AcceptAssignment is the coordinator's own accept of the handshake.
func AcceptAssignment(s *models.ClientSubmission, a *models.CoordinatorAssignment) error {
	if s.CoordinatorResponse != models.ResponsePending {
		return violation(fmt.Sprintf("Already responded to this assignment (%s)", s.CoordinatorResponse))
	}
	now := time.Now()
	s.CoordinatorResponse = models.ResponseAccepted
	s.RespondedAt = &now
	if a != nil {
		a.Status = models.ResponseAccepted
		a.RespondedAt = &now
	}
	return nil
}

// RejectAssignment releases the submission back to the admin for re-assignment.
// The submission keeps no coordinator; the rejected record stays in history.
func RejectAssignment(s *models.ClientSubmission, a *models.CoordinatorAssignment, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return violation("Rejection reason is required")
	}
	if s.CoordinatorResponse != models.ResponsePending {
		return violation(fmt.Sprintf("Already responded to this assignment (%s)", s.CoordinatorResponse))
	}
	now := time.Now()
	s.CoordinatorResponse = models.ResponseRejected
	s.RejectionReason = reason
	s.RespondedAt = &now
	s.CoordinatorID = nil
	s.Coordinator = nil
	if a != nil {
		a.Status = models.ResponseRejected
		a.RejectionReason = reason
		a.RespondedAt = &now
	}
	return nil
}
