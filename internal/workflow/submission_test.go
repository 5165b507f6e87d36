package workflow

import (
	"testing"

	"auditra-backend/internal/models"
)

func TestSubmissionReviewAndApprove(t *testing.T) {
	s := &models.ClientSubmission{Status: models.SubmissionPending}

	if err := MarkSubmissionReviewed(s, 1); err != nil {
		t.Fatalf("mark reviewed: %v", err)
	}
	if s.Status != models.SubmissionReviewed || s.ReviewedAt == nil {
		t.Fatal("review not recorded")
	}
	if err := MarkSubmissionReviewed(s, 1); !IsViolation(err) {
		t.Fatalf("double review: want violation, got %v", err)
	}

	if err := ApproveSubmission(s, 1); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if s.Status != models.SubmissionApproved {
		t.Fatalf("status = %s, want approved", s.Status)
	}
	if err := ApproveSubmission(s, 1); !IsViolation(err) {
		t.Fatalf("double approve: want violation, got %v", err)
	}
}

func TestRejectSubmissionIsTerminal(t *testing.T) {
	s := &models.ClientSubmission{Status: models.SubmissionReviewed}
	if err := RejectSubmission(s, "", 1); !IsViolation(err) {
		t.Fatalf("empty reason: want violation, got %v", err)
	}
	if err := RejectSubmission(s, "duplicate", 1); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if s.Status != models.SubmissionRejected {
		t.Fatalf("status = %s, want rejected", s.Status)
	}
	if err := ApproveSubmission(s, 1); !IsViolation(err) {
		t.Fatalf("approving a rejected submission: want violation, got %v", err)
	}
}

func TestAssignCoordinatorGuards(t *testing.T) {
	s := &models.ClientSubmission{Status: models.SubmissionPending}
	if _, err := AssignCoordinator(s, 7, 1); !IsViolation(err) {
		t.Fatalf("assign before approval: want violation, got %v", err)
	}

	s.Status = models.SubmissionApproved
	a, err := AssignCoordinator(s, 7, 1)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if a.CoordinatorID != 7 || a.Status != models.ResponsePending {
		t.Fatal("assignment record wrong")
	}
	if s.Status != models.SubmissionAssigned || s.CoordinatorResponse != models.ResponsePending {
		t.Fatal("submission not updated")
	}

	// a second assign while the first is unanswered must fail
	if _, err := AssignCoordinator(s, 8, 1); !IsViolation(err) {
		t.Fatalf("assign over pending holder: want violation, got %v", err)
	}
}

func TestAssignmentHandshake(t *testing.T) {
	s := &models.ClientSubmission{Status: models.SubmissionApproved}
	a, err := AssignCoordinator(s, 7, 1)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}

	if err := RejectAssignment(s, a, ""); !IsViolation(err) {
		t.Fatalf("reject without reason: want violation, got %v", err)
	}
	if err := RejectAssignment(s, a, "workload too high"); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if s.CoordinatorResponse != models.ResponseRejected || s.CoordinatorID != nil {
		t.Fatal("rejection should clear the coordinator")
	}
	if a.Status != models.ResponseRejected || a.RejectionReason != "workload too high" {
		t.Fatal("assignment record not updated")
	}

	// rejected response re-enables assignment with a fresh record
	b, err := AssignCoordinator(s, 9, 1)
	if err != nil {
		t.Fatalf("re-assign after rejection: %v", err)
	}
	if b.CoordinatorID != 9 {
		t.Fatalf("coordinator = %d, want 9", b.CoordinatorID)
	}
	if a.Status != models.ResponseRejected {
		t.Fatal("prior record must be retained, not overwritten")
	}

	if err := AcceptAssignment(s, b); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if s.CoordinatorResponse != models.ResponseAccepted || b.Status != models.ResponseAccepted {
		t.Fatal("acceptance not recorded")
	}
	if err := AcceptAssignment(s, b); !IsViolation(err) {
		t.Fatalf("double accept: want violation, got %v", err)
	}
}

// End-to-end scenario C: rejected intake can never reach coordinator assignment.
func TestRejectedSubmissionScenario(t *testing.T) {
	s := &models.ClientSubmission{Status: models.SubmissionPending}

	if err := MarkSubmissionReviewed(s, 1); err != nil {
		t.Fatalf("mark reviewed: %v", err)
	}
	if err := RejectSubmission(s, "duplicate", 1); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if s.Status != models.SubmissionRejected {
		t.Fatalf("status = %s, want rejected", s.Status)
	}
	if _, err := AssignCoordinator(s, 7, 1); !IsViolation(err) {
		t.Fatalf("assign on rejected submission: want violation, got %v", err)
	}
}
