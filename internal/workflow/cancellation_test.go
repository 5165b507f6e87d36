package workflow

import (
	"testing"

	"auditra-backend/internal/models"
)

func TestNewCancellationRequest(t *testing.T) {
	if _, err := NewCancellationRequest(1, 2, "  ", false); !IsViolation(err) {
		t.Fatalf("empty reason: want violation, got %v", err)
	}
	if _, err := NewCancellationRequest(1, 2, "client withdrew", true); !IsViolation(err) {
		t.Fatalf("second request while pending: want violation, got %v", err)
	}
	req, err := NewCancellationRequest(1, 2, "client withdrew", false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if req.Status != models.CancellationPending || req.Reason != "client withdrew" {
		t.Fatal("request built wrong")
	}
}

func TestApproveCancellationForcesProjectCancelled(t *testing.T) {
	p := &models.Project{Status: models.ProjectInProgress}
	req := &models.CancellationRequest{ProjectID: 1, Status: models.CancellationPending}

	if err := ApproveCancellation(req, p, "agreed", 1); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if req.Status != models.CancellationApproved || req.ReviewedAt == nil {
		t.Fatal("approval not recorded")
	}
	if p.Status != models.ProjectCancelled {
		t.Fatalf("project status = %s, want cancelled", p.Status)
	}

	// terminal per request instance
	if err := ApproveCancellation(req, p, "", 1); !IsViolation(err) {
		t.Fatalf("re-approve: want violation, got %v", err)
	}
}

func TestRejectCancellationAllowsNewRequest(t *testing.T) {
	p := &models.Project{Status: models.ProjectInProgress}
	req := &models.CancellationRequest{ProjectID: 1, Status: models.CancellationPending}

	if err := RejectCancellation(req, "", 1); !IsViolation(err) {
		t.Fatalf("reject without remarks: want violation, got %v", err)
	}
	if err := RejectCancellation(req, "project nearly done", 1); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if req.Status != models.CancellationRejected || req.AdminRemarks == "" {
		t.Fatal("rejection not recorded")
	}
	if p.Status != models.ProjectInProgress {
		t.Fatal("rejection must not touch the project")
	}

	// after rejection a fresh request may be created (no pending one left)
	if _, err := NewCancellationRequest(1, 2, "still want out", false); err != nil {
		t.Fatalf("new request after rejection: %v", err)
	}
}
