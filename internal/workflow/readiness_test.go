package workflow

import (
	"testing"

	"auditra-backend/internal/models"
)

func uintPtr(v uint) *uint { return &v }

func fullyStaffedProject() *models.Project {
	return &models.Project{
		Status:         models.ProjectPending,
		FieldOfficerID: uintPtr(2),
		ClientID:       uintPtr(3),
		AccessorID:     uintPtr(4),
		SeniorValuerID: uintPtr(5),
	}
}

func approvedPayment() *models.ProjectPayment {
	return &models.ProjectPayment{PaymentStatus: models.PaymentApproved}
}

func TestCanStartRequiresEveryRoleAndApprovedPayment(t *testing.T) {
	p := fullyStaffedProject()
	pay := approvedPayment()

	if !CanStart(p, pay) {
		t.Fatal("fully staffed project with approved payment should be startable")
	}

	// removing any single requirement flips the predicate
	cases := []struct {
		name  string
		mutate func(*models.Project, *models.ProjectPayment)
	}{
		{"no field officer", func(p *models.Project, _ *models.ProjectPayment) { p.FieldOfficerID = nil }},
		{"no client", func(p *models.Project, _ *models.ProjectPayment) { p.ClientID = nil }},
		{"no accessor", func(p *models.Project, _ *models.ProjectPayment) { p.AccessorID = nil }},
		{"no senior valuer", func(p *models.Project, _ *models.ProjectPayment) { p.SeniorValuerID = nil }},
		{"payment not approved", func(_ *models.Project, pay *models.ProjectPayment) { pay.PaymentStatus = models.PaymentSubmitted }},
		{"agent required but unassigned", func(p *models.Project, _ *models.ProjectPayment) { p.HasAgent = true }},
	}
	for _, tc := range cases {
		p := fullyStaffedProject()
		pay := approvedPayment()
		tc.mutate(p, pay)
		if CanStart(p, pay) {
			t.Errorf("%s: predicate should be false", tc.name)
		}
	}
}

func TestCanStartAgentOnlyRequiredWhenFlagged(t *testing.T) {
	p := fullyStaffedProject()
	p.HasAgent = true
	if CanStart(p, approvedPayment()) {
		t.Fatal("agent flagged but unassigned, predicate must be false")
	}
	p.AgentID = uintPtr(6)
	if !CanStart(p, approvedPayment()) {
		t.Fatal("agent assigned, predicate must be true")
	}
}

func TestCanStartNilPayment(t *testing.T) {
	if CanStart(fullyStaffedProject(), nil) {
		t.Fatal("no payment record, predicate must be false")
	}
}

func TestStartProjectGuards(t *testing.T) {
	p := fullyStaffedProject()
	p.Status = models.ProjectInProgress
	if err := StartProject(p, approvedPayment()); !IsViolation(err) {
		t.Fatalf("starting an in-progress project: want violation, got %v", err)
	}

	p = fullyStaffedProject()
	p.Status = models.ProjectCompleted
	if err := StartProject(p, approvedPayment()); !IsViolation(err) {
		t.Fatalf("starting a completed project: want violation, got %v", err)
	}

	p = fullyStaffedProject()
	if err := StartProject(p, nil); !IsViolation(err) {
		t.Fatalf("starting without a payment record: want violation, got %v", err)
	}

	p = fullyStaffedProject()
	if err := StartProject(p, approvedPayment()); err != nil {
		t.Fatalf("valid start: %v", err)
	}
	if p.Status != models.ProjectInProgress {
		t.Fatalf("status = %s, want in_progress", p.Status)
	}
}

// End-to-end scenario A: assignments then payment then start.
func TestProjectStartScenario(t *testing.T) {
	p := &models.Project{Status: models.ProjectPending}
	pay := &models.ProjectPayment{PaymentStatus: models.PaymentPending, EstimatedValue: 50000}

	if CanStart(p, pay) {
		t.Fatal("new project with no assignments must not be startable")
	}

	p.FieldOfficerID = uintPtr(2)
	p.ClientID = uintPtr(3)
	p.AccessorID = uintPtr(4)
	p.SeniorValuerID = uintPtr(5)
	if CanStart(p, pay) {
		t.Fatal("roles assigned but payment not approved, predicate must be false")
	}

	if err := SendPaymentRequest(pay, true, 1, "pay please"); err != nil {
		t.Fatalf("send request: %v", err)
	}
	if err := UploadBankSlip(pay, "slips/abc.pdf", 3, ""); err != nil {
		t.Fatalf("upload slip: %v", err)
	}
	if err := ApprovePayment(pay, 1); err != nil {
		t.Fatalf("approve payment: %v", err)
	}

	if !CanStart(p, pay) {
		t.Fatal("predicate must be true after approval")
	}
	if err := StartProject(p, pay); err != nil {
		t.Fatalf("start project: %v", err)
	}
	if p.Status != models.ProjectInProgress {
		t.Fatalf("status = %s, want in_progress", p.Status)
	}
}
