package workflow

import (
	"testing"

	"auditra-backend/internal/models"
)

func TestSendPaymentRequest(t *testing.T) {
	pay := &models.ProjectPayment{PaymentStatus: models.PaymentPending}
	if err := SendPaymentRequest(pay, false, 1, ""); !IsViolation(err) {
		t.Fatalf("no client assigned: want violation, got %v", err)
	}
	if err := SendPaymentRequest(pay, true, 1, "instructions"); err != nil {
		t.Fatalf("send request: %v", err)
	}
	if pay.PaymentStatus != models.PaymentRequested {
		t.Fatalf("status = %s, want requested", pay.PaymentStatus)
	}
	if pay.PaymentRequestedAt == nil {
		t.Fatal("requested_at not recorded")
	}
	// double send must fail
	if err := SendPaymentRequest(pay, true, 1, ""); !IsViolation(err) {
		t.Fatalf("second request: want violation, got %v", err)
	}
}

func TestUploadBankSlipGuards(t *testing.T) {
	// upload only legal from requested or rejected
	for _, s := range []models.PaymentStatus{
		models.PaymentPending, models.PaymentSubmitted,
		models.PaymentUnderReview, models.PaymentApproved,
	} {
		pay := &models.ProjectPayment{PaymentStatus: s}
		if err := UploadBankSlip(pay, "slips/x.pdf", 3, ""); !IsViolation(err) {
			t.Errorf("upload from %s: want violation, got %v", s, err)
		}
	}

	for _, s := range []models.PaymentStatus{models.PaymentRequested, models.PaymentRejected} {
		pay := &models.ProjectPayment{PaymentStatus: s}
		if err := UploadBankSlip(pay, "slips/x.pdf", 3, "paid at branch"); err != nil {
			t.Fatalf("upload from %s: %v", s, err)
		}
		if pay.PaymentStatus != models.PaymentSubmitted {
			t.Fatalf("status = %s, want submitted", pay.PaymentStatus)
		}
		if pay.BankSlipUploadedAt == nil || pay.BankSlipPath == "" {
			t.Fatal("slip metadata not recorded")
		}
	}

	pay := &models.ProjectPayment{PaymentStatus: models.PaymentRequested}
	if err := UploadBankSlip(pay, "  ", 3, ""); !IsViolation(err) {
		t.Fatalf("empty file: want violation, got %v", err)
	}
}

func TestApproveAndRejectPayment(t *testing.T) {
	pay := &models.ProjectPayment{PaymentStatus: models.PaymentRequested}
	if err := ApprovePayment(pay, 1); !IsViolation(err) {
		t.Fatalf("approve before slip: want violation, got %v", err)
	}

	for _, s := range []models.PaymentStatus{models.PaymentSubmitted, models.PaymentUnderReview} {
		pay := &models.ProjectPayment{PaymentStatus: s}
		if err := ApprovePayment(pay, 1); err != nil {
			t.Fatalf("approve from %s: %v", s, err)
		}
		if pay.PaymentStatus != models.PaymentApproved || pay.PaymentApprovedAt == nil {
			t.Fatal("approval not recorded")
		}
	}

	pay = &models.ProjectPayment{PaymentStatus: models.PaymentSubmitted}
	if err := RejectPayment(pay, "   "); !IsViolation(err) {
		t.Fatalf("empty reason: want violation, got %v", err)
	}
	if err := RejectPayment(pay, "slip unreadable"); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if pay.PaymentStatus != models.PaymentRejected {
		t.Fatalf("status = %s, want rejected", pay.PaymentStatus)
	}
	if pay.RejectionReason != "slip unreadable" || pay.RejectionCount != 1 {
		t.Fatal("rejection not persisted")
	}

	// rejected loops back to upload-eligible
	if err := UploadBankSlip(pay, "slips/retry.pdf", 3, ""); err != nil {
		t.Fatalf("re-upload after rejection: %v", err)
	}
	if pay.PaymentStatus != models.PaymentSubmitted {
		t.Fatalf("status = %s, want submitted", pay.PaymentStatus)
	}
}

func TestRecordAgentPayment(t *testing.T) {
	pay := &models.ProjectPayment{AgentPaymentStatus: models.AgentPaymentPending}

	if err := RecordAgentPayment(pay, false, 1000, 1, ""); !IsViolation(err) {
		t.Fatalf("no agent: want violation, got %v", err)
	}
	if err := RecordAgentPayment(pay, true, 0, 1, ""); !IsViolation(err) {
		t.Fatalf("zero amount: want violation, got %v", err)
	}
	if err := RecordAgentPayment(pay, true, 15000, 1, "first commission"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if pay.AgentPaymentStatus != models.AgentPaymentPaid || pay.AgentPaidAt == nil {
		t.Fatal("agent payment not recorded")
	}
	if err := RecordAgentPayment(pay, true, 15000, 1, ""); !IsViolation(err) {
		t.Fatalf("double record: want violation, got %v", err)
	}
}
