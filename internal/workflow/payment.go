package workflow

import (
	"fmt"
	"strings"
	"time"

	"auditra-backend/internal/models"
)

// SendPaymentRequest moves a payment from pending (or rejected, to re-request)
// to requested. The project must have an assigned client.
func SendPaymentRequest(pay *models.ProjectPayment, hasClient bool, actorID uint, instructions string) error {
	if !hasClient {
		return violation("No client assigned to this project")
	}
	if pay.PaymentStatus != models.PaymentPending && pay.PaymentStatus != models.PaymentRejected {
		return violation(fmt.Sprintf("Payment request already sent (current status: %s)", pay.PaymentStatus))
	}
	now := time.Now()
	pay.PaymentStatus = models.PaymentRequested
	pay.PaymentRequestedAt = &now
	pay.PaymentRequestedByID = &actorID
	pay.PaymentInstructions = instructions
	return nil
}

// UploadBankSlip records the client's proof of payment. Only legal once a
// request was sent, or again after a rejection.
func UploadBankSlip(pay *models.ProjectPayment, slipPath string, actorID uint, clientNotes string) error {
	if pay.PaymentStatus != models.PaymentRequested && pay.PaymentStatus != models.PaymentRejected {
		return violation(fmt.Sprintf("Cannot upload bank slip at this time (status: %s)", pay.PaymentStatus))
	}
	if strings.TrimSpace(slipPath) == "" {
		return violation("Bank slip file is required")
	}
	now := time.Now()
	pay.BankSlipPath = slipPath
	pay.BankSlipUploadedAt = &now
	pay.BankSlipUploadedByID = &actorID
	pay.PaymentStatus = models.PaymentSubmitted
	pay.ClientNotes = clientNotes
	return nil
}

func reviewable(s models.PaymentStatus) bool {
	return s == models.PaymentSubmitted || s == models.PaymentUnderReview
}

// ApprovePayment is the coordinator sign-off on a submitted bank slip. Once
// approved the project readiness predicate can become true.
func ApprovePayment(pay *models.ProjectPayment, actorID uint) error {
	if !reviewable(pay.PaymentStatus) {
		return violation(fmt.Sprintf("Cannot approve payment (current status: %s)", pay.PaymentStatus))
	}
	now := time.Now()
	pay.PaymentStatus = models.PaymentApproved
	pay.PaymentApprovedAt = &now
	pay.PaymentApprovedByID = &actorID
	return nil
}

// RejectPayment sends the payment back to the client for a new slip.
func RejectPayment(pay *models.ProjectPayment, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return violation("Rejection reason is required")
	}
	if !reviewable(pay.PaymentStatus) {
		return violation(fmt.Sprintf("Cannot reject payment (current status: %s)", pay.PaymentStatus))
	}
	now := time.Now()
	pay.PaymentStatus = models.PaymentRejected
	pay.RejectionReason = reason
	pay.RejectionCount++
	pay.LastRejectedAt = &now
	return nil
}

// RecordAgentPayment marks the commission payout to the agent as paid.
// Independent of the client payment status.
func RecordAgentPayment(pay *models.ProjectPayment, hasAgent bool, amount float64, actorID uint, notes string) error {
	if !hasAgent {
		return violation("No agent assigned to this project")
	}
	if amount <= 0 {
		return violation("Invalid payment amount")
	}
	if pay.AgentPaymentStatus == models.AgentPaymentPaid {
		return violation("Agent payment has already been recorded for this project")
	}
	now := time.Now()
	pay.AgentPaymentAmount = &amount
	pay.AgentPaymentStatus = models.AgentPaymentPaid
	pay.AgentPaidAt = &now
	pay.AgentPaidByID = &actorID
	pay.AgentPaymentNotes = notes
	return nil
}
