package workflow

import (
	"fmt"
	"strings"
	"time"

	"auditra-backend/internal/models"
)

// The valuation chain is linear with a reject branch at every gate:
//
//	draft -> submitted -> reviewed -> approved -> md_approved
//	            |            |           |
//	            +--------- rejected <----+   (back to the field officer)
//
// Each transition returns the history action to append; history rows are
// append-only and never rewritten on resubmission.

// SubmitValuation sends a draft (or a rejected valuation, as a resubmission)
// to the accessor. The prior rejection reason is cleared on the valuation but
// survives in the history trail.
func SubmitValuation(v *models.Valuation) (action string, err error) {
	if v.Status != models.ValuationDraft && v.Status != models.ValuationRejected {
		return "", violation("Only draft or rejected valuations can be submitted.")
	}
	action = models.ActionSubmitted
	if v.Status == models.ValuationRejected {
		action = models.ActionResubmitted
	}
	now := time.Now()
	v.Status = models.ValuationSubmitted
	v.RejectionReason = ""
	v.SubmittedAt = &now
	return action, nil
}

// AcceptValuation is the accessor gate: submitted -> reviewed, forwarding to
// the senior valuer, who must already be assigned on the project.
func AcceptValuation(v *models.Valuation, comments string, hasSeniorValuer bool) (string, error) {
	if v.Status != models.ValuationDraft && v.Status != models.ValuationSubmitted {
		return "", violation(fmt.Sprintf("Cannot accept valuation with status: %s. Only draft or submitted valuations can be accepted.", v.Status))
	}
	if !hasSeniorValuer {
		return "", violation("Cannot accept valuation: project must have an assigned senior valuer first.")
	}
	v.Status = models.ValuationReviewed
	v.AccessorComments = strings.TrimSpace(comments)
	v.RejectionReason = ""
	return models.ActionReviewed, nil
}

// AccessorRejectValuation returns a valuation to the field officer.
func AccessorRejectValuation(v *models.Valuation, reason string) (string, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return "", violation("Rejection reason is required.")
	}
	switch v.Status {
	case models.ValuationDraft, models.ValuationSubmitted, models.ValuationReviewed:
	default:
		return "", violation(fmt.Sprintf("Cannot reject valuation with status: %s", v.Status))
	}
	v.Status = models.ValuationRejected
	v.RejectionReason = reason
	return models.ActionRejectedByAccessor, nil
}

// SeniorValuerApprove: reviewed -> approved, forwarding to MD/GM.
func SeniorValuerApprove(v *models.Valuation, comments string) (string, error) {
	if v.Status != models.ValuationReviewed {
		return "", violation(fmt.Sprintf("Only reviewed valuations can be approved. Current status: %s", v.Status))
	}
	if c := strings.TrimSpace(comments); c != "" {
		v.SeniorValuerComments = c
	}
	v.Status = models.ValuationApproved
	return models.ActionApprovedBySV, nil
}

// SeniorValuerReject: reviewed -> rejected, reason mandatory.
func SeniorValuerReject(v *models.Valuation, reason string) (string, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return "", violation("Rejection reason is required.")
	}
	if v.Status != models.ValuationReviewed {
		return "", violation(fmt.Sprintf("Only reviewed valuations can be rejected by the senior valuer. Current status: %s", v.Status))
	}
	v.Status = models.ValuationRejected
	v.RejectionReason = reason
	return models.ActionRejectedBySV, nil
}

// MDGMApprove is the final gate: approved -> md_approved.
func MDGMApprove(v *models.Valuation, comments string) (string, error) {
	if v.Status != models.ValuationApproved {
		return "", violation(fmt.Sprintf("Only senior-valuer-approved valuations can be approved by MD/GM. Current status: %s", v.Status))
	}
	v.Status = models.ValuationMDApproved
	v.MDGMComments = strings.TrimSpace(comments)
	return models.ActionMDApproved, nil
}

// MDGMReject: approved -> rejected, reason mandatory.
func MDGMReject(v *models.Valuation, reason string) (string, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return "", violation("Rejection reason is required.")
	}
	if v.Status != models.ValuationApproved {
		return "", violation(fmt.Sprintf("Only senior-valuer-approved valuations can be rejected by MD/GM. Current status: %s", v.Status))
	}
	v.Status = models.ValuationRejected
	v.RejectionReason = reason
	return models.ActionRejectedByMDGM, nil
}

// EditValuation reopens a valuation for field changes. Submitted and rejected
// valuations drop back to draft, so the corrected version goes through the
// full chain again.
func EditValuation(v *models.Valuation) error {
	if !CanEditValuation(v) {
		return violation(fmt.Sprintf("Cannot edit valuation with status: %s", v.Status))
	}
	if v.Status == models.ValuationSubmitted || v.Status == models.ValuationRejected {
		v.Status = models.ValuationDraft
		v.RejectionReason = ""
		v.SubmittedAt = nil
	}
	return nil
}

// CanEditValuation: drafts and rejected valuations are always editable;
// submitted ones only within two hours of submission.
func CanEditValuation(v *models.Valuation) bool {
	switch v.Status {
	case models.ValuationDraft, models.ValuationRejected:
		return true
	case models.ValuationSubmitted:
		return v.SubmittedAt != nil && time.Since(*v.SubmittedAt) <= 2*time.Hour
	}
	return false
}
