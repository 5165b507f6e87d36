package workflow

import (
	"fmt"
	"strings"

	"auditra-backend/internal/models"
)

// MissingRoles lists the unfilled mandatory team slots of a project.
// The agent slot is mandatory only when the project is flagged as having one.
func MissingRoles(p *models.Project) []string {
	var missing []string
	if p.FieldOfficerID == nil {
		missing = append(missing, "Field Officer")
	}
	if p.ClientID == nil {
		missing = append(missing, "Client")
	}
	if p.AccessorID == nil {
		missing = append(missing, "Accessor")
	}
	if p.SeniorValuerID == nil {
		missing = append(missing, "Senior Valuer")
	}
	if p.HasAgent && p.AgentID == nil {
		missing = append(missing, "Agent (marked as required)")
	}
	return missing
}

// CanStart reports whether a pending project may move to in_progress:
// every mandatory role slot filled and the payment approved. Pure read;
// StartProject re-validates before mutating.
func CanStart(p *models.Project, pay *models.ProjectPayment) bool {
	if len(MissingRoles(p)) > 0 {
		return false
	}
	return pay != nil && pay.PaymentStatus == models.PaymentApproved
}

// StartProject transitions pending -> in_progress after re-checking the
// readiness predicate. The caller appends the history event and saves.
func StartProject(p *models.Project, pay *models.ProjectPayment) error {
	switch p.Status {
	case models.ProjectInProgress:
		return violation("Project is already in progress")
	case models.ProjectCompleted:
		return violation("Cannot start a completed project")
	case models.ProjectCancelled:
		return violation("Cannot start a cancelled project")
	}
	if pay == nil {
		return violation("No payment record found. Please send payment request first.")
	}
	if pay.PaymentStatus != models.PaymentApproved {
		return violation("Payment must be approved before starting the project")
	}
	if missing := MissingRoles(p); len(missing) > 0 {
		return violation(fmt.Sprintf("Cannot start project. Missing mandatory role assignments: %s", strings.Join(missing, ", ")))
	}
	p.Status = models.ProjectInProgress
	return nil
}
