package workflow

import (
	"testing"
	"time"

	"auditra-backend/internal/models"
)

func TestSubmitValuation(t *testing.T) {
	v := &models.Valuation{Status: models.ValuationDraft}
	action, err := SubmitValuation(v)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if action != models.ActionSubmitted {
		t.Fatalf("action = %s, want submitted", action)
	}
	if v.Status != models.ValuationSubmitted || v.SubmittedAt == nil {
		t.Fatal("submission not recorded")
	}

	// already submitted
	if _, err := SubmitValuation(v); !IsViolation(err) {
		t.Fatalf("resubmit of submitted: want violation, got %v", err)
	}

	// rejected resubmits with the resubmitted action and a cleared reason
	v.Status = models.ValuationRejected
	v.RejectionReason = "incomplete comparables"
	action, err = SubmitValuation(v)
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if action != models.ActionResubmitted {
		t.Fatalf("action = %s, want resubmitted", action)
	}
	if v.RejectionReason != "" {
		t.Fatal("rejection reason should be cleared on resubmission")
	}
}

func TestAcceptValuation(t *testing.T) {
	v := &models.Valuation{Status: models.ValuationSubmitted}

	if _, err := AcceptValuation(v, "", false); !IsViolation(err) {
		t.Fatalf("no senior valuer on project: want violation, got %v", err)
	}

	action, err := AcceptValuation(v, "values check out", true)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if action != models.ActionReviewed || v.Status != models.ValuationReviewed {
		t.Fatalf("status = %s action = %s", v.Status, action)
	}
	if v.AccessorComments != "values check out" {
		t.Fatal("accessor comments not stored")
	}

	// reviewed cannot be accepted again
	if _, err := AcceptValuation(v, "", true); !IsViolation(err) {
		t.Fatalf("double accept: want violation, got %v", err)
	}
}

func TestRejectionRequiresReasonAtEveryGate(t *testing.T) {
	gates := []struct {
		name   string
		from   models.ValuationStatus
		reject func(*models.Valuation, string) (string, error)
	}{
		{"accessor", models.ValuationSubmitted, AccessorRejectValuation},
		{"senior valuer", models.ValuationReviewed, SeniorValuerReject},
		{"md/gm", models.ValuationApproved, MDGMReject},
	}
	for _, g := range gates {
		v := &models.Valuation{Status: g.from}
		if _, err := g.reject(v, "   "); !IsViolation(err) {
			t.Errorf("%s: empty reason must be rejected, got %v", g.name, err)
		}
		if v.Status != g.from {
			t.Errorf("%s: status must not change on a failed reject", g.name)
		}
		if _, err := g.reject(v, "needs rework"); err != nil {
			t.Errorf("%s: reject with reason: %v", g.name, err)
		}
		if v.Status != models.ValuationRejected || v.RejectionReason != "needs rework" {
			t.Errorf("%s: rejection not recorded", g.name)
		}
	}
}

func TestForwardTransitionsRequireImmediatePredecessor(t *testing.T) {
	// MD/GM can only act on approved
	for _, s := range []models.ValuationStatus{
		models.ValuationDraft, models.ValuationSubmitted,
		models.ValuationReviewed, models.ValuationMDApproved, models.ValuationRejected,
	} {
		v := &models.Valuation{Status: s}
		if _, err := MDGMApprove(v, ""); !IsViolation(err) {
			t.Errorf("md/gm approve from %s: want violation, got %v", s, err)
		}
		if _, err := MDGMReject(v, "reason"); !IsViolation(err) {
			t.Errorf("md/gm reject from %s: want violation, got %v", s, err)
		}
	}

	// senior valuer only on reviewed
	for _, s := range []models.ValuationStatus{
		models.ValuationDraft, models.ValuationSubmitted,
		models.ValuationApproved, models.ValuationMDApproved, models.ValuationRejected,
	} {
		v := &models.Valuation{Status: s}
		if _, err := SeniorValuerApprove(v, ""); !IsViolation(err) {
			t.Errorf("sv approve from %s: want violation, got %v", s, err)
		}
	}
}

func TestFullApprovalChain(t *testing.T) {
	v := &models.Valuation{Status: models.ValuationDraft}

	if _, err := SubmitValuation(v); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := AcceptValuation(v, "", true); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := SeniorValuerApprove(v, "fair market value confirmed"); err != nil {
		t.Fatalf("sv approve: %v", err)
	}
	if v.SeniorValuerComments != "fair market value confirmed" {
		t.Fatal("sv comments not stored")
	}
	if _, err := MDGMApprove(v, "final sign-off"); err != nil {
		t.Fatalf("md approve: %v", err)
	}
	if v.Status != models.ValuationMDApproved {
		t.Fatalf("status = %s, want md_approved", v.Status)
	}
}

// End-to-end scenario B: accessor accepts, senior valuer rejects, field
// officer resubmits; history grows by exactly one entry per transition.
func TestRejectResubmitScenario(t *testing.T) {
	v := &models.Valuation{Status: models.ValuationDraft}
	var history []models.ValuationHistory

	record := func(action string) {
		history = append(history, models.ValuationHistory{ValuationID: v.ID, Action: action})
	}

	action, err := SubmitValuation(v)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	record(action)

	action, err = AcceptValuation(v, "", true)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	record(action)

	action, err = SeniorValuerReject(v, "incomplete comparables")
	if err != nil {
		t.Fatalf("sv reject: %v", err)
	}
	record(action)

	if v.Status != models.ValuationRejected {
		t.Fatalf("status = %s, want rejected", v.Status)
	}
	if len(history) != 3 {
		t.Fatalf("history length = %d, want 3", len(history))
	}

	prior := make([]models.ValuationHistory, len(history))
	copy(prior, history)

	action, err = SubmitValuation(v)
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	record(action)

	if v.Status != models.ValuationSubmitted {
		t.Fatalf("status = %s, want submitted", v.Status)
	}
	if len(history) != 4 {
		t.Fatalf("history length = %d, want 4", len(history))
	}
	if history[3].Action != models.ActionResubmitted {
		t.Fatalf("last action = %s, want resubmitted", history[3].Action)
	}
	// prior entries unchanged
	for i := range prior {
		if history[i] != prior[i] {
			t.Fatalf("history entry %d mutated", i)
		}
	}
}

func TestEditValuationResetsToDraft(t *testing.T) {
	v := &models.Valuation{Status: models.ValuationRejected, RejectionReason: "wrong value"}
	if err := EditValuation(v); err != nil {
		t.Fatalf("edit rejected: %v", err)
	}
	if v.Status != models.ValuationDraft || v.RejectionReason != "" {
		t.Fatalf("status = %s, reason = %q; want draft with cleared reason", v.Status, v.RejectionReason)
	}

	// a fresh submission within the edit window drops back to draft too
	if _, err := SubmitValuation(v); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := EditValuation(v); err != nil {
		t.Fatalf("edit submitted: %v", err)
	}
	if v.Status != models.ValuationDraft || v.SubmittedAt != nil {
		t.Fatalf("status = %s, want draft with submitted_at cleared", v.Status)
	}

	// editing a draft keeps it a draft
	if err := EditValuation(v); err != nil {
		t.Fatalf("edit draft: %v", err)
	}
	if v.Status != models.ValuationDraft {
		t.Fatalf("status = %s, want draft", v.Status)
	}
}

func TestEditValuationClosedStates(t *testing.T) {
	old := time.Now().Add(-3 * time.Hour)
	cases := []struct {
		name string
		v    models.Valuation
	}{
		{"submitted past window", models.Valuation{Status: models.ValuationSubmitted, SubmittedAt: &old}},
		{"reviewed", models.Valuation{Status: models.ValuationReviewed}},
		{"approved", models.Valuation{Status: models.ValuationApproved}},
		{"md approved", models.Valuation{Status: models.ValuationMDApproved}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := tc.v
			if err := EditValuation(&v); !IsViolation(err) {
				t.Fatalf("want violation, got %v", err)
			}
		})
	}
}
