package handlers

import (
	"testing"

	"auditra-backend/internal/models"
)

func idPtr(v uint) *uint { return &v }

func TestProjectMemberCoversEverySlot(t *testing.T) {
	p := &models.Project{
		CoordinatorID:  1,
		FieldOfficerID: idPtr(2),
		ClientID:       idPtr(3),
		AgentID:        idPtr(4),
		AccessorID:     idPtr(5),
		SeniorValuerID: idPtr(6),
	}

	for id := uint(1); id <= 6; id++ {
		if !projectMember(p, id) {
			t.Fatalf("user %d fills a slot but is not a member", id)
		}
	}
	if projectMember(p, 7) {
		t.Fatal("user 7 holds no slot and must not be a member")
	}
}

func TestProjectMemberIgnoresEmptySlots(t *testing.T) {
	p := &models.Project{CoordinatorID: 1}
	if projectMember(p, 0) {
		t.Fatal("zero user id must never match an empty slot")
	}
	if projectMember(p, 2) {
		t.Fatal("non-member on a bare project")
	}
}
