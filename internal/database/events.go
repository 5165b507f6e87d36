package database

import "auditra-backend/internal/models"

// helpers for the append-only history trails; best effort, a failed write
// must not fail the primary action

func RecordProjectEvent(projectID uint, status models.ProjectStatus, notes string, userID uint) {
	if DB == nil {
		return
	}
	record := models.ProjectStatusHistory{
		ProjectID:   projectID,
		Status:      status,
		Notes:       notes,
		CreatedByID: &userID,
	}
	_ = DB.Create(&record).Error
}

func RecordValuationEvent(valuationID uint, action string, userID uint, comments string) {
	if DB == nil {
		return
	}
	record := models.ValuationHistory{
		ValuationID:   valuationID,
		Action:        action,
		PerformedByID: &userID,
		Comments:      comments,
	}
	_ = DB.Create(&record).Error
}
