package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"auditra-backend/internal/database"
	"auditra-backend/internal/models"
	"auditra-backend/internal/workflow"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//
// VALUATION CRUD
//

type createValuationRequest struct {
	ProjectID      uint     `json:"project_id" validate:"required"`
	Category       string   `json:"category" validate:"required"`
	Description    string   `json:"description"`
	EstimatedValue *float64 `json:"estimated_value"`
	Notes          string   `json:"notes"`
}

// CreateValuation opens a draft for a project the field officer is assigned to.
func CreateValuation(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createValuationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		validationError(c, err)
		return
	}

	category := models.ValuationCategory(req.Category)
	switch category {
	case models.CategoryLand, models.CategoryBuilding, models.CategoryVehicle, models.CategoryOther:
	default:
		fail(c, http.StatusBadRequest, "invalid category")
		return
	}

	var project models.Project
	if err := database.DB.Where("id = ? AND field_officer_id = ?", req.ProjectID, user.ID).First(&project).Error; err != nil {
		fail(c, http.StatusNotFound, "Project not found or not assigned to you")
		return
	}

	valuation := models.Valuation{
		ProjectID:      project.ID,
		FieldOfficerID: user.ID,
		Category:       category,
		Status:         models.ValuationDraft,
		Description:    strings.TrimSpace(req.Description),
		EstimatedValue: req.EstimatedValue,
		Notes:          req.Notes,
	}
	if err := database.DB.Create(&valuation).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to create valuation")
		return
	}

	c.JSON(http.StatusCreated, valuation)
}

// ListValuations filters by project and by the caller's role scope.
func ListValuations(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	dbq := database.DB.
		Preload("Project").
		Preload("FieldOfficer").
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc") }).
		Order("created_at desc")

	switch user.Role {
	case models.RoleFieldOfficer:
		dbq = dbq.Where("field_officer_id = ?", user.ID)
	case models.RoleAccessor:
		dbq = dbq.Joins("JOIN projects ON projects.id = valuations.project_id").
			Where("projects.accessor_id = ?", user.ID)
	case models.RoleSeniorValuer:
		dbq = dbq.Joins("JOIN projects ON projects.id = valuations.project_id").
			Where("projects.senior_valuer_id = ?", user.ID)
	case models.RoleMDGM, models.RoleAdmin, models.RoleCoordinator:
		// project filter below is the only scope
	default:
		fail(c, http.StatusForbidden, "access denied")
		return
	}

	if pid := c.Query("project_id"); pid != "" {
		dbq = dbq.Where("valuations.project_id = ?", pid)
	}
	if s := c.Query("status"); s != "" {
		dbq = dbq.Where("valuations.status = ?", s)
	}

	var valuations []models.Valuation
	if err := dbq.Find(&valuations).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to load valuations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"valuations": valuations})
}

func GetValuation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var valuation models.Valuation
	err := database.DB.
		Preload("Project").
		Preload("FieldOfficer").
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc") }).
		Preload("History.PerformedBy").
		First(&valuation, id).Error
	if err != nil {
		fail(c, http.StatusNotFound, "Valuation not found")
		return
	}
	c.JSON(http.StatusOK, valuation)
}

type updateValuationRequest struct {
	Category       *string  `json:"category"`
	Description    *string  `json:"description"`
	EstimatedValue *float64 `json:"estimated_value"`
	Notes          *string  `json:"notes"`
}

// UpdateValuation lets the field officer correct an editable valuation.
// Submitted (within the edit window) and rejected ones return to draft and
// must be submitted again.
func UpdateValuation(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var valuation models.Valuation
	if err := database.DB.Where("id = ? AND field_officer_id = ?", id, user.ID).First(&valuation).Error; err != nil {
		fail(c, http.StatusNotFound, "Valuation not found")
		return
	}

	var req updateValuationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := workflow.EditValuation(&valuation); err != nil {
		workflowError(c, err)
		return
	}

	if req.Category != nil {
		category := models.ValuationCategory(*req.Category)
		switch category {
		case models.CategoryLand, models.CategoryBuilding, models.CategoryVehicle, models.CategoryOther:
			valuation.Category = category
		default:
			fail(c, http.StatusBadRequest, "invalid category")
			return
		}
	}
	if req.Description != nil {
		valuation.Description = strings.TrimSpace(*req.Description)
	}
	if req.EstimatedValue != nil {
		valuation.EstimatedValue = req.EstimatedValue
	}
	if req.Notes != nil {
		valuation.Notes = *req.Notes
	}

	if err := database.DB.Save(&valuation).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to save valuation")
		return
	}
	c.JSON(http.StatusOK, valuation)
}

//
// FIELD OFFICER: SUBMIT & REPORT UPLOAD
//

func SubmitValuation(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var valuation models.Valuation
	if err := database.DB.Where("id = ? AND field_officer_id = ?", id, user.ID).First(&valuation).Error; err != nil {
		fail(c, http.StatusNotFound, "Valuation not found")
		return
	}

	action, err := workflow.SubmitValuation(&valuation)
	if err != nil {
		workflowError(c, err)
		return
	}

	if err := database.DB.Save(&valuation).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to save valuation")
		return
	}

	comment := "Report submitted for review"
	if action == models.ActionResubmitted {
		comment = "Report resubmitted after rejection"
	}
	database.RecordValuationEvent(valuation.ID, action, user.ID, comment)

	c.JSON(http.StatusOK, valuation)
}

// UploadValuationReport attaches the field officer's PDF to an editable
// valuation.
func UploadValuationReport(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var valuation models.Valuation
	if err := database.DB.Where("id = ? AND field_officer_id = ?", id, user.ID).First(&valuation).Error; err != nil {
		fail(c, http.StatusNotFound, "Valuation not found")
		return
	}
	if !workflow.CanEditValuation(&valuation) {
		fail(c, http.StatusBadRequest, "valuation can no longer be edited")
		return
	}

	path, err := saveUpload(c, "report", "valuation_reports")
	if err != nil {
		fail(c, http.StatusBadRequest, "report file is required")
		return
	}
	if err := database.DB.Model(&valuation).Update("submitted_report_path", path).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to save report")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "submitted_report_path": path})
}

//
// REVIEW GATES
//

// loadValuationForGate checks role and per-project assignment for a gate
// actor. MD/GM is not bound to a single project.
func loadValuationForGate(c *gin.Context, role models.UserRole) (*models.Valuation, *models.User, bool) {
	user, ok := currentUser(c)
	if !ok {
		return nil, nil, false
	}
	if user.Role != role {
		fail(c, http.StatusForbidden, fmt.Sprintf("Only the %s can perform this action", role))
		return nil, nil, false
	}
	id, ok := pathID(c, "id")
	if !ok {
		return nil, nil, false
	}

	var valuation models.Valuation
	if err := database.DB.Preload("Project").Preload("FieldOfficer").First(&valuation, id).Error; err != nil {
		fail(c, http.StatusNotFound, "Valuation not found")
		return nil, nil, false
	}

	switch role {
	case models.RoleAccessor:
		if valuation.Project.AccessorID == nil || *valuation.Project.AccessorID != user.ID {
			fail(c, http.StatusForbidden, "You can only act on valuations for projects assigned to you")
			return nil, nil, false
		}
	case models.RoleSeniorValuer:
		if valuation.Project.SeniorValuerID == nil || *valuation.Project.SeniorValuerID != user.ID {
			fail(c, http.StatusForbidden, "You can only act on valuations for projects assigned to you")
			return nil, nil, false
		}
	}
	return &valuation, &user, true
}

type gateBody struct {
	Comments        string `json:"comments"`
	RejectionReason string `json:"rejection_reason"`
}

func saveGateResult(c *gin.Context, valuation *models.Valuation, user *models.User, action, comment, message string) {
	if err := database.DB.Omit(clause.Associations).Save(valuation).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to save valuation")
		return
	}
	database.RecordValuationEvent(valuation.ID, action, user.ID, comment)
	database.RecordProjectEvent(valuation.ProjectID, valuation.Project.Status,
		fmt.Sprintf("Valuation (%s): %s", valuation.Category, message), user.ID)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "valuation": valuation})
}

// notifyRejection tells the field officer their valuation bounced.
func notifyRejection(valuation *models.Valuation, byRole, reason string) {
	n := models.Notification{
		UserID: valuation.FieldOfficerID,
		Title:  "Valuation Rejected",
		Message: fmt.Sprintf("Your %s valuation for project %q has been rejected by the %s. Reason: %s",
			valuation.Category, valuation.Project.Title, byRole, reason),
		Type:        "rejection",
		ValuationID: &valuation.ID,
		ProjectID:   &valuation.ProjectID,
	}
	_ = database.DB.Create(&n).Error
}

func AcceptValuation(c *gin.Context) {
	valuation, user, ok := loadValuationForGate(c, models.RoleAccessor)
	if !ok {
		return
	}
	var body gateBody
	_ = c.ShouldBindJSON(&body)

	action, err := workflow.AcceptValuation(valuation, body.Comments, valuation.Project.SeniorValuerID != nil)
	if err != nil {
		workflowError(c, err)
		return
	}
	saveGateResult(c, valuation, user, action, valuation.AccessorComments,
		"accepted by Accessor and sent to Senior Valuer for approval")
}

func RejectValuation(c *gin.Context) {
	valuation, user, ok := loadValuationForGate(c, models.RoleAccessor)
	if !ok {
		return
	}
	var body gateBody
	_ = c.ShouldBindJSON(&body)

	action, err := workflow.AccessorRejectValuation(valuation, body.RejectionReason)
	if err != nil {
		workflowError(c, err)
		return
	}
	notifyRejection(valuation, "Accessor", valuation.RejectionReason)
	saveGateResult(c, valuation, user, action, valuation.RejectionReason,
		"rejected by Accessor")
}

func SeniorValuerApprove(c *gin.Context) {
	valuation, user, ok := loadValuationForGate(c, models.RoleSeniorValuer)
	if !ok {
		return
	}
	var body gateBody
	_ = c.ShouldBindJSON(&body)

	action, err := workflow.SeniorValuerApprove(valuation, body.Comments)
	if err != nil {
		workflowError(c, err)
		return
	}
	saveGateResult(c, valuation, user, action, valuation.SeniorValuerComments,
		"approved by Senior Valuer and sent to MD/GM for final approval")
}

func SeniorValuerReject(c *gin.Context) {
	valuation, user, ok := loadValuationForGate(c, models.RoleSeniorValuer)
	if !ok {
		return
	}
	var body gateBody
	_ = c.ShouldBindJSON(&body)

	action, err := workflow.SeniorValuerReject(valuation, body.RejectionReason)
	if err != nil {
		workflowError(c, err)
		return
	}
	notifyRejection(valuation, "Senior Valuer", valuation.RejectionReason)
	saveGateResult(c, valuation, user, action, valuation.RejectionReason,
		"rejected by Senior Valuer")
}

// UploadFinalReport is the senior valuer's report for MD/GM review.
func UploadFinalReport(c *gin.Context) {
	valuation, _, ok := loadValuationForGate(c, models.RoleSeniorValuer)
	if !ok {
		return
	}
	path, err := saveUpload(c, "report", "final_reports")
	if err != nil {
		fail(c, http.StatusBadRequest, "report file is required")
		return
	}
	if err := database.DB.Model(valuation).Update("final_report_path", path).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to save report")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "final_report_path": path})
}

func MDGMApprove(c *gin.Context) {
	valuation, user, ok := loadValuationForGate(c, models.RoleMDGM)
	if !ok {
		return
	}
	var body gateBody
	_ = c.ShouldBindJSON(&body)

	action, err := workflow.MDGMApprove(valuation, body.Comments)
	if err != nil {
		workflowError(c, err)
		return
	}
	saveGateResult(c, valuation, user, action, valuation.MDGMComments,
		"approved by MD/GM")
}

func MDGMReject(c *gin.Context) {
	valuation, user, ok := loadValuationForGate(c, models.RoleMDGM)
	if !ok {
		return
	}
	var body gateBody
	_ = c.ShouldBindJSON(&body)

	action, err := workflow.MDGMReject(valuation, body.RejectionReason)
	if err != nil {
		workflowError(c, err)
		return
	}
	notifyRejection(valuation, "MD/GM", valuation.RejectionReason)
	saveGateResult(c, valuation, user, action, valuation.RejectionReason,
		"rejected by MD/GM")
}

//
// NOTIFICATIONS
//

func ListNotifications(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var notifications []models.Notification
	database.DB.Where("user_id = ?", user.ID).Order("created_at desc").Limit(100).Find(&notifications)
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func UnreadNotificationCount(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var count int64
	database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).Count(&count)
	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

func MarkNotificationRead(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	res := database.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, user.ID).Update("is_read", true)
	if res.RowsAffected == 0 {
		fail(c, http.StatusNotFound, "Notification not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func MarkAllNotificationsRead(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).Update("is_read", true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
