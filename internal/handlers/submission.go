package handlers

import (
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
// PUBLIC INTAKE
//

type createSubmissionRequest struct {
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required"`
	NIC         string `json:"nic"`
	Address     string `json:"address"`
	CompanyName string `json:"company_name"`

	ProjectTitle       string `json:"project_title" validate:"required"`
	ProjectDescription string `json:"project_description" validate:"required"`

	AgentName  string `json:"agent_name"`
	AgentPhone string `json:"agent_phone"`
	AgentEmail string `json:"agent_email" validate:"omitempty,email"`
}

// CreateSubmission is the unauthenticated intake form.
func CreateSubmission(c *gin.Context) {
	var req createSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		validationError(c, err)
		return
	}

	submission := models.ClientSubmission{
		FirstName:          strings.TrimSpace(req.FirstName),
		LastName:           strings.TrimSpace(req.LastName),
		Email:              strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:              req.Phone,
		NIC:                req.NIC,
		Address:            req.Address,
		CompanyName:        req.CompanyName,
		ProjectTitle:       strings.TrimSpace(req.ProjectTitle),
		ProjectDescription: req.ProjectDescription,
		AgentName:          req.AgentName,
		AgentPhone:         req.AgentPhone,
		AgentEmail:         strings.ToLower(strings.TrimSpace(req.AgentEmail)),
		Status:             models.SubmissionPending,
	}
	if err := database.DB.Create(&submission).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to save submission")
		return
	}
	invalidateDashboards()

	c.JSON(http.StatusCreated, gin.H{
		"success":       true,
		"message":       "Your request has been received. Our team will contact you shortly.",
		"submission_id": submission.ID,
	})
}

//
// ADMIN REVIEW
//

func ListSubmissions(c *gin.Context) {
	dbq := database.DB.
		Preload("ReviewedBy").
		Preload("Coordinator").
		Order("created_at desc")

	if s := c.Query("status"); s != "" {
		dbq = dbq.Where("status = ?", s)
	}
	if r := c.Query("coordinator_response"); r != "" {
		dbq = dbq.Where("coordinator_response = ?", r)
	}
	if q := c.Query("search"); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		dbq = dbq.Where(
			"LOWER(project_title) LIKE ? OR LOWER(email) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?",
			like, like, like, like)
	}

	var submissions []models.ClientSubmission
	if err := dbq.Find(&submissions).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to load submissions")
		return
	}

	var pending int64
	database.DB.Model(&models.ClientSubmission{}).
		Where("status = ?", models.SubmissionPending).Count(&pending)

	c.JSON(http.StatusOK, gin.H{"submissions": submissions, "pending_count": pending})
}

func loadSubmission(c *gin.Context) (*models.ClientSubmission, bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return nil, false
	}
	var submission models.ClientSubmission
	err := database.DB.
		Preload("ReviewedBy").
		Preload("Coordinator").
		Preload("Assignments", func(db *gorm.DB) *gorm.DB { return db.Order("assigned_at asc") }).
		Preload("Assignments.Coordinator").
		First(&submission, id).Error
	if err != nil {
		fail(c, http.StatusNotFound, "Submission not found")
		return nil, false
	}
	return &submission, true
}

func GetSubmission(c *gin.Context) {
	submission, ok := loadSubmission(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, submission)
}

type updateSubmissionRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	CompanyName *string `json:"company_name"`
	Notes       *string `json:"notes"`
}

// UpdateSubmission edits contact details and notes; the review fields only
// change through the dedicated actions.
func UpdateSubmission(c *gin.Context) {
	submission, ok := loadSubmission(c)
	if !ok {
		return
	}
	if submission.Status == models.SubmissionRejected {
		fail(c, http.StatusBadRequest, "A rejected submission cannot be edited")
		return
	}

	var req updateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.CompanyName != nil {
		updates["company_name"] = *req.CompanyName
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if len(updates) > 0 {
		if err := database.DB.Model(submission).Updates(updates).Error; err != nil {
			fail(c, http.StatusInternalServerError, "failed to update submission")
			return
		}
	}
	c.JSON(http.StatusOK, submission)
}

type reviewSubmissionBody struct {
	Notes           string `json:"notes"`
	RejectionReason string `json:"rejection_reason"`
}

// MarkSubmissionReviewed: pending -> reviewed.
func MarkSubmissionReviewed(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	submission, ok := loadSubmission(c)
	if !ok {
		return
	}
	if err := workflow.MarkSubmissionReviewed(submission, user.ID); err != nil {
		workflowError(c, err)
		return
	}
	if err := database.DB.Omit(clause.Associations).Save(submission).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to save submission")
		return
	}
	invalidateDashboards()
	c.JSON(http.StatusOK, gin.H{"success": true, "submission": submission})
}

func ApproveSubmission(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	submission, ok := loadSubmission(c)
	if !ok {
		return
	}
	var body reviewSubmissionBody
	_ = c.ShouldBindJSON(&body)

	if err := workflow.ApproveSubmission(submission, user.ID); err != nil {
		workflowError(c, err)
		return
	}
	if body.Notes != "" {
		submission.Notes = body.Notes
	}
	if err := database.DB.Omit(clause.Associations).Save(submission).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to save submission")
		return
	}
	invalidateDashboards()
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Submission approved", "submission": submission})
}

func RejectSubmission(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	submission, ok := loadSubmission(c)
	if !ok {
		return
	}
	var body reviewSubmissionBody
	_ = c.ShouldBindJSON(&body)

	if err := workflow.RejectSubmission(submission, body.RejectionReason, user.ID); err != nil {
		workflowError(c, err)
		return
	}
	if err := database.DB.Omit(clause.Associations).Save(submission).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to save submission")
		return
	}
	invalidateDashboards()
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Submission rejected", "submission": submission})
}

// DeleteSubmission removes a rejected submission for good.
func DeleteSubmission(c *gin.Context) {
	submission, ok := loadSubmission(c)
	if !ok {
		return
	}
	if submission.Status != models.SubmissionRejected {
		fail(c, http.StatusBadRequest, "Only rejected submissions can be deleted")
		return
	}
	if err := database.DB.Delete(submission).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to delete submission")
		return
	}
	invalidateDashboards()
	c.JSON(http.StatusOK, gin.H{"success": true})
}

//
// COORDINATOR ASSIGNMENT HANDSHAKE
//

type assignCoordinatorBody struct {
	CoordinatorID uint `json:"coordinator_id" validate:"required"`
}

func AssignSubmissionCoordinator(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	submission, ok := loadSubmission(c)
	if !ok {
		return
	}

	var body assignCoordinatorBody
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(body); err != nil {
		validationError(c, err)
		return
	}

	var coordinator models.User
	if err := database.DB.Where("id = ? AND role = ?", body.CoordinatorID, models.RoleCoordinator).
		First(&coordinator).Error; err != nil {
		fail(c, http.StatusBadRequest, "Selected user is not a coordinator")
		return
	}

	record, err := workflow.AssignCoordinator(submission, coordinator.ID, user.ID)
	if err != nil {
		workflowError(c, err)
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(submission).Error; err != nil {
			return err
		}
		return tx.Create(record).Error
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to save assignment")
		return
	}

	invalidateDashboards()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Coordinator assigned. Awaiting their response.",
	})
}

// AvailableCoordinators lists coordinators for the assignment dropdown.
func AvailableCoordinators(c *gin.Context) {
	var coordinators []models.User
	database.DB.Where("role = ?", models.RoleCoordinator).
		Order("first_name asc").Find(&coordinators)
	c.JSON(http.StatusOK, gin.H{"coordinators": coordinators})
}

// MyAssignments lists submissions currently assigned to the calling coordinator.
func MyAssignments(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var submissions []models.ClientSubmission
	database.DB.
		Where("coordinator_id = ?", user.ID).
		Order("assigned_at desc").
		Find(&submissions)
	c.JSON(http.StatusOK, gin.H{"assignments": submissions})
}

// latestAssignment returns the newest assignment row held by this coordinator.
func latestAssignment(submissionID, coordinatorID uint) *models.CoordinatorAssignment {
	var record models.CoordinatorAssignment
	err := database.DB.
		Where("submission_id = ? AND coordinator_id = ?", submissionID, coordinatorID).
		Order("assigned_at desc").
		First(&record).Error
	if err != nil {
		return nil
	}
	return &record
}

func AcceptAssignment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var submission models.ClientSubmission
	if err := database.DB.Where("id = ? AND coordinator_id = ?", id, user.ID).
		First(&submission).Error; err != nil {
		fail(c, http.StatusNotFound, "Assignment not found")
		return
	}

	record := latestAssignment(submission.ID, user.ID)
	if err := workflow.AcceptAssignment(&submission, record); err != nil {
		workflowError(c, err)
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(&submission).Error; err != nil {
			return err
		}
		if record != nil {
			return tx.Omit(clause.Associations).Save(record).Error
		}
		return nil
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to save response")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Assignment accepted. You can now create the project.",
	})
}

type rejectAssignmentBody struct {
	RejectionReason string `json:"rejection_reason"`
}

func RejectAssignment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var submission models.ClientSubmission
	if err := database.DB.Where("id = ? AND coordinator_id = ?", id, user.ID).
		First(&submission).Error; err != nil {
		fail(c, http.StatusNotFound, "Assignment not found")
		return
	}

	var body rejectAssignmentBody
	_ = c.ShouldBindJSON(&body)

	record := latestAssignment(submission.ID, user.ID)
	if err := workflow.RejectAssignment(&submission, record, body.RejectionReason); err != nil {
		workflowError(c, err)
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(&submission).Error; err != nil {
			return err
		}
		if record != nil {
			return tx.Omit(clause.Associations).Save(record).Error
		}
		return nil
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to save response")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Assignment rejected. The admin will reassign the submission.",
	})
}
