package handlers

import (
	"net/http"

	"auditra-backend/internal/database"
	"auditra-backend/internal/models"
	"auditra-backend/internal/workflow"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cancellationRequestBody struct {
	Reason string `json:"reason" validate:"required"`
}

// RequestCancellation files a cancellation request for one of the
// coordinator's own projects.
func RequestCancellation(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var project models.Project
	if err := database.DB.Where("id = ? AND coordinator_id = ?", id, user.ID).
		First(&project).Error; err != nil {
		fail(c, http.StatusNotFound, "Project not found")
		return
	}
	if project.Status == models.ProjectCancelled {
		fail(c, http.StatusBadRequest, "Project is already cancelled")
		return
	}
	if project.Status == models.ProjectCompleted {
		fail(c, http.StatusBadRequest, "A completed project cannot be cancelled")
		return
	}

	var body cancellationRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	var pending int64
	database.DB.Model(&models.CancellationRequest{}).
		Where("project_id = ? AND status = ?", project.ID, models.CancellationPending).
		Count(&pending)

	request, err := workflow.NewCancellationRequest(project.ID, user.ID, body.Reason, pending > 0)
	if err != nil {
		workflowError(c, err)
		return
	}
	if err := database.DB.Create(request).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to save request")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Cancellation request submitted for admin review",
		"request": request,
	})
}

// ProjectCancellationStatus reports the latest request for a project, so the
// client UI can show whether one is pending.
func ProjectCancellationStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var request models.CancellationRequest
	err := database.DB.
		Preload("RequestedBy").
		Preload("ReviewedBy").
		Where("project_id = ?", id).
		Order("created_at desc").
		First(&request).Error
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"has_request": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"has_request": true, "request": request})
}

// ListCancellationRequests is the admin queue with summary counts.
func ListCancellationRequests(c *gin.Context) {
	dbq := database.DB.
		Preload("Project").
		Preload("RequestedBy").
		Preload("ReviewedBy").
		Order("created_at desc")

	if s := c.Query("status"); s != "" {
		dbq = dbq.Where("status = ?", s)
	}

	var requests []models.CancellationRequest
	if err := dbq.Find(&requests).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to load requests")
		return
	}

	counts := gin.H{}
	for _, status := range []models.CancellationStatus{
		models.CancellationPending, models.CancellationApproved, models.CancellationRejected,
	} {
		var n int64
		database.DB.Model(&models.CancellationRequest{}).Where("status = ?", status).Count(&n)
		counts[string(status)] = n
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests, "counts": counts})
}

type reviewCancellationBody struct {
	AdminRemarks string `json:"admin_remarks"`
}

func loadCancellationRequest(c *gin.Context) (*models.CancellationRequest, bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return nil, false
	}
	var request models.CancellationRequest
	if err := database.DB.Preload("Project").First(&request, id).Error; err != nil {
		fail(c, http.StatusNotFound, "Cancellation request not found")
		return nil, false
	}
	return &request, true
}

// ApproveCancellation cancels the project and resolves the request in one
// transaction.
func ApproveCancellation(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	request, ok := loadCancellationRequest(c)
	if !ok {
		return
	}
	var body reviewCancellationBody
	_ = c.ShouldBindJSON(&body)

	project := request.Project
	if err := workflow.ApproveCancellation(request, &project, body.AdminRemarks, user.ID); err != nil {
		workflowError(c, err)
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(request).Error; err != nil {
			return err
		}
		return tx.Model(&models.Project{}).Where("id = ?", project.ID).
			Update("status", project.Status).Error
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to save decision")
		return
	}

	database.RecordProjectEvent(project.ID, models.ProjectCancelled,
		"Project cancelled: "+request.Reason, user.ID)
	invalidateDashboards()

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Project cancelled"})
}

func RejectCancellation(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	request, ok := loadCancellationRequest(c)
	if !ok {
		return
	}
	var body reviewCancellationBody
	_ = c.ShouldBindJSON(&body)

	if err := workflow.RejectCancellation(request, body.AdminRemarks, user.ID); err != nil {
		workflowError(c, err)
		return
	}
	if err := database.DB.Omit(clause.Associations).Save(request).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to save decision")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cancellation request rejected. The project stays active.",
	})
}
