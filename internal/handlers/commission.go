package handlers

import (
	"net/http"
	"time"

	"auditra-backend/internal/database"
	"auditra-backend/internal/models"

	"github.com/gin-gonic/gin"
)

// GenerateCommissionReport creates the commission record for a project's
// agent. Requires the agent payment to be recorded first.
func GenerateCommissionReport(c *gin.Context) {
	project, user, ok := coordinatorProject(c)
	if !ok {
		return
	}
	if !project.HasAgent || project.AgentID == nil {
		fail(c, http.StatusBadRequest, "This project has no agent")
		return
	}

	var payment models.ProjectPayment
	if err := database.DB.Where("project_id = ?", project.ID).First(&payment).Error; err != nil ||
		payment.AgentPaymentStatus != models.AgentPaymentPaid {
		fail(c, http.StatusBadRequest, "Agent payment must be recorded before generating a commission report")
		return
	}

	var existing models.CommissionReport
	if err := database.DB.Where("project_id = ?", project.ID).First(&existing).Error; err == nil {
		fail(c, http.StatusBadRequest, "A commission report already exists for this project")
		return
	}

	amount := 0.0
	if payment.AgentPaymentAmount != nil {
		amount = *payment.AgentPaymentAmount
	}
	report := models.CommissionReport{
		ProjectID:        project.ID,
		GeneratedByID:    &user.ID,
		AgentID:          project.AgentID,
		CommissionAmount: amount,
	}
	if err := database.DB.Create(&report).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to create report")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "report": report})
}

// UploadCommissionReport attaches the report document.
func UploadCommissionReport(c *gin.Context) {
	project, _, ok := coordinatorProject(c)
	if !ok {
		return
	}
	var report models.CommissionReport
	if err := database.DB.Where("project_id = ?", project.ID).First(&report).Error; err != nil {
		fail(c, http.StatusNotFound, "Commission report not found")
		return
	}

	path, err := saveUpload(c, "report", "commission_reports")
	if err != nil {
		fail(c, http.StatusBadRequest, "report file is required")
		return
	}
	if err := database.DB.Model(&report).Update("report_path", path).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to save report")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "report_path": path})
}

// SendCommissionReport marks the report as delivered to the agent. Takes the
// report id; the caller must coordinate the underlying project.
func SendCommissionReport(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var report models.CommissionReport
	if err := database.DB.Preload("Project").First(&report, id).Error; err != nil {
		fail(c, http.StatusNotFound, "Commission report not found")
		return
	}
	if report.Project.CoordinatorID != user.ID && user.Role != models.RoleAdmin {
		fail(c, http.StatusForbidden, "You can only send reports for your own projects")
		return
	}
	if report.SentToAgent {
		fail(c, http.StatusBadRequest, "Report has already been sent to the agent")
		return
	}
	if report.ReportPath == "" {
		fail(c, http.StatusBadRequest, "Upload the report document before sending")
		return
	}

	now := time.Now()
	updates := map[string]interface{}{"sent_to_agent": true, "sent_at": &now}
	if err := database.DB.Model(&report).Updates(updates).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to update report")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Commission report sent to agent"})
}

// AgentCommissionReports lists the calling agent's received reports.
func AgentCommissionReports(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var reports []models.CommissionReport
	database.DB.
		Preload("Project").
		Where("agent_id = ? AND sent_to_agent = ?", user.ID, true).
		Order("sent_at desc").
		Find(&reports)
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}
