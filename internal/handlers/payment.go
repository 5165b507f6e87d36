package handlers

import (
	"fmt"
	"net/http"

	"auditra-backend/internal/database"
	"auditra-backend/internal/models"
	"auditra-backend/internal/workflow"

	"github.com/gin-gonic/gin"
)

// loadOrCreatePayment returns the project's payment record, creating the
// default pending one on first touch.
func loadOrCreatePayment(project *models.Project) (*models.ProjectPayment, error) {
	var pay models.ProjectPayment
	err := database.DB.Where("project_id = ?", project.ID).First(&pay).Error
	if err == nil {
		return &pay, nil
	}
	if !notFound(err) {
		return nil, err
	}
	pay = models.ProjectPayment{
		ProjectID:      project.ID,
		EstimatedValue: project.EstimatedValue,
		PaymentStatus:  models.PaymentPending,
	}
	if err := database.DB.Create(&pay).Error; err != nil {
		return nil, err
	}
	return &pay, nil
}

func coordinatorProject(c *gin.Context) (*models.Project, *models.User, bool) {
	user, ok := currentUser(c)
	if !ok {
		return nil, nil, false
	}
	id, ok := pathID(c, "id")
	if !ok {
		return nil, nil, false
	}
	var project models.Project
	if err := database.DB.Where("id = ? AND coordinator_id = ?", id, user.ID).First(&project).Error; err != nil {
		fail(c, http.StatusNotFound, "Project not found")
		return nil, nil, false
	}
	return &project, &user, true
}

//
// CLIENT PAYMENT WORKFLOW
//

type sendPaymentRequestBody struct {
	PaymentInstructions string `json:"payment_instructions"`
	CoordinatorNotes    string `json:"coordinator_notes"`
}

func SendPaymentRequest(c *gin.Context) {
	project, user, ok := coordinatorProject(c)
	if !ok {
		return
	}

	var body sendPaymentRequestBody
	_ = c.ShouldBindJSON(&body)

	pay, err := loadOrCreatePayment(project)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to load payment record")
		return
	}

	instructions := body.PaymentInstructions
	if instructions == "" {
		instructions = fmt.Sprintf(
			"Please make the payment of Rs. %.2f for your project %q and upload the bank slip afterwards.",
			project.EstimatedValue, project.Title)
	}

	if err := workflow.SendPaymentRequest(pay, project.ClientID != nil, user.ID, instructions); err != nil {
		workflowError(c, err)
		return
	}
	pay.CoordinatorNotes = body.CoordinatorNotes

	if err := database.DB.Save(pay).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to save payment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Payment request sent to client successfully",
		"payment": pay,
	})
}

func UploadBankSlip(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var project models.Project
	if err := database.DB.Where("id = ? AND client_id = ?", id, user.ID).First(&project).Error; err != nil {
		fail(c, http.StatusNotFound, "Project not found or not assigned to you")
		return
	}

	var pay models.ProjectPayment
	if err := database.DB.Where("project_id = ?", project.ID).First(&pay).Error; err != nil {
		fail(c, http.StatusBadRequest, "No payment request found for this project")
		return
	}

	slipPath, err := saveUpload(c, "bank_slip", "bank_slips")
	if err != nil {
		fail(c, http.StatusBadRequest, "Bank slip file is required")
		return
	}

	if err := workflow.UploadBankSlip(&pay, slipPath, user.ID, c.PostForm("client_notes")); err != nil {
		workflowError(c, err)
		return
	}

	if err := database.DB.Save(&pay).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to save payment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Bank slip uploaded successfully. Awaiting coordinator review.",
		"payment": pay,
	})
}

type reviewPaymentBody struct {
	RejectionReason  string `json:"rejection_reason"`
	CoordinatorNotes string `json:"coordinator_notes"`
}

func ApprovePayment(c *gin.Context) {
	project, user, ok := coordinatorProject(c)
	if !ok {
		return
	}

	var body reviewPaymentBody
	_ = c.ShouldBindJSON(&body)

	var pay models.ProjectPayment
	if err := database.DB.Where("project_id = ?", project.ID).First(&pay).Error; err != nil {
		fail(c, http.StatusBadRequest, "No payment record found for this project")
		return
	}

	if err := workflow.ApprovePayment(&pay, user.ID); err != nil {
		workflowError(c, err)
		return
	}
	if body.CoordinatorNotes != "" {
		pay.CoordinatorNotes = body.CoordinatorNotes
	}

	if err := database.DB.Save(&pay).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to save payment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Payment approved successfully. You can now start the project.",
		"payment": pay,
	})
}

func RejectPayment(c *gin.Context) {
	project, _, ok := coordinatorProject(c)
	if !ok {
		return
	}

	var body reviewPaymentBody
	_ = c.ShouldBindJSON(&body)

	var pay models.ProjectPayment
	if err := database.DB.Where("project_id = ?", project.ID).First(&pay).Error; err != nil {
		fail(c, http.StatusBadRequest, "No payment record found for this project")
		return
	}

	if err := workflow.RejectPayment(&pay, body.RejectionReason); err != nil {
		workflowError(c, err)
		return
	}
	if body.CoordinatorNotes != "" {
		pay.CoordinatorNotes = body.CoordinatorNotes
	}

	if err := database.DB.Save(&pay).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to save payment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Payment rejected. Client has been notified to re-upload the bank slip.",
		"payment": pay,
	})
}

// GetPaymentDetails is readable by the project's coordinator and client, and
// by the admin.
func GetPaymentDetails(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	dbq := database.DB
	switch user.Role {
	case models.RoleCoordinator:
		dbq = dbq.Where("id = ? AND coordinator_id = ?", id, user.ID)
	case models.RoleClient:
		dbq = dbq.Where("id = ? AND client_id = ?", id, user.ID)
	case models.RoleAdmin:
		dbq = dbq.Where("id = ?", id)
	default:
		fail(c, http.StatusForbidden, "You do not have permission to view this payment")
		return
	}

	var project models.Project
	if err := dbq.First(&project).Error; err != nil {
		fail(c, http.StatusNotFound, "Project not found")
		return
	}

	pay, err := loadOrCreatePayment(&project)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to load payment record")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payment": pay,
		"project": gin.H{
			"id":              project.ID,
			"title":           project.Title,
			"status":          project.Status,
			"estimated_value": project.EstimatedValue,
		},
	})
}

//
// PAYMENT OVERVIEWS
//

// paymentOverview serves both the client and agent listing; the slot column
// decides whose projects are shown.
func paymentOverview(c *gin.Context, column string) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var projects []models.Project
	if err := database.DB.
		Preload("Coordinator").
		Where(column+" = ?", user.ID).
		Order("created_at desc").
		Find(&projects).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to load projects")
		return
	}

	out := make([]gin.H, 0, len(projects))
	for _, p := range projects {
		var pay models.ProjectPayment
		var payOut interface{}
		if err := database.DB.Where("project_id = ?", p.ID).First(&pay).Error; err == nil {
			payOut = pay
		}
		out = append(out, gin.H{
			"id":               p.ID,
			"title":            p.Title,
			"description":      p.Description,
			"status":           p.Status,
			"estimated_value":  p.EstimatedValue,
			"coordinator_name": p.Coordinator.FullName(),
			"created_at":       p.CreatedAt,
			"payment":          payOut,
		})
	}

	c.JSON(http.StatusOK, gin.H{"projects": out})
}

func ClientPayments(c *gin.Context) { paymentOverview(c, "client_id") }
func AgentPayments(c *gin.Context)  { paymentOverview(c, "agent_id") }

//
// AGENT COMMISSION PAYOUT
//

type recordAgentPaymentBody struct {
	Amount float64 `json:"amount" validate:"required"`
	Notes  string  `json:"notes"`
}

func RecordAgentPayment(c *gin.Context) {
	project, user, ok := coordinatorProject(c)
	if !ok {
		return
	}

	var body recordAgentPaymentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(body); err != nil {
		validationError(c, err)
		return
	}

	pay, err := loadOrCreatePayment(project)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to load payment record")
		return
	}

	if err := workflow.RecordAgentPayment(pay, project.AgentID != nil, body.Amount, user.ID, body.Notes); err != nil {
		workflowError(c, err)
		return
	}

	if err := database.DB.Save(pay).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to save payment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Agent payment recorded successfully",
		"payment": pay,
	})
}
