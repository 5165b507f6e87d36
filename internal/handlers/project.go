package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"auditra-backend/internal/database"
	"auditra-backend/internal/models"
	"auditra-backend/internal/workflow"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

//
// PROJECT LIST & DETAIL
//

// ListProjects returns the projects visible to the caller's role, with
// optional status/priority filters.
func ListProjects(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	dbq := database.DB.
		Preload("Coordinator").
		Preload("FieldOfficer").
		Preload("Client").
		Preload("Agent").
		Preload("Accessor").
		Preload("SeniorValuer").
		Order("created_at desc")

	switch user.Role {
	case models.RoleAdmin, models.RoleMDGM:
		// see everything
	case models.RoleCoordinator:
		dbq = dbq.Where("coordinator_id = ?", user.ID)
	case models.RoleFieldOfficer:
		dbq = dbq.Where("field_officer_id = ?", user.ID)
	case models.RoleClient:
		dbq = dbq.Where("client_id = ?", user.ID)
	case models.RoleAgent:
		dbq = dbq.Where("agent_id = ?", user.ID)
	case models.RoleAccessor:
		dbq = dbq.Where("accessor_id = ?", user.ID)
	case models.RoleSeniorValuer:
		dbq = dbq.Where("senior_valuer_id = ?", user.ID)
	default:
		fail(c, http.StatusForbidden, "access denied")
		return
	}

	if s := c.Query("status"); s != "" {
		dbq = dbq.Where("status = ?", s)
	}
	if p := c.Query("priority"); p != "" {
		dbq = dbq.Where("priority = ?", p)
	}

	var projects []models.Project
	if err := dbq.Find(&projects).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to load projects")
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func GetProject(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var project models.Project
	err := database.DB.
		Preload("Coordinator").
		Preload("FieldOfficer").
		Preload("Client").
		Preload("Agent").
		Preload("Accessor").
		Preload("SeniorValuer").
		Preload("Documents").
		Preload("Documents.UploadedBy").
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc") }).
		First(&project, id).Error
	if err != nil {
		if notFound(err) {
			fail(c, http.StatusNotFound, "Project not found")
			return
		}
		fail(c, http.StatusInternalServerError, "failed to load project")
		return
	}

	// same visibility rule as the listing: team members plus admin and MD/GM
	switch user.Role {
	case models.RoleAdmin, models.RoleMDGM:
	default:
		if !projectMember(&project, user.ID) {
			fail(c, http.StatusNotFound, "Project not found")
			return
		}
	}

	var payment models.ProjectPayment
	var paymentOut interface{}
	if err := database.DB.Where("project_id = ?", project.ID).First(&payment).Error; err == nil {
		paymentOut = payment
	}

	c.JSON(http.StatusOK, gin.H{
		"project":   project,
		"payment":   paymentOut,
		"can_start": workflow.CanStart(&project, paymentPtr(paymentOut)),
	})
}

func paymentPtr(v interface{}) *models.ProjectPayment {
	if p, ok := v.(models.ProjectPayment); ok {
		return &p
	}
	return nil
}

//
// PROJECT CREATE & UPDATE
//

type createProjectRequest struct {
	Title          string  `json:"title" validate:"required,min=3"`
	Description    string  `json:"description"`
	Priority       string  `json:"priority"`
	EstimatedValue float64 `json:"estimated_value"`
	HasAgent       bool    `json:"has_agent"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	SubmissionID   *uint   `json:"submission_id"`
}

func CreateProject(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		validationError(c, err)
		return
	}

	priority := models.ProjectPriority(req.Priority)
	switch priority {
	case models.PriorityHigh, models.PriorityMedium, models.PriorityLow:
	case "":
		priority = models.PriorityMedium
	default:
		fail(c, http.StatusBadRequest, "invalid priority")
		return
	}

	project := models.Project{
		Title:         strings.TrimSpace(req.Title),
		Description:   strings.TrimSpace(req.Description),
		Priority:      priority,
		Status:        models.ProjectPending,
		CoordinatorID: user.ID,
		HasAgent:      req.HasAgent,
	}
	if req.EstimatedValue > 0 {
		project.EstimatedValue = req.EstimatedValue
	}
	if t, err := time.Parse("2006-01-02", req.StartDate); err == nil {
		project.StartDate = &t
	}
	if t, err := time.Parse("2006-01-02", req.EndDate); err == nil {
		project.EndDate = &t
	}

	if err := database.DB.Create(&project).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to create project")
		return
	}

	database.RecordProjectEvent(project.ID, project.Status, "Project created", user.ID)
	invalidateDashboards()

	// a project created from an accepted submission closes the intake
	if req.SubmissionID != nil {
		database.DB.Model(&models.ClientSubmission{}).
			Where("id = ?", *req.SubmissionID).
			Update("project_created", true)
	}

	c.JSON(http.StatusCreated, project)
}

type updateProjectRequest struct {
	Title          *string  `json:"title"`
	Description    *string  `json:"description"`
	Priority       *string  `json:"priority"`
	Status         *string  `json:"status"`
	EstimatedValue *float64 `json:"estimated_value"`
	EndDate        *string  `json:"end_date"`
}

// UpdateProject patches editable fields. Status changes here are limited to
// completing an in-progress project; starting and cancelling go through
// their own endpoints.
func UpdateProject(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var project models.Project
	if err := database.DB.First(&project, id).Error; err != nil {
		fail(c, http.StatusNotFound, "Project not found")
		return
	}
	if user.Role == models.RoleCoordinator && project.CoordinatorID != user.ID {
		fail(c, http.StatusForbidden, "You can only update your own projects")
		return
	}

	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Title != nil {
		t := strings.TrimSpace(*req.Title)
		if len(t) < 3 {
			fail(c, http.StatusBadRequest, "title must be at least 3 characters")
			return
		}
		project.Title = t
	}
	if req.Description != nil {
		project.Description = strings.TrimSpace(*req.Description)
	}
	if req.Priority != nil {
		p := models.ProjectPriority(*req.Priority)
		switch p {
		case models.PriorityHigh, models.PriorityMedium, models.PriorityLow:
			project.Priority = p
		default:
			fail(c, http.StatusBadRequest, "invalid priority")
			return
		}
	}
	if req.EstimatedValue != nil && *req.EstimatedValue > 0 {
		project.EstimatedValue = *req.EstimatedValue
	}
	if req.EndDate != nil {
		if t, err := time.Parse("2006-01-02", *req.EndDate); err == nil {
			project.EndDate = &t
		}
	}
	if req.Status != nil {
		next := models.ProjectStatus(*req.Status)
		if next != models.ProjectCompleted || project.Status != models.ProjectInProgress {
			fail(c, http.StatusBadRequest, "only an in-progress project can be marked completed here")
			return
		}
		project.Status = models.ProjectCompleted
		database.RecordProjectEvent(project.ID, project.Status, "Project completed", user.ID)
	}

	if err := database.DB.Save(&project).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to update project")
		return
	}
	invalidateDashboards()

	c.JSON(http.StatusOK, project)
}

//
// TEAM ASSIGNMENT
//

// assignable role slots, keyed by the URL segment
var assignmentSlots = map[string]struct {
	role   models.UserRole
	column string
}{
	"field-officer": {models.RoleFieldOfficer, "field_officer_id"},
	"client":        {models.RoleClient, "client_id"},
	"agent":         {models.RoleAgent, "agent_id"},
	"accessor":      {models.RoleAccessor, "accessor_id"},
	"senior-valuer": {models.RoleSeniorValuer, "senior_valuer_id"},
}

type assignRequest struct {
	UserID uint `json:"user_id" validate:"required"`
}

// AssignTeamMember fills one team slot on a project. The slot comes from the
// :role path segment; the chosen user must hold the matching role.
func AssignTeamMember(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	slot, known := assignmentSlots[c.Param("role")]
	if !known {
		fail(c, http.StatusNotFound, "unknown role")
		return
	}

	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		validationError(c, err)
		return
	}

	var project models.Project
	if err := database.DB.First(&project, id).Error; err != nil {
		fail(c, http.StatusNotFound, "Project not found")
		return
	}
	if project.CoordinatorID != user.ID {
		fail(c, http.StatusForbidden, "You can only assign members on your own projects")
		return
	}
	switch project.Status {
	case models.ProjectCompleted, models.ProjectCancelled:
		fail(c, http.StatusBadRequest, "cannot assign members on a finished project")
		return
	}

	var member models.User
	if err := database.DB.First(&member, req.UserID).Error; err != nil {
		fail(c, http.StatusNotFound, "User not found")
		return
	}
	if member.Role != slot.role {
		fail(c, http.StatusBadRequest, "selected user does not hold the "+string(slot.role)+" role")
		return
	}
	if slot.role == models.RoleAgent && !project.HasAgent {
		fail(c, http.StatusBadRequest, "this project is not flagged as having an agent")
		return
	}

	if err := database.DB.Model(&project).Update(slot.column, member.ID).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to assign")
		return
	}
	database.RecordProjectEvent(project.ID, project.Status,
		member.FullName()+" assigned as "+string(slot.role), user.ID)

	database.DB.
		Preload("FieldOfficer").Preload("Client").Preload("Agent").
		Preload("Accessor").Preload("SeniorValuer").
		First(&project, project.ID)
	c.JSON(http.StatusOK, project)
}

// AvailableUsers lists active users holding the requested role, for the
// assignment pickers.
func AvailableUsers(c *gin.Context) {
	slot, known := assignmentSlots[c.Param("role")]
	if !known {
		fail(c, http.StatusNotFound, "unknown role")
		return
	}

	var users []models.User
	if err := database.DB.Where("role = ?", slot.role).Order("first_name asc").Find(&users).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to load users")
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

//
// START PROJECT
//

// StartProject re-validates readiness server-side; the UI gate is advisory only.
func StartProject(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var project models.Project
	if err := database.DB.Where("id = ? AND coordinator_id = ?", id, user.ID).First(&project).Error; err != nil {
		fail(c, http.StatusNotFound, "Project not found")
		return
	}

	var payment *models.ProjectPayment
	var pay models.ProjectPayment
	if err := database.DB.Where("project_id = ?", project.ID).First(&pay).Error; err == nil {
		payment = &pay
	}

	if err := workflow.StartProject(&project, payment); err != nil {
		workflowError(c, err)
		return
	}

	if err := database.DB.Save(&project).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to start project")
		return
	}
	database.RecordProjectEvent(project.ID, models.ProjectInProgress,
		"Project started after payment approval and role assignments", user.ID)
	invalidateDashboards()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Project started successfully!",
		"project": project,
	})
}

// UserProjects lists projects where the given user fills the given role slot.
func UserProjects(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil || userID <= 0 {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	slot, known := assignmentSlots[c.Param("role")]
	if !known {
		fail(c, http.StatusNotFound, "unknown role")
		return
	}

	var projects []models.Project
	if err := database.DB.
		Preload("Coordinator").
		Where(slot.column+" = ?", userID).
		Order("created_at desc").
		Find(&projects).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to load projects")
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}
