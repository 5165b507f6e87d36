package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"auditra-backend/internal/database"
	"auditra-backend/internal/models"

	"github.com/gin-gonic/gin"
)

// projectMember reports whether a user fills any slot on the project.
func projectMember(p *models.Project, userID uint) bool {
	if p.CoordinatorID == userID {
		return true
	}
	for _, id := range []*uint{p.FieldOfficerID, p.ClientID, p.AgentID, p.AccessorID, p.SeniorValuerID} {
		if id != nil && *id == userID {
			return true
		}
	}
	return false
}

// UploadProjectDocument stores a document against a project. Any team member
// may upload; an optional assigned_to_id targets a specific member.
func UploadProjectDocument(c *gin.Context) {
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
	if user.Role != models.RoleAdmin && !projectMember(&project, user.ID) {
		fail(c, http.StatusForbidden, "You are not a member of this project")
		return
	}

	name := c.PostForm("name")
	if name == "" {
		fail(c, http.StatusBadRequest, "document name is required")
		return
	}

	path, err := saveUpload(c, "file", "project_documents")
	if err != nil {
		fail(c, http.StatusBadRequest, "file is required")
		return
	}

	doc := models.ProjectDocument{
		ProjectID:    project.ID,
		Name:         name,
		Description:  c.PostForm("description"),
		FilePath:     path,
		UploadedByID: &user.ID,
	}
	if assignedID, ok := formID(c, "assigned_to_id"); ok {
		if !projectMember(&project, assignedID) {
			fail(c, http.StatusBadRequest, "assigned user is not a member of this project")
			return
		}
		doc.AssignedToID = &assignedID
	}

	if err := database.DB.Create(&doc).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to save document")
		return
	}
	c.JSON(http.StatusCreated, doc)
}

func ListProjectDocuments(c *gin.Context) {
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
	if user.Role != models.RoleAdmin && !projectMember(&project, user.ID) {
		fail(c, http.StatusForbidden, "You are not a member of this project")
		return
	}

	var docs []models.ProjectDocument
	database.DB.
		Preload("UploadedBy").
		Preload("AssignedTo").
		Where("project_id = ?", project.ID).
		Order("created_at desc").
		Find(&docs)
	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

// DeleteProjectDocument removes the record and the stored file. Only the
// uploader, the project coordinator, or an admin may delete.
func DeleteProjectDocument(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var doc models.ProjectDocument
	if err := database.DB.First(&doc, id).Error; err != nil {
		fail(c, http.StatusNotFound, "Document not found")
		return
	}

	var project models.Project
	if err := database.DB.First(&project, doc.ProjectID).Error; err != nil {
		fail(c, http.StatusNotFound, "Project not found")
		return
	}

	allowed := user.Role == models.RoleAdmin ||
		project.CoordinatorID == user.ID ||
		(doc.UploadedByID != nil && *doc.UploadedByID == user.ID)
	if !allowed {
		fail(c, http.StatusForbidden, "You cannot delete this document")
		return
	}

	if err := database.DB.Delete(&doc).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to delete document")
		return
	}
	if doc.FilePath != "" {
		_ = os.Remove(filepath.Clean(doc.FilePath))
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
