package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"auditra-backend/internal/middleware"
	"auditra-backend/internal/models"
	"auditra-backend/internal/workflow"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var uploadDir = "./uploads"

// SetUploadDir points file uploads at the configured directory.
func SetUploadDir(dir string) {
	uploadDir = dir
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// workflowError maps guard violations to 400 and everything else to 500.
// Guard messages are surfaced verbatim.
func workflowError(c *gin.Context, err error) {
	if workflow.IsViolation(err) {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	fail(c, http.StatusInternalServerError, "internal error")
}

// validationError turns validator.v10 failures into a field-keyed mapping.
func validationError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := gin.H{}
		for _, fe := range verrs {
			fields[fe.Field()] = "failed on " + fe.Tag()
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fields})
		return
	}
	fail(c, http.StatusBadRequest, err.Error())
}

func currentUser(c *gin.Context) (models.User, bool) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "authentication required")
	}
	return u, ok
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// formID parses an optional numeric form field; ok is false when absent or
// malformed.
func formID(c *gin.Context, name string) (uint, bool) {
	raw := c.PostForm(name)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// saveUpload stores a multipart file under uploadDir/<subdir> with a uuid
// name and returns the stored path.
func saveUpload(c *gin.Context, fieldName, subdir string) (string, error) {
	file, err := c.FormFile(fieldName)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(uploadDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	dst := filepath.Join(dir, uuid.NewString()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", err
	}
	return dst, nil
}

var validate = validator.New()
