package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"auditra-backend/internal/database"
	"auditra-backend/internal/models"

	"github.com/gin-gonic/gin"
)

const dashboardCacheTTL = 2 * time.Minute

var dashboardCacheKeys = []string{
	"dashboard:admin",
	"dashboard:md_gm",
}

// invalidateDashboards drops the cached aggregate views after any write that
// changes project or submission counts.
func invalidateDashboards() {
	database.CacheDel(dashboardCacheKeys...)
}

func countWhere(model interface{}, query string, args ...interface{}) int64 {
	var n int64
	q := database.DB.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	q.Count(&n)
	return n
}

// cachedStats serves stats from redis when possible; build recomputes them.
func cachedStats(c *gin.Context, key string, build func() gin.H) {
	if raw, ok := database.CacheGet(key); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(raw))
		return
	}
	stats := build()
	if buf, err := json.Marshal(stats); err == nil {
		database.CacheSet(key, string(buf), dashboardCacheTTL)
	}
	c.JSON(http.StatusOK, stats)
}

// AdminDashboard aggregates the company-wide numbers.
func AdminDashboard(c *gin.Context) {
	cachedStats(c, "dashboard:admin", func() gin.H {
		projects := gin.H{
			"total":       countWhere(&models.Project{}, ""),
			"pending":     countWhere(&models.Project{}, "status = ?", models.ProjectPending),
			"in_progress": countWhere(&models.Project{}, "status = ?", models.ProjectInProgress),
			"completed":   countWhere(&models.Project{}, "status = ?", models.ProjectCompleted),
			"cancelled":   countWhere(&models.Project{}, "status = ?", models.ProjectCancelled),
		}
		submissions := gin.H{
			"pending":  countWhere(&models.ClientSubmission{}, "status = ?", models.SubmissionPending),
			"approved": countWhere(&models.ClientSubmission{}, "status = ?", models.SubmissionApproved),
			"assigned": countWhere(&models.ClientSubmission{}, "status = ?", models.SubmissionAssigned),
		}
		return gin.H{
			"projects":                projects,
			"submissions":             submissions,
			"users":                   countWhere(&models.User{}, ""),
			"pending_cancellations":   countWhere(&models.CancellationRequest{}, "status = ?", models.CancellationPending),
			"payments_under_review":   countWhere(&models.ProjectPayment{}, "payment_status IN ?", []models.PaymentStatus{models.PaymentSubmitted, models.PaymentUnderReview}),
		}
	})
}

// CoordinatorDashboard is scoped to the caller's projects, so it is not cached.
func CoordinatorDashboard(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"projects": gin.H{
			"total":       countWhere(&models.Project{}, "coordinator_id = ?", user.ID),
			"pending":     countWhere(&models.Project{}, "coordinator_id = ? AND status = ?", user.ID, models.ProjectPending),
			"in_progress": countWhere(&models.Project{}, "coordinator_id = ? AND status = ?", user.ID, models.ProjectInProgress),
			"completed":   countWhere(&models.Project{}, "coordinator_id = ? AND status = ?", user.ID, models.ProjectCompleted),
		},
		"pending_assignments": countWhere(&models.ClientSubmission{},
			"coordinator_id = ? AND coordinator_response = ?", user.ID, models.ResponsePending),
	})
}

// FieldOfficerDashboard shows the caller's valuation pipeline.
func FieldOfficerDashboard(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"assigned_projects": countWhere(&models.Project{}, "field_officer_id = ?", user.ID),
		"valuations": gin.H{
			"draft":     countWhere(&models.Valuation{}, "field_officer_id = ? AND status = ?", user.ID, models.ValuationDraft),
			"submitted": countWhere(&models.Valuation{}, "field_officer_id = ? AND status = ?", user.ID, models.ValuationSubmitted),
			"rejected":  countWhere(&models.Valuation{}, "field_officer_id = ? AND status = ?", user.ID, models.ValuationRejected),
			"approved":  countWhere(&models.Valuation{}, "field_officer_id = ? AND status IN ?", user.ID, []models.ValuationStatus{models.ValuationMDApproved}),
		},
		"unread_notifications": countWhere(&models.Notification{}, "user_id = ? AND is_read = ?", user.ID, false),
	})
}

// MDGMDashboard shows the final-approval queue; shared across MD/GM users so
// it is cacheable.
func MDGMDashboard(c *gin.Context) {
	cachedStats(c, "dashboard:md_gm", func() gin.H {
		return gin.H{
			"awaiting_final_approval": countWhere(&models.Valuation{}, "status = ?", models.ValuationApproved),
			"md_approved":             countWhere(&models.Valuation{}, "status = ?", models.ValuationMDApproved),
			"rejected":                countWhere(&models.Valuation{}, "status = ?", models.ValuationRejected),
		}
	})
}
