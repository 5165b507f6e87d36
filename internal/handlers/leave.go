package handlers

import (
	"fmt"
	"net/http"
	"time"

	"auditra-backend/internal/database"
	"auditra-backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

//
// LEAVE REQUESTS
//

type createLeaveRequest struct {
	LeaveType string `json:"leave_type" validate:"required"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
	Reason    string `json:"reason" validate:"required"`
}

func CreateLeaveRequest(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		validationError(c, err)
		return
	}

	leaveType := models.LeaveType(req.LeaveType)
	switch leaveType {
	case models.LeaveAnnual, models.LeaveSick, models.LeaveCasual, models.LeaveEmergency, models.LeaveOther:
	default:
		fail(c, http.StatusBadRequest, "invalid leave type")
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		fail(c, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		fail(c, http.StatusBadRequest, "end_date must be YYYY-MM-DD")
		return
	}
	if end.Before(start) {
		fail(c, http.StatusBadRequest, "end_date cannot be before start_date")
		return
	}

	leave := models.LeaveRequest{
		UserID:    user.ID,
		LeaveType: leaveType,
		StartDate: start,
		EndDate:   end,
		Reason:    req.Reason,
		Status:    models.LeavePending,
	}
	if err := database.DB.Create(&leave).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to save leave request")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "request": leave, "days": leave.Days()})
}

func MyLeaveRequests(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var requests []models.LeaveRequest
	database.DB.Where("user_id = ?", user.ID).Order("created_at desc").Find(&requests)
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// ListLeaveRequests is the HR queue.
func ListLeaveRequests(c *gin.Context) {
	dbq := database.DB.Preload("User").Preload("ReviewedBy").Order("created_at desc")
	if s := c.Query("status"); s != "" {
		dbq = dbq.Where("status = ?", s)
	}
	var requests []models.LeaveRequest
	if err := dbq.Find(&requests).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to load leave requests")
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

type reviewLeaveBody struct {
	Notes string `json:"notes"`
}

func reviewLeave(c *gin.Context, status models.LeaveStatus) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var leave models.LeaveRequest
	if err := database.DB.First(&leave, id).Error; err != nil {
		fail(c, http.StatusNotFound, "Leave request not found")
		return
	}
	if leave.Status != models.LeavePending {
		fail(c, http.StatusBadRequest, fmt.Sprintf("Request has already been %s", leave.Status))
		return
	}

	var body reviewLeaveBody
	_ = c.ShouldBindJSON(&body)
	if status == models.LeaveRejected && body.Notes == "" {
		fail(c, http.StatusBadRequest, "Notes are required when rejecting a leave request")
		return
	}

	now := time.Now()
	leave.Status = status
	leave.ReviewedByID = &user.ID
	leave.ReviewedAt = &now
	leave.Notes = body.Notes
	if err := database.DB.Omit(clause.Associations).Save(&leave).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to save decision")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "request": leave})
}

func ApproveLeaveRequest(c *gin.Context) { reviewLeave(c, models.LeaveApproved) }
func RejectLeaveRequest(c *gin.Context)  { reviewLeave(c, models.LeaveRejected) }

//
// PAYMENT SLIPS
//

type generateSlipRequest struct {
	UserID        uint    `json:"user_id" validate:"required"`
	Month         int     `json:"month" validate:"required,min=1,max=12"`
	Year          int     `json:"year" validate:"required,min=2000"`
	Allowances    float64 `json:"allowances"`
	OvertimeHours float64 `json:"overtime_hours"`
}

// GeneratePaymentSlip computes one employee's monthly slip from their role
// salary. EPF is the employee's 8% deduction; overtime is paid at an hourly
// rate derived from a 160-hour month at 1.5x.
func GeneratePaymentSlip(c *gin.Context) {
	hr, ok := currentUser(c)
	if !ok {
		return
	}

	var req generateSlipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		validationError(c, err)
		return
	}

	var employee models.User
	if err := database.DB.First(&employee, req.UserID).Error; err != nil {
		fail(c, http.StatusNotFound, "Employee not found")
		return
	}
	switch employee.Role {
	case models.RoleClient, models.RoleAgent, models.RoleUnassigned:
		fail(c, http.StatusBadRequest, "Payment slips are only generated for staff roles")
		return
	}

	var existing models.PaymentSlip
	err := database.DB.
		Where("user_id = ? AND month = ? AND year = ?", req.UserID, req.Month, req.Year).
		First(&existing).Error
	if err == nil {
		fail(c, http.StatusBadRequest, "A slip already exists for this employee and month")
		return
	}

	salary := employee.Salary()
	epf := salary * 0.08
	overtimePay := req.OvertimeHours * (salary / 160) * 1.5
	net := salary + req.Allowances + overtimePay - epf

	slip := models.PaymentSlip{
		UserID:           employee.ID,
		Month:            req.Month,
		Year:             req.Year,
		Salary:           salary,
		Allowances:       req.Allowances,
		EPFContribution:  epf,
		OvertimeHours:    req.OvertimeHours,
		OvertimePay:      overtimePay,
		NetSalary:        net,
		RoleAtGeneration: employee.Role,
		SlipNumber:       fmt.Sprintf("SLIP-%d%02d-%d", req.Year, req.Month, employee.ID),
		Status:           models.SlipGenerated,
		GeneratedByID:    &hr.ID,
	}
	if err := database.DB.Create(&slip).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to create slip")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "slip": slip})
}

// ListPaymentSlips is the HR view, filterable by month/year.
func ListPaymentSlips(c *gin.Context) {
	dbq := database.DB.Preload("User").Order("year desc, month desc")
	if m := c.Query("month"); m != "" {
		dbq = dbq.Where("month = ?", m)
	}
	if y := c.Query("year"); y != "" {
		dbq = dbq.Where("year = ?", y)
	}
	var slips []models.PaymentSlip
	if err := dbq.Find(&slips).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to load slips")
		return
	}
	c.JSON(http.StatusOK, gin.H{"slips": slips})
}

// PublishPaymentSlip makes a slip visible to its employee.
func PublishPaymentSlip(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var slip models.PaymentSlip
	if err := database.DB.First(&slip, id).Error; err != nil {
		fail(c, http.StatusNotFound, "Payment slip not found")
		return
	}
	if slip.Published {
		fail(c, http.StatusBadRequest, "Slip is already published")
		return
	}
	now := time.Now()
	updates := map[string]interface{}{"published": true, "published_at": &now}
	if err := database.DB.Model(&slip).Updates(updates).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to publish slip")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// MarkSlipPaid records the payout.
func MarkSlipPaid(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var slip models.PaymentSlip
	if err := database.DB.First(&slip, id).Error; err != nil {
		fail(c, http.StatusNotFound, "Payment slip not found")
		return
	}
	now := time.Now()
	updates := map[string]interface{}{"status": models.SlipPaid, "paid_at": &now}
	if err := database.DB.Model(&slip).Updates(updates).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to update slip")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// MyPaymentSlips lists the caller's own published slips.
func MyPaymentSlips(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var slips []models.PaymentSlip
	database.DB.
		Where("user_id = ? AND published = ?", user.ID, true).
		Order("year desc, month desc").
		Find(&slips)
	c.JSON(http.StatusOK, gin.H{"slips": slips})
}
