package handlers

import (
	"net/http"
	"time"

	"auditra-backend/internal/database"
	"auditra-backend/internal/models"
	"auditra-backend/internal/workflow"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func isHoliday(date time.Time) bool {
	var n int64
	database.DB.Model(&models.Holiday{}).
		Where("date = ? AND is_active = ?", dateOnly(date), true).
		Count(&n)
	return n > 0
}

// todayAttendance loads or initializes the caller's record for today. The row
// is only persisted by the action handlers.
func todayAttendance(userID uint, now time.Time) models.Attendance {
	var a models.Attendance
	err := database.DB.Where("user_id = ? AND date = ?", userID, dateOnly(now)).First(&a).Error
	if err != nil {
		a = models.Attendance{UserID: userID, Date: dateOnly(now), Status: models.AttendanceAbsent}
	}
	return a
}

func saveAttendance(c *gin.Context, a *models.Attendance, message string) {
	if err := database.DB.Omit(clause.Associations).Save(a).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to save attendance")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "attendance": a})
}

func AttendanceCheckIn(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	now := time.Now()
	a := todayAttendance(user.ID, now)

	if err := workflow.CheckIn(&a, now, workflow.WorkingDay(now, isHoliday(now))); err != nil {
		workflowError(c, err)
		return
	}
	saveAttendance(c, &a, "Checked in successfully")
}

func AttendanceCheckOut(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	now := time.Now()
	a := todayAttendance(user.ID, now)

	if err := workflow.CheckOut(&a, now); err != nil {
		workflowError(c, err)
		return
	}
	saveAttendance(c, &a, "Checked out successfully")
}

func AttendanceStartOvertime(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	now := time.Now()
	a := todayAttendance(user.ID, now)

	if err := workflow.StartOvertime(&a, now); err != nil {
		workflowError(c, err)
		return
	}
	saveAttendance(c, &a, "Overtime started")
}

func AttendanceEndOvertime(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	now := time.Now()
	a := todayAttendance(user.ID, now)

	if err := workflow.EndOvertime(&a, now); err != nil {
		workflowError(c, err)
		return
	}
	saveAttendance(c, &a, "Overtime ended")
}

// TodayAttendance reports the caller's current day, marked or not.
func TodayAttendance(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	now := time.Now()

	var a models.Attendance
	err := database.DB.Where("user_id = ? AND date = ?", user.ID, dateOnly(now)).First(&a).Error
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"marked":      false,
			"working_day": workflow.WorkingDay(now, isHoliday(now)),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"marked":      true,
		"working_day": true,
		"attendance":  a,
		"is_full_day": a.FullDay(),
	})
}

// MyAttendance lists the caller's records, optionally bounded by month/year.
func MyAttendance(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	dbq := database.DB.Where("user_id = ?", user.ID).Order("date desc")
	if m := c.Query("month"); m != "" {
		dbq = dbq.Where("EXTRACT(MONTH FROM date) = ?", m)
	}
	if y := c.Query("year"); y != "" {
		dbq = dbq.Where("EXTRACT(YEAR FROM date) = ?", y)
	}
	var records []models.Attendance
	dbq.Find(&records)
	c.JSON(http.StatusOK, gin.H{"records": records})
}

// ListAttendance is the HR view across all employees.
func ListAttendance(c *gin.Context) {
	dbq := database.DB.Preload("User").Order("date desc")
	if uid := c.Query("user_id"); uid != "" {
		dbq = dbq.Where("user_id = ?", uid)
	}
	if d := c.Query("date"); d != "" {
		if t, err := time.Parse("2006-01-02", d); err == nil {
			dbq = dbq.Where("date = ?", t)
		}
	}
	if s := c.Query("status"); s != "" {
		dbq = dbq.Where("status = ?", s)
	}
	var records []models.Attendance
	if err := dbq.Limit(500).Find(&records).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to load attendance")
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

//
// HOLIDAYS
//

type createHolidayRequest struct {
	Name string `json:"name" validate:"required"`
	Date string `json:"date" validate:"required"`
}

func CreateHoliday(c *gin.Context) {
	var req createHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		validationError(c, err)
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		fail(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	holiday := models.Holiday{Name: req.Name, Date: date, IsActive: true}
	if err := database.DB.Create(&holiday).Error; err != nil {
		fail(c, http.StatusBadRequest, "a holiday already exists on this date")
		return
	}
	c.JSON(http.StatusCreated, holiday)
}

func ListHolidays(c *gin.Context) {
	dbq := database.DB.Order("date asc")
	if y := c.Query("year"); y != "" {
		dbq = dbq.Where("EXTRACT(YEAR FROM date) = ?", y)
	}
	var holidays []models.Holiday
	dbq.Find(&holidays)
	c.JSON(http.StatusOK, gin.H{"holidays": holidays})
}

func DeleteHoliday(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	res := database.DB.Delete(&models.Holiday{}, id)
	if res.Error != nil {
		fail(c, http.StatusInternalServerError, "failed to delete holiday")
		return
	}
	if res.RowsAffected == 0 {
		fail(c, http.StatusNotFound, "Holiday not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
