package server

import (
	"auditra-backend/internal/config"
	"auditra-backend/internal/handlers"
	"auditra-backend/internal/middleware"
	"auditra-backend/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func NewRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("auditra_session", store))

	r.Use(middleware.InjectUser())

	r.Static("/uploads", cfg.UploadDir)

	// AUTH
	auth := r.Group("/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
		auth.POST("/logout", handlers.Logout)
		auth.GET("/me", middleware.RequireAuth(), handlers.Me)
		auth.POST("/change-password", middleware.RequireAuth(), handlers.ChangePassword)

		// public intake form
		auth.POST("/client-submissions", handlers.CreateSubmission)

		adminSub := auth.Group("", middleware.RequireRole(models.RoleAdmin))
		{
			adminSub.GET("/client-submissions", handlers.ListSubmissions)
			adminSub.GET("/client-submissions/:id", handlers.GetSubmission)
			adminSub.PATCH("/client-submissions/:id", handlers.UpdateSubmission)
			adminSub.DELETE("/client-submissions/:id", handlers.DeleteSubmission)
			adminSub.POST("/client-submissions/:id/mark-reviewed", handlers.MarkSubmissionReviewed)
			adminSub.POST("/client-submissions/:id/approve", handlers.ApproveSubmission)
			adminSub.POST("/client-submissions/:id/reject", handlers.RejectSubmission)
			adminSub.POST("/client-submissions/:id/assign-coordinator", handlers.AssignSubmissionCoordinator)
			adminSub.GET("/available-coordinators", handlers.AvailableCoordinators)
		}

		coordSub := auth.Group("", middleware.RequireRole(models.RoleCoordinator))
		{
			coordSub.GET("/my-assignments", handlers.MyAssignments)
			coordSub.POST("/client-submissions/:id/accept-assignment", handlers.AcceptAssignment)
			coordSub.POST("/client-submissions/:id/reject-assignment", handlers.RejectAssignment)
		}
	}

	// PROJECTS
	projects := r.Group("/projects", middleware.RequireAuth())
	{
		projects.GET("", handlers.ListProjects)
		projects.GET("/:id", handlers.GetProject)
		projects.GET("/by-user/:user_id/:role", handlers.UserProjects)

		coord := projects.Group("", middleware.RequireRole(models.RoleCoordinator))
		{
			coord.POST("", handlers.CreateProject)
			coord.POST("/:id/assign/:role", handlers.AssignTeamMember)
			coord.GET("/available-users/:role", handlers.AvailableUsers)
			coord.POST("/:id/start-project", handlers.StartProject)
			coord.POST("/:id/send-payment-request", handlers.SendPaymentRequest)
			coord.POST("/:id/approve-payment", handlers.ApprovePayment)
			coord.POST("/:id/reject-payment", handlers.RejectPayment)
			coord.POST("/:id/record-agent-payment", handlers.RecordAgentPayment)
			coord.POST("/:id/request-cancellation", handlers.RequestCancellation)
			coord.POST("/:id/generate-commission-report", handlers.GenerateCommissionReport)
			coord.POST("/:id/upload-commission-report", handlers.UploadCommissionReport)
			coord.POST("/commission-reports/:id/send", handlers.SendCommissionReport)
		}

		projects.PATCH("/:id", middleware.RequireRole(models.RoleCoordinator, models.RoleAdmin), handlers.UpdateProject)
		projects.GET("/:id/payment-details", handlers.GetPaymentDetails)
		projects.GET("/:id/cancellation-status", handlers.ProjectCancellationStatus)

		projects.POST("/:id/upload-bank-slip", middleware.RequireRole(models.RoleClient), handlers.UploadBankSlip)
		projects.GET("/client-payments", middleware.RequireRole(models.RoleClient), handlers.ClientPayments)
		projects.GET("/agent-payments", middleware.RequireRole(models.RoleAgent), handlers.AgentPayments)
		projects.GET("/my-commission-reports", middleware.RequireRole(models.RoleAgent), handlers.AgentCommissionReports)

		// documents
		projects.POST("/:id/documents", handlers.UploadProjectDocument)
		projects.GET("/:id/documents", handlers.ListProjectDocuments)
		projects.DELETE("/documents/:id", handlers.DeleteProjectDocument)

		admin := projects.Group("", middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/cancellation-requests", handlers.ListCancellationRequests)
			admin.POST("/cancellation-requests/:id/approve", handlers.ApproveCancellation)
			admin.POST("/cancellation-requests/:id/reject", handlers.RejectCancellation)
		}
	}

	// VALUATIONS
	valuations := r.Group("/valuations", middleware.RequireAuth())
	{
		valuations.GET("", handlers.ListValuations)
		valuations.GET("/:id", handlers.GetValuation)

		fo := valuations.Group("", middleware.RequireRole(models.RoleFieldOfficer))
		{
			fo.POST("", handlers.CreateValuation)
			fo.PATCH("/:id", handlers.UpdateValuation)
			fo.POST("/:id/submit", handlers.SubmitValuation)
			fo.POST("/:id/upload-report", handlers.UploadValuationReport)
		}

		valuations.POST("/:id/accept", middleware.RequireRole(models.RoleAccessor), handlers.AcceptValuation)
		valuations.POST("/:id/reject", middleware.RequireRole(models.RoleAccessor), handlers.RejectValuation)

		sv := valuations.Group("", middleware.RequireRole(models.RoleSeniorValuer))
		{
			sv.POST("/:id/sv-approve", handlers.SeniorValuerApprove)
			sv.POST("/:id/sv-reject", handlers.SeniorValuerReject)
			sv.POST("/:id/upload-final-report", handlers.UploadFinalReport)
		}

		valuations.POST("/:id/md-approve", middleware.RequireRole(models.RoleMDGM), handlers.MDGMApprove)
		valuations.POST("/:id/md-reject", middleware.RequireRole(models.RoleMDGM), handlers.MDGMReject)
	}

	// NOTIFICATIONS
	notifications := r.Group("/notifications", middleware.RequireAuth())
	{
		notifications.GET("", handlers.ListNotifications)
		notifications.GET("/unread-count", handlers.UnreadNotificationCount)
		notifications.POST("/:id/read", handlers.MarkNotificationRead)
		notifications.POST("/read-all", handlers.MarkAllNotificationsRead)
	}

	// LEAVE & PAYROLL
	leave := r.Group("/leave-requests", middleware.RequireAuth())
	{
		leave.POST("", handlers.CreateLeaveRequest)
		leave.GET("/my", handlers.MyLeaveRequests)

		hr := leave.Group("", middleware.RequireRole(models.RoleHRHead, models.RoleAdmin))
		{
			hr.GET("", handlers.ListLeaveRequests)
			hr.POST("/:id/approve", handlers.ApproveLeaveRequest)
			hr.POST("/:id/reject", handlers.RejectLeaveRequest)
		}
	}

	slips := r.Group("/payment-slips", middleware.RequireAuth())
	{
		slips.GET("/my", handlers.MyPaymentSlips)

		hr := slips.Group("", middleware.RequireRole(models.RoleHRHead, models.RoleAdmin))
		{
			hr.POST("", handlers.GeneratePaymentSlip)
			hr.GET("", handlers.ListPaymentSlips)
			hr.POST("/:id/publish", handlers.PublishPaymentSlip)
			hr.POST("/:id/mark-paid", handlers.MarkSlipPaid)
		}
	}

	// ATTENDANCE
	attendance := r.Group("/attendance", middleware.RequireAuth())
	{
		attendance.POST("/check-in", handlers.AttendanceCheckIn)
		attendance.POST("/check-out", handlers.AttendanceCheckOut)
		attendance.POST("/start-overtime", handlers.AttendanceStartOvertime)
		attendance.POST("/end-overtime", handlers.AttendanceEndOvertime)
		attendance.GET("/today", handlers.TodayAttendance)
		attendance.GET("/my", handlers.MyAttendance)

		hr := attendance.Group("", middleware.RequireRole(models.RoleHRHead, models.RoleAdmin))
		{
			hr.GET("", handlers.ListAttendance)
			hr.POST("/holidays", handlers.CreateHoliday)
			hr.DELETE("/holidays/:id", handlers.DeleteHoliday)
		}
		attendance.GET("/holidays", handlers.ListHolidays)
	}

	// DASHBOARDS
	dashboard := r.Group("/dashboard", middleware.RequireAuth())
	{
		dashboard.GET("/admin", middleware.RequireRole(models.RoleAdmin), handlers.AdminDashboard)
		dashboard.GET("/coordinator", middleware.RequireRole(models.RoleCoordinator), handlers.CoordinatorDashboard)
		dashboard.GET("/field-officer", middleware.RequireRole(models.RoleFieldOfficer), handlers.FieldOfficerDashboard)
		dashboard.GET("/md-gm", middleware.RequireRole(models.RoleMDGM), handlers.MDGMDashboard)
	}

	return r
}
