package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/aews-api/internal/middleware"
	"github.com/noah-isme/aews-api/internal/models"
	"github.com/noah-isme/aews-api/internal/service"
)

// Handlers bundles every route handler for registration.
type Handlers struct {
	Auth          *AuthHandler
	Users         *UserHandler
	Students      *StudentHandler
	Classes       *ClassHandler
	Interventions *InterventionHandler
	Notifications *NotificationHandler
	Admin         *AdminHandler
}

// RegisterRoutes wires every endpoint under the API prefix group. When
// adminAuth is true the admin group requires an admin access token.
func RegisterRoutes(api *gin.RouterGroup, h Handlers, auth *service.AuthService, adminAuth bool) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", h.Auth.Signup)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.GET("/verify-email", h.Auth.VerifyEmail)
		authGroup.POST("/forgot-password", h.Auth.ForgotPassword)
		authGroup.POST("/reset-password", h.Auth.ResetPassword)
		authGroup.GET("/email-status", h.Auth.EmailStatus)
		authGroup.POST("/test-email", h.Auth.TestEmail)
	}

	users := api.Group("/users")
	{
		users.GET("", h.Users.List)
		users.POST("", h.Users.Create)
		users.GET("/:id", h.Users.Get)
		users.PATCH("/:id", h.Users.Update)
		users.DELETE("/:id", h.Users.Delete)
	}

	students := api.Group("/students")
	{
		students.GET("", h.Students.List)
		students.POST("", h.Students.Create)
		students.GET("/:id", h.Students.Get)
		students.PATCH("/:id", h.Students.Update)
		students.DELETE("/:id", h.Students.Delete)
	}

	classes := api.Group("/classes")
	{
		classes.GET("", h.Classes.List)
		classes.POST("", h.Classes.Create)
		classes.GET("/risk-alerts", h.Classes.RiskAlerts)
		classes.GET("/instructor-students", h.Classes.InstructorStudents)
		classes.GET("/:id", h.Classes.Get)
		classes.GET("/:id/students", h.Classes.Roster)
		classes.POST("/:id/students", h.Classes.AddStudent)
		classes.POST("/:id/students/batch", h.Classes.BatchAddStudents)
		classes.PATCH("/:id/students/:email", h.Classes.PatchEnrollment)
		classes.GET("/:id/risk-summary", h.Classes.RiskSummary)
	}

	interventions := api.Group("/interventions")
	{
		interventions.GET("", h.Interventions.List)
		interventions.POST("", h.Interventions.Create)
		interventions.GET("/:id", h.Interventions.Get)
		interventions.PATCH("/:id", h.Interventions.Update)
		interventions.DELETE("/:id", h.Interventions.Delete)
	}

	notifications := api.Group("/notifications")
	{
		notifications.GET("", h.Notifications.List)
		notifications.POST("", h.Notifications.Create)
		notifications.PATCH("/:id/read", h.Notifications.MarkRead)
		notifications.POST("/:role/mark-all-read", h.Notifications.MarkAllRead)
	}

	admin := api.Group("/admin")
	if adminAuth {
		admin.Use(middleware.JWT(auth), middleware.RequireRole(models.RoleAdmin))
	}
	{
		admin.GET("/overview", h.Admin.Overview)
		admin.GET("/overview/students-at-risk", h.Admin.StudentsAtRisk)
		admin.GET("/overview/departments", h.Admin.DepartmentBreakdown)
		admin.GET("/overview/instructors", h.Admin.InstructorBreakdown)
		admin.GET("/overview/trends", h.Admin.Trends)
		admin.GET("/departments", h.Admin.Departments)
		admin.GET("/students/:email", h.Admin.StudentDetail)
		admin.GET("/analytics/department-chart", h.Admin.DepartmentChart)
		admin.GET("/analytics/risk-distribution", h.Admin.RiskDistribution)
		admin.GET("/analytics/accuracy", h.Admin.Accuracy)
		admin.GET("/reports", h.Admin.Reports)
		admin.GET("/reports/:id/download", h.Admin.DownloadReport)
		admin.GET("/pending-accounts", h.Admin.PendingAccounts)
		admin.POST("/pending-accounts/:id/approve", h.Admin.Approve)
		admin.POST("/pending-accounts/:id/decline", h.Admin.Decline)
	}
}
