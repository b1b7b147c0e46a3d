package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/aews-api/internal/service"
	"github.com/noah-isme/aews-api/pkg/response"
)

// AdminHandler exposes the dashboard aggregates, reports and moderation.
type AdminHandler struct {
	admin   *service.AdminService
	reports *service.ReportService
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(admin *service.AdminService, reports *service.ReportService) *AdminHandler {
	return &AdminHandler{admin: admin, reports: reports}
}

// Overview godoc
// @Summary Dashboard KPI overview
// @Tags Admin
// @Produce json
// @Param department query string false "Department filter"
// @Success 200 {object} response.Envelope
// @Router /admin/overview [get]
func (h *AdminHandler) Overview(c *gin.Context) {
	overview, err := h.admin.Overview(c.Request.Context(), c.Query("department"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, overview, nil)
}

// Departments godoc
// @Summary List distinct instructor departments
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/departments [get]
func (h *AdminHandler) Departments(c *gin.Context) {
	departments, err := h.admin.Departments(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, departments, nil)
}

// StudentsAtRisk godoc
// @Summary List every at-risk enrollment
// @Tags Admin
// @Produce json
// @Param department query string false "Department filter"
// @Success 200 {object} response.Envelope
// @Router /admin/overview/students-at-risk [get]
func (h *AdminHandler) StudentsAtRisk(c *gin.Context) {
	rows, err := h.admin.StudentsAtRisk(c.Request.Context(), c.Query("department"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// DepartmentBreakdown godoc
// @Summary Per-department enrollment totals
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/overview/departments [get]
func (h *AdminHandler) DepartmentBreakdown(c *gin.Context) {
	stats, err := h.admin.DepartmentBreakdown(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// InstructorBreakdown godoc
// @Summary Per-instructor class and enrollment totals
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/overview/instructors [get]
func (h *AdminHandler) InstructorBreakdown(c *gin.Context) {
	stats, err := h.admin.InstructorBreakdown(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// Trends godoc
// @Summary Risk trend snapshot
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/overview/trends [get]
func (h *AdminHandler) Trends(c *gin.Context) {
	points, err := h.admin.Trends(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, points, nil)
}

// DepartmentChart godoc
// @Summary Department chart data
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/analytics/department-chart [get]
func (h *AdminHandler) DepartmentChart(c *gin.Context) {
	stats, err := h.admin.DepartmentBreakdown(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// RiskDistribution godoc
// @Summary Enrollment counts per risk label
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/analytics/risk-distribution [get]
func (h *AdminHandler) RiskDistribution(c *gin.Context) {
	buckets, err := h.admin.RiskDistribution(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, buckets, nil)
}

// Accuracy godoc
// @Summary Prediction accuracy history
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/analytics/accuracy [get]
func (h *AdminHandler) Accuracy(c *gin.Context) {
	// Labels arrive externally and no history is retained.
	response.JSON(c, http.StatusOK, []interface{}{}, nil)
}

// StudentDetail godoc
// @Summary One student's enrollments across classes
// @Tags Admin
// @Produce json
// @Param email path string true "Student email"
// @Success 200 {object} response.Envelope
// @Router /admin/students/{email} [get]
func (h *AdminHandler) StudentDetail(c *gin.Context) {
	summary, err := h.admin.StudentDetail(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// Reports godoc
// @Summary List available reports
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/reports [get]
func (h *AdminHandler) Reports(c *gin.Context) {
	reports, err := h.reports.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reports, nil)
}

// DownloadReport godoc
// @Summary Download one report as CSV or PDF
// @Tags Admin
// @Produce text/csv
// @Param id path string true "Report ID"
// @Param format query string false "csv or pdf"
// @Success 200 {file} file
// @Router /admin/reports/{id}/download [get]
func (h *AdminHandler) DownloadReport(c *gin.Context) {
	file, err := h.reports.Download(c.Request.Context(), c.Param("id"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Payload)
}

// PendingAccounts godoc
// @Summary List accounts awaiting moderation
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/pending-accounts [get]
func (h *AdminHandler) PendingAccounts(c *gin.Context) {
	accounts, err := h.admin.PendingAccounts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, accounts, nil)
}

// Approve godoc
// @Summary Approve a pending account
// @Tags Admin
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} response.Envelope
// @Router /admin/pending-accounts/{id}/approve [post]
func (h *AdminHandler) Approve(c *gin.Context) {
	result, err := h.admin.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Decline godoc
// @Summary Decline a pending account
// @Tags Admin
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} response.Envelope
// @Router /admin/pending-accounts/{id}/decline [post]
func (h *AdminHandler) Decline(c *gin.Context) {
	result, err := h.admin.Decline(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
