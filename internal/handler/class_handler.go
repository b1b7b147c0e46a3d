package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/aews-api/internal/models"
	"github.com/noah-isme/aews-api/internal/service"
	appErrors "github.com/noah-isme/aews-api/pkg/errors"
	"github.com/noah-isme/aews-api/pkg/response"
)

// ClassHandler exposes class and enrollment endpoints.
type ClassHandler struct {
	classes *service.ClassService
}

// NewClassHandler constructs ClassHandler.
func NewClassHandler(classes *service.ClassService) *ClassHandler {
	return &ClassHandler{classes: classes}
}

// List godoc
// @Summary List an instructor's classes
// @Tags Classes
// @Produce json
// @Param instructor_id query string true "Instructor ID"
// @Success 200 {object} response.Envelope
// @Router /classes [get]
func (h *ClassHandler) List(c *gin.Context) {
	classes, err := h.classes.ListByInstructor(c.Request.Context(), c.Query("instructor_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes, nil)
}

// Get godoc
// @Summary Get one class with counts
// @Tags Classes
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /classes/{id} [get]
func (h *ClassHandler) Get(c *gin.Context) {
	class, err := h.classes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, class, nil)
}

// Create godoc
// @Summary Create a class
// @Tags Classes
// @Accept json
// @Produce json
// @Param payload body service.CreateClassRequest true "Class payload"
// @Success 201 {object} response.Envelope
// @Router /classes [post]
func (h *ClassHandler) Create(c *gin.Context) {
	var req service.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	class, err := h.classes.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, class)
}

// Roster godoc
// @Summary List a class's enrollments
// @Tags Classes
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/students [get]
func (h *ClassHandler) Roster(c *gin.Context) {
	enrollments, err := h.classes.Roster(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrollments, nil)
}

// RiskSummary godoc
// @Summary Aggregate one class by risk bucket
// @Tags Classes
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/risk-summary [get]
func (h *ClassHandler) RiskSummary(c *gin.Context) {
	summary, err := h.classes.RiskSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// AddStudent godoc
// @Summary Enroll one student
// @Tags Classes
// @Accept json
// @Produce json
// @Param id path string true "Class ID"
// @Param payload body service.AddStudentRequest true "Student email"
// @Success 201 {object} response.Envelope
// @Router /classes/{id}/students [post]
func (h *ClassHandler) AddStudent(c *gin.Context) {
	var req service.AddStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	enrollment, err := h.classes.AddStudent(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, enrollment)
}

// BatchAddStudents godoc
// @Summary Enroll many students at once
// @Tags Classes
// @Accept json
// @Produce json
// @Param id path string true "Class ID"
// @Param payload body service.BatchAddRequest true "Student emails"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/students/batch [post]
func (h *ClassHandler) BatchAddStudents(c *gin.Context) {
	var req service.BatchAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.classes.BatchAddStudents(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// PatchEnrollment godoc
// @Summary Patch a student's enrollment indicators
// @Tags Classes
// @Accept json
// @Produce json
// @Param id path string true "Class ID"
// @Param email path string true "Student email"
// @Param payload body models.EnrollmentPatch true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/students/{email} [patch]
func (h *ClassHandler) PatchEnrollment(c *gin.Context) {
	var patch models.EnrollmentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.classes.PatchEnrollment(c.Request.Context(), c.Param("id"), c.Param("email"), patch); err != nil {
		response.Error(c, err)
		return
	}
	if patch.Empty() {
		response.JSON(c, http.StatusOK, gin.H{"message": "Nothing to update"}, nil)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "Enrollment updated"}, nil)
}

// RiskAlerts godoc
// @Summary List an instructor's at-risk enrollments
// @Tags Classes
// @Produce json
// @Param instructor_id query string true "Instructor ID"
// @Success 200 {object} response.Envelope
// @Router /classes/risk-alerts [get]
func (h *ClassHandler) RiskAlerts(c *gin.Context) {
	rows, err := h.classes.InstructorAlerts(c.Request.Context(), c.Query("instructor_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// InstructorStudents godoc
// @Summary Flatten every enrollment across an instructor's classes
// @Tags Classes
// @Produce json
// @Param instructor_id query string true "Instructor ID"
// @Success 200 {object} response.Envelope
// @Router /classes/instructor-students [get]
func (h *ClassHandler) InstructorStudents(c *gin.Context) {
	rows, err := h.classes.InstructorRoster(c.Request.Context(), c.Query("instructor_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}
