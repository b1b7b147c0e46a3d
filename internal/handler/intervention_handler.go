package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/aews-api/internal/service"
	appErrors "github.com/noah-isme/aews-api/pkg/errors"
	"github.com/noah-isme/aews-api/pkg/response"
)

// InterventionHandler exposes intervention endpoints.
type InterventionHandler struct {
	interventions *service.InterventionService
}

// NewInterventionHandler constructs InterventionHandler.
func NewInterventionHandler(interventions *service.InterventionService) *InterventionHandler {
	return &InterventionHandler{interventions: interventions}
}

// List godoc
// @Summary List interventions
// @Tags Interventions
// @Produce json
// @Param status query string false "Status filter"
// @Success 200 {object} response.Envelope
// @Router /interventions [get]
func (h *InterventionHandler) List(c *gin.Context) {
	interventions, err := h.interventions.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, interventions, nil)
}

// Get godoc
// @Summary Get one intervention
// @Tags Interventions
// @Produce json
// @Param id path string true "Intervention ID"
// @Success 200 {object} response.Envelope
// @Router /interventions/{id} [get]
func (h *InterventionHandler) Get(c *gin.Context) {
	intervention, err := h.interventions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, intervention, nil)
}

// Create godoc
// @Summary Record an intervention
// @Tags Interventions
// @Accept json
// @Produce json
// @Param payload body service.CreateInterventionRequest true "Intervention payload"
// @Success 201 {object} response.Envelope
// @Router /interventions [post]
func (h *InterventionHandler) Create(c *gin.Context) {
	var req service.CreateInterventionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	intervention, err := h.interventions.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, intervention)
}

// Update godoc
// @Summary Patch an intervention
// @Tags Interventions
// @Accept json
// @Produce json
// @Param id path string true "Intervention ID"
// @Param payload body service.UpdateInterventionRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /interventions/{id} [patch]
func (h *InterventionHandler) Update(c *gin.Context) {
	var req service.UpdateInterventionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	intervention, err := h.interventions.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, intervention, nil)
}

// Delete godoc
// @Summary Delete an intervention
// @Tags Interventions
// @Produce json
// @Param id path string true "Intervention ID"
// @Success 204 {object} nil
// @Router /interventions/{id} [delete]
func (h *InterventionHandler) Delete(c *gin.Context) {
	if err := h.interventions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
