package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scholarship-portal-api/internal/dto"
	"github.com/noah-isme/scholarship-portal-api/internal/service"
	appErrors "github.com/noah-isme/scholarship-portal-api/pkg/errors"
	"github.com/noah-isme/scholarship-portal-api/pkg/response"
)

// AssignmentHandler wires assignment operations to HTTP endpoints.
type AssignmentHandler struct {
	service *service.AssignmentService
	metrics *service.MetricsService
}

// NewAssignmentHandler creates a new handler.
func NewAssignmentHandler(svc *service.AssignmentService, metrics *service.MetricsService) *AssignmentHandler {
	return &AssignmentHandler{service: svc, metrics: metrics}
}

// Assign godoc
// @Summary Assign applications manually
// @Description Assign selected applications to one roster member
// @Tags Assignments
// @Accept json
// @Produce json
// @Param payload body dto.AssignApplicationsRequest true "Assignment payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /admin/assignments [post]
func (h *AssignmentHandler) Assign(c *gin.Context) {
	var req dto.AssignApplicationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assignment payload"))
		return
	}

	result, err := h.service.ManualAssign(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// AutoAssign godoc
// @Summary Distribute unassigned applications
// @Description Round-robin the backlog across admins and reviewers; an empty pool is a zero-count success
// @Tags Assignments
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /admin/assignments/auto [post]
func (h *AssignmentHandler) AutoAssign(c *gin.Context) {
	result, err := h.service.AutoAssign(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordAssignmentRun()
	response.JSON(c, http.StatusOK, result, nil)
}

// UnassignAll godoc
// @Summary Unassign every application
// @Description Revert all assigned applications to unassigned
// @Tags Assignments
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /admin/assignments/unassign-all [post]
func (h *AssignmentHandler) UnassignAll(c *gin.Context) {
	result, err := h.service.UnassignAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
