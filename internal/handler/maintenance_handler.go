package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scholarship-portal-api/internal/dto"
	"github.com/noah-isme/scholarship-portal-api/internal/service"
	appErrors "github.com/noah-isme/scholarship-portal-api/pkg/errors"
	"github.com/noah-isme/scholarship-portal-api/pkg/response"
)

// MaintenanceHandler wires the bulk wipe endpoint.
type MaintenanceHandler struct {
	service *service.MaintenanceService
}

// NewMaintenanceHandler creates a new handler.
func NewMaintenanceHandler(svc *service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{service: svc}
}

// Wipe godoc
// @Summary Wipe all application data
// @Description Delete every application and every non-admin user; requires the literal confirmation code
// @Tags Maintenance
// @Accept json
// @Produce json
// @Param payload body dto.WipeRequest true "Wipe confirmation"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/wipe [post]
func (h *MaintenanceHandler) Wipe(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.WipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid wipe payload"))
		return
	}

	result, err := h.service.Wipe(c.Request.Context(), claims.Email, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
