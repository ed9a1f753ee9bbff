package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scholarship-portal-api/internal/dto"
	"github.com/noah-isme/scholarship-portal-api/internal/service"
	appErrors "github.com/noah-isme/scholarship-portal-api/pkg/errors"
	"github.com/noah-isme/scholarship-portal-api/pkg/response"
)

// RosterHandler wires roster management to HTTP endpoints.
type RosterHandler struct {
	service *service.RosterService
}

// NewRosterHandler creates a new handler.
func NewRosterHandler(svc *service.RosterService) *RosterHandler {
	return &RosterHandler{service: svc}
}

// List godoc
// @Summary List the roster
// @Description Return both membership sets in insertion order
// @Tags Roster
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /admin/roster [get]
func (h *RosterHandler) List(c *gin.Context) {
	roster, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, roster, nil)
}

// AddReviewer godoc
// @Summary Add a reviewer
// @Description Grant the reviewer role; emails already holding a role are rejected
// @Tags Roster
// @Accept json
// @Produce json
// @Param payload body dto.AddReviewerRequest true "Reviewer payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/roster/reviewers [post]
func (h *RosterHandler) AddReviewer(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.AddReviewerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid reviewer payload"))
		return
	}

	if err := h.service.AddReviewer(c.Request.Context(), claims.Email, req); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"email": req.Email})
}

// RemoveAdmin godoc
// @Summary Remove an admin
// @Description Revoke the admin role and unassign their applications in one transaction
// @Tags Roster
// @Produce json
// @Param email path string true "Admin email"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/roster/admins/{email} [delete]
func (h *RosterHandler) RemoveAdmin(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	result, err := h.service.RemoveAdmin(c.Request.Context(), claims.Email, c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
