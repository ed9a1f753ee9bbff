package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scholarship-portal-api/internal/dto"
	"github.com/noah-isme/scholarship-portal-api/internal/service"
	appErrors "github.com/noah-isme/scholarship-portal-api/pkg/errors"
	"github.com/noah-isme/scholarship-portal-api/pkg/response"
)

// ApplicationHandler wires the applicant record lifecycle to HTTP endpoints.
type ApplicationHandler struct {
	service      *service.ApplicationService
	metrics      *service.MetricsService
	dashboardURL string
}

// NewApplicationHandler creates a new handler.
func NewApplicationHandler(svc *service.ApplicationService, metrics *service.MetricsService, dashboardURL string) *ApplicationHandler {
	return &ApplicationHandler{service: svc, metrics: metrics, dashboardURL: dashboardURL}
}

// Me godoc
// @Summary Get own application
// @Description Return the caller's draft or submitted record
// @Tags Applications
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /applications/me [get]
func (h *ApplicationHandler) Me(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	app, err := h.service.Get(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, app, nil)
}

// SaveDraft godoc
// @Summary Save application draft
// @Description Upsert the caller's draft; partial content is accepted
// @Tags Applications
// @Accept json
// @Produce json
// @Param payload body dto.SaveDraftRequest true "Draft payload"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /applications/draft [put]
func (h *ApplicationHandler) SaveDraft(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.SaveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid draft payload"))
		return
	}

	if err := h.service.SaveDraft(c.Request.Context(), claims.UserID, req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"saved": true}, nil)
}

// DeleteDraft godoc
// @Summary Delete application draft
// @Description Discard the caller's draft if one exists
// @Tags Applications
// @Success 204
// @Failure 401 {object} response.Envelope
// @Router /applications/draft [delete]
func (h *ApplicationHandler) DeleteDraft(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.service.DeleteDraft(c.Request.Context(), claims.UserID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Submit godoc
// @Summary Submit application
// @Description Validate the full payload and flip the record to submitted, then redirect back to the dashboard
// @Tags Applications
// @Accept json
// @Param payload body dto.SubmitApplicationRequest true "Submission payload"
// @Success 303
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /applications/submit [post]
func (h *ApplicationHandler) Submit(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid submission payload"))
		return
	}

	err := h.service.Submit(c.Request.Context(), claims.UserID, req)
	switch {
	case err == nil:
		h.metrics.RecordSubmission()
		c.Redirect(http.StatusSeeOther, h.dashboardURL+"?success=submitted")
	case isCode(err, appErrors.ErrSubmissionClosed.Code):
		c.Redirect(http.StatusSeeOther, h.dashboardURL+"?error=applications_closed")
	case isCode(err, appErrors.ErrAlreadySubmitted.Code):
		c.Redirect(http.StatusSeeOther, h.dashboardURL+"?error=already_submitted")
	default:
		response.Error(c, err)
	}
}

func isCode(err error, code string) bool {
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
