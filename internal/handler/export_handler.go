package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scholarship-portal-api/internal/service"
	appErrors "github.com/noah-isme/scholarship-portal-api/pkg/errors"
	"github.com/noah-isme/scholarship-portal-api/pkg/response"
)

// ExportHandler wires export endpoints.
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler creates a new handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// SubmissionsCSV godoc
// @Summary Export submissions as CSV
// @Description Download every submitted application as one CSV file
// @Tags Exports
// @Produce text/csv
// @Success 200
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/export/csv [get]
func (h *ExportHandler) SubmissionsCSV(c *gin.Context) {
	data, err := h.service.SubmissionsCSV(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("applications-%s.csv", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", data)
}

// ApplicationPDF godoc
// @Summary Export one application as PDF
// @Description Download a review sheet for a single submitted application
// @Tags Exports
// @Produce application/pdf
// @Param id path string true "Application id"
// @Success 200
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/applications/{id}/pdf [get]
func (h *ExportHandler) ApplicationPDF(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	id := c.Param("id")
	data, err := h.service.ApplicationPDF(c.Request.Context(), claims.Email, roleFromContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "application-"+id+".pdf"))
	c.Data(http.StatusOK, "application/pdf", data)
}
