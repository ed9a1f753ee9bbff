package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scholarship-portal-api/internal/service"
	"github.com/noah-isme/scholarship-portal-api/pkg/response"
)

// AuthHandler wires the OAuth login flow to HTTP endpoints.
type AuthHandler struct {
	service      *service.AuthService
	cookieName   string
	cookieSecure bool
	dashboardURL string
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService, cookieName string, cookieSecure bool, dashboardURL string) *AuthHandler {
	return &AuthHandler{service: svc, cookieName: cookieName, cookieSecure: cookieSecure, dashboardURL: dashboardURL}
}

// Login godoc
// @Summary Start Google login
// @Description Redirect the browser to the Google consent screen
// @Tags Authentication
// @Success 307
// @Failure 500 {object} response.Envelope
// @Router /auth/google [get]
func (h *AuthHandler) Login(c *gin.Context) {
	loginURL, err := h.service.LoginURL(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, loginURL)
}

// Callback godoc
// @Summary Complete Google login
// @Description Validate the OAuth state, exchange the code and set the session cookie
// @Tags Authentication
// @Param code query string true "Authorization code"
// @Param state query string true "OAuth state"
// @Success 307
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/callback [get]
func (h *AuthHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")

	_, token, err := h.service.HandleCallback(c.Request.Context(), code, state, c.ClientIP(), c.GetHeader("User-Agent"))
	if err != nil {
		response.Error(c, err)
		return
	}

	maxAge := int(h.service.SessionTTL().Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, token, maxAge, "/", "", h.cookieSecure, true)
	c.Redirect(http.StatusTemporaryRedirect, h.dashboardURL)
}

// Logout godoc
// @Summary End the current session
// @Description Expire the session cookie
// @Tags Authentication
// @Success 204
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", h.cookieSecure, true)
	response.NoContent(c)
}
