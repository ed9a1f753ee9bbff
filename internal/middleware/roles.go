package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scholarship-portal-api/internal/models"
	"github.com/noah-isme/scholarship-portal-api/internal/service"
	appErrors "github.com/noah-isme/scholarship-portal-api/pkg/errors"
	"github.com/noah-isme/scholarship-portal-api/pkg/response"
)

// RequireAdmin admits only admins. The role is resolved from the membership
// tables on every request, so a revoked admin loses access immediately even
// while their session cookie is still valid.
func RequireAdmin(roster *service.RosterService) gin.HandlerFunc {
	return requireRole(roster, func(role models.Role) bool {
		return role == models.RoleAdmin
	})
}

// RequirePrivileged admits admins and reviewers.
func RequirePrivileged(roster *service.RosterService) gin.HandlerFunc {
	return requireRole(roster, models.Role.Privileged)
}

func requireRole(roster *service.RosterService, allowed func(models.Role) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims := claimsValue.(*models.SessionClaims)

		role, err := roster.Resolve(c.Request.Context(), claims.Email)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if !allowed(role) {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}

		c.Set(ContextRoleKey, role)
		c.Next()
	}
}
