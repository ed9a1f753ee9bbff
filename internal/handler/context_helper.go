package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scholarship-portal-api/internal/middleware"
	"github.com/noah-isme/scholarship-portal-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.SessionClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.SessionClaims)
	if !ok {
		return nil
	}
	return claims
}

func roleFromContext(c *gin.Context) models.Role {
	value, exists := c.Get(middleware.ContextRoleKey)
	if !exists {
		return models.RoleNone
	}
	role, ok := value.(models.Role)
	if !ok {
		return models.RoleNone
	}
	return role
}
