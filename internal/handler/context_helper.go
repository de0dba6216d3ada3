package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yongin-adm/roster-adp-api/internal/middleware"
	"github.com/yongin-adm/roster-adp-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.AdminClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.AdminClaims)
	if !ok {
		return nil
	}
	return claims
}

func uploaderFromContext(c *gin.Context) string {
	if claims := claimsFromContext(c); claims != nil {
		return claims.Username
	}
	return ""
}
