package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yongin-adm/roster-adp-api/internal/models"
	"github.com/yongin-adm/roster-adp-api/internal/service"
	appErrors "github.com/yongin-adm/roster-adp-api/pkg/errors"
	"github.com/yongin-adm/roster-adp-api/pkg/response"
)

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Login authenticates the shared admin password and issues a token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	res, err := h.service.Login(req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res)
}
