package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yongin-adm/roster-adp-api/internal/models"
	"github.com/yongin-adm/roster-adp-api/internal/service"
	appErrors "github.com/yongin-adm/roster-adp-api/pkg/errors"
	"github.com/yongin-adm/roster-adp-api/pkg/response"
)

// OrganizationHandler serves and replaces the department taxonomy.
type OrganizationHandler struct {
	org *service.OrganizationService
}

// NewOrganizationHandler creates a new handler.
func NewOrganizationHandler(org *service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{org: org}
}

// Get returns the stored structure, or the built-in default.
func (h *OrganizationHandler) Get(c *gin.Context) {
	structure, err := h.org.Structure(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"departments": structure})
}

type organizationRequest struct {
	Departments []models.Department `json:"departments" binding:"required"`
}

// Update validates and stores a new department structure.
func (h *OrganizationHandler) Update(c *gin.Context) {
	var req organizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid organization payload"))
		return
	}

	if err := h.org.Update(c.Request.Context(), req.Departments, uploaderFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"departments": req.Departments})
}
