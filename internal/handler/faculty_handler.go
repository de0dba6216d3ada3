package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yongin-adm/roster-adp-api/internal/service"
	"github.com/yongin-adm/roster-adp-api/pkg/response"
)

// FacultyHandler serves the faculty snapshot and its statistics.
type FacultyHandler struct {
	faculty *service.FacultyService
	org     *service.OrganizationService
}

// NewFacultyHandler creates a new handler.
func NewFacultyHandler(faculty *service.FacultyService, org *service.OrganizationService) *FacultyHandler {
	return &FacultyHandler{faculty: faculty, org: org}
}

// Get returns the latest faculty snapshot together with the organization
// structure the dashboard renders it against.
func (h *FacultyHandler) Get(c *gin.Context) {
	view, err := h.faculty.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	structure, err := h.org.Structure(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"snapshot":     view,
		"organization": structure,
	})
}

// Stats returns the cached aggregate counts.
func (h *FacultyHandler) Stats(c *gin.Context) {
	stats, err := h.faculty.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}
