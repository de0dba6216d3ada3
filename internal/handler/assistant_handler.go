package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yongin-adm/roster-adp-api/internal/service"
	appErrors "github.com/yongin-adm/roster-adp-api/pkg/errors"
	"github.com/yongin-adm/roster-adp-api/pkg/response"
)

// AssistantHandler serves the assistant staffing table and allocation edits.
type AssistantHandler struct {
	assistants *service.AssistantService
	exports    *service.ExportService
}

// NewAssistantHandler creates a new handler.
func NewAssistantHandler(assistants *service.AssistantService, exports *service.ExportService) *AssistantHandler {
	return &AssistantHandler{assistants: assistants, exports: exports}
}

// Get returns the staffing table with allocations applied.
func (h *AssistantHandler) Get(c *gin.Context) {
	view, err := h.assistants.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

type allocationsRequest struct {
	Allocations map[string]int `json:"allocations" binding:"required"`
}

// UpdateAllocations merges administrator-entered capacities into the stored
// snapshot.
func (h *AssistantHandler) UpdateAllocations(c *gin.Context) {
	var req allocationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid allocations payload"))
		return
	}

	merged, err := h.assistants.UpdateAllocations(c.Request.Context(), req.Allocations, uploaderFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"allocations": merged})
}

// Export downloads the staffing table as CSV or PDF.
func (h *AssistantHandler) Export(c *gin.Context) {
	file, err := h.exports.AssistantTable(c.Request.Context(), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
