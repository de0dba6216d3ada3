package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yongin-adm/roster-adp-api/internal/service"
	"github.com/yongin-adm/roster-adp-api/pkg/response"
)

// LeaveHandler serves the merged sabbatical and leave view.
type LeaveHandler struct {
	leave   *service.LeaveService
	exports *service.ExportService
}

// NewLeaveHandler creates a new handler.
func NewLeaveHandler(leave *service.LeaveService, exports *service.ExportService) *LeaveHandler {
	return &LeaveHandler{leave: leave, exports: exports}
}

// Get reconciles the three leave sources and returns the merged view.
func (h *LeaveHandler) Get(c *gin.Context) {
	view, err := h.leave.Merged(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Export downloads the merged leave view as CSV.
func (h *LeaveHandler) Export(c *gin.Context) {
	file, err := h.exports.LeaveTable(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
