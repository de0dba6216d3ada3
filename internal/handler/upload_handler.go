package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yongin-adm/roster-adp-api/internal/service"
	appErrors "github.com/yongin-adm/roster-adp-api/pkg/errors"
	"github.com/yongin-adm/roster-adp-api/pkg/response"
)

// UploadHandler receives the spreadsheet exports, one endpoint per category.
type UploadHandler struct {
	uploads *service.UploadService
}

// NewUploadHandler creates a new handler.
func NewUploadHandler(uploads *service.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// Faculty ingests the faculty-status export.
func (h *UploadHandler) Faculty(c *gin.Context) {
	h.run(c, h.uploads.UploadFaculty)
}

// Assistant ingests the appointment export for assistant staffing.
func (h *UploadHandler) Assistant(c *gin.Context) {
	h.run(c, h.uploads.UploadAssistant)
}

// Appointment ingests the appointment-history export for the leave view.
func (h *UploadHandler) Appointment(c *gin.Context) {
	h.run(c, h.uploads.UploadAppointment)
}

// ResearchLeave ingests the sabbatical/dispatch export.
func (h *UploadHandler) ResearchLeave(c *gin.Context) {
	h.run(c, h.uploads.UploadResearchLeave)
}

// History lists the recent uploads across all categories.
func (h *UploadHandler) History(c *gin.Context) {
	records, err := h.uploads.History(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"uploads": records})
}

func (h *UploadHandler) run(c *gin.Context, upload func(context.Context, service.UploadInput) (*service.UploadResult, error)) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file is required"))
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open file"))
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to buffer file"))
		return
	}

	result, err := upload(c.Request.Context(), service.UploadInput{
		Filename:   fileHeader.Filename,
		Size:       fileHeader.Size,
		Data:       data,
		UploadedBy: uploaderFromContext(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}
