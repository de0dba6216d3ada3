package service

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/yongin-adm/roster-adp-api/internal/models"
	appErrors "github.com/yongin-adm/roster-adp-api/pkg/errors"
	"github.com/yongin-adm/roster-adp-api/pkg/export"
)

// Export formats accepted by the export endpoints.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders the assistant staffing table and the merged leave
// view as downloadable files.
type ExportService struct {
	assistants *AssistantService
	leave      *LeaveService
	csv        *export.CSVExporter
	pdf        *export.PDFExporter
	logger     *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(assistants *AssistantService, leave *LeaveService, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		assistants: assistants,
		leave:      leave,
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
		logger:     logger,
	}
}

var assistantExportHeaders = []string{"구분", "부서", "겸임부서", "배정", "현원", "조교"}

// AssistantTable renders the current staffing table in the requested format.
func (s *ExportService) AssistantTable(ctx context.Context, format string) (*ExportFile, error) {
	view, err := s.assistants.Get(ctx)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{Headers: assistantExportHeaders}
	appendRows := func(categories []models.AssistantCategory) {
		for _, c := range categories {
			for _, d := range c.Departments {
				names := make([]string, 0, len(d.Assistants))
				for _, a := range d.Assistants {
					names = append(names, a.Name)
				}
				dataset.Rows = append(dataset.Rows, map[string]string{
					"구분":   c.CategoryName,
					"부서":   d.MainDept,
					"겸임부서": strings.Join(d.SubDepts, " "),
					"배정":   strconv.Itoa(d.Allocated),
					"현원":   strconv.Itoa(d.Current),
					"조교":   strings.Join(names, ", "),
				})
			}
		}
	}
	appendRows(view.Colleges)
	appendRows(view.Administrative)

	switch format {
	case FormatCSV, "":
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.WrapAs(err, appErrors.ErrInternal)
		}
		return &ExportFile{Filename: "assistants.csv", ContentType: "text/csv; charset=utf-8", Data: data}, nil
	case FormatPDF:
		data, err := s.pdf.Render(dataset, "Assistant Staffing")
		if err != nil {
			return nil, appErrors.WrapAs(err, appErrors.ErrInternal)
		}
		return &ExportFile{Filename: "assistants.pdf", ContentType: "application/pdf", Data: data}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format: "+format)
	}
}

var leaveExportHeaders = []string{"구분", "소속", "성명", "기간", "비고"}

// LeaveTable renders the merged sabbatical and leave view as CSV.
func (s *ExportService) LeaveTable(ctx context.Context) (*ExportFile, error) {
	view, err := s.leave.Merged(ctx)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{Headers: leaveExportHeaders}
	appendRows := func(kind string, entries []models.LeaveEntry) {
		for _, e := range entries {
			dataset.Rows = append(dataset.Rows, map[string]string{
				"구분": kind,
				"소속": e.Dept,
				"성명": e.Name,
				"기간": e.Period,
				"비고": e.Remarks,
			})
		}
	}
	appendRows("연구년(전반기)", view.Research.First)
	appendRows("연구년(후반기)", view.Research.Second)
	appendRows("휴직", view.Leave)

	data, err := s.csv.Render(dataset)
	if err != nil {
		return nil, appErrors.WrapAs(err, appErrors.ErrInternal)
	}
	return &ExportFile{Filename: "leave.csv", ContentType: "text/csv; charset=utf-8", Data: data}, nil
}
