package service

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yongin-adm/roster-adp-api/internal/models"
	"github.com/yongin-adm/roster-adp-api/internal/parser"
	appErrors "github.com/yongin-adm/roster-adp-api/pkg/errors"
)

type uploadStore interface {
	snapshotStore
	RecordUpload(ctx context.Context, record *models.UploadRecord, keep int) error
	ListUploads(ctx context.Context, limit int) ([]models.UploadRecord, error)
}

type organizationProvider interface {
	Structure(ctx context.Context) ([]models.Department, error)
}

// UploadConfig bounds what the upload endpoints accept.
type UploadConfig struct {
	MaxFileSizeBytes  int64
	AllowedExtensions []string
	HistoryLimit      int
}

// UploadInput is one received spreadsheet.
type UploadInput struct {
	Filename   string
	Size       int64
	Data       []byte
	UploadedBy string
}

// UploadResult summarizes a successful upload for the operator, warnings
// included: warnings are surfaced here, not merely logged.
type UploadResult struct {
	Category string               `json:"category"`
	Filename string               `json:"filename"`
	Stats    interface{}          `json:"stats"`
	Warnings models.ParseWarnings `json:"warnings"`
}

// UploadService runs the decode-parse-replace pipeline for every category.
// Each upload is one synchronous request: parse the bytes, atomically swap
// the category snapshot, record history. A failed parse persists nothing.
type UploadService struct {
	store     uploadStore
	org       organizationProvider
	positions *parser.PositionTable
	faculty   *FacultyService
	metrics   *MetricsService
	logger    *zap.Logger
	config    UploadConfig
	now       func() time.Time
}

// NewUploadService constructs an UploadService.
func NewUploadService(store uploadStore, org organizationProvider, positions *parser.PositionTable, faculty *FacultyService, metrics *MetricsService, logger *zap.Logger, config UploadConfig) *UploadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if positions == nil {
		positions = parser.DefaultPositionTable()
	}
	return &UploadService{
		store:     store,
		org:       org,
		positions: positions,
		faculty:   faculty,
		metrics:   metrics,
		logger:    logger,
		config:    config,
		now:       time.Now,
	}
}

// UploadFaculty ingests the faculty-status export.
func (s *UploadService) UploadFaculty(ctx context.Context, in UploadInput) (*UploadResult, error) {
	result, err := s.uploadFaculty(ctx, in)
	s.metrics.RecordUpload(models.CategoryFaculty, err)
	return result, err
}

func (s *UploadService) uploadFaculty(ctx context.Context, in UploadInput) (*UploadResult, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	structure, err := s.org.Structure(ctx)
	if err != nil {
		return nil, err
	}
	parsed, err := parser.NewFacultyParser(s.positions, structure).Parse(in.Data)
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, models.CategoryFaculty, in, parsed, parsed.Stats, parsed.Warnings); err != nil {
		return nil, err
	}
	if s.faculty != nil {
		s.faculty.InvalidateStats(ctx)
	}
	return &UploadResult{
		Category: models.CategoryFaculty,
		Filename: in.Filename,
		Stats:    parsed.Stats,
		Warnings: parsed.Warnings,
	}, nil
}

// UploadAssistant ingests the appointment export for assistant staffing. The
// previous snapshot's allocations are carried forward; parsed headcounts seed
// capacities only on the first-ever upload.
func (s *UploadService) UploadAssistant(ctx context.Context, in UploadInput) (*UploadResult, error) {
	result, err := s.uploadAssistant(ctx, in)
	s.metrics.RecordUpload(models.CategoryAssistant, err)
	return result, err
}

func (s *UploadService) uploadAssistant(ctx context.Context, in UploadInput) (*UploadResult, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	parsed, err := parser.NewAssistantParser().Parse(in.Data)
	if err != nil {
		return nil, err
	}
	carryForwardAllocations(s.previousAllocations(ctx), parsed)
	if err := s.persist(ctx, models.CategoryAssistant, in, parsed, parsed.Table.Summary, parsed.Warnings); err != nil {
		return nil, err
	}
	return &UploadResult{
		Category: models.CategoryAssistant,
		Filename: in.Filename,
		Stats:    parsed.Table.Summary,
		Warnings: parsed.Warnings,
	}, nil
}

// UploadAppointment ingests the appointment-history export for the leave view.
func (s *UploadService) UploadAppointment(ctx context.Context, in UploadInput) (*UploadResult, error) {
	result, err := s.uploadAppointment(ctx, in)
	s.metrics.RecordUpload(models.CategoryAppointment, err)
	return result, err
}

func (s *UploadService) uploadAppointment(ctx context.Context, in UploadInput) (*UploadResult, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	parsed, err := parser.NewAppointmentParser(s.now).Parse(in.Data)
	if err != nil {
		return nil, err
	}
	stats := map[string]int{"leave": len(parsed.Leave)}
	if err := s.persist(ctx, models.CategoryAppointment, in, parsed, stats, parsed.Warnings); err != nil {
		return nil, err
	}
	return &UploadResult{
		Category: models.CategoryAppointment,
		Filename: in.Filename,
		Stats:    stats,
		Warnings: parsed.Warnings,
	}, nil
}

// UploadResearchLeave ingests the sabbatical/dispatch export.
func (s *UploadService) UploadResearchLeave(ctx context.Context, in UploadInput) (*UploadResult, error) {
	result, err := s.uploadResearchLeave(ctx, in)
	s.metrics.RecordUpload(models.CategoryResearchLeave, err)
	return result, err
}

func (s *UploadService) uploadResearchLeave(ctx context.Context, in UploadInput) (*UploadResult, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	parsed, err := parser.NewDispatchParser(s.now).Parse(in.Data)
	if err != nil {
		return nil, err
	}
	stats := map[string]int{
		"researchFirst":  len(parsed.Research.First),
		"researchSecond": len(parsed.Research.Second),
		"leave":          len(parsed.Leave),
	}
	if err := s.persist(ctx, models.CategoryResearchLeave, in, parsed, stats, parsed.Warnings); err != nil {
		return nil, err
	}
	return &UploadResult{
		Category: models.CategoryResearchLeave,
		Filename: in.Filename,
		Stats:    stats,
		Warnings: parsed.Warnings,
	}, nil
}

// History lists the recent uploads across all categories.
func (s *UploadService) History(ctx context.Context) ([]models.UploadRecord, error) {
	return s.store.ListUploads(ctx, s.config.HistoryLimit)
}

func (s *UploadService) validate(in UploadInput) error {
	if len(in.Data) == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "no file uploaded")
	}
	if s.config.MaxFileSizeBytes > 0 && in.Size > s.config.MaxFileSizeBytes {
		return appErrors.Clone(appErrors.ErrValidation, "file exceeds the size limit")
	}
	if len(s.config.AllowedExtensions) > 0 {
		ext := strings.ToLower(filepath.Ext(in.Filename))
		for _, allowed := range s.config.AllowedExtensions {
			if ext == strings.ToLower(allowed) {
				return nil
			}
		}
		return appErrors.Clone(appErrors.ErrUnsupportedFormat, "only spreadsheet uploads are accepted")
	}
	return nil
}

func (s *UploadService) persist(ctx context.Context, category string, in UploadInput, doc interface{}, stats interface{}, warnings models.ParseWarnings) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return appErrors.WrapAs(err, appErrors.ErrInternal)
	}
	uploadedAt := s.now().UTC()
	snapshot := &models.Snapshot{
		Category:   category,
		Payload:    payload,
		Filename:   in.Filename,
		FileSize:   in.Size,
		UploadedBy: in.UploadedBy,
		UploadedAt: uploadedAt,
	}
	if err := s.store.Replace(ctx, snapshot); err != nil {
		return err
	}

	statsJSON, err := json.Marshal(stats)
	if err != nil {
		statsJSON = []byte("{}")
	}
	record := &models.UploadRecord{
		Category:   category,
		Filename:   in.Filename,
		FileSize:   in.Size,
		UploadedBy: in.UploadedBy,
		Stats:      statsJSON,
		UploadedAt: uploadedAt,
	}
	if err := s.store.RecordUpload(ctx, record, s.config.HistoryLimit); err != nil {
		// The snapshot committed; losing one history row is not worth
		// failing the upload over.
		s.logger.Warn("failed to record upload history", zap.String("category", category), zap.Error(err))
	}

	s.metrics.RecordParseWarnings(category, warnings)
	s.logger.Info("snapshot replaced",
		zap.String("category", category),
		zap.String("filename", in.Filename),
		zap.Int64("size", in.Size),
		zap.String("uploadedBy", in.UploadedBy))
	return nil
}

func (s *UploadService) previousAllocations(ctx context.Context) map[string]int {
	snapshot, err := s.store.Latest(ctx, models.CategoryAssistant)
	if err != nil {
		return nil
	}
	var doc models.AssistantSnapshot
	if err := json.Unmarshal(snapshot.Payload, &doc); err != nil {
		s.logger.Warn("previous assistant snapshot unreadable, reseeding allocations", zap.Error(err))
		return nil
	}
	return doc.Allocations
}
