package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/yongin-adm/roster-adp-api/internal/models"
	appErrors "github.com/yongin-adm/roster-adp-api/pkg/errors"
)

type cacheStore interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, keys ...string)
}

const facultyStatsCacheKey = "roster:faculty:stats"

// FacultyView is the dashboard payload: the parsed snapshot plus the upload
// provenance the front end shows alongside it.
type FacultyView struct {
	models.FacultyParseResult
	Filename   string    `json:"filename"`
	UploadedBy string    `json:"uploadedBy"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// FacultyService serves the faculty snapshot and its derived statistics.
type FacultyService struct {
	store    snapshotStore
	cache    cacheStore
	metrics  *MetricsService
	logger   *zap.Logger
	statsTTL time.Duration
}

// NewFacultyService constructs a FacultyService.
func NewFacultyService(store snapshotStore, cache cacheStore, metrics *MetricsService, logger *zap.Logger, statsTTL time.Duration) *FacultyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FacultyService{store: store, cache: cache, metrics: metrics, logger: logger, statsTTL: statsTTL}
}

// Get returns the latest faculty snapshot.
func (s *FacultyService) Get(ctx context.Context) (*FacultyView, error) {
	snapshot, err := s.store.Latest(ctx, models.CategoryFaculty)
	if err != nil {
		return nil, err
	}
	view := &FacultyView{
		Filename:   snapshot.Filename,
		UploadedBy: snapshot.UploadedBy,
		UploadedAt: snapshot.UploadedAt,
	}
	if err := json.Unmarshal(snapshot.Payload, &view.FacultyParseResult); err != nil {
		return nil, appErrors.WrapAs(err, appErrors.ErrInternal)
	}
	return view, nil
}

// Stats returns aggregate counts per position tier and department, cached
// until the next faculty upload or TTL expiry.
func (s *FacultyService) Stats(ctx context.Context) (*models.FacultyStats, error) {
	if s.cache != nil {
		var cached models.FacultyStats
		if err := s.cache.Get(ctx, facultyStatsCacheKey, &cached); err == nil {
			s.metrics.RecordCacheLookup(true)
			return &cached, nil
		}
		s.metrics.RecordCacheLookup(false)
	}

	view, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	stats := computeFacultyStats(&view.FacultyParseResult)

	if s.cache != nil {
		if err := s.cache.Set(ctx, facultyStatsCacheKey, stats, s.statsTTL); err != nil {
			s.logger.Warn("failed to cache faculty stats", zap.Error(err))
		}
	}
	return stats, nil
}

// InvalidateStats drops the cached statistics after an upload.
func (s *FacultyService) InvalidateStats(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, facultyStatsCacheKey)
	}
}

func computeFacultyStats(result *models.FacultyParseResult) *models.FacultyStats {
	tier := make(map[string]int, len(result.FullTimePositions)+len(result.PartTimePositions)+len(result.OtherPositions))
	const (
		tierFull = iota
		tierPart
		tierOther
	)
	for _, p := range result.FullTimePositions {
		tier[p] = tierFull
	}
	for _, p := range result.PartTimePositions {
		tier[p] = tierPart
	}
	for _, p := range result.OtherPositions {
		tier[p] = tierOther
	}

	stats := &models.FacultyStats{
		ByPosition:   map[string]int{},
		ByDepartment: map[string]models.DepartmentStats{},
	}
	tally := func(unitName string, buckets models.PositionBuckets) {
		dept := stats.ByDepartment[unitName]
		for position, members := range buckets {
			n := len(members)
			if n == 0 {
				continue
			}
			stats.ByPosition[position] += n
			stats.Total += n
			dept.Total += n
			switch t, known := tier[position]; {
			case known && t == tierFull:
				stats.FullTime += n
				dept.FullTime += n
			case known && t == tierPart:
				stats.PartTime += n
				dept.PartTime += n
			default:
				// Unmapped labels count with the research/support tier.
				stats.Other += n
				dept.Other += n
			}
		}
		stats.ByDepartment[unitName] = dept
	}

	for unitName, unit := range result.Tree {
		if unit == nil {
			continue
		}
		if unit.Positions != nil {
			tally(unitName, unit.Positions)
		}
		for _, buckets := range unit.SubUnits {
			tally(unitName, buckets)
		}
	}
	return stats
}
