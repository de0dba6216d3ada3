package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/yongin-adm/roster-adp-api/internal/models"
	appErrors "github.com/yongin-adm/roster-adp-api/pkg/errors"
)

// AssistantView is the assistant snapshot with allocations applied to the
// staffing table.
type AssistantView struct {
	Colleges       []models.AssistantCategory   `json:"colleges"`
	Administrative []models.AssistantCategory   `json:"administrative"`
	Summary        models.AssistantTableSummary `json:"summary"`
	Flat           models.AssistantFlatResult   `json:"flat"`
	Allocations    map[string]int               `json:"allocations"`
	Warnings       models.ParseWarnings         `json:"warnings"`
	Filename       string                       `json:"filename"`
	UploadedAt     time.Time                    `json:"uploadedAt"`
}

// AssistantService serves the assistant snapshot and manages the
// administrator-entered allocation capacities.
type AssistantService struct {
	store  snapshotStore
	logger *zap.Logger
}

// NewAssistantService constructs an AssistantService.
func NewAssistantService(store snapshotStore, logger *zap.Logger) *AssistantService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssistantService{store: store, logger: logger}
}

// Get returns the latest assistant snapshot with admin-entered allocations
// overlaid onto the parsed headcounts.
func (s *AssistantService) Get(ctx context.Context) (*AssistantView, error) {
	snapshot, doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	applyAllocations(doc.Table.Colleges, doc.Allocations)
	applyAllocations(doc.Table.Administrative, doc.Allocations)
	return &AssistantView{
		Colleges:       doc.Table.Colleges,
		Administrative: doc.Table.Administrative,
		Summary:        doc.Table.Summary,
		Flat:           doc.Flat,
		Allocations:    doc.Allocations,
		Warnings:       doc.Warnings,
		Filename:       snapshot.Filename,
		UploadedAt:     snapshot.UploadedAt,
	}, nil
}

// UpdateAllocations merges the given capacities into the stored snapshot.
// Only the allocations map changes; parsed data is left untouched.
func (s *AssistantService) UpdateAllocations(ctx context.Context, allocations map[string]int, updatedBy string) (map[string]int, error) {
	if len(allocations) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no allocations given")
	}
	for key, v := range allocations {
		if v < 0 {
			return nil, appErrors.Clone(appErrors.ErrValidation, "allocation must not be negative: "+key)
		}
	}

	snapshot, doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if doc.Allocations == nil {
		doc.Allocations = map[string]int{}
	}
	for key, v := range allocations {
		doc.Allocations[key] = v
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, appErrors.WrapAs(err, appErrors.ErrInternal)
	}
	snapshot.Payload = payload
	snapshot.UploadedBy = updatedBy
	if err := s.store.Replace(ctx, snapshot); err != nil {
		return nil, err
	}
	s.logger.Info("assistant allocations updated",
		zap.Int("entries", len(allocations)),
		zap.String("updatedBy", updatedBy))
	return doc.Allocations, nil
}

func (s *AssistantService) load(ctx context.Context) (*models.Snapshot, *models.AssistantSnapshot, error) {
	snapshot, err := s.store.Latest(ctx, models.CategoryAssistant)
	if err != nil {
		return nil, nil, err
	}
	var doc models.AssistantSnapshot
	if err := json.Unmarshal(snapshot.Payload, &doc); err != nil {
		return nil, nil, appErrors.WrapAs(err, appErrors.ErrInternal)
	}
	return snapshot, &doc, nil
}

// carryForwardAllocations decides the allocations of a freshly parsed
// snapshot. On the first-ever upload the parsed headcounts seed the
// capacities; afterwards the previous map is inherited verbatim, so
// administrator-entered numbers survive re-uploads and departments that
// appear later start at zero until an administrator sets them.
func carryForwardAllocations(previous map[string]int, doc *models.AssistantSnapshot) {
	if previous != nil {
		doc.Allocations = previous
		return
	}
	doc.Allocations = map[string]int{}
	seed := func(categories []models.AssistantCategory) {
		for _, c := range categories {
			for _, d := range c.Departments {
				doc.Allocations[c.CategoryName+"|"+d.MainDept] = d.Current
			}
		}
	}
	seed(doc.Table.Colleges)
	seed(doc.Table.Administrative)
}

func applyAllocations(categories []models.AssistantCategory, allocations map[string]int) {
	for ci := range categories {
		for di := range categories[ci].Departments {
			key := categories[ci].CategoryName + "|" + categories[ci].Departments[di].MainDept
			if v, ok := allocations[key]; ok {
				categories[ci].Departments[di].Allocated = v
			} else {
				categories[ci].Departments[di].Allocated = 0
			}
		}
	}
}
