package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yongin-adm/roster-adp-api/internal/models"
	appErrors "github.com/yongin-adm/roster-adp-api/pkg/errors"
)

type snapshotStore interface {
	Replace(ctx context.Context, snapshot *models.Snapshot) error
	Latest(ctx context.Context, category string) (*models.Snapshot, error)
}

// OrganizationService manages the department taxonomy the faculty parser
// classifies against. Until an administrator stores one, the built-in default
// structure is served.
type OrganizationService struct {
	store  snapshotStore
	logger *zap.Logger
}

// NewOrganizationService constructs an OrganizationService.
func NewOrganizationService(store snapshotStore, logger *zap.Logger) *OrganizationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrganizationService{store: store, logger: logger}
}

// Structure returns the stored department structure, or the default when
// none has been stored yet.
func (s *OrganizationService) Structure(ctx context.Context) ([]models.Department, error) {
	snapshot, err := s.store.Latest(ctx, models.CategoryOrganization)
	if err != nil {
		if errors.Is(err, appErrors.ErrNoSnapshot) {
			return models.DefaultStructure(), nil
		}
		return nil, err
	}
	var structure []models.Department
	if err := json.Unmarshal(snapshot.Payload, &structure); err != nil {
		s.logger.Error("stored organization structure is corrupt, serving default", zap.Error(err))
		return models.DefaultStructure(), nil
	}
	return structure, nil
}

// Update validates and stores a new department structure.
func (s *OrganizationService) Update(ctx context.Context, structure []models.Department, updatedBy string) error {
	if len(structure) == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "organization structure must not be empty")
	}
	seen := make(map[string]bool, len(structure))
	for _, dept := range structure {
		name := strings.TrimSpace(dept.Name)
		if name == "" {
			return appErrors.Clone(appErrors.ErrValidation, "department name must not be blank")
		}
		if seen[name] {
			return appErrors.Clone(appErrors.ErrValidation, "duplicate department name: "+name)
		}
		seen[name] = true
		for _, sub := range dept.SubDepartments {
			if strings.TrimSpace(sub) == "" {
				return appErrors.Clone(appErrors.ErrValidation, "sub-department name must not be blank")
			}
		}
	}

	payload, err := json.Marshal(structure)
	if err != nil {
		return appErrors.WrapAs(err, appErrors.ErrInternal)
	}
	snapshot := &models.Snapshot{
		Category:   models.CategoryOrganization,
		Payload:    payload,
		Filename:   "organization.json",
		FileSize:   int64(len(payload)),
		UploadedBy: updatedBy,
		UploadedAt: time.Now().UTC(),
	}
	if err := s.store.Replace(ctx, snapshot); err != nil {
		return err
	}
	s.logger.Info("organization structure updated",
		zap.Int("departments", len(structure)),
		zap.String("updatedBy", updatedBy))
	return nil
}
