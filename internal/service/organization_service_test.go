package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yongin-adm/roster-adp-api/internal/models"
	appErrors "github.com/yongin-adm/roster-adp-api/pkg/errors"
)

func TestOrganizationStructureDefault(t *testing.T) {
	svc := NewOrganizationService(newMockSnapshotStore(), zap.NewNop())

	structure, err := svc.Structure(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultStructure(), structure)
}

func TestOrganizationUpdateRoundtrip(t *testing.T) {
	store := newMockSnapshotStore()
	svc := NewOrganizationService(store, zap.NewNop())

	custom := []models.Department{
		{Name: "신설대학", SubDepartments: []string{"신설학과"}},
		{Name: "대학원"},
	}
	require.NoError(t, svc.Update(context.Background(), custom, "admin"))

	structure, err := svc.Structure(context.Background())
	require.NoError(t, err)
	assert.Equal(t, custom, structure)

	stored, err := store.Latest(context.Background(), models.CategoryOrganization)
	require.NoError(t, err)
	assert.Equal(t, "organization.json", stored.Filename)
	assert.Equal(t, "admin", stored.UploadedBy)
}

func TestOrganizationUpdateValidation(t *testing.T) {
	svc := NewOrganizationService(newMockSnapshotStore(), zap.NewNop())
	ctx := context.Background()

	cases := []struct {
		name      string
		structure []models.Department
	}{
		{"empty", nil},
		{"blank name", []models.Department{{Name: "  "}}},
		{"duplicate name", []models.Department{{Name: "대학원"}, {Name: "대학원"}}},
		{"blank sub-department", []models.Department{{Name: "대학원", SubDepartments: []string{""}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Update(ctx, tc.structure, "admin")
			require.Error(t, err)
			assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
		})
	}
}

func TestOrganizationStructureCorruptPayload(t *testing.T) {
	store := newMockSnapshotStore()
	require.NoError(t, store.Replace(context.Background(), &models.Snapshot{
		Category: models.CategoryOrganization,
		Payload:  []byte("not json"),
	}))

	svc := NewOrganizationService(store, zap.NewNop())
	structure, err := svc.Structure(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultStructure(), structure, "corrupt payloads fall back to the default")
}
