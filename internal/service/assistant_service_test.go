package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yongin-adm/roster-adp-api/internal/models"
	appErrors "github.com/yongin-adm/roster-adp-api/pkg/errors"
)

func assistantDoc() *models.AssistantSnapshot {
	return &models.AssistantSnapshot{
		Table: models.AssistantTableResult{
			Colleges: []models.AssistantCategory{
				{
					CategoryName: "체육과학대학",
					Departments: []models.AssistantDepartment{
						{MainDept: "체육학과", Current: 7},
						{MainDept: "특수체육교육과", Current: 2},
					},
				},
			},
			Administrative: []models.AssistantCategory{
				{
					CategoryName: "부총장실",
					Departments: []models.AssistantDepartment{
						{MainDept: "부총장실", Current: 1},
					},
				},
			},
		},
	}
}

func TestCarryForwardAllocationsSeedsFirstUpload(t *testing.T) {
	doc := assistantDoc()
	carryForwardAllocations(nil, doc)

	require.Len(t, doc.Allocations, 3)
	assert.Equal(t, 7, doc.Allocations["체육과학대학|체육학과"])
	assert.Equal(t, 2, doc.Allocations["체육과학대학|특수체육교육과"])
	assert.Equal(t, 1, doc.Allocations["부총장실|부총장실"])
}

func TestCarryForwardAllocationsInheritsVerbatim(t *testing.T) {
	previous := map[string]int{"체육과학대학|체육학과": 5}
	doc := assistantDoc()
	carryForwardAllocations(previous, doc)

	// Admin-entered 5 survives even though the new headcount is 7, and a
	// department that was not in the previous map stays absent.
	assert.Equal(t, previous, doc.Allocations)
}

func TestAssistantGetAppliesAllocations(t *testing.T) {
	doc := assistantDoc()
	doc.Allocations = map[string]int{"체육과학대학|체육학과": 5}
	store := newMockSnapshotStore()
	storeSnapshot(t, store, models.CategoryAssistant, doc)

	svc := NewAssistantService(store, zap.NewNop())
	view, err := svc.Get(context.Background())
	require.NoError(t, err)

	depts := view.Colleges[0].Departments
	assert.Equal(t, 5, depts[0].Allocated)
	assert.Equal(t, 7, depts[0].Current)
	assert.Equal(t, 0, depts[1].Allocated, "unallocated departments default to zero")
	assert.Equal(t, 0, view.Administrative[0].Departments[0].Allocated)
}

func TestAssistantUpdateAllocationsMerges(t *testing.T) {
	doc := assistantDoc()
	doc.Allocations = map[string]int{"체육과학대학|체육학과": 5}
	store := newMockSnapshotStore()
	storeSnapshot(t, store, models.CategoryAssistant, doc)

	svc := NewAssistantService(store, zap.NewNop())
	merged, err := svc.UpdateAllocations(context.Background(), map[string]int{"부총장실|부총장실": 2}, "admin")
	require.NoError(t, err)
	assert.Equal(t, 5, merged["체육과학대학|체육학과"], "existing entries survive a partial update")
	assert.Equal(t, 2, merged["부총장실|부총장실"])

	// The merge is persisted.
	stored, err := store.Latest(context.Background(), models.CategoryAssistant)
	require.NoError(t, err)
	var reloaded models.AssistantSnapshot
	require.NoError(t, json.Unmarshal(stored.Payload, &reloaded))
	assert.Equal(t, merged, reloaded.Allocations)
}

func TestAssistantUpdateAllocationsRejectsNegative(t *testing.T) {
	store := newMockSnapshotStore()
	storeSnapshot(t, store, models.CategoryAssistant, assistantDoc())

	svc := NewAssistantService(store, zap.NewNop())
	_, err := svc.UpdateAllocations(context.Background(), map[string]int{"체육과학대학|체육학과": -1}, "admin")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.UpdateAllocations(context.Background(), nil, "admin")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAssistantGetWithoutSnapshot(t *testing.T) {
	svc := NewAssistantService(newMockSnapshotStore(), zap.NewNop())
	_, err := svc.Get(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNoSnapshot.Code, appErrors.FromError(err).Code)
}
