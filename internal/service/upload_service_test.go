package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/yongin-adm/roster-adp-api/internal/models"
	appErrors "github.com/yongin-adm/roster-adp-api/pkg/errors"
)

func workbookBytes(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", fmt.Sprintf("A%d", i+1), &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func facultyWorkbook(t *testing.T) []byte {
	return workbookBytes(t, [][]interface{}{
		{"2025학년도 교원 현황"},
		{"대학", "소속", "성명", "직렬", "직급", "성별", "재직구분", "호봉", "생년월일"},
		{"무도대학", "유도학과", "홍교수", "전임교원", "교수", "남", "재직", "", ""},
		{"무도대학", "유도학과", "김강사", "비전임교원", "시간강사", "여", "재직", "12", ""},
	})
}

func assistantWorkbook(t *testing.T) []byte {
	return workbookBytes(t, [][]interface{}{
		{"교원 발령사항 현황"},
		{},
		{},
		{"대학", "소속", "성명", "직렬", "직급", "재직구분", "발령구분", "발령시작일", "발령종료일"},
		{"무도대학", "유도학과", "정조교", "조교", "조교", "재직", "최초임용", "2025.03.01", ""},
	})
}

func testUploadService(store *mockSnapshotStore, faculty *FacultyService) *UploadService {
	svc := NewUploadService(store, NewOrganizationService(store, zap.NewNop()), nil, faculty, nil, zap.NewNop(), UploadConfig{
		MaxFileSizeBytes:  10 << 20,
		AllowedExtensions: []string{".xlsx", ".xls"},
		HistoryLimit:      10,
	})
	svc.now = func() time.Time { return time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestUploadFacultyPipeline(t *testing.T) {
	store := newMockSnapshotStore()
	cache := newMockCache()
	faculty := NewFacultyService(store, cache, nil, zap.NewNop(), time.Minute)
	svc := testUploadService(store, faculty)

	require.NoError(t, cache.Set(context.Background(), facultyStatsCacheKey, models.FacultyStats{}, time.Minute))

	result, err := svc.UploadFaculty(context.Background(), UploadInput{
		Filename:   "faculty.xlsx",
		Size:       1024,
		Data:       facultyWorkbook(t),
		UploadedBy: "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, models.CategoryFaculty, result.Category)

	view, err := faculty.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "faculty.xlsx", view.Filename)
	assert.Equal(t, "admin", view.UploadedBy)
	require.Contains(t, view.Tree, "무도대학")
	assert.Len(t, view.Tree["무도대학"].SubUnits["유도학과"]["교수"], 1)
	assert.Len(t, view.Tree["무도대학"].SubUnits["유도학과"]["강사"], 1, "position alias resolved before bucketing")

	assert.Empty(t, cache.values, "upload drops the cached statistics")

	history, err := svc.History(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.CategoryFaculty, history[0].Category)
}

func TestUploadAssistantSeedsThenInherits(t *testing.T) {
	store := newMockSnapshotStore()
	svc := testUploadService(store, nil)
	assistants := NewAssistantService(store, zap.NewNop())
	ctx := context.Background()
	in := UploadInput{Filename: "assistant.xlsx", Size: 512, Data: assistantWorkbook(t), UploadedBy: "admin"}

	_, err := svc.UploadAssistant(ctx, in)
	require.NoError(t, err)
	view, err := assistants.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Allocations["무도대학|유도학과"], "first upload seeds capacities from headcounts")

	_, err = assistants.UpdateAllocations(ctx, map[string]int{"무도대학|유도학과": 3}, "admin")
	require.NoError(t, err)

	_, err = svc.UploadAssistant(ctx, in)
	require.NoError(t, err)
	view, err = assistants.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Allocations["무도대학|유도학과"], "re-upload inherits admin-entered capacities")
}

func TestUploadValidation(t *testing.T) {
	svc := testUploadService(newMockSnapshotStore(), nil)
	ctx := context.Background()
	data := facultyWorkbook(t)

	_, err := svc.UploadFaculty(ctx, UploadInput{Filename: "faculty.xlsx"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.UploadFaculty(ctx, UploadInput{Filename: "faculty.xlsx", Size: 11 << 20, Data: data})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.UploadFaculty(ctx, UploadInput{Filename: "faculty.csv", Size: 1024, Data: data})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnsupportedFormat.Code, appErrors.FromError(err).Code)
}

func TestUploadFailedParsePersistsNothing(t *testing.T) {
	store := newMockSnapshotStore()
	svc := testUploadService(store, nil)

	_, err := svc.UploadFaculty(context.Background(), UploadInput{
		Filename: "faculty.xlsx",
		Size:     4,
		Data:     []byte("junk"),
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnsupportedFormat.Code, appErrors.FromError(err).Code)

	_, err = store.Latest(context.Background(), models.CategoryFaculty)
	require.Error(t, err)
	assert.Empty(t, store.uploads)
}
