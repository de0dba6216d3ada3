package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/yongin-adm/roster-adp-api/internal/models"
	appErrors "github.com/yongin-adm/roster-adp-api/pkg/errors"
)

// mockSnapshotStore is an in-memory uploadStore shared by the service tests.
type mockSnapshotStore struct {
	snapshots  map[string]*models.Snapshot
	uploads    []models.UploadRecord
	replaceErr error
}

func newMockSnapshotStore() *mockSnapshotStore {
	return &mockSnapshotStore{snapshots: map[string]*models.Snapshot{}}
}

func (m *mockSnapshotStore) Replace(ctx context.Context, snapshot *models.Snapshot) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	copied := *snapshot
	m.snapshots[snapshot.Category] = &copied
	return nil
}

func (m *mockSnapshotStore) Latest(ctx context.Context, category string) (*models.Snapshot, error) {
	snapshot, ok := m.snapshots[category]
	if !ok {
		return nil, appErrors.ErrNoSnapshot
	}
	copied := *snapshot
	return &copied, nil
}

func (m *mockSnapshotStore) RecordUpload(ctx context.Context, record *models.UploadRecord, keep int) error {
	record.ID = int64(len(m.uploads) + 1)
	m.uploads = append(m.uploads, *record)
	if len(m.uploads) > keep {
		m.uploads = m.uploads[len(m.uploads)-keep:]
	}
	return nil
}

func (m *mockSnapshotStore) ListUploads(ctx context.Context, limit int) ([]models.UploadRecord, error) {
	if len(m.uploads) > limit {
		return m.uploads[len(m.uploads)-limit:], nil
	}
	return m.uploads, nil
}

// mockCache is an in-memory cacheStore.
type mockCache struct {
	values map[string][]byte
	sets   int
}

func newMockCache() *mockCache {
	return &mockCache{values: map[string][]byte{}}
}

func (m *mockCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *mockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[key] = raw
	m.sets++
	return nil
}

func (m *mockCache) Invalidate(ctx context.Context, keys ...string) {
	for _, key := range keys {
		delete(m.values, key)
	}
}
