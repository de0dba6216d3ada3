package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/yongin-adm/roster-adp-api/internal/models"
	appErrors "github.com/yongin-adm/roster-adp-api/pkg/errors"
)

// SnapshotRepository persists the singleton-per-category documents and the
// bounded upload history.
type SnapshotRepository struct {
	db *sqlx.DB
}

// NewSnapshotRepository creates a new snapshot repository.
func NewSnapshotRepository(db *sqlx.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Replace swaps the category's document in a single transaction, so readers
// either see the previous snapshot or the new one, never an empty category.
func (r *SnapshotRepository) Replace(ctx context.Context, snapshot *models.Snapshot) error {
	now := time.Now().UTC()
	if snapshot.UploadedAt.IsZero() {
		snapshot.UploadedAt = now
	}
	snapshot.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE category = $1`, snapshot.Category); err != nil {
		return fmt.Errorf("clear snapshot %s: %w", snapshot.Category, err)
	}
	const query = `INSERT INTO snapshots (category, payload, filename, file_size, uploaded_by, uploaded_at, updated_at)
        VALUES (:category, :payload, :filename, :file_size, :uploaded_by, :uploaded_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, query, snapshot); err != nil {
		return fmt.Errorf("insert snapshot %s: %w", snapshot.Category, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot replace: %w", err)
	}
	return nil
}

// Latest returns the category's current snapshot.
func (r *SnapshotRepository) Latest(ctx context.Context, category string) (*models.Snapshot, error) {
	var snapshot models.Snapshot
	const query = `SELECT category, payload, filename, file_size, uploaded_by, uploaded_at, updated_at
        FROM snapshots WHERE category = $1`
	if err := r.db.GetContext(ctx, &snapshot, query, category); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNoSnapshot
		}
		return nil, fmt.Errorf("load snapshot %s: %w", category, err)
	}
	return &snapshot, nil
}

// RecordUpload appends one history entry and prunes the category's history to
// the given limit, newest kept.
func (r *SnapshotRepository) RecordUpload(ctx context.Context, record *models.UploadRecord, keep int) error {
	if record.UploadedAt.IsZero() {
		record.UploadedAt = time.Now().UTC()
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upload record: %w", err)
	}
	defer tx.Rollback()

	const insert = `INSERT INTO upload_history (category, filename, file_size, uploaded_by, stats, uploaded_at)
        VALUES (:category, :filename, :file_size, :uploaded_by, :stats, :uploaded_at)`
	if _, err := tx.NamedExecContext(ctx, insert, record); err != nil {
		return fmt.Errorf("insert upload record: %w", err)
	}
	const prune = `DELETE FROM upload_history
        WHERE category = $1 AND id NOT IN (
            SELECT id FROM upload_history WHERE category = $1 ORDER BY uploaded_at DESC, id DESC LIMIT $2
        )`
	if _, err := tx.ExecContext(ctx, prune, record.Category, keep); err != nil {
		return fmt.Errorf("prune upload history: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upload record: %w", err)
	}
	return nil
}

// ListUploads returns recent uploads across all categories, newest first.
func (r *SnapshotRepository) ListUploads(ctx context.Context, limit int) ([]models.UploadRecord, error) {
	var records []models.UploadRecord
	const query = `SELECT id, category, filename, file_size, uploaded_by, stats, uploaded_at
        FROM upload_history ORDER BY uploaded_at DESC, id DESC LIMIT $1`
	if err := r.db.SelectContext(ctx, &records, query, limit); err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	return records, nil
}
