package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/propozzals/proposal-backend/internal/models"
	"github.com/propozzals/proposal-backend/internal/pkg/apperror"
)

type ExportRepository struct {
	db *sqlx.DB
}

func NewExportRepository(db *sqlx.DB) *ExportRepository {
	return &ExportRepository{db: db}
}

// Create регистрирует начатый экспорт.
func (r *ExportRepository) Create(ctx context.Context, rec *models.ExportRecord) error {
	query := `
		INSERT INTO exports (id, session_id, template_id, fingerprint, watermarked, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := r.db.GetContext(ctx, &rec.CreatedAt, query,
		rec.ID, rec.SessionID, rec.TemplateID, rec.Fingerprint, rec.Watermarked, rec.Status)
	if err != nil {
		return fmt.Errorf("export repository: create: %w", err)
	}
	return nil
}

// MarkDone фиксирует готовый PDF.
func (r *ExportRepository) MarkDone(ctx context.Context, id uuid.UUID, filePath string, sizeBytes int64) error {
	query := `
		UPDATE exports
		SET status = $2, file_path = $3, size_bytes = $4
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id, models.ExportStatusDone, filePath, sizeBytes)
	if err != nil {
		return fmt.Errorf("export repository: mark done: %w", err)
	}
	return ensureAffected(res, apperror.ErrExportNotFound)
}

// MarkFailed фиксирует неудачный экспорт с причиной.
func (r *ExportRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	query := `
		UPDATE exports
		SET status = $2, fail_reason = $3
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id, models.ExportStatusFailed, reason)
	if err != nil {
		return fmt.Errorf("export repository: mark failed: %w", err)
	}
	return ensureAffected(res, apperror.ErrExportNotFound)
}

// GetByID возвращает запись экспорта.
func (r *ExportRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ExportRecord, error) {
	var rec models.ExportRecord
	query := `
		SELECT id, session_id, template_id, fingerprint, watermarked, status,
		       COALESCE(file_path, '') AS file_path,
		       COALESCE(size_bytes, 0) AS size_bytes,
		       COALESCE(fail_reason, '') AS fail_reason,
		       created_at
		FROM exports
		WHERE id = $1
	`
	if err := r.db.GetContext(ctx, &rec, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrExportNotFound
		}
		return nil, fmt.Errorf("export repository: get by id: %w", err)
	}
	return &rec, nil
}

// ListBySession возвращает экспорты сессии, свежие первыми.
func (r *ExportRepository) ListBySession(ctx context.Context, sessionID string, limit int) ([]models.ExportRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var recs []models.ExportRecord
	query := `
		SELECT id, session_id, template_id, fingerprint, watermarked, status,
		       COALESCE(file_path, '') AS file_path,
		       COALESCE(size_bytes, 0) AS size_bytes,
		       COALESCE(fail_reason, '') AS fail_reason,
		       created_at
		FROM exports
		WHERE session_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	if err := r.db.SelectContext(ctx, &recs, query, sessionID, limit); err != nil {
		return nil, fmt.Errorf("export repository: list by session: %w", err)
	}
	return recs, nil
}

func ensureAffected(res sql.Result, notFound error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
