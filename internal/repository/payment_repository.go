package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/propozzals/proposal-backend/internal/models"
)

var ErrPaymentNotFound = errors.New("платёж не найден")

type PaymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create регистрирует созданный payment intent.
func (r *PaymentRepository) Create(ctx context.Context, rec *models.PaymentRecord) error {
	query := `
		INSERT INTO payments (id, intent_id, session_id, template_id, amount_cents, currency, email, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`
	err := r.db.GetContext(ctx, &rec.CreatedAt, query,
		rec.ID, rec.IntentID, rec.SessionID, rec.TemplateID,
		rec.AmountCents, rec.Currency, rec.Email, rec.Status)
	if err != nil {
		return fmt.Errorf("payment repository: create: %w", err)
	}
	return nil
}

// GetByIntentID возвращает платёж по идентификатору интента провайдера.
func (r *PaymentRepository) GetByIntentID(ctx context.Context, intentID string) (*models.PaymentRecord, error) {
	var rec models.PaymentRecord
	query := `
		SELECT id, intent_id, session_id, template_id, amount_cents, currency,
		       COALESCE(email, '') AS email, status,
		       COALESCE(export_id, '00000000-0000-0000-0000-000000000000') AS export_id,
		       created_at
		FROM payments
		WHERE intent_id = $1
	`
	if err := r.db.GetContext(ctx, &rec, query, intentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("payment repository: get by intent: %w", err)
	}
	return &rec, nil
}

// MarkSucceeded помечает платёж успешным и привязывает чистый экспорт.
func (r *PaymentRepository) MarkSucceeded(ctx context.Context, intentID string, exportID uuid.UUID) error {
	query := `
		UPDATE payments
		SET status = $2, export_id = $3
		WHERE intent_id = $1
	`
	res, err := r.db.ExecContext(ctx, query, intentID, models.PaymentStatusSucceeded, exportID)
	if err != nil {
		return fmt.Errorf("payment repository: mark succeeded: %w", err)
	}
	return ensureAffected(res, ErrPaymentNotFound)
}

// MarkFailed помечает платёж отклонённым.
func (r *PaymentRepository) MarkFailed(ctx context.Context, intentID string) error {
	query := `
		UPDATE payments
		SET status = $2
		WHERE intent_id = $1
	`
	res, err := r.db.ExecContext(ctx, query, intentID, models.PaymentStatusFailed)
	if err != nil {
		return fmt.Errorf("payment repository: mark failed: %w", err)
	}
	return ensureAffected(res, ErrPaymentNotFound)
}
