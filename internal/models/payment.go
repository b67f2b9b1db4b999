package models

import (
	"time"

	"github.com/google/uuid"
)

// Статусы платежа, как их отдаёт провайдер.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusSucceeded = "succeeded"
	PaymentStatusFailed    = "failed"
)

// PaymentRecord — запись об оплате чистого экспорта.
type PaymentRecord struct {
	ID          uuid.UUID `db:"id" json:"id"`
	IntentID    string    `db:"intent_id" json:"intent_id"`
	SessionID   string    `db:"session_id" json:"session_id"`
	TemplateID  string    `db:"template_id" json:"template_id"`
	AmountCents int64     `db:"amount_cents" json:"amount_cents"`
	Currency    string    `db:"currency" json:"currency"`
	Email       string    `db:"email" json:"email,omitempty"`
	Status      string    `db:"status" json:"status"`
	ExportID    uuid.UUID `db:"export_id" json:"export_id,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// PaymentReceipt передаётся в почтовый сервис после успешной оплаты.
type PaymentReceipt struct {
	IntentID    string
	Email       string
	AmountCents int64
	Currency    string
	DownloadURL string
}
