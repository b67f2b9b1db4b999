package models

import (
	"time"

	"github.com/google/uuid"
)

// Статусы экспорта.
const (
	ExportStatusPending = "pending"
	ExportStatusDone    = "done"
	ExportStatusFailed  = "failed"
)

// ExportRecord — запись о сгенерированном PDF.
type ExportRecord struct {
	ID          uuid.UUID `db:"id" json:"id"`
	SessionID   string    `db:"session_id" json:"session_id"`
	TemplateID  string    `db:"template_id" json:"template_id"`
	Fingerprint string    `db:"fingerprint" json:"fingerprint"`
	Watermarked bool      `db:"watermarked" json:"watermarked"`
	Status      string    `db:"status" json:"status"`
	FilePath    string    `db:"file_path" json:"-"`
	SizeBytes   int64     `db:"size_bytes" json:"size_bytes"`
	FailReason  string    `db:"fail_reason" json:"fail_reason,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
