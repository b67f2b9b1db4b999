package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/propozzals/proposal-backend/internal/logger"
	"github.com/propozzals/proposal-backend/internal/models"
	"github.com/propozzals/proposal-backend/internal/pkg/apperror"
	"github.com/propozzals/proposal-backend/internal/template"
	"github.com/propozzals/proposal-backend/internal/validation"
	"github.com/propozzals/proposal-backend/internal/ws"
)

// ExportRecords описывает хранилище записей об экспортах.
type ExportRecords interface {
	Create(ctx context.Context, rec *models.ExportRecord) error
	MarkDone(ctx context.Context, id uuid.UUID, filePath string, sizeBytes int64) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ExportRecord, error)
	ListBySession(ctx context.Context, sessionID string, limit int) ([]models.ExportRecord, error)
}

// PDFRenderer описывает внешний сервис рендеринга PDF.
type PDFRenderer interface {
	Render(ctx context.Context, html, templateID string, addWatermark bool) ([]byte, error)
}

// ExportFiles описывает файловое хранилище готовых PDF.
type ExportFiles interface {
	Save(ctx context.Context, exportID string, data []byte) (string, int64, error)
}

// ExportService генерирует PDF-экспорты документа. На одну сессию
// одновременно выполняется не более одного экспорта.
type ExportService struct {
	proposals *ProposalService
	records   ExportRecords
	renderer  PDFRenderer
	files     ExportFiles
	notifier  StatusNotifier

	mu   sync.Mutex
	busy map[string]struct{}
}

// NewExportService создаёт сервис экспорта.
func NewExportService(proposals *ProposalService, records ExportRecords, renderer PDFRenderer, files ExportFiles, notifier StatusNotifier) *ExportService {
	return &ExportService{
		proposals: proposals,
		records:   records,
		renderer:  renderer,
		files:     files,
		notifier:  notifier,
		busy:      make(map[string]struct{}),
	}
}

// Generate выполняет полный цикл экспорта: сборка разметки, рендеринг PDF,
// запись файла и фиксация результата. Watermarked-экспорт доступен при
// минимально заполненном документе, чистый — только при полном.
func (s *ExportService) Generate(ctx context.Context, sessionID string, raw models.RawDocument, templateID string, watermarked bool) (*models.ExportRecord, error) {
	desc := template.Resolve(templateID)

	if watermarked {
		if !validation.HasEssentialContent(raw) {
			return nil, apperror.New(apperror.ErrCodeValidation, "документ пуст: заполните форму перед экспортом")
		}
	} else if !validation.CanExport(raw, desc.Schema) {
		result := validation.ValidateProposal(raw, desc.Schema)
		return nil, apperror.New(apperror.ErrCodeValidation, validation.Message(result))
	}

	if !s.acquire(sessionID) {
		return nil, apperror.ErrExportBusy
	}
	defer s.release(sessionID)

	html, fp, err := s.proposals.Markup(raw, desc.ID, watermarked)
	if err != nil {
		return nil, err
	}

	rec := &models.ExportRecord{
		ID:          uuid.New(),
		SessionID:   sessionID,
		TemplateID:  desc.ID,
		Fingerprint: fp,
		Watermarked: watermarked,
		Status:      models.ExportStatusPending,
	}
	if err := s.records.Create(ctx, rec); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodePersistence, "не удалось создать запись экспорта")
	}

	s.notify(sessionID, ws.EventExportStarted, rec)

	pdf, err := s.renderer.Render(ctx, html, desc.ID, watermarked)
	if err != nil {
		s.fail(ctx, rec, err.Error())
		return nil, err
	}

	filePath, size, err := s.files.Save(ctx, rec.ID.String(), pdf)
	if err != nil {
		s.fail(ctx, rec, err.Error())
		return nil, apperror.Wrap(err, apperror.ErrCodeExport, "не удалось сохранить PDF")
	}

	if err := s.records.MarkDone(ctx, rec.ID, filePath, size); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodePersistence, "не удалось зафиксировать экспорт")
	}

	rec.FilePath = filePath
	rec.SizeBytes = size
	rec.Status = models.ExportStatusDone
	s.notify(sessionID, ws.EventExportDone, rec)

	return rec, nil
}

// GetByID возвращает запись экспорта.
func (s *ExportService) GetByID(ctx context.Context, id uuid.UUID) (*models.ExportRecord, error) {
	return s.records.GetByID(ctx, id)
}

// ListBySession возвращает историю экспортов сессии.
func (s *ExportService) ListBySession(ctx context.Context, sessionID string, limit int) ([]models.ExportRecord, error) {
	return s.records.ListBySession(ctx, sessionID, limit)
}

func (s *ExportService) acquire(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.busy[sessionID]; busy {
		return false
	}
	s.busy[sessionID] = struct{}{}
	return true
}

func (s *ExportService) release(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.busy, sessionID)
}

func (s *ExportService) fail(ctx context.Context, rec *models.ExportRecord, reason string) {
	if err := s.records.MarkFailed(ctx, rec.ID, reason); err != nil {
		logger.Log.WithError(err).WithField("export_id", rec.ID).Error("не удалось отметить экспорт как проваленный")
	}
	rec.Status = models.ExportStatusFailed
	rec.FailReason = reason
	s.notify(rec.SessionID, ws.EventExportFailed, rec)
}

func (s *ExportService) notify(sessionID, event string, rec *models.ExportRecord) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.BroadcastToSession(sessionID, event, rec); err != nil {
		logger.Log.WithError(err).Warn("не удалось отправить событие экспорта")
	}
}
