package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/propozzals/proposal-backend/internal/logger"
	"github.com/propozzals/proposal-backend/internal/models"
	"github.com/propozzals/proposal-backend/internal/payment"
	"github.com/propozzals/proposal-backend/internal/pkg/apperror"
	"github.com/propozzals/proposal-backend/internal/template"
	"github.com/propozzals/proposal-backend/internal/validation"
	"github.com/propozzals/proposal-backend/internal/ws"
)

// PaymentProvider описывает внешнего платёжного провайдера.
type PaymentProvider interface {
	CreateIntent(ctx context.Context, amountCents int64, currency, receiptEmail string) (*payment.Intent, error)
}

// PaymentRecords описывает хранилище платежей.
type PaymentRecords interface {
	Create(ctx context.Context, rec *models.PaymentRecord) error
	GetByIntentID(ctx context.Context, intentID string) (*models.PaymentRecord, error)
	MarkSucceeded(ctx context.Context, intentID string, exportID uuid.UUID) error
	MarkFailed(ctx context.Context, intentID string) error
}

// ReceiptSender отправляет квитанцию после успешной оплаты.
type ReceiptSender interface {
	SendReceipt(ctx context.Context, receipt models.PaymentReceipt) error
}

// DraftSource отдаёт актуальный черновик сессии. Flush дописывает
// отложенные дебаунсом правки, чтобы оплаченный экспорт их не потерял.
type DraftSource interface {
	Flush(ctx context.Context, sessionID string) error
	Load(ctx context.Context, sessionID string) (*models.DraftEnvelope, error)
}

// PricingConfig — цена чистого экспорта. Задаётся конфигурацией
// при старте и дальше не меняется.
type PricingConfig struct {
	AmountCents    int64  `json:"amount_cents"`
	Currency       string `json:"currency"`
	PublishableKey string `json:"publishable_key"`
}

// PaymentService связывает оплату, экспорт и отправку квитанции.
type PaymentService struct {
	provider PaymentProvider
	records  PaymentRecords
	exports  *ExportService
	drafts   DraftSource
	tokens   *TokenManager
	mailer   ReceiptSender
	notifier StatusNotifier

	pricing       PricingConfig
	webhookSecret string
	publicBaseURL string
}

// NewPaymentService создаёт платёжный сервис.
func NewPaymentService(provider PaymentProvider, records PaymentRecords, exports *ExportService, drafts DraftSource, tokens *TokenManager, mailer ReceiptSender, notifier StatusNotifier, pricing PricingConfig, webhookSecret, publicBaseURL string) *PaymentService {
	return &PaymentService{
		provider:      provider,
		records:       records,
		exports:       exports,
		drafts:        drafts,
		tokens:        tokens,
		mailer:        mailer,
		notifier:      notifier,
		pricing:       pricing,
		webhookSecret: webhookSecret,
		publicBaseURL: publicBaseURL,
	}
}

// Pricing возвращает публичную конфигурацию оплаты.
func (s *PaymentService) Pricing() PricingConfig {
	return s.pricing
}

// CreateIntent создаёт платёжное намерение на чистый экспорт. Документ
// должен пройти полную валидацию до начала оплаты.
func (s *PaymentService) CreateIntent(ctx context.Context, sessionID, templateID, email string, raw models.RawDocument) (*payment.Intent, error) {
	desc := template.Resolve(templateID)
	if !validation.CanExport(raw, desc.Schema) {
		result := validation.ValidateProposal(raw, desc.Schema)
		return nil, apperror.New(apperror.ErrCodeValidation, validation.Message(result))
	}

	intent, err := s.provider.CreateIntent(ctx, s.pricing.AmountCents, s.pricing.Currency, email)
	if err != nil {
		return nil, err
	}

	rec := &models.PaymentRecord{
		ID:          uuid.New(),
		IntentID:    intent.ID,
		SessionID:   sessionID,
		TemplateID:  desc.ID,
		AmountCents: s.pricing.AmountCents,
		Currency:    s.pricing.Currency,
		Email:       email,
		Status:      models.PaymentStatusPending,
	}
	if err := s.records.Create(ctx, rec); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodePersistence, "не удалось сохранить платёж")
	}

	return intent, nil
}

// HandleWebhook проверяет подпись и обрабатывает событие провайдера.
// Успешная оплата запускает чистый экспорт: только его провал фатален,
// письмо с квитанцией отправляется по возможности.
func (s *PaymentService) HandleWebhook(ctx context.Context, body []byte, sigHeader string) error {
	if err := payment.VerifySignature(body, sigHeader, s.webhookSecret, time.Now()); err != nil {
		return apperror.ErrBadSignature
	}

	event, err := payment.ParseEvent(body)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeBadRequest, "некорректное тело webhook")
	}

	switch event.Type {
	case payment.EventPaymentSucceeded:
		return s.settleSucceeded(ctx, event)
	case payment.EventPaymentFailed:
		return s.settleFailed(ctx, event)
	default:
		logger.Log.WithField("event", event.Type).Debug("webhook: событие пропущено")
		return nil
	}
}

func (s *PaymentService) settleSucceeded(ctx context.Context, event *payment.Event) error {
	rec, err := s.records.GetByIntentID(ctx, event.Intent.ID)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeNotFound, "платёж по intent не найден")
	}

	if err := s.drafts.Flush(ctx, rec.SessionID); err != nil {
		logger.Log.WithError(err).WithField("session_id", rec.SessionID).Warn("не удалось дописать черновик перед оплаченным экспортом")
	}

	envelope, err := s.drafts.Load(ctx, rec.SessionID)
	if err != nil {
		s.markFailed(ctx, rec.IntentID)
		return apperror.Wrap(err, apperror.ErrCodePersistence, "черновик оплаченной сессии недоступен")
	}

	export, err := s.exports.Generate(ctx, rec.SessionID, envelope.Data, rec.TemplateID, false)
	if err != nil {
		// Провал экспорта фатален: деньги получены, документа нет.
		s.markFailed(ctx, rec.IntentID)
		return err
	}

	if err := s.records.MarkSucceeded(ctx, rec.IntentID, export.ID); err != nil {
		return apperror.Wrap(err, apperror.ErrCodePersistence, "не удалось зафиксировать успешный платёж")
	}

	s.notifyPayment(rec.SessionID, models.PaymentStatusSucceeded, export.ID)
	s.sendReceipt(ctx, rec, export.ID)
	return nil
}

func (s *PaymentService) settleFailed(ctx context.Context, event *payment.Event) error {
	if err := s.records.MarkFailed(ctx, event.Intent.ID); err != nil {
		return apperror.Wrap(err, apperror.ErrCodePersistence, "не удалось зафиксировать отклонённый платёж")
	}

	rec, err := s.records.GetByIntentID(ctx, event.Intent.ID)
	if err == nil {
		s.notifyPayment(rec.SessionID, models.PaymentStatusFailed, uuid.Nil)
	}
	return nil
}

// sendReceipt строит подписанную ссылку и шлёт письмо. Ошибки почты
// не прерывают обработку: оплата уже состоялась.
func (s *PaymentService) sendReceipt(ctx context.Context, rec *models.PaymentRecord, exportID uuid.UUID) {
	if s.mailer == nil || rec.Email == "" {
		return
	}

	token, _, err := s.tokens.IssueDownloadToken(exportID)
	if err != nil {
		logger.Log.WithError(err).Error("не удалось выпустить токен для квитанции")
		return
	}

	receipt := models.PaymentReceipt{
		IntentID:    rec.IntentID,
		Email:       rec.Email,
		AmountCents: rec.AmountCents,
		Currency:    rec.Currency,
		DownloadURL: fmt.Sprintf("%s/api/exports/%s/download?token=%s", s.publicBaseURL, exportID, token),
	}
	if err := s.mailer.SendReceipt(ctx, receipt); err != nil {
		logger.Log.WithError(err).WithField("intent_id", rec.IntentID).Error("не удалось отправить квитанцию")
	}
}

func (s *PaymentService) markFailed(ctx context.Context, intentID string) {
	if err := s.records.MarkFailed(ctx, intentID); err != nil {
		logger.Log.WithError(err).WithField("intent_id", intentID).Error("не удалось отметить платёж как проваленный")
	}
}

func (s *PaymentService) notifyPayment(sessionID, status string, exportID uuid.UUID) {
	if s.notifier == nil {
		return
	}
	data := map[string]string{"status": status}
	if exportID != uuid.Nil {
		data["export_id"] = exportID.String()
	}
	if err := s.notifier.BroadcastToSession(sessionID, ws.EventPaymentUpdated, data); err != nil {
		logger.Log.WithError(err).Warn("не удалось отправить событие оплаты")
	}
}
