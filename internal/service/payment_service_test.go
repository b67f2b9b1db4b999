package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/propozzals/proposal-backend/internal/models"
	"github.com/propozzals/proposal-backend/internal/payment"
	"github.com/propozzals/proposal-backend/internal/pkg/apperror"
)

type mockPaymentProvider struct {
	mock.Mock
}

func (m *mockPaymentProvider) CreateIntent(ctx context.Context, amountCents int64, currency, receiptEmail string) (*payment.Intent, error) {
	args := m.Called(ctx, amountCents, currency, receiptEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Intent), args.Error(1)
}

type mockPaymentRecords struct {
	mock.Mock
}

func (m *mockPaymentRecords) Create(ctx context.Context, rec *models.PaymentRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *mockPaymentRecords) GetByIntentID(ctx context.Context, intentID string) (*models.PaymentRecord, error) {
	args := m.Called(ctx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentRecord), args.Error(1)
}

func (m *mockPaymentRecords) MarkSucceeded(ctx context.Context, intentID string, exportID uuid.UUID) error {
	args := m.Called(ctx, intentID, exportID)
	return args.Error(0)
}

func (m *mockPaymentRecords) MarkFailed(ctx context.Context, intentID string) error {
	args := m.Called(ctx, intentID)
	return args.Error(0)
}

type mockReceiptSender struct {
	mock.Mock
}

func (m *mockReceiptSender) SendReceipt(ctx context.Context, receipt models.PaymentReceipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

const testWebhookSecret = "whsec_test"

func signWebhook(body []byte) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(testWebhookSecret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(body)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func completeDocument() models.RawDocument {
	raw := models.RawDocument{}
	raw.Company.Name = "Acme"
	raw.Client.Name = "Bob"
	raw.Project.Scope = "Build the thing."
	raw.Pricing.Items = "Design — 500€"
	raw.Pricing.Total = "500€"
	return raw
}

func newPaymentFixture(provider *mockPaymentProvider, records *mockPaymentRecords, drafts *mockDraftStore, mailer *mockReceiptSender, exportRecords *mockExportRecords, renderer *mockRenderer, files *mockExportFiles) *PaymentService {
	exports := NewExportService(NewProposalService(), exportRecords, renderer, files, nil)
	tokens := NewTokenManager("download-secret", time.Hour)
	pricing := PricingConfig{AmountCents: 499, Currency: "EUR", PublishableKey: "pk_test"}
	draftSvc := NewDraftService(drafts, nil, time.Hour, time.Hour, time.Hour)
	return NewPaymentService(provider, records, exports, draftSvc, tokens, mailer, nil, pricing, testWebhookSecret, "http://localhost:8080")
}

func TestPaymentService_CreateIntent(t *testing.T) {
	provider := new(mockPaymentProvider)
	records := new(mockPaymentRecords)
	svc := newPaymentFixture(provider, records, new(mockDraftStore), nil, new(mockExportRecords), new(mockRenderer), new(mockExportFiles))

	provider.On("CreateIntent", mock.Anything, int64(499), "EUR", "a@b.c").
		Return(&payment.Intent{ID: "pi_1", ClientSecret: "cs_1", AmountCents: 499, Currency: "EUR"}, nil)
	records.On("Create", mock.Anything, mock.MatchedBy(func(rec *models.PaymentRecord) bool {
		return rec.IntentID == "pi_1" && rec.SessionID == "s1" && rec.Status == models.PaymentStatusPending
	})).Return(nil)

	intent, err := svc.CreateIntent(context.Background(), "s1", "", "a@b.c", completeDocument())

	assert.NoError(t, err)
	assert.Equal(t, "pi_1", intent.ID)
	records.AssertExpectations(t)
}

func TestPaymentService_CreateIntentBlocksIncompleteDocument(t *testing.T) {
	svc := newPaymentFixture(new(mockPaymentProvider), new(mockPaymentRecords), new(mockDraftStore), nil, new(mockExportRecords), new(mockRenderer), new(mockExportFiles))

	_, err := svc.CreateIntent(context.Background(), "s1", "", "a@b.c", models.RawDocument{})

	assert.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestPaymentService_WebhookRejectsBadSignature(t *testing.T) {
	svc := newPaymentFixture(new(mockPaymentProvider), new(mockPaymentRecords), new(mockDraftStore), nil, new(mockExportRecords), new(mockRenderer), new(mockExportFiles))

	err := svc.HandleWebhook(context.Background(), []byte(`{}`), "t=1,v1=deadbeef")
	assert.ErrorIs(t, err, apperror.ErrBadSignature)
}

func TestPaymentService_WebhookSucceededRunsCleanExport(t *testing.T) {
	provider := new(mockPaymentProvider)
	records := new(mockPaymentRecords)
	drafts := new(mockDraftStore)
	mailer := new(mockReceiptSender)
	exportRecords := new(mockExportRecords)
	renderer := new(mockRenderer)
	files := new(mockExportFiles)
	svc := newPaymentFixture(provider, records, drafts, mailer, exportRecords, renderer, files)

	paid := &models.PaymentRecord{
		IntentID: "pi_1", SessionID: "s1", TemplateID: "proposal-modern-01",
		AmountCents: 499, Currency: "EUR", Email: "a@b.c", Status: models.PaymentStatusPending,
	}
	records.On("GetByIntentID", mock.Anything, "pi_1").Return(paid, nil)
	drafts.On("Load", mock.Anything, "s1").Return(&models.DraftEnvelope{Version: models.DraftVersion, Data: completeDocument()}, nil)

	exportRecords.On("Create", mock.Anything, mock.MatchedBy(func(rec *models.ExportRecord) bool {
		return !rec.Watermarked && rec.SessionID == "s1"
	})).Return(nil)
	renderer.On("Render", mock.Anything, mock.Anything, "proposal-modern-01", false).Return([]byte("%PDF-1.4"), nil)
	files.On("Save", mock.Anything, mock.Anything, mock.Anything).Return("clean.pdf", int64(8), nil)
	exportRecords.On("MarkDone", mock.Anything, mock.Anything, "clean.pdf", int64(8)).Return(nil)

	records.On("MarkSucceeded", mock.Anything, "pi_1", mock.Anything).Return(nil)
	mailer.On("SendReceipt", mock.Anything, mock.MatchedBy(func(r models.PaymentReceipt) bool {
		return r.Email == "a@b.c" && r.DownloadURL != ""
	})).Return(nil)

	body := []byte(`{"type":"payment_intent.succeeded","data":{"id":"pi_1","amount":499,"currency":"EUR"}}`)
	err := svc.HandleWebhook(context.Background(), body, signWebhook(body))

	assert.NoError(t, err)
	records.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestPaymentService_WebhookFailedMarksPayment(t *testing.T) {
	records := new(mockPaymentRecords)
	svc := newPaymentFixture(new(mockPaymentProvider), records, new(mockDraftStore), nil, new(mockExportRecords), new(mockRenderer), new(mockExportFiles))

	records.On("MarkFailed", mock.Anything, "pi_1").Return(nil)
	records.On("GetByIntentID", mock.Anything, "pi_1").Return(&models.PaymentRecord{IntentID: "pi_1", SessionID: "s1"}, nil)

	body := []byte(`{"type":"payment_intent.payment_failed","data":{"id":"pi_1"}}`)
	assert.NoError(t, svc.HandleWebhook(context.Background(), body, signWebhook(body)))
	records.AssertExpectations(t)
}
