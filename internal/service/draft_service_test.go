package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/propozzals/proposal-backend/internal/models"
)

type mockDraftStore struct {
	mock.Mock
}

func (m *mockDraftStore) Load(ctx context.Context, sessionID string) (*models.DraftEnvelope, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DraftEnvelope), args.Error(1)
}

func (m *mockDraftStore) Save(ctx context.Context, sessionID string, data models.RawDocument) error {
	args := m.Called(ctx, sessionID, data)
	return args.Error(0)
}

func (m *mockDraftStore) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *mockDraftStore) DismissBanner(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *mockDraftStore) IsBannerDismissed(ctx context.Context, sessionID string) (bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Bool(0), args.Error(1)
}

// recordingNotifier копит события, чтобы тесты проверяли переходы статуса.
type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) BroadcastToSession(sessionID, event string, data any) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if m, ok := data.(map[string]string); ok {
		n.events = append(n.events, m["status"])
	}
	return nil
}

func (n *recordingNotifier) statuses() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}

func TestDraftService_ScheduleDebouncesWrites(t *testing.T) {
	store := new(mockDraftStore)
	notifier := &recordingNotifier{}
	svc := NewDraftService(store, notifier, 20*time.Millisecond, 30*time.Millisecond, 30*time.Millisecond)

	doc := models.RawDocument{}
	doc.Company.Name = "Final"
	store.On("Save", mock.Anything, "s1", doc).Return(nil).Once()

	stale := models.RawDocument{}
	stale.Company.Name = "Stale"

	// Два быстрых вызова: пишется только последний документ.
	assert.Equal(t, models.SaveStatusSaving, svc.Schedule("s1", stale))
	assert.Equal(t, models.SaveStatusSaving, svc.Schedule("s1", doc))

	assert.Eventually(t, func() bool {
		return svc.Status("s1") == models.SaveStatusSaved
	}, time.Second, 5*time.Millisecond)

	store.AssertExpectations(t)
}

func TestDraftService_StatusResetsToIdle(t *testing.T) {
	store := new(mockDraftStore)
	svc := NewDraftService(store, nil, 5*time.Millisecond, 50*time.Millisecond, 50*time.Millisecond)

	store.On("Save", mock.Anything, "s1", mock.Anything).Return(nil)
	svc.Schedule("s1", models.RawDocument{})

	assert.Eventually(t, func() bool {
		return svc.Status("s1") == models.SaveStatusSaved
	}, time.Second, 2*time.Millisecond)

	assert.Eventually(t, func() bool {
		return svc.Status("s1") == models.SaveStatusIdle
	}, time.Second, 2*time.Millisecond)
}

func TestDraftService_StorageFailureSetsErrorStatus(t *testing.T) {
	store := new(mockDraftStore)
	notifier := &recordingNotifier{}
	svc := NewDraftService(store, notifier, 5*time.Millisecond, 50*time.Millisecond, 50*time.Millisecond)

	store.On("Save", mock.Anything, "s1", mock.Anything).Return(errors.New("redis down"))
	svc.Schedule("s1", models.RawDocument{})

	assert.Eventually(t, func() bool {
		return svc.Status("s1") == models.SaveStatusError
	}, time.Second, 2*time.Millisecond)

	assert.Contains(t, notifier.statuses(), "error")
}

func TestDraftService_FlushWritesPendingImmediately(t *testing.T) {
	store := new(mockDraftStore)
	svc := NewDraftService(store, nil, time.Hour, 20*time.Millisecond, 20*time.Millisecond)

	doc := models.RawDocument{}
	doc.Client.Name = "Bob"
	store.On("Save", mock.Anything, "s1", doc).Return(nil).Once()

	svc.Schedule("s1", doc)
	assert.NoError(t, svc.Flush(context.Background(), "s1"))
	assert.Equal(t, models.SaveStatusSaved, svc.Status("s1"))

	// Повторный Flush без незаписанных данных — no-op.
	assert.NoError(t, svc.Flush(context.Background(), "s1"))
	store.AssertExpectations(t)
}

func TestDraftService_DeleteClearsSessionState(t *testing.T) {
	store := new(mockDraftStore)
	svc := NewDraftService(store, nil, time.Hour, time.Hour, time.Hour)

	store.On("Delete", mock.Anything, "s1").Return(nil)
	svc.Schedule("s1", models.RawDocument{})

	assert.NoError(t, svc.Delete(context.Background(), "s1"))
	assert.Equal(t, models.SaveStatusIdle, svc.Status("s1"))
	store.AssertExpectations(t)
}
