package service

import (
	"context"
	"sync"
	"time"

	"github.com/propozzals/proposal-backend/internal/goroutine"
	"github.com/propozzals/proposal-backend/internal/logger"
	"github.com/propozzals/proposal-backend/internal/models"
	"github.com/propozzals/proposal-backend/internal/ws"
)

// DraftStore описывает хранилище черновиков документа.
type DraftStore interface {
	Load(ctx context.Context, sessionID string) (*models.DraftEnvelope, error)
	Save(ctx context.Context, sessionID string, data models.RawDocument) error
	Delete(ctx context.Context, sessionID string) error
	DismissBanner(ctx context.Context, sessionID string) error
	IsBannerDismissed(ctx context.Context, sessionID string) (bool, error)
}

// StatusNotifier рассылает события статуса подписчикам сессии.
type StatusNotifier interface {
	BroadcastToSession(sessionID, event string, data any) error
}

// sessionState хранит отложенную запись и текущий статус автосохранения.
type sessionState struct {
	debounceTimer *time.Timer
	resetTimer    *time.Timer
	status        models.SaveStatus
	pending       models.RawDocument
}

// DraftService управляет автосохранением черновиков с дебаунсом по сессии.
// Последняя запись всегда побеждает: новый вызов Schedule отменяет
// незавершённый таймер и подменяет отложенные данные.
type DraftService struct {
	store    DraftStore
	notifier StatusNotifier

	debounce   time.Duration
	savedReset time.Duration
	errorReset time.Duration

	mu       sync.Mutex
	sessions map[string]*sessionState
}

// NewDraftService создаёт сервис автосохранения.
func NewDraftService(store DraftStore, notifier StatusNotifier, debounce, savedReset, errorReset time.Duration) *DraftService {
	return &DraftService{
		store:      store,
		notifier:   notifier,
		debounce:   debounce,
		savedReset: savedReset,
		errorReset: errorReset,
		sessions:   make(map[string]*sessionState),
	}
}

// Load возвращает сохранённый черновик сессии.
func (s *DraftService) Load(ctx context.Context, sessionID string) (*models.DraftEnvelope, error) {
	return s.store.Load(ctx, sessionID)
}

// Schedule откладывает запись черновика и возвращает текущий статус.
func (s *DraftService) Schedule(sessionID string, data models.RawDocument) models.SaveStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		st = &sessionState{status: models.SaveStatusIdle}
		s.sessions[sessionID] = st
	}

	st.pending = data
	if st.debounceTimer != nil {
		st.debounceTimer.Stop()
	}
	if st.resetTimer != nil {
		st.resetTimer.Stop()
		st.resetTimer = nil
	}

	s.setStatusLocked(sessionID, st, models.SaveStatusSaving)
	st.debounceTimer = time.AfterFunc(s.debounce, func() {
		goroutine.SafeGo(func() { s.flush(sessionID) })
	})

	return st.status
}

// Flush немедленно записывает отложенные данные сессии. Используется
// перед экспортом, чтобы не потерять несохранённые правки.
func (s *DraftService) Flush(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	st, ok := s.sessions[sessionID]
	if !ok || st.status != models.SaveStatusSaving {
		s.mu.Unlock()
		return nil
	}
	if st.debounceTimer != nil {
		st.debounceTimer.Stop()
	}
	data := st.pending
	s.mu.Unlock()

	if err := s.store.Save(ctx, sessionID, data); err != nil {
		s.transition(sessionID, models.SaveStatusError, s.errorReset)
		return err
	}
	s.transition(sessionID, models.SaveStatusSaved, s.savedReset)
	return nil
}

// Delete удаляет черновик и сбрасывает состояние сессии.
func (s *DraftService) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	if st, ok := s.sessions[sessionID]; ok {
		if st.debounceTimer != nil {
			st.debounceTimer.Stop()
		}
		if st.resetTimer != nil {
			st.resetTimer.Stop()
		}
		delete(s.sessions, sessionID)
	}
	s.mu.Unlock()

	return s.store.Delete(ctx, sessionID)
}

// Status возвращает текущий статус автосохранения сессии.
func (s *DraftService) Status(sessionID string) models.SaveStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.sessions[sessionID]; ok {
		return st.status
	}
	return models.SaveStatusIdle
}

// DismissBanner помечает приветственный баннер сессии скрытым.
func (s *DraftService) DismissBanner(ctx context.Context, sessionID string) error {
	return s.store.DismissBanner(ctx, sessionID)
}

// IsBannerDismissed сообщает, скрыт ли приветственный баннер.
func (s *DraftService) IsBannerDismissed(ctx context.Context, sessionID string) (bool, error) {
	return s.store.IsBannerDismissed(ctx, sessionID)
}

// flush выполняет отложенную запись после срабатывания дебаунса.
func (s *DraftService) flush(sessionID string) {
	s.mu.Lock()
	st, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return
	}
	data := st.pending
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.store.Save(ctx, sessionID, data); err != nil {
		logger.Log.WithError(err).WithField("session_id", sessionID).Error("не удалось сохранить черновик")
		s.transition(sessionID, models.SaveStatusError, s.errorReset)
		return
	}
	s.transition(sessionID, models.SaveStatusSaved, s.savedReset)
}

// transition переводит сессию в статус и планирует возврат в idle.
func (s *DraftService) transition(sessionID string, status models.SaveStatus, reset time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return
	}

	s.setStatusLocked(sessionID, st, status)

	if st.resetTimer != nil {
		st.resetTimer.Stop()
	}
	st.resetTimer = time.AfterFunc(reset, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		cur, ok := s.sessions[sessionID]
		// Новый цикл сохранения мог начаться, пока таймер ждал
		if !ok || cur.status != status {
			return
		}
		s.setStatusLocked(sessionID, cur, models.SaveStatusIdle)
	})
}

func (s *DraftService) setStatusLocked(sessionID string, st *sessionState, status models.SaveStatus) {
	if st.status == status {
		return
	}
	st.status = status
	if s.notifier != nil {
		if err := s.notifier.BroadcastToSession(sessionID, ws.EventSaveStatus, map[string]string{"status": string(status)}); err != nil {
			logger.Log.WithError(err).Warn("не удалось отправить статус сохранения")
		}
	}
}
