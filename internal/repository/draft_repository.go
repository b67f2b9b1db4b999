package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/propozzals/proposal-backend/internal/models"
	"github.com/propozzals/proposal-backend/internal/pkg/apperror"
)

// Ключевое пространство хранилища черновиков. Один документ на сессию,
// а не на шаблон: переключение шаблона не создаёт второй черновик.
const (
	draftKeyPrefix  = "ppz:draft:"
	bannerKeyPrefix = "ppz:banner-dismissed:"
)

// DraftRepository — key-value мост к хранилищу черновиков.
type DraftRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewDraftRepository(rdb *redis.Client, ttl time.Duration) *DraftRepository {
	return &DraftRepository{rdb: rdb, ttl: ttl}
}

// Load читает черновик сессии. Принимает и версионированный конверт, и
// «голый» legacy-формат без тега версии (тогда Version остаётся 0).
func (r *DraftRepository) Load(ctx context.Context, sessionID string) (*models.DraftEnvelope, error) {
	raw, err := r.rdb.Get(ctx, draftKeyPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperror.ErrDraftNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodePersistence, "не удалось прочитать черновик")
	}

	var envelope models.DraftEnvelope
	if err := json.Unmarshal([]byte(raw), &envelope); err == nil && envelope.Version >= 1 {
		return &envelope, nil
	}

	// Legacy: сырой документ без конверта.
	var doc models.RawDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodePersistence, "повреждённый черновик")
	}
	return &models.DraftEnvelope{Version: 0, Data: doc}, nil
}

// Save пишет черновик в текущем версионированном формате.
func (r *DraftRepository) Save(ctx context.Context, sessionID string, doc models.RawDocument) error {
	payload, err := json.Marshal(models.DraftEnvelope{
		Version: models.DraftVersion,
		Data:    doc,
	})
	if err != nil {
		return fmt.Errorf("draft repository: сериализация черновика: %w", err)
	}

	if err := r.rdb.Set(ctx, draftKeyPrefix+sessionID, payload, r.ttl).Err(); err != nil {
		return apperror.Wrap(err, apperror.ErrCodePersistence, "не удалось сохранить черновик")
	}
	return nil
}

// Delete удаляет черновик сессии.
func (r *DraftRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.rdb.Del(ctx, draftKeyPrefix+sessionID).Err(); err != nil {
		return apperror.Wrap(err, apperror.ErrCodePersistence, "не удалось удалить черновик")
	}
	return nil
}

// DismissBanner запоминает, что пользователь закрыл баннер о хранилище.
func (r *DraftRepository) DismissBanner(ctx context.Context, sessionID string) error {
	if err := r.rdb.Set(ctx, bannerKeyPrefix+sessionID, "true", r.ttl).Err(); err != nil {
		return apperror.Wrap(err, apperror.ErrCodePersistence, "не удалось сохранить флаг баннера")
	}
	return nil
}

// IsBannerDismissed проверяет флаг баннера.
func (r *DraftRepository) IsBannerDismissed(ctx context.Context, sessionID string) (bool, error) {
	_, err := r.rdb.Get(ctx, bannerKeyPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, apperror.Wrap(err, apperror.ErrCodePersistence, "не удалось прочитать флаг баннера")
	}
	return true, nil
}
