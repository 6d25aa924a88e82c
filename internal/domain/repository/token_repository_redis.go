package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/KostiukVM/BlogAPI/internal/common"
	"github.com/KostiukVM/BlogAPI/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

const redisTokenKeyPrefix = "access_token:"

type redisTokenRepository struct {
	rdb *redis.Client
}

// NewRedisTokenRepository stores each token record under access_token:<id>
// with a TTL matching the token's expiry.
func NewRedisTokenRepository(rdb *redis.Client) TokenRepository {
	return &redisTokenRepository{rdb: rdb}
}

func redisTokenKey(id string) string {
	return redisTokenKeyPrefix + id
}

func (r *redisTokenRepository) Create(ctx context.Context, t *model.AccessToken) error {
	ttl := time.Until(t.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("redisTokenRepository.Create: token %s already expired", t.ID)
	}
	payload, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("redisTokenRepository.Create: %w", err)
	}
	if err := r.rdb.Set(ctx, redisTokenKey(t.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redisTokenRepository.Create: %w", err)
	}
	return nil
}

func (r *redisTokenRepository) Find(ctx context.Context, id string) (*model.AccessToken, error) {
	payload, err := r.rdb.Get(ctx, redisTokenKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.NotFound("Token")
		}
		return nil, fmt.Errorf("redisTokenRepository.Find: %w", err)
	}
	t := &model.AccessToken{}
	if err := json.Unmarshal(payload, t); err != nil {
		return nil, fmt.Errorf("redisTokenRepository.Find: %w", err)
	}
	return t, nil
}

// Touch rewrites the record only while its key still exists (SET XX KEEPTTL),
// so a concurrent Delete is never undone.
func (r *redisTokenRepository) Touch(ctx context.Context, id string, usedAt time.Time) error {
	t, err := r.Find(ctx, id)
	if err != nil {
		return err
	}
	t.LastUsedAt = &usedAt
	payload, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("redisTokenRepository.Touch: %w", err)
	}
	ok, err := r.rdb.SetXX(ctx, redisTokenKey(id), payload, redis.KeepTTL).Result()
	if err != nil {
		return fmt.Errorf("redisTokenRepository.Touch: %w", err)
	}
	if !ok {
		return common.NotFound("Token")
	}
	return nil
}

func (r *redisTokenRepository) Delete(ctx context.Context, id string) error {
	n, err := r.rdb.Del(ctx, redisTokenKey(id)).Result()
	if err != nil {
		return fmt.Errorf("redisTokenRepository.Delete: %w", err)
	}
	if n == 0 {
		return common.NotFound("Token")
	}
	return nil
}
