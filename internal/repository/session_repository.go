package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
)

type SessionRepository interface {
	Create(ctx context.Context, s *models.Session) error
	Get(ctx context.Context, id string) (*models.Session, error)
	// Touch stores the session again with its new expiry.
	Touch(ctx context.Context, s *models.Session) error
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) error
}

type redisSessionRepo struct {
	rdb *redis.Client
	now func() time.Time
}

func NewRedisSessionRepository(rdb *redis.Client) SessionRepository {
	return &redisSessionRepo{rdb: rdb, now: time.Now}
}

func sessionKey(id string) string      { return "session:" + id }
func userSessionsKey(uid string) string { return "user_sessions:" + uid }

func (r *redisSessionRepo) Create(ctx context.Context, s *models.Session) error {
	if err := r.put(ctx, s); err != nil {
		return err
	}
	pipe := r.rdb.TxPipeline()
	pipe.SAdd(ctx, userSessionsKey(s.UserID), s.ID)
	if !s.TokenExpiresAt.IsZero() {
		pipe.ExpireAt(ctx, userSessionsKey(s.UserID), s.TokenExpiresAt)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (r *redisSessionRepo) Get(ctx context.Context, id string) (*models.Session, error) {
	raw, err := r.rdb.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var s models.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *redisSessionRepo) Touch(ctx context.Context, s *models.Session) error {
	return r.put(ctx, s)
}

func (r *redisSessionRepo) Delete(ctx context.Context, id string) error {
	s, err := r.Get(ctx, id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	pipe := r.rdb.TxPipeline()
	pipe.Del(ctx, sessionKey(id))
	if s != nil {
		pipe.SRem(ctx, userSessionsKey(s.UserID), id)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisSessionRepo) DeleteByUser(ctx context.Context, userID string) error {
	ids, err := r.rdb.SMembers(ctx, userSessionsKey(userID)).Result()
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, sessionKey(id))
	}
	keys = append(keys, userSessionsKey(userID))
	return r.rdb.Del(ctx, keys...).Err()
}

func (r *redisSessionRepo) put(ctx context.Context, s *models.Session) error {
	ttl := s.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return r.rdb.Del(ctx, sessionKey(s.ID)).Err()
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, sessionKey(s.ID), raw, ttl).Err()
}
