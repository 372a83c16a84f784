package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
)

func newSessionRepo(t *testing.T) (*miniredis.Miniredis, SessionRepository) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, NewRedisSessionRepository(rdb)
}

func session(id, uid string) *models.Session {
	now := time.Now()
	return &models.Session{
		ID:             id,
		UserID:         uid,
		Role:           models.RoleUser,
		CreatedAt:      now,
		LastActivity:   now,
		ExpiresAt:      now.Add(30 * time.Minute),
		TokenExpiresAt: now.Add(72 * time.Hour),
	}
}

func TestSessionCreateGet(t *testing.T) {
	mr, repo := newSessionRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, session("s1", "u1")))

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, models.RoleUser, got.Role)

	ttl := mr.TTL(sessionKey("s1"))
	assert.Greater(t, ttl, 29*time.Minute)
	assert.LessOrEqual(t, ttl, 30*time.Minute)

	members, err := mr.Members(userSessionsKey("u1"))
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, members)
}

func TestSessionExpiresWhenIdle(t *testing.T) {
	mr, repo := newSessionRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, session("s1", "u1")))
	mr.FastForward(31 * time.Minute)

	_, err := repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionTouchExtendsTTL(t *testing.T) {
	mr, repo := newSessionRepo(t)
	ctx := context.Background()

	s := session("s1", "u1")
	require.NoError(t, repo.Create(ctx, s))
	mr.FastForward(20 * time.Minute)

	s.ExpiresAt = time.Now().Add(30 * time.Minute)
	require.NoError(t, repo.Touch(ctx, s))
	mr.FastForward(20 * time.Minute)

	_, err := repo.Get(ctx, "s1")
	assert.NoError(t, err)
}

func TestSessionDelete(t *testing.T) {
	mr, repo := newSessionRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, session("s1", "u1")))
	require.NoError(t, repo.Delete(ctx, "s1"))

	_, err := repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, mr.Exists(sessionKey("s1")))

	// deleting an unknown session is not an error
	assert.NoError(t, repo.Delete(ctx, "missing"))
}

func TestSessionDeleteByUser(t *testing.T) {
	_, repo := newSessionRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, session("s1", "u1")))
	require.NoError(t, repo.Create(ctx, session("s2", "u1")))
	require.NoError(t, repo.Create(ctx, session("s3", "u2")))

	require.NoError(t, repo.DeleteByUser(ctx, "u1"))

	_, err := repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.Get(ctx, "s2")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.Get(ctx, "s3")
	assert.NoError(t, err)
}
