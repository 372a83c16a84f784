package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SanjayChandraSamudrala/forum-board/dto"
	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
)

func TestDeleteUserCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	auth := newAuth(f)
	svc := NewUserService(f.users, f.posts, f.sessions, f.admin)
	admin := f.user(t, "root", models.RoleAdmin)

	reg, err := auth.Register(ctx, dto.RegisterReq{Name: "Ann", Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)
	ann := Actor{ID: reg.User.ID, Role: models.RoleUser}
	f.post(t, ann, "go", t0)
	f.post(t, ann, "rust", t0)
	keep := f.post(t, admin, "go", t0)

	require.NoError(t, svc.Delete(ctx, admin, ann.ID))

	n, err := f.posts.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	_, err = f.posts.FindByID(ctx, keep.ID)
	assert.NoError(t, err)

	_, err = auth.Authenticate(ctx, reg.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)

	require.Len(t, f.logs.Logs, 1)
	assert.Equal(t, models.ActionUserManagement, f.logs.Logs[0].Action)
	assert.EqualValues(t, 2, f.logs.Logs[0].Details["postsRemoved"])

	assert.ErrorIs(t, svc.Delete(ctx, admin, ann.ID), ErrNotFound)
}

func TestChangeRoleRevokesSessions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	auth := newAuth(f)
	svc := NewUserService(f.users, f.posts, f.sessions, f.admin)
	admin := f.user(t, "root", models.RoleAdmin)

	reg, err := auth.Register(ctx, dto.RegisterReq{Name: "Ann", Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)

	got, err := svc.ChangeRole(ctx, admin, reg.User.ID, models.RoleModerator)
	require.NoError(t, err)
	assert.Equal(t, "moderator", got.Role)

	_, err = auth.Authenticate(ctx, reg.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)

	login, err := auth.Login(ctx, dto.LoginReq{Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)
	sess, err := auth.Authenticate(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleModerator, sess.Role)

	require.Len(t, f.logs.Logs, 1)
	assert.Equal(t, "moderator", f.logs.Logs[0].Details["newRole"])
}

func TestUserContent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	posts := f.postService()
	svc := NewUserService(f.users, f.posts, f.sessions, f.admin)
	ann := f.user(t, "ann", models.RoleUser)
	bob := f.user(t, "bob", models.RoleUser)

	own := f.post(t, ann, "go", t0.Add(-time.Hour))
	other := f.post(t, bob, "go", t0)
	reply, err := posts.AddReply(ctx, other.ID, ann, "me too")
	require.NoError(t, err)

	content, err := svc.Content(ctx, ann.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, content.Threads, 1)
	assert.Equal(t, own.ID, content.Threads[0].ID)
	require.Len(t, content.Responses, 1)
	assert.Equal(t, other.ID, content.Responses[0].ID)

	_, err = posts.React(ctx, own.ID, bob.ID, models.ReactionLike)
	require.NoError(t, err)
	_, err = posts.ReactReply(ctx, other.ID, reply.ID, bob.ID, models.ReactionLike)
	require.NoError(t, err)
	_, err = posts.React(ctx, other.ID, bob.ID, models.ReactionDislike)
	require.NoError(t, err)

	liked, err := svc.LikedContent(ctx, bob.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, liked.Posts, 1)
	assert.Equal(t, own.ID, liked.Posts[0].ID)
	assert.True(t, liked.Posts[0].UserLiked)
	require.Len(t, liked.Replies, 1)
	assert.Equal(t, reply.ID, liked.Replies[0].ID)
}
