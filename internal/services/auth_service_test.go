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

func newAuth(f *fixture) *AuthService {
	s := NewAuthService(f.users, f.sessions, "test-secret", 72*time.Hour, 30*time.Minute)
	s.Now = f.clock.Now
	return s
}

func TestRegisterLoginAuthenticate(t *testing.T) {
	f := newFixture(t)
	svc := newAuth(f)
	ctx := context.Background()

	reg, err := svc.Register(ctx, dto.RegisterReq{Name: "Ann", Email: "Ann@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "ann@example.com", reg.User.Email)
	assert.Equal(t, "user", reg.User.Role)

	_, err = svc.Register(ctx, dto.RegisterReq{Name: "Ann2", Email: "ann@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.Login(ctx, dto.LoginReq{Email: "ann@example.com", Password: "wrong!!"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	login, err := svc.Login(ctx, dto.LoginReq{Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)

	sess, err := svc.Authenticate(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID.Hex(), sess.UserID)
	assert.Equal(t, models.RoleUser, sess.Role)
}

func TestAuthenticateIdleExpiry(t *testing.T) {
	f := newFixture(t)
	svc := newAuth(f)
	ctx := context.Background()

	reg, err := svc.Register(ctx, dto.RegisterReq{Name: "Ann", Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)

	// activity keeps the session alive past the idle timeout
	f.clock.Advance(20 * time.Minute)
	_, err = svc.Authenticate(ctx, reg.Token)
	require.NoError(t, err)
	f.clock.Advance(20 * time.Minute)
	_, err = svc.Authenticate(ctx, reg.Token)
	require.NoError(t, err)

	f.clock.Advance(31 * time.Minute)
	_, err = svc.Authenticate(ctx, reg.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newFixture(t)
	svc := newAuth(f)
	ctx := context.Background()

	reg, err := svc.Register(ctx, dto.RegisterReq{Name: "Ann", Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)
	sess, err := svc.Authenticate(ctx, reg.Token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, sess.ID))
	_, err = svc.Authenticate(ctx, reg.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthenticateRejectsForeignToken(t *testing.T) {
	f := newFixture(t)
	svc := newAuth(f)
	other := newAuth(f)
	other.Secret = []byte("another-secret")

	reg, err := other.Register(context.Background(), dto.RegisterReq{Name: "Ann", Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), reg.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = svc.Authenticate(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestProfileAndPassword(t *testing.T) {
	f := newFixture(t)
	svc := newAuth(f)
	ctx := context.Background()

	reg, err := svc.Register(ctx, dto.RegisterReq{Name: "Ann", Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)
	uid := reg.User.ID

	bio := "hello"
	me, err := svc.UpdateProfile(ctx, uid, dto.UpdateProfileReq{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "hello", me.Bio)
	assert.Equal(t, "Ann", me.Name)

	blank := " "
	_, err = svc.UpdateProfile(ctx, uid, dto.UpdateProfileReq{Name: &blank})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.ChangePassword(ctx, uid, dto.ChangePasswordReq{CurrentPassword: "nope", NewPassword: "secret2"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	require.NoError(t, svc.ChangePassword(ctx, uid, dto.ChangePasswordReq{CurrentPassword: "secret1", NewPassword: "secret2"}))

	_, err = svc.Login(ctx, dto.LoginReq{Email: "ann@example.com", Password: "secret2"})
	assert.NoError(t, err)
}
