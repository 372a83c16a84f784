package middleware

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
	"github.com/SanjayChandraSamudrala/forum-board/internal/services"
)

type stubAuth map[string]*models.Session

func (s stubAuth) Authenticate(_ context.Context, token string) (*models.Session, error) {
	if sess, ok := s[token]; ok {
		return sess, nil
	}
	return nil, &services.Error{Kind: services.ErrUnauthorized, Msg: "invalid token"}
}

func newApp(t *testing.T, guards ...fiber.Handler) (*fiber.App, stubAuth) {
	t.Helper()
	auth := stubAuth{
		"user-token":  {ID: "s1", UserID: bson.NewObjectID().Hex(), Role: models.RoleUser},
		"admin-token": {ID: "s2", UserID: bson.NewObjectID().Hex(), Role: models.RoleAdmin},
	}
	app := fiber.New()
	app.Use(RequestLogger(zap.NewNop()))
	app.Use(JWTAuth(auth, time.Second))
	handlers := append(guards, func(c *fiber.Ctx) error {
		return c.SendString(ViewerID(c).Hex())
	})
	app.Get("/", handlers...)
	return app, auth
}

func get(t *testing.T, app *fiber.App, token string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestJWTAuthOptional(t *testing.T) {
	app, _ := newApp(t)
	assert.Equal(t, fiber.StatusOK, get(t, app, ""))
	assert.Equal(t, fiber.StatusOK, get(t, app, "user-token"))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "forged"))
}

func TestRequireAuth(t *testing.T) {
	app, _ := newApp(t, RequireAuth())
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, ""))
	assert.Equal(t, fiber.StatusOK, get(t, app, "user-token"))
}

func TestRequireRole(t *testing.T) {
	app, _ := newApp(t, RequireRole(models.RoleAdmin))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, ""))
	assert.Equal(t, fiber.StatusForbidden, get(t, app, "user-token"))
	assert.Equal(t, fiber.StatusOK, get(t, app, "admin-token"))
}

func TestActorFromLocals(t *testing.T) {
	auth := stubAuth{"mod": {ID: "s", UserID: bson.NewObjectID().Hex(), Role: models.RoleModerator}}
	app := fiber.New()
	app.Use(JWTAuth(auth, time.Second))
	var got services.Actor
	app.Get("/", func(c *fiber.Ctx) error {
		var err error
		got, err = ActorFrom(c)
		return err
	})

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderAuthorization, "bearer mod")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, auth["mod"].UserID, got.ID.Hex())
	assert.Equal(t, models.RoleModerator, got.Role)
}

func TestIPRateLimiter(t *testing.T) {
	l := NewIPRateLimiter(1, 2)
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("1.1.1.1"))
	assert.True(t, l.Allow("1.1.1.1"))
	assert.False(t, l.Allow("1.1.1.1"))
	assert.True(t, l.Allow("2.2.2.2"))

	now = now.Add(time.Second)
	assert.True(t, l.Allow("1.1.1.1"))

	now = now.Add(10 * time.Minute)
	l.Allow("3.3.3.3")
	assert.Len(t, l.visitors, 1)
}

func TestIPRateLimiterSweepsOncePerTTL(t *testing.T) {
	l := NewIPRateLimiter(1, 1)
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	now := start
	l.now = func() time.Time { return now }

	l.Allow("1.1.1.1")
	assert.Equal(t, start, l.lastSweep)

	now = start.Add(2 * time.Minute)
	l.Allow("2.2.2.2")
	assert.Equal(t, start, l.lastSweep)
	assert.Len(t, l.visitors, 2)

	now = start.Add(4 * time.Minute)
	l.Allow("3.3.3.3")
	assert.Equal(t, now, l.lastSweep)
	assert.NotContains(t, l.visitors, "1.1.1.1")
	assert.Contains(t, l.visitors, "2.2.2.2")
	assert.Contains(t, l.visitors, "3.3.3.3")
}

func TestRateLimitHandler(t *testing.T) {
	l := NewIPRateLimiter(0.001, 1)
	app := fiber.New()
	app.Post("/", l.Handler(), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	resp, err = app.Test(httptest.NewRequest(fiber.MethodPost, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}
