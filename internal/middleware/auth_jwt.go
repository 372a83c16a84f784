package middleware

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
	"github.com/SanjayChandraSamudrala/forum-board/internal/services"
)

// Locals keys set by JWTAuth.
const (
	LocalUserID  = "user_id"
	LocalRole    = "role"
	LocalSession = "session"
)

// Authenticator resolves a bearer token to a live session.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Session, error)
}

// JWTAuth verifies the bearer token when one is sent and stores the caller in
// Locals. Requests without an Authorization header pass through anonymously;
// RequireAuth decides whether that is acceptable.
func JWTAuth(auth Authenticator, timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			return c.Next()
		}
		token := strings.TrimSpace(header[7:])

		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()

		sess, err := auth.Authenticate(ctx, token)
		if err != nil {
			if errors.Is(err, services.ErrUnauthorized) {
				return fiber.NewError(fiber.StatusUnauthorized, err.Error())
			}
			return err
		}

		c.Locals(LocalUserID, sess.UserID)
		c.Locals(LocalRole, sess.Role)
		c.Locals(LocalSession, sess)
		return c.Next()
	}
}
