package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
	"github.com/SanjayChandraSamudrala/forum-board/internal/services"
)

// UIDObjectID returns the authenticated user's id or fiber.ErrUnauthorized.
func UIDObjectID(c *fiber.Ctx) (bson.ObjectID, error) {
	uid, ok := c.Locals(LocalUserID).(string)
	if !ok || uid == "" {
		return bson.NilObjectID, fiber.ErrUnauthorized
	}
	oid, err := bson.ObjectIDFromHex(uid)
	if err != nil {
		return bson.NilObjectID, fiber.ErrUnauthorized
	}
	return oid, nil
}

// ViewerID is the caller's id on routes that allow anonymous access. It is
// the nil ObjectID for anonymous callers.
func ViewerID(c *fiber.Ctx) bson.ObjectID {
	oid, err := UIDObjectID(c)
	if err != nil {
		return bson.NilObjectID
	}
	return oid
}

func RoleFromLocals(c *fiber.Ctx) models.Role {
	role, _ := c.Locals(LocalRole).(models.Role)
	return role
}

func SessionFromLocals(c *fiber.Ctx) (*models.Session, bool) {
	sess, ok := c.Locals(LocalSession).(*models.Session)
	return sess, ok && sess != nil
}

// ActorFrom packages the authenticated caller for service calls.
func ActorFrom(c *fiber.Ctx) (services.Actor, error) {
	oid, err := UIDObjectID(c)
	if err != nil {
		return services.Actor{}, err
	}
	return services.Actor{ID: oid, Role: RoleFromLocals(c)}, nil
}
