package services

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
)

// Actor is the authenticated caller of a mutating operation.
type Actor struct {
	ID   bson.ObjectID
	Role models.Role
}

func (a Actor) IsAdmin() bool { return a.Role == models.RoleAdmin }

// canRemove reports whether a may delete content owned by owner.
func (a Actor) canRemove(owner bson.ObjectID) bool {
	return a.ID == owner || a.Role.CanModerate()
}
