package models

import (
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Community struct {
	ID          bson.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name        string          `json:"name" bson:"name"`
	Description string          `json:"description" bson:"description"`
	CreatorID   bson.ObjectID   `json:"creatorId" bson:"creator_id"`
	Members     []bson.ObjectID `json:"members" bson:"members"`
	IsPrivate   bool            `json:"isPrivate" bson:"is_private"`
	CreatedAt   time.Time       `json:"createdAt" bson:"created_at"`
}

func (c *Community) IsMember(id bson.ObjectID) bool {
	return slices.Contains(c.Members, id)
}
