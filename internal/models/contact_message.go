package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type ContactMessage struct {
	ID        bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string        `json:"name" bson:"name"`
	Email     string        `json:"email" bson:"email"`
	Subject   string        `json:"subject,omitempty" bson:"subject,omitempty"`
	Message   string        `json:"message" bson:"message"`
	IsRead    bool          `json:"isRead" bson:"is_read"`
	Replied   bool          `json:"replied" bson:"replied"`
	CreatedAt time.Time     `json:"createdAt" bson:"created_at"`
}

// ContactFilter narrows the admin inbox. Nil fields are not filtered.
type ContactFilter struct {
	IsRead  *bool
	Replied *bool
}
