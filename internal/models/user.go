package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleModerator, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// CanModerate reports whether the role may remove other users' content.
func (r Role) CanModerate() bool {
	return r == RoleAdmin || r == RoleModerator
}

type BookmarkKind string

const (
	BookmarkPost       BookmarkKind = "post"
	BookmarkReply      BookmarkKind = "reply"
	BookmarkTopic      BookmarkKind = "topic"
	BookmarkTopicReply BookmarkKind = "topic_reply"
)

// Bookmark is a saved item. ParentID is set for replies and holds the post
// or topic the reply lives in.
type Bookmark struct {
	Kind     BookmarkKind  `json:"kind" bson:"kind"`
	ParentID bson.ObjectID `json:"parentId,omitempty" bson:"parent_id,omitempty"`
	ItemID   bson.ObjectID `json:"itemId" bson:"item_id"`
	SavedAt  time.Time     `json:"savedAt" bson:"saved_at"`
}

type User struct {
	ID           bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string        `json:"name" bson:"name"`
	Email        string        `json:"email" bson:"email"`
	PasswordHash string        `json:"-" bson:"password_hash"`
	Role         Role          `json:"role" bson:"role"`
	Bio          string        `json:"bio,omitempty" bson:"bio,omitempty"`
	Image        string        `json:"image,omitempty" bson:"image,omitempty"`
	Bookmarks    []Bookmark    `json:"-" bson:"bookmarks"`
	LastActiveAt time.Time     `json:"lastActiveAt,omitempty" bson:"last_active_at,omitempty"`
	CreatedAt    time.Time     `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time     `json:"updatedAt" bson:"updated_at"`
}

func (u *User) HasBookmark(kind BookmarkKind, itemID bson.ObjectID) bool {
	for _, b := range u.Bookmarks {
		if b.Kind == kind && b.ItemID == itemID {
			return true
		}
	}
	return false
}
