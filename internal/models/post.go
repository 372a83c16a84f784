package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type PostStatus string

const (
	PostActive   PostStatus = "active"
	PostClosed   PostStatus = "closed"
	PostArchived PostStatus = "archived"
)

func ParsePostStatus(s string) (PostStatus, error) {
	switch PostStatus(s) {
	case PostActive, PostClosed, PostArchived:
		return PostStatus(s), nil
	}
	return "", fmt.Errorf("unknown post status %q", s)
}

type Post struct {
	ID        bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Title     string        `json:"title" bson:"title"`
	Content   string        `json:"content" bson:"content"`
	Category  string        `json:"category" bson:"category"`
	AuthorID  bson.ObjectID `json:"authorId" bson:"author_id"`
	Views     int64         `json:"views" bson:"views"`
	Status    PostStatus    `json:"status" bson:"status"`
	Reactions `bson:",inline"`
	Replies   []Reply   `json:"replies" bson:"replies"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

func (p *Post) FindReply(id bson.ObjectID) *Reply { return findReply(p.Replies, id) }

func (p *Post) LastActivity() time.Time { return lastActivity(p.CreatedAt, p.Replies) }

// ranking.Rankable
func (p Post) Created() time.Time { return p.CreatedAt }
func (p Post) ViewCount() int64   { return p.Views }
func (p Post) LikeCount() int     { return p.Likes.Len() }
func (p Post) ReplyCount() int    { return len(p.Replies) }
func (p Post) Score() float64     { return 0 }
func (p Post) TieKey() string     { return p.ID.Hex() }
