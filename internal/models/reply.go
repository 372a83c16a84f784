package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Reply struct {
	ID        bson.ObjectID `json:"id" bson:"_id"`
	Content   string        `json:"content" bson:"content"`
	AuthorID  bson.ObjectID `json:"authorId" bson:"author_id"`
	Reactions `bson:",inline"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

func NewReply(authorID bson.ObjectID, content string, now time.Time) Reply {
	return Reply{
		ID:        bson.NewObjectID(),
		Content:   content,
		AuthorID:  authorID,
		Reactions: Reactions{Likes: ReactorSet{}, Dislikes: ReactorSet{}},
		CreatedAt: now,
	}
}

func findReply(replies []Reply, id bson.ObjectID) *Reply {
	for i := range replies {
		if replies[i].ID == id {
			return &replies[i]
		}
	}
	return nil
}

func lastActivity(created time.Time, replies []Reply) time.Time {
	latest := created
	for _, r := range replies {
		if r.CreatedAt.After(latest) {
			latest = r.CreatedAt
		}
	}
	return latest
}
