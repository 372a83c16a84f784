package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/SanjayChandraSamudrala/forum-board/internal/ranking"
)

type TopicStatus string

const (
	TopicRising    TopicStatus = "rising"
	TopicTrending  TopicStatus = "trending"
	TopicDeclining TopicStatus = "declining"
	TopicArchived  TopicStatus = "archived"
)

var DefaultTopicStatuses = []TopicStatus{TopicRising, TopicTrending}

func ParseTopicStatus(s string) (TopicStatus, error) {
	switch TopicStatus(s) {
	case TopicRising, TopicTrending, TopicDeclining, TopicArchived:
		return TopicStatus(s), nil
	}
	return "", fmt.Errorf("unknown topic status %q", s)
}

type TrendingTopic struct {
	ID            bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Title         string        `json:"title" bson:"title"`
	Content       string        `json:"content" bson:"content"`
	Topic         string        `json:"topic" bson:"topic"`
	AuthorID      bson.ObjectID `json:"authorId" bson:"author_id"`
	Views         int64         `json:"views" bson:"views"`
	Status        TopicStatus   `json:"status" bson:"status"`
	TrendingScore float64       `json:"trendingScore" bson:"trending_score"`
	TrendingRank  int           `json:"trendingRank" bson:"trending_rank"`
	Reactions     `bson:",inline"`
	Replies       []Reply   `json:"replies" bson:"replies"`
	CreatedAt     time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updated_at"`
}

func (t *TrendingTopic) FindReply(id bson.ObjectID) *Reply { return findReply(t.Replies, id) }

func (t *TrendingTopic) Engagement() ranking.Engagement {
	return ranking.Engagement{
		Views:     t.Views,
		Likes:     t.Likes.Len(),
		Dislikes:  t.Dislikes.Len(),
		Replies:   len(t.Replies),
		CreatedAt: t.CreatedAt,
	}
}

// RefreshScore recomputes the cached trending score as of now.
func (t *TrendingTopic) RefreshScore(now time.Time) float64 {
	t.TrendingScore = ranking.TrendingScore(t.Engagement(), now)
	return t.TrendingScore
}

func (t TrendingTopic) Created() time.Time { return t.CreatedAt }
func (t TrendingTopic) ViewCount() int64   { return t.Views }
func (t TrendingTopic) LikeCount() int     { return t.Likes.Len() }
func (t TrendingTopic) ReplyCount() int    { return len(t.Replies) }
func (t TrendingTopic) Score() float64     { return t.TrendingScore }
func (t TrendingTopic) TieKey() string     { return t.ID.Hex() }
