package dto

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type TopicResp struct {
	ID            bson.ObjectID `json:"id"`
	Title         string        `json:"title"`
	Content       string        `json:"content"`
	Topic         string        `json:"topic"`
	Author        AuthorSummary `json:"author"`
	Views         int64         `json:"views"`
	Status        string        `json:"status"`
	TrendingScore float64       `json:"trendingScore"`
	TrendingRank  int           `json:"trendingRank"`
	Likes         int           `json:"likes"`
	Dislikes      int           `json:"dislikes"`
	UserLiked     bool          `json:"userLiked"`
	UserDisliked  bool          `json:"userDisliked"`
	ReplyCount    int           `json:"replyCount"`
	Replies       []ReplyResp   `json:"replies,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

type CreateTopicReq struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required,max=20000"`
	Topic   string `json:"topic" validate:"required,max=50"`
}

type UpdateTopicReq struct {
	Title   *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Content *string `json:"content,omitempty" validate:"omitempty,min=1,max=20000"`
	Topic   *string `json:"topic,omitempty" validate:"omitempty,min=1,max=50"`
	Status  *string `json:"status,omitempty" validate:"omitempty,oneof=rising trending declining archived"`
}
