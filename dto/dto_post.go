package dto

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type AuthorSummary struct {
	ID    bson.ObjectID `json:"id"`
	Name  string        `json:"name"`
	Image string        `json:"image,omitempty"`
	Role  string        `json:"role,omitempty"`
}

type ReplyResp struct {
	ID           bson.ObjectID `json:"id"`
	ParentID     bson.ObjectID `json:"parentId,omitempty"`
	Content      string        `json:"content"`
	Author       AuthorSummary `json:"author"`
	Likes        int           `json:"likes"`
	Dislikes     int           `json:"dislikes"`
	UserLiked    bool          `json:"userLiked"`
	UserDisliked bool          `json:"userDisliked"`
	CreatedAt    time.Time     `json:"createdAt"`
}

type PostResp struct {
	ID           bson.ObjectID `json:"id"`
	Title        string        `json:"title"`
	Content      string        `json:"content"`
	Category     string        `json:"category"`
	Author       AuthorSummary `json:"author"`
	Views        int64         `json:"views"`
	Status       string        `json:"status"`
	Likes        int           `json:"likes"`
	Dislikes     int           `json:"dislikes"`
	UserLiked    bool          `json:"userLiked"`
	UserDisliked bool          `json:"userDisliked"`
	ReplyCount   int           `json:"replyCount"`
	Replies      []ReplyResp   `json:"replies,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

type CreatePostReq struct {
	Title    string `json:"title" validate:"required,max=200"`
	Content  string `json:"content" validate:"required,max=20000"`
	Category string `json:"category" validate:"required,max=50"`
}

// UpdatePostReq carries only the fields being changed.
type UpdatePostReq struct {
	Title    *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Content  *string `json:"content,omitempty" validate:"omitempty,min=1,max=20000"`
	Category *string `json:"category,omitempty" validate:"omitempty,min=1,max=50"`
	Status   *string `json:"status,omitempty" validate:"omitempty,oneof=active closed archived"`
}

type CreateReplyReq struct {
	Content string `json:"content" validate:"required,max=10000"`
}
