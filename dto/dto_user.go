package dto

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
)

type RegisterReq struct {
	Name     string `json:"name" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileReq struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
	Bio   *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	Image *string `json:"image,omitempty" validate:"omitempty,max=2048"`
}

type ChangePasswordReq struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

type UpdateRoleReq struct {
	Role string `json:"role" validate:"required,oneof=user moderator admin"`
}

type UserResp struct {
	ID           bson.ObjectID `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Role         string        `json:"role"`
	Bio          string        `json:"bio,omitempty"`
	Image        string        `json:"image,omitempty"`
	LastActiveAt *time.Time    `json:"lastActiveAt,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
}

func NewUserResp(u *models.User) UserResp {
	r := UserResp{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		Bio:       u.Bio,
		Image:     u.Image,
		CreatedAt: u.CreatedAt,
	}
	if !u.LastActiveAt.IsZero() {
		t := u.LastActiveAt
		r.LastActiveAt = &t
	}
	return r
}

type AuthResp struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      UserResp  `json:"user"`
}

// UserContentResp lists threads a user started and threads they replied to.
type UserContentResp struct {
	Threads   []PostResp `json:"threads"`
	Responses []PostResp `json:"responses"`
}

type LikedContentResp struct {
	Posts   []PostResp  `json:"posts"`
	Replies []ReplyResp `json:"replies"`
}

type SavedItemsResp struct {
	Posts           []PostResp  `json:"posts"`
	Replies         []ReplyResp `json:"replies"`
	TrendingTopics  []TopicResp `json:"trendingTopics"`
	TrendingReplies []ReplyResp `json:"trendingReplies"`
}
