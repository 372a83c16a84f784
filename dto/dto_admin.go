package dto

import "github.com/SanjayChandraSamudrala/forum-board/internal/models"

type DashboardResp struct {
	TotalUsers      int64             `json:"totalUsers"`
	TotalAdmins     int64             `json:"totalAdmins"`
	TotalModerators int64             `json:"totalModerators"`
	RecentLogs      []models.AdminLog `json:"recentAdminLogs"`
}

type CreateCommunityReq struct {
	Name        string `json:"name" validate:"required,min=3,max=50"`
	Description string `json:"description" validate:"max=500"`
	IsPrivate   bool   `json:"isPrivate"`
}

type MemberReq struct {
	UserID string `json:"userId" validate:"required"`
}

type ContactReq struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

type SearchResp struct {
	Posts       []PostResp         `json:"posts"`
	Users       []UserResp         `json:"users"`
	Communities []models.Community `json:"communities"`
}
