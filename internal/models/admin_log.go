package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type AdminAction string

const (
	ActionUserManagement      AdminAction = "user_management"
	ActionContentModeration   AdminAction = "content_moderation"
	ActionSystemSettings      AdminAction = "system_settings"
	ActionCommunityManagement AdminAction = "community_management"
	ActionOther               AdminAction = "other"
)

func ParseAdminAction(s string) (AdminAction, error) {
	switch AdminAction(s) {
	case ActionUserManagement, ActionContentModeration, ActionSystemSettings,
		ActionCommunityManagement, ActionOther:
		return AdminAction(s), nil
	}
	return "", fmt.Errorf("unknown admin action %q", s)
}

type AdminLog struct {
	ID          bson.ObjectID  `json:"id" bson:"_id,omitempty"`
	AdminID     bson.ObjectID  `json:"adminId" bson:"admin_id"`
	Action      AdminAction    `json:"action" bson:"action"`
	Description string         `json:"description" bson:"description"`
	Details     map[string]any `json:"details,omitempty" bson:"details,omitempty"`
	CreatedAt   time.Time      `json:"createdAt" bson:"created_at"`
}
