package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/SanjayChandraSamudrala/forum-board/config"
	"github.com/SanjayChandraSamudrala/forum-board/dto"
	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
	"github.com/SanjayChandraSamudrala/forum-board/internal/ranking"
	"github.com/SanjayChandraSamudrala/forum-board/internal/repository"
	"github.com/SanjayChandraSamudrala/forum-board/pkg/logger"
)

// Auditor records privileged actions. Recording never fails the caller.
type Auditor interface {
	Record(ctx context.Context, adminID bson.ObjectID, action models.AdminAction, description string, details map[string]any)
}

type AdminService struct {
	Logs  repository.AdminLogRepository
	Users repository.UserRepository
	Now   func() time.Time
}

func NewAdminService(logs repository.AdminLogRepository, users repository.UserRepository) *AdminService {
	return &AdminService{Logs: logs, Users: users, Now: time.Now}
}

func (s *AdminService) Record(ctx context.Context, adminID bson.ObjectID, action models.AdminAction, description string, details map[string]any) {
	entry := &models.AdminLog{
		AdminID:     adminID,
		Action:      action,
		Description: description,
		Details:     details,
		CreatedAt:   s.Now().UTC(),
	}
	if err := s.Logs.Insert(ctx, entry); err != nil {
		logger.L().Warn("admin log write failed",
			zap.String("admin_id", adminID.Hex()),
			zap.String("action", string(action)),
			zap.Error(err))
	}
}

func (s *AdminService) Dashboard(ctx context.Context, admin Actor) (dto.DashboardResp, error) {
	var out dto.DashboardResp
	var err error

	if out.TotalUsers, err = s.Users.Count(ctx); err != nil {
		return out, err
	}
	if out.TotalAdmins, err = s.Users.CountByRole(ctx, models.RoleAdmin); err != nil {
		return out, err
	}
	if out.TotalModerators, err = s.Users.CountByRole(ctx, models.RoleModerator); err != nil {
		return out, err
	}
	out.RecentLogs, _, err = s.Logs.List(ctx, "", ranking.Page{Number: 1, Size: config.RecentAdminLogs})
	if err != nil {
		return out, err
	}

	s.Record(ctx, admin.ID, models.ActionSystemSettings, "Accessed admin dashboard statistics", nil)
	return out, nil
}

func (s *AdminService) ListLogs(ctx context.Context, action models.AdminAction, p ranking.Page) (dto.PageResp[models.AdminLog], error) {
	items, total, err := s.Logs.List(ctx, action, p)
	if err != nil {
		return dto.PageResp[models.AdminLog]{}, err
	}
	return newPage(items, p, total), nil
}
