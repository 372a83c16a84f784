package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SanjayChandraSamudrala/forum-board/config"
	"github.com/SanjayChandraSamudrala/forum-board/internal/middleware"
	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
	"github.com/SanjayChandraSamudrala/forum-board/internal/services"
)

// Dashboard godoc
// @Summary      Admin dashboard counters
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.DashboardResp
// @Router       /api/admin/dashboard [get]
func Dashboard(svc *services.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		admin, err := middleware.ActorFrom(c)
		if err != nil {
			return writeError(c, err)
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		out, err := svc.Dashboard(ctx, admin)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

// AdminLogs godoc
// @Summary      Audit trail of admin actions
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        action  query  string  false  "user_management|content_moderation|system_settings|community_management|other"
// @Param        page    query  int     false  "page number"  default(1)
// @Param        limit   query  int     false  "page size"  default(20)
// @Success      200  {object}  dto.PageResp[models.AdminLog]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/admin/logs [get]
func AdminLogs(svc *services.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var action models.AdminAction
		if raw := c.Query("action"); raw != "" {
			var err error
			if action, err = models.ParseAdminAction(raw); err != nil {
				return writeError(c, badRequest(err.Error()))
			}
		}
		page, err := pageQuery(c, config.DefaultLogPageSize)
		if err != nil {
			return writeError(c, err)
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		out, err := svc.ListLogs(ctx, action, page)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}
