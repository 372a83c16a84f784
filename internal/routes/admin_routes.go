package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SanjayChandraSamudrala/forum-board/internal/controllers"
	"github.com/SanjayChandraSamudrala/forum-board/internal/middleware"
	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
)

func SetupAdmin(api fiber.Router, s Services) {
	admin := api.Group("/admin", middleware.RequireRole(models.RoleAdmin))

	admin.Get("/dashboard", controllers.Dashboard(s.Admin))
	admin.Get("/logs", controllers.AdminLogs(s.Admin))
}
