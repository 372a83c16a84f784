package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SanjayChandraSamudrala/forum-board/internal/controllers"
	"github.com/SanjayChandraSamudrala/forum-board/internal/middleware"
	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
)

func SetupUsers(api fiber.Router, s Services) {
	admin := middleware.RequireRole(models.RoleAdmin)
	users := api.Group("/users", middleware.RequireAuth())

	users.Get("/all", admin, controllers.ListUsers(s.Users))
	users.Get("/saved", controllers.ListSaved(s.Bookmarks))
	users.Delete("/:id", admin, controllers.DeleteUser(s.Users))
	users.Patch("/:id/role", admin, controllers.UpdateUserRole(s.Users))
	users.Get("/:userId/content", controllers.UserContent(s.Users))
	users.Get("/:userId/liked-content", controllers.UserLikedContent(s.Users))
}
