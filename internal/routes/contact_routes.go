package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SanjayChandraSamudrala/forum-board/internal/controllers"
	"github.com/SanjayChandraSamudrala/forum-board/internal/middleware"
	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
)

func SetupContact(api fiber.Router, s Services, limiter *middleware.IPRateLimiter) {
	admin := middleware.RequireRole(models.RoleAdmin)
	contact := api.Group("/contact")

	contact.Post("/", limiter.Handler(), controllers.SubmitContact(s.Contact))
	contact.Get("/all", admin, controllers.ListContacts(s.Contact))
	contact.Patch("/:id/read", admin, controllers.MarkContactRead(s.Contact))
	contact.Patch("/:id/replied", admin, controllers.MarkContactReplied(s.Contact))
	contact.Delete("/:id", admin, controllers.DeleteContact(s.Contact))
}
