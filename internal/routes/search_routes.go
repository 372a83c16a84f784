package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SanjayChandraSamudrala/forum-board/internal/controllers"
)

func SetupSearch(api fiber.Router, s Services) {
	api.Get("/search", controllers.Search(s.Search))
}
