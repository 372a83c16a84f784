package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SanjayChandraSamudrala/forum-board/internal/controllers"
	"github.com/SanjayChandraSamudrala/forum-board/internal/middleware"
)

func SetupCommunities(api fiber.Router, s Services) {
	authed := middleware.RequireAuth()
	communities := api.Group("/communities")

	communities.Get("/", controllers.ListCommunities(s.Communities))
	communities.Post("/", authed, controllers.CreateCommunity(s.Communities))
	communities.Get("/:id", authed, controllers.GetCommunity(s.Communities))
	communities.Patch("/:id/add-member", authed, controllers.AddCommunityMember(s.Communities))
	communities.Patch("/:id/remove-member", authed, controllers.RemoveCommunityMember(s.Communities))
}
