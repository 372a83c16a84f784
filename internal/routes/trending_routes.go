package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SanjayChandraSamudrala/forum-board/internal/controllers"
	"github.com/SanjayChandraSamudrala/forum-board/internal/middleware"
	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
)

func SetupTrending(api fiber.Router, s Services) {
	authed := middleware.RequireAuth()
	trending := api.Group("/trending")

	trending.Get("/", controllers.ListTrending(s.Trending))
	trending.Post("/", authed, controllers.CreateTrending(s.Trending))
	trending.Get("/:id", controllers.GetTrending(s.Trending))
	trending.Put("/:id", authed, controllers.UpdateTrending(s.Trending))
	trending.Delete("/:id", authed, controllers.DeleteTrending(s.Trending))

	trending.Post("/:id/replies", authed, controllers.AddTrendingReply(s.Trending))
	trending.Post("/:id/like", authed, controllers.ReactTrending(s.Trending, models.ReactionLike))
	trending.Post("/:id/dislike", authed, controllers.ReactTrending(s.Trending, models.ReactionDislike))
	trending.Post("/:id/replies/:replyId/like", authed, controllers.ReactTrendingReply(s.Trending, models.ReactionLike))
	trending.Post("/:id/replies/:replyId/dislike", authed, controllers.ReactTrendingReply(s.Trending, models.ReactionDislike))

	trending.Post("/:id/save", authed, controllers.SaveItem(s.Bookmarks, models.BookmarkTopic))
	trending.Delete("/:id/save", authed, controllers.UnsaveItem(s.Bookmarks, models.BookmarkTopic))
	trending.Get("/:id/saved", authed, controllers.IsItemSaved(s.Bookmarks, models.BookmarkTopic))
	trending.Post("/:id/replies/:replyId/save", authed, controllers.SaveItem(s.Bookmarks, models.BookmarkTopicReply))
	trending.Delete("/:id/replies/:replyId/save", authed, controllers.UnsaveItem(s.Bookmarks, models.BookmarkTopicReply))
	trending.Get("/:id/replies/:replyId/saved", authed, controllers.IsItemSaved(s.Bookmarks, models.BookmarkTopicReply))
}
