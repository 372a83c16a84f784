package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SanjayChandraSamudrala/forum-board/internal/controllers"
	"github.com/SanjayChandraSamudrala/forum-board/internal/middleware"
	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
)

func SetupPosts(api fiber.Router, s Services) {
	authed := middleware.RequireAuth()
	posts := api.Group("/posts")

	// fixed paths before /:id
	posts.Get("/", controllers.ListPosts(s.Posts))
	posts.Get("/all", middleware.RequireRole(models.RoleAdmin), controllers.ListAllPosts(s.Posts))
	posts.Get("/trending-categories", controllers.TrendingCategories(s.Posts))
	posts.Get("/categories/distinct", controllers.DistinctCategories(s.Posts))
	posts.Post("/", authed, controllers.CreatePost(s.Posts))

	posts.Get("/:id", controllers.GetPost(s.Posts))
	posts.Put("/:id", authed, controllers.UpdatePost(s.Posts))
	posts.Delete("/:id", authed, controllers.DeletePost(s.Posts))
	posts.Post("/:id/replies", authed, controllers.AddPostReply(s.Posts))
	posts.Post("/:id/like", authed, controllers.ReactPost(s.Posts, models.ReactionLike))
	posts.Post("/:id/dislike", authed, controllers.ReactPost(s.Posts, models.ReactionDislike))

	posts.Post("/:postId/replies/:replyId/like", authed, controllers.ReactPostReply(s.Posts, models.ReactionLike))
	posts.Post("/:postId/replies/:replyId/dislike", authed, controllers.ReactPostReply(s.Posts, models.ReactionDislike))

	posts.Post("/:id/save", authed, controllers.SaveItem(s.Bookmarks, models.BookmarkPost))
	posts.Delete("/:id/save", authed, controllers.UnsaveItem(s.Bookmarks, models.BookmarkPost))
	posts.Get("/:id/saved", authed, controllers.IsItemSaved(s.Bookmarks, models.BookmarkPost))
	posts.Post("/:postId/replies/:replyId/save", authed, controllers.SaveItem(s.Bookmarks, models.BookmarkReply))
	posts.Delete("/:postId/replies/:replyId/save", authed, controllers.UnsaveItem(s.Bookmarks, models.BookmarkReply))
	posts.Get("/:postId/replies/:replyId/saved", authed, controllers.IsItemSaved(s.Bookmarks, models.BookmarkReply))

	// kept at the top level for older clients
	api.Get("/trending-categories", controllers.TrendingCategories(s.Posts))
}
