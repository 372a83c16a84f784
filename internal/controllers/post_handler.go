package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/SanjayChandraSamudrala/forum-board/config"
	"github.com/SanjayChandraSamudrala/forum-board/dto"
	"github.com/SanjayChandraSamudrala/forum-board/internal/middleware"
	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
	"github.com/SanjayChandraSamudrala/forum-board/internal/ranking"
	"github.com/SanjayChandraSamudrala/forum-board/internal/repository"
	"github.com/SanjayChandraSamudrala/forum-board/internal/services"
)

// ListPosts godoc
// @Summary      List posts
// @Description  Paginated posts filtered by status, category and time window
// @Tags         posts
// @Produce      json
// @Param        sort       query  string  false  "latest|oldest|popular|mostLiked|mostReplies|trending"
// @Param        status     query  string  false  "active|closed|archived"  default(active)
// @Param        category   query  string  false  "category name"
// @Param        timeRange  query  string  false  "24h|7d|30d|all"  default(all)
// @Param        page       query  int     false  "page number"  default(1)
// @Param        limit      query  int     false  "page size"  default(10)
// @Success      200  {object}  dto.PageResp[dto.PostResp]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/posts [get]
func ListPosts(svc *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sort, err := ranking.ParseSortKey(c.Query("sort"))
		if err != nil {
			return writeError(c, badRequest(err.Error()))
		}
		status := models.PostActive
		if raw := c.Query("status"); raw != "" {
			if status, err = models.ParsePostStatus(raw); err != nil {
				return writeError(c, badRequest(err.Error()))
			}
		}
		tr, err := ranking.ParseTimeRange(c.Query("timeRange"), ranking.RangeAll)
		if err != nil {
			return writeError(c, badRequest(err.Error()))
		}
		page, err := pageQuery(c, config.DefaultPageSize)
		if err != nil {
			return writeError(c, err)
		}

		q := repository.PostQuery{
			Status:   status,
			Category: strings.ToLower(strings.TrimSpace(c.Query("category"))),
			Sort:     sort,
			Page:     page,
		}
		if since, ok := tr.Since(svc.Now()); ok {
			q.Since = since
		}

		ctx, cancel := reqCtx(c)
		defer cancel()
		out, err := svc.List(ctx, q, middleware.ViewerID(c))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

// ListAllPosts godoc
// @Summary      List every post (admin)
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        page   query  int  false  "page number"
// @Param        limit  query  int  false  "page size"
// @Success      200  {object}  dto.PageResp[dto.PostResp]
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/posts/all [get]
func ListAllPosts(svc *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := pageQuery(c, config.DefaultPageSize)
		if err != nil {
			return writeError(c, err)
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		out, err := svc.ListAll(ctx, page, middleware.ViewerID(c))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

// DistinctCategories godoc
// @Summary      Distinct post categories
// @Tags         posts
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/posts/categories/distinct [get]
func DistinctCategories(svc *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := reqCtx(c)
		defer cancel()
		out, err := svc.Categories(ctx)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

// TrendingCategories godoc
// @Summary      Most discussed categories
// @Description  Top categories by replies on active posts created or replied to inside the window
// @Tags         posts
// @Produce      json
// @Param        timeRange  query  string  false  "24h|7d|30d"  default(24h)
// @Success      200  {array}  ranking.CategoryStat
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/posts/trending-categories [get]
func TrendingCategories(svc *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tr, err := ranking.ParseTimeRange(c.Query("timeRange"), ranking.Range24h)
		if err != nil {
			return writeError(c, badRequest(err.Error()))
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		out, err := svc.TrendingCategories(ctx, tr)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

// GetPost godoc
// @Summary      Get a post
// @Description  Returns the post with its replies and counts one view
// @Tags         posts
// @Produce      json
// @Param        id  path  string  true  "post id"
// @Success      200  {object}  dto.PostResp
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/posts/{id} [get]
func GetPost(svc *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return writeError(c, err)
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		out, err := svc.Get(ctx, id, middleware.ViewerID(c))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

// CreatePost godoc
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreatePostReq  true  "post"
// @Success      201  {object}  dto.PostResp
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/posts [post]
func CreatePost(svc *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := middleware.ActorFrom(c)
		if err != nil {
			return writeError(c, err)
		}
		var body dto.CreatePostReq
		if err := bindJSON(c, &body); err != nil {
			return writeError(c, err)
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		out, err := svc.Create(ctx, actor, body)
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}
}

// UpdatePost godoc
// @Summary      Update a post (author only)
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string             true  "post id"
// @Param        body  body  dto.UpdatePostReq  true  "fields to change"
// @Success      200  {object}  dto.PostResp
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/posts/{id} [put]
func UpdatePost(svc *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := middleware.ActorFrom(c)
		if err != nil {
			return writeError(c, err)
		}
		id, err := paramID(c, "id")
		if err != nil {
			return writeError(c, err)
		}
		var body dto.UpdatePostReq
		if err := bindJSON(c, &body); err != nil {
			return writeError(c, err)
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		out, err := svc.Update(ctx, id, actor, body)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Author, moderator or admin
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "post id"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/posts/{id} [delete]
func DeletePost(svc *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := middleware.ActorFrom(c)
		if err != nil {
			return writeError(c, err)
		}
		id, err := paramID(c, "id")
		if err != nil {
			return writeError(c, err)
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		if err := svc.Delete(ctx, id, actor); err != nil {
			return writeError(c, err)
		}
		return c.JSON(dto.MessageResponse{Message: "post deleted"})
	}
}

// AddPostReply godoc
// @Summary      Reply to a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string              true  "post id"
// @Param        body  body  dto.CreateReplyReq  true  "reply"
// @Success      201  {object}  dto.ReplyResp
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/posts/{id}/replies [post]
func AddPostReply(svc *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := middleware.ActorFrom(c)
		if err != nil {
			return writeError(c, err)
		}
		id, err := paramID(c, "id")
		if err != nil {
			return writeError(c, err)
		}
		var body dto.CreateReplyReq
		if err := bindJSON(c, &body); err != nil {
			return writeError(c, err)
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		out, err := svc.AddReply(ctx, id, actor, body.Content)
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}
}

// ReactPost godoc
// @Summary      Toggle like or dislike on a post
// @Description  Same reaction twice removes it; the opposite reaction replaces it
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "post id"
// @Success      200  {object}  models.ReactionView
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/posts/{id}/like [post]
// @Router       /api/posts/{id}/dislike [post]
func ReactPost(svc *services.PostService, kind models.Reaction) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := middleware.UIDObjectID(c)
		if err != nil {
			return writeError(c, err)
		}
		id, err := paramID(c, "id")
		if err != nil {
			return writeError(c, err)
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		out, err := svc.React(ctx, id, uid, kind)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

// ReactPostReply godoc
// @Summary      Toggle like or dislike on a post reply
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        postId   path  string  true  "post id"
// @Param        replyId  path  string  true  "reply id"
// @Success      200  {object}  models.ReactionView
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/posts/{postId}/replies/{replyId}/like [post]
// @Router       /api/posts/{postId}/replies/{replyId}/dislike [post]
func ReactPostReply(svc *services.PostService, kind models.Reaction) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := middleware.UIDObjectID(c)
		if err != nil {
			return writeError(c, err)
		}
		postID, err := paramID(c, "postId")
		if err != nil {
			return writeError(c, err)
		}
		replyID, err := paramID(c, "replyId")
		if err != nil {
			return writeError(c, err)
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		out, err := svc.ReactReply(ctx, postID, replyID, uid, kind)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}
