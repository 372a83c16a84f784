package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SanjayChandraSamudrala/forum-board/dto"
	"github.com/SanjayChandraSamudrala/forum-board/internal/middleware"
	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
	"github.com/SanjayChandraSamudrala/forum-board/internal/services"
)

// bookmarkTarget reads the item and parent ids for kind from the route.
// Post replies live under /posts/:postId/replies/:replyId, topic replies
// under /trending/:id/replies/:replyId.
func bookmarkTarget(c *fiber.Ctx, kind models.BookmarkKind) (services.BookmarkTarget, error) {
	t := services.BookmarkTarget{Kind: kind}
	var err error
	switch kind {
	case models.BookmarkPost, models.BookmarkTopic:
		t.Item, err = paramID(c, "id")
	case models.BookmarkReply:
		if t.Parent, err = paramID(c, "postId"); err == nil {
			t.Item, err = paramID(c, "replyId")
		}
	case models.BookmarkTopicReply:
		if t.Parent, err = paramID(c, "id"); err == nil {
			t.Item, err = paramID(c, "replyId")
		}
	}
	return t, err
}

// SaveItem godoc
// @Summary      Bookmark a post, topic or reply
// @Tags         bookmarks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.SavedResp
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/posts/{id}/save [post]
// @Router       /api/posts/{postId}/replies/{replyId}/save [post]
// @Router       /api/trending/{id}/save [post]
// @Router       /api/trending/{id}/replies/{replyId}/save [post]
func SaveItem(svc *services.BookmarkService, kind models.BookmarkKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := middleware.UIDObjectID(c)
		if err != nil {
			return writeError(c, err)
		}
		t, err := bookmarkTarget(c, kind)
		if err != nil {
			return writeError(c, err)
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		if err := svc.Save(ctx, uid, t); err != nil {
			return writeError(c, err)
		}
		return c.JSON(dto.SavedResp{Saved: true})
	}
}

// UnsaveItem godoc
// @Summary      Remove a bookmark
// @Tags         bookmarks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.SavedResp
// @Router       /api/posts/{id}/save [delete]
// @Router       /api/posts/{postId}/replies/{replyId}/save [delete]
// @Router       /api/trending/{id}/save [delete]
// @Router       /api/trending/{id}/replies/{replyId}/save [delete]
func UnsaveItem(svc *services.BookmarkService, kind models.BookmarkKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := middleware.UIDObjectID(c)
		if err != nil {
			return writeError(c, err)
		}
		t, err := bookmarkTarget(c, kind)
		if err != nil {
			return writeError(c, err)
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		if err := svc.Unsave(ctx, uid, t); err != nil {
			return writeError(c, err)
		}
		return c.JSON(dto.SavedResp{Saved: false})
	}
}

// IsItemSaved godoc
// @Summary      Check a bookmark
// @Tags         bookmarks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.SavedResp
// @Router       /api/posts/{id}/saved [get]
// @Router       /api/posts/{postId}/replies/{replyId}/saved [get]
// @Router       /api/trending/{id}/saved [get]
// @Router       /api/trending/{id}/replies/{replyId}/saved [get]
func IsItemSaved(svc *services.BookmarkService, kind models.BookmarkKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := middleware.UIDObjectID(c)
		if err != nil {
			return writeError(c, err)
		}
		t, err := bookmarkTarget(c, kind)
		if err != nil {
			return writeError(c, err)
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		saved, err := svc.IsSaved(ctx, uid, t)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(dto.SavedResp{Saved: saved})
	}
}

// ListSaved godoc
// @Summary      Everything the caller bookmarked
// @Tags         bookmarks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.SavedItemsResp
// @Router       /api/users/saved [get]
func ListSaved(svc *services.BookmarkService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := middleware.UIDObjectID(c)
		if err != nil {
			return writeError(c, err)
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		out, err := svc.List(ctx, uid)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}
