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

// statusesQuery accepts a comma separated status list.
func statusesQuery(c *fiber.Ctx) ([]models.TopicStatus, error) {
	raw := strings.TrimSpace(c.Query("status"))
	if raw == "" {
		return models.DefaultTopicStatuses, nil
	}
	var out []models.TopicStatus
	for _, part := range strings.Split(raw, ",") {
		s, err := models.ParseTopicStatus(strings.TrimSpace(part))
		if err != nil {
			return nil, badRequest(err.Error())
		}
		out = append(out, s)
	}
	return out, nil
}

// ListTrending godoc
// @Summary      List trending topics
// @Description  Scores are recomputed for the returned page, which is re-sorted by score and ranked from the page offset
// @Tags         trending
// @Produce      json
// @Param        timeRange  query  string  false  "24h|7d|30d|all"  default(24h)
// @Param        status     query  string  false  "comma separated statuses"  default(rising,trending)
// @Param        topic      query  string  false  "topic"
// @Param        page       query  int     false  "page number"  default(1)
// @Param        limit      query  int     false  "page size"  default(10)
// @Success      200  {object}  dto.PageResp[dto.TopicResp]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/trending [get]
func ListTrending(svc *services.TrendingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tr, err := ranking.ParseTimeRange(c.Query("timeRange"), ranking.Range24h)
		if err != nil {
			return writeError(c, badRequest(err.Error()))
		}
		statuses, err := statusesQuery(c)
		if err != nil {
			return writeError(c, err)
		}
		page, err := pageQuery(c, config.DefaultPageSize)
		if err != nil {
			return writeError(c, err)
		}

		q := repository.TopicQuery{
			Statuses: statuses,
			Topic:    strings.TrimSpace(c.Query("topic")),
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

// GetTrending godoc
// @Summary      Get a trending topic
// @Description  Counts one view and refreshes the stored score
// @Tags         trending
// @Produce      json
// @Param        id  path  string  true  "topic id"
// @Success      200  {object}  dto.TopicResp
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/trending/{id} [get]
func GetTrending(svc *services.TrendingService) fiber.Handler {
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

// CreateTrending godoc
// @Summary      Start a trending topic
// @Tags         trending
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateTopicReq  true  "topic"
// @Success      201  {object}  dto.TopicResp
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/trending [post]
func CreateTrending(svc *services.TrendingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := middleware.ActorFrom(c)
		if err != nil {
			return writeError(c, err)
		}
		var body dto.CreateTopicReq
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

// @Summary      Update a trending topic (author only)
// @Tags         trending
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string              true  "topic id"
// @Param        body  body  dto.UpdateTopicReq  true  "fields to change"
// @Success      200  {object}  dto.TopicResp
// @Router       /api/trending/{id} [put]
func UpdateTrending(svc *services.TrendingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := middleware.ActorFrom(c)
		if err != nil {
			return writeError(c, err)
		}
		id, err := paramID(c, "id")
		if err != nil {
			return writeError(c, err)
		}
		var body dto.UpdateTopicReq
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

// @Summary      Delete a trending topic
// @Tags         trending
// @Security     BearerAuth
// @Param        id  path  string  true  "topic id"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/trending/{id} [delete]
func DeleteTrending(svc *services.TrendingService) fiber.Handler {
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
		return c.JSON(dto.MessageResponse{Message: "trending topic deleted"})
	}
}

// @Summary      Reply to a trending topic
// @Tags         trending
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string              true  "topic id"
// @Param        body  body  dto.CreateReplyReq  true  "reply"
// @Success      201  {object}  dto.ReplyResp
// @Router       /api/trending/{id}/replies [post]
func AddTrendingReply(svc *services.TrendingService) fiber.Handler {
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

// @Summary      Toggle like or dislike on a trending topic
// @Tags         trending
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "topic id"
// @Success      200  {object}  models.ReactionView
// @Router       /api/trending/{id}/like [post]
// @Router       /api/trending/{id}/dislike [post]
func ReactTrending(svc *services.TrendingService, kind models.Reaction) fiber.Handler {
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

// @Summary      Toggle like or dislike on a trending topic reply
// @Tags         trending
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string  true  "topic id"
// @Param        replyId  path  string  true  "reply id"
// @Success      200  {object}  models.ReactionView
// @Router       /api/trending/{id}/replies/{replyId}/like [post]
// @Router       /api/trending/{id}/replies/{replyId}/dislike [post]
func ReactTrendingReply(svc *services.TrendingService, kind models.Reaction) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := middleware.UIDObjectID(c)
		if err != nil {
			return writeError(c, err)
		}
		id, err := paramID(c, "id")
		if err != nil {
			return writeError(c, err)
		}
		replyID, err := paramID(c, "replyId")
		if err != nil {
			return writeError(c, err)
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		out, err := svc.ReactReply(ctx, id, replyID, uid, kind)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

