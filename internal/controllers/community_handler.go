package controllers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/SanjayChandraSamudrala/forum-board/dto"
	"github.com/SanjayChandraSamudrala/forum-board/internal/middleware"
	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
	"github.com/SanjayChandraSamudrala/forum-board/internal/services"
	"github.com/SanjayChandraSamudrala/forum-board/internal/utils"
)

// ListCommunities godoc
// @Summary      Public communities
// @Tags         communities
// @Produce      json
// @Success      200  {array}  models.Community
// @Router       /api/communities [get]
func ListCommunities(svc *services.CommunityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := reqCtx(c)
		defer cancel()
		out, err := svc.ListPublic(ctx)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

// CreateCommunity godoc
// @Summary      Create a community
// @Tags         communities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateCommunityReq  true  "community"
// @Success      201  {object}  models.Community
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/communities [post]
func CreateCommunity(svc *services.CommunityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := middleware.ActorFrom(c)
		if err != nil {
			return writeError(c, err)
		}
		var body dto.CreateCommunityReq
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

// GetCommunity godoc
// @Summary      Get a community
// @Description  Private communities are visible to members only
// @Tags         communities
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "community id"
// @Success      200  {object}  models.Community
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/communities/{id} [get]
func GetCommunity(svc *services.CommunityService) fiber.Handler {
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
		out, err := svc.Get(ctx, actor, id)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

type memberOp func(ctx context.Context, actor services.Actor, id, userID bson.ObjectID) (*models.Community, error)

func memberHandler(op memberOp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := middleware.ActorFrom(c)
		if err != nil {
			return writeError(c, err)
		}
		id, err := paramID(c, "id")
		if err != nil {
			return writeError(c, err)
		}
		var body dto.MemberReq
		if err := bindJSON(c, &body); err != nil {
			return writeError(c, err)
		}
		userID, err := utils.Oid("userId", body.UserID)
		if err != nil {
			return writeError(c, badRequest(err.Error()))
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		out, err := op(ctx, actor, id, userID)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

// @Summary      Add a member
// @Tags         communities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string         true  "community id"
// @Param        body  body  dto.MemberReq  true  "user to add"
// @Success      200  {object}  models.Community
// @Router       /api/communities/{id}/add-member [patch]
func AddCommunityMember(svc *services.CommunityService) fiber.Handler {
	return memberHandler(svc.AddMember)
}

// @Summary      Remove a member
// @Tags         communities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string         true  "community id"
// @Param        body  body  dto.MemberReq  true  "user to remove"
// @Success      200  {object}  models.Community
// @Router       /api/communities/{id}/remove-member [patch]
func RemoveCommunityMember(svc *services.CommunityService) fiber.Handler {
	return memberHandler(svc.RemoveMember)
}
