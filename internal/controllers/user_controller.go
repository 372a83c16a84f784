package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SanjayChandraSamudrala/forum-board/dto"
	"github.com/SanjayChandraSamudrala/forum-board/internal/middleware"
	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
	"github.com/SanjayChandraSamudrala/forum-board/internal/services"
)

// ListUsers godoc
// @Summary      List users (admin)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.UserResp
// @Router       /api/users/all [get]
func ListUsers(svc *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := reqCtx(c)
		defer cancel()
		out, err := svc.List(ctx)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

// DeleteUser godoc
// @Summary      Delete a user and their posts (admin)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "user id"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func DeleteUser(svc *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		admin, err := middleware.ActorFrom(c)
		if err != nil {
			return writeError(c, err)
		}
		id, err := paramID(c, "id")
		if err != nil {
			return writeError(c, err)
		}
		if id == admin.ID {
			return writeError(c, badRequest("admins cannot delete their own account"))
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		if err := svc.Delete(ctx, admin, id); err != nil {
			return writeError(c, err)
		}
		return c.JSON(dto.MessageResponse{Message: "user deleted"})
	}
}

// UpdateUserRole godoc
// @Summary      Change a user's role (admin)
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string             true  "user id"
// @Param        body  body  dto.UpdateRoleReq  true  "new role"
// @Success      200  {object}  dto.UserResp
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/users/{id}/role [patch]
func UpdateUserRole(svc *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		admin, err := middleware.ActorFrom(c)
		if err != nil {
			return writeError(c, err)
		}
		id, err := paramID(c, "id")
		if err != nil {
			return writeError(c, err)
		}
		var body dto.UpdateRoleReq
		if err := bindJSON(c, &body); err != nil {
			return writeError(c, err)
		}
		role, err := models.ParseRole(body.Role)
		if err != nil {
			return writeError(c, badRequest(err.Error()))
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		out, err := svc.ChangeRole(ctx, admin, id, role)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

// UserContent godoc
// @Summary      A user's threads and responses
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path  string  true  "user id"
// @Success      200  {object}  dto.UserContentResp
// @Router       /api/users/{userId}/content [get]
func UserContent(svc *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "userId")
		if err != nil {
			return writeError(c, err)
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		out, err := svc.Content(ctx, id, middleware.ViewerID(c))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

// UserLikedContent godoc
// @Summary      Posts and replies a user likes
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path  string  true  "user id"
// @Success      200  {object}  dto.LikedContentResp
// @Router       /api/users/{userId}/liked-content [get]
func UserLikedContent(svc *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "userId")
		if err != nil {
			return writeError(c, err)
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		out, err := svc.LikedContent(ctx, id, middleware.ViewerID(c))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}
