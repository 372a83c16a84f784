package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SanjayChandraSamudrala/forum-board/dto"
	"github.com/SanjayChandraSamudrala/forum-board/internal/middleware"
	"github.com/SanjayChandraSamudrala/forum-board/internal/services"
)

// Register godoc
// @Summary      Create an account
// @Description  Registers a user and signs them in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterReq  true  "account"
// @Success      201  {object}  dto.AuthResp
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      429  {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func Register(svc *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body dto.RegisterReq
		if err := bindJSON(c, &body); err != nil {
			return writeError(c, err)
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		out, err := svc.Register(ctx, body)
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}
}

// Login godoc
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginReq  true  "credentials"
// @Success      200  {object}  dto.AuthResp
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      429  {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func Login(svc *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body dto.LoginReq
		if err := bindJSON(c, &body); err != nil {
			return writeError(c, err)
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		out, err := svc.Login(ctx, body)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

// Logout godoc
// @Summary      Sign out
// @Description  Ends the current session; the token stops working immediately
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/auth/logout [post]
func Logout(svc *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := middleware.SessionFromLocals(c)
		if !ok {
			return writeError(c, fiber.ErrUnauthorized)
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		if err := svc.Logout(ctx, sess.ID); err != nil {
			return writeError(c, err)
		}
		return c.JSON(dto.MessageResponse{Message: "logged out"})
	}
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserResp
// @Router       /api/auth/me [get]
func Me(svc *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := middleware.UIDObjectID(c)
		if err != nil {
			return writeError(c, err)
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		out, err := svc.Me(ctx, uid)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

// @Summary      Update name, bio or image
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.UpdateProfileReq  true  "fields to change"
// @Success      200  {object}  dto.UserResp
// @Router       /api/auth/profile [put]
func UpdateProfile(svc *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := middleware.UIDObjectID(c)
		if err != nil {
			return writeError(c, err)
		}
		var body dto.UpdateProfileReq
		if err := bindJSON(c, &body); err != nil {
			return writeError(c, err)
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		out, err := svc.UpdateProfile(ctx, uid, body)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.ChangePasswordReq  true  "current and new password"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/auth/change-password [put]
func ChangePassword(svc *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := middleware.UIDObjectID(c)
		if err != nil {
			return writeError(c, err)
		}
		var body dto.ChangePasswordReq
		if err := bindJSON(c, &body); err != nil {
			return writeError(c, err)
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		if err := svc.ChangePassword(ctx, uid, body); err != nil {
			return writeError(c, err)
		}
		return c.JSON(dto.MessageResponse{Message: "password updated"})
	}
}

// MyThreads godoc
// @Summary      Threads the caller started or replied to
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserContentResp
// @Router       /api/auth/threads [get]
func MyThreads(svc *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := middleware.UIDObjectID(c)
		if err != nil {
			return writeError(c, err)
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		out, err := svc.Content(ctx, uid, uid)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}
