package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SanjayChandraSamudrala/forum-board/config"
	"github.com/SanjayChandraSamudrala/forum-board/dto"
	"github.com/SanjayChandraSamudrala/forum-board/internal/middleware"
	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
	"github.com/SanjayChandraSamudrala/forum-board/internal/services"
)

// SubmitContact godoc
// @Summary      Send a message to the site admins
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ContactReq  true  "message"
// @Success      201  {object}  models.ContactMessage
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      429  {object}  dto.ErrorResponse
// @Router       /api/contact [post]
func SubmitContact(svc *services.ContactService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body dto.ContactReq
		if err := bindJSON(c, &body); err != nil {
			return writeError(c, err)
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		out, err := svc.Submit(ctx, body)
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}
}

// ListContacts godoc
// @Summary      Contact messages (admin)
// @Tags         contact
// @Produce      json
// @Security     BearerAuth
// @Param        isRead   query  bool  false  "filter by read flag"
// @Param        replied  query  bool  false  "filter by replied flag"
// @Param        page     query  int   false  "page number"
// @Param        limit    query  int   false  "page size"
// @Success      200  {object}  dto.PageResp[models.ContactMessage]
// @Router       /api/contact/all [get]
func ListContacts(svc *services.ContactService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var f models.ContactFilter
		var err error
		if f.IsRead, err = boolQuery(c, "isRead"); err != nil {
			return writeError(c, err)
		}
		if f.Replied, err = boolQuery(c, "replied"); err != nil {
			return writeError(c, err)
		}
		page, err := pageQuery(c, config.DefaultPageSize)
		if err != nil {
			return writeError(c, err)
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		out, err := svc.List(ctx, f, page)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

// @Summary      Mark a contact message read (admin)
// @Tags         contact
// @Security     BearerAuth
// @Param        id  path  string  true  "message id"
// @Success      200  {object}  models.ContactMessage
// @Router       /api/contact/{id}/read [patch]
func MarkContactRead(svc *services.ContactService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		admin, err := middleware.ActorFrom(c)
		if err != nil {
			return writeError(c, err)
		}
		id, err := paramID(c, "id")
		if err != nil {
			return writeError(c, err)
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		out, err := svc.MarkRead(ctx, admin, id)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

// @Summary      Mark a contact message replied (admin)
// @Tags         contact
// @Security     BearerAuth
// @Param        id  path  string  true  "message id"
// @Success      200  {object}  models.ContactMessage
// @Router       /api/contact/{id}/replied [patch]
func MarkContactReplied(svc *services.ContactService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		admin, err := middleware.ActorFrom(c)
		if err != nil {
			return writeError(c, err)
		}
		id, err := paramID(c, "id")
		if err != nil {
			return writeError(c, err)
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		out, err := svc.MarkReplied(ctx, admin, id)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

// @Summary      Delete a contact message (admin)
// @Tags         contact
// @Security     BearerAuth
// @Param        id  path  string  true  "message id"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/contact/{id} [delete]
func DeleteContact(svc *services.ContactService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		admin, err := middleware.ActorFrom(c)
		if err != nil {
			return writeError(c, err)
		}
		id, err := paramID(c, "id")
		if err != nil {
			return writeError(c, err)
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		if err := svc.Delete(ctx, admin, id); err != nil {
			return writeError(c, err)
		}
		return c.JSON(dto.MessageResponse{Message: "message deleted"})
	}
}
