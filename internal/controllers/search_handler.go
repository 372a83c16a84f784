package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SanjayChandraSamudrala/forum-board/internal/middleware"
	"github.com/SanjayChandraSamudrala/forum-board/internal/services"
)

// Search godoc
// @Summary      Search posts, users and communities
// @Tags         search
// @Produce      json
// @Param        q  query  string  true  "text to find"
// @Success      200  {object}  dto.SearchResp
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/search [get]
func Search(svc *services.SearchService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := reqCtx(c)
		defer cancel()
		out, err := svc.Search(ctx, c.Query("q"), middleware.ViewerID(c))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}
