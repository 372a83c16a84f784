package controllers

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/SanjayChandraSamudrala/forum-board/config"
	"github.com/SanjayChandraSamudrala/forum-board/dto"
	"github.com/SanjayChandraSamudrala/forum-board/internal/ranking"
	"github.com/SanjayChandraSamudrala/forum-board/internal/services"
	"github.com/SanjayChandraSamudrala/forum-board/internal/utils"
	"github.com/SanjayChandraSamudrala/forum-board/pkg/logger"
)

// RequestTimeout bounds every handler's calls into the store.
var RequestTimeout = 5 * time.Second

func reqCtx(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), RequestTimeout)
}

func badRequest(msg string) error {
	return &services.Error{Kind: services.ErrInvalidInput, Msg: msg}
}

func statusOf(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	}
	return fiber.StatusInternalServerError
}

// writeError renders err as dto.ErrorResponse. Unclassified errors are
// logged and hidden behind a generic message.
func writeError(c *fiber.Ctx, err error) error {
	status := statusOf(err)
	msg := err.Error()
	if status >= fiber.StatusInternalServerError {
		logger.L().Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))
		msg = "internal server error"
		if status == fiber.StatusGatewayTimeout {
			msg = "request timed out"
		}
	}
	return c.Status(status).JSON(dto.ErrorResponse{Error: msg})
}

// ErrorHandler is the fiber app error handler. Middleware errors and
// anything a handler returns unhandled end up here.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return writeError(c, err)
}

// bindJSON parses the body into v and runs its validate tags.
func bindJSON(c *fiber.Ctx, v any) error {
	if err := c.BodyParser(v); err != nil {
		return badRequest("invalid body")
	}
	if err := utils.ValidateStruct(v); err != nil {
		return badRequest(err.Error())
	}
	return nil
}

func paramID(c *fiber.Ctx, name string) (bson.ObjectID, error) {
	id, err := utils.Oid(name, c.Params(name))
	if err != nil {
		return bson.NilObjectID, badRequest(err.Error())
	}
	return id, nil
}

// pageQuery reads page and limit. Non-numeric values are rejected; out of
// range values are clamped by ranking.NewPage.
func pageQuery(c *fiber.Ctx, defSize int) (ranking.Page, error) {
	number, err := intQuery(c, "page", 1)
	if err != nil {
		return ranking.Page{}, err
	}
	size, err := intQuery(c, "limit", defSize)
	if err != nil {
		return ranking.Page{}, err
	}
	if size > config.MaxPageSize {
		size = config.MaxPageSize
	}
	return ranking.NewPage(number, size), nil
}

func intQuery(c *fiber.Ctx, key string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, badRequest("invalid " + key)
	}
	return n, nil
}

// boolQuery returns nil when key is absent.
func boolQuery(c *fiber.Ctx, key string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, badRequest("invalid " + key)
	}
	return &b, nil
}
