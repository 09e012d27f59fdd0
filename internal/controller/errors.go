package controller

import (
	"errors"
	"strings"

	"eventchat-be/internal/pkg/serverutils"
	"eventchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// respondServiceError maps service errors onto the HTTP error contract.
func respondServiceError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidUsername),
		errors.Is(err, service.ErrInvalidPassword):
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, err.Error()))

	case errors.Is(err, service.ErrAccountDisabled),
		errors.Is(err, service.ErrNotParticipant),
		errors.Is(err, service.ErrChatbotPrivate),
		errors.Is(err, service.ErrChatbotUnavail):
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, err.Error()))

	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrChatbotNotFound),
		errors.Is(err, service.ErrGuestNotFound),
		errors.Is(err, service.ErrSessionNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))

	case errors.Is(err, service.ErrAlreadyJoined),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken):
		return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, err.Error()))

	case errors.Is(err, service.ErrWrongPassword),
		errors.Is(err, service.ErrBadDateRange):
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	// Manager and parser errors carry their category in the message.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "already exists"):
		return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, msg))
	case strings.Contains(msg, "not found"):
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, msg))
	case strings.Contains(msg, "invalid"),
		strings.Contains(msg, "required"),
		strings.Contains(msg, "unsupported"),
		strings.Contains(msg, "missing"),
		strings.Contains(msg, "empty"),
		strings.Contains(msg, "not allowed"):
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, msg))
	}

	return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, msg))
}
