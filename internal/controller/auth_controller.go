package controller

import (
	"errors"
	"strings"

	"eventchat-be/internal/dto"
	"eventchat-be/internal/pkg/serverutils"
	"eventchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	Register(ctx *fiber.Ctx) error
	Verify(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
	ChangePassword(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{service: service}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/login", c.Login)
	h.Post("/register", c.Register)

	protected := h.Use(serverutils.AuthMiddleware(c.service))
	protected.Get("/verify", c.Verify)
	protected.Post("/logout", c.Logout)
	protected.Put("/change-password", c.ChangePassword)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.Login(ctx.UserContext(), req)
	if err != nil {
		// Failed logins name the offending field so the form can
		// highlight it.
		if field := loginErrorField(err); field != "" {
			return ctx.Status(fiber.StatusUnauthorized).
				JSON(serverutils.ErrorResponseData(401, err.Error(), fiber.Map{"field": field}))
		}
		return respondServiceError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}

func loginErrorField(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidUsername):
		return "username"
	case errors.Is(err, service.ErrInvalidPassword):
		return "password"
	}
	return ""
}

func (c *authController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.Register(ctx.UserContext(), req)
	if err != nil {
		return respondServiceError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Registration successful", res))
}

func (c *authController) Verify(ctx *fiber.Ctx) error {
	// AuthMiddleware already resolved the token; just echo the account.
	user := serverutils.CurrentUser(ctx)
	if user == nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid or expired token"))
	}

	return ctx.JSON(serverutils.SuccessResponse("Token valid", dto.VerifyResponse{
		User: profileFromUser(user),
	}))
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	if err := c.service.Logout(ctx.UserContext(), bearerToken(ctx)); err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Logged out", nil))
}

func (c *authController) ChangePassword(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid session"))
	}

	var req dto.ChangePasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	if err := c.service.ChangePassword(ctx.UserContext(), userId, req); err != nil {
		return respondServiceError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Password changed", nil))
}

func bearerToken(ctx *fiber.Ctx) string {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) >= 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
