package serverutils

import (
	"context"
	"fmt"
	"strings"

	"eventchat-be/internal/entity"
	"eventchat-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// TokenVerifier resolves a bearer token to the user it belongs to.
// Implemented by the auth service.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*entity.User, error)
}

// ErrorHandlerMiddleware recovers from panics and converts them into a 500
// response so one bad request cannot take the server down.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				log.Error("SERVER", "Panic recovered", map[string]interface{}{
					"error": fmt.Sprintf("%v", r),
					"path":  ctx.Path(),
				})
				_ = ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(500, "Internal server error"))
			}
		}()
		return ctx.Next()
	}
}

// AuthMiddleware validates the bearer token against the session store and
// stores the resolved user in ctx.Locals.
func AuthMiddleware(verifier TokenVerifier) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		token := extractBearer(ctx)
		if token == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Missing token"))
		}

		user, err := verifier.VerifyToken(ctx.UserContext(), token)
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(500, err.Error()))
		}
		if user == nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid or expired token"))
		}

		ctx.Locals("user", user)
		ctx.Locals("user_id", user.Id.String())
		ctx.Locals("user_role", string(user.Role))
		return ctx.Next()
	}
}

// AdminMiddleware must run after AuthMiddleware.
func AdminMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		role, ok := ctx.Locals("user_role").(string)
		if !ok {
			return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse(403, "Access denied: Role missing"))
		}
		if role != string(entity.UserRoleAdmin) {
			return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse(403, "Access denied: Admins only"))
		}
		return ctx.Next()
	}
}

// CurrentUser returns the authenticated user placed by AuthMiddleware.
func CurrentUser(ctx *fiber.Ctx) *entity.User {
	user, _ := ctx.Locals("user").(*entity.User)
	return user
}

// CurrentUserId parses the authenticated user id from locals.
func CurrentUserId(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := ctx.Locals("user_id").(string)
	return uuid.Parse(raw)
}

func extractBearer(ctx *fiber.Ctx) string {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) >= 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
