package serverutils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CallerID extracts the authenticated user's id set by JwtMiddleware.
func CallerID(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := ctx.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return id, nil
}

// CallerRole returns the role claim set by JwtMiddleware, empty when absent.
func CallerRole(ctx *fiber.Ctx) string {
	role, _ := ctx.Locals("role").(string)
	return role
}
