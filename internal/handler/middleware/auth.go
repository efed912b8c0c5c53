package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/victorexecutive/ops-service/internal/apperror"
	"github.com/victorexecutive/ops-service/internal/domain"
	"github.com/victorexecutive/ops-service/pkg/token"
)

// IdentityKey is the request-local under which the bearer gate stores the
// authenticated identity.
const IdentityKey = "identity"

// AuthRequired extracts and verifies the bearer access token and attaches the
// caller's identity for downstream handlers. The response never distinguishes
// why verification failed.
func AuthRequired(codec *token.Codec) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return apperror.Unauthorized("Missing or invalid token")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return apperror.Unauthorized("Missing or invalid token")
		}

		claims, err := codec.VerifyAccess(parts[1])
		if err != nil {
			return apperror.Unauthorized("Invalid or expired token")
		}

		subject, err := uuid.Parse(claims.Subject)
		if err != nil {
			return apperror.Unauthorized("Invalid or expired token")
		}

		c.Locals(IdentityKey, domain.Identity{
			ID:    subject,
			Email: claims.Email,
			Role:  claims.Role,
		})

		return c.Next()
	}
}

// RequireRoles allows the request through only when the authenticated role is
// in the allow-list. Running without the bearer gate in front is a wiring
// bug; it reads as 401, never as a silent pass.
func RequireRoles(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := c.Locals(IdentityKey).(domain.Identity)
		if !ok {
			return apperror.Unauthorized("")
		}

		for _, role := range roles {
			if identity.Role == role {
				return c.Next()
			}
		}

		return apperror.Forbidden("Insufficient permissions")
	}
}

// IdentityFromCtx returns the identity attached by AuthRequired.
func IdentityFromCtx(c *fiber.Ctx) (domain.Identity, bool) {
	identity, ok := c.Locals(IdentityKey).(domain.Identity)
	return identity, ok
}
