package auth

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/rental-service/pkg/util"
)

// UserHeader carries the caller's identity on every authenticated endpoint.
const UserHeader = "X-Sharer-User-Id"

// GatewayTrust rejects requests that do not carry a valid gateway-issued
// service token. With an empty secret the check is disabled, which lets the
// server run standalone in development.
func GatewayTrust(tokens *ServiceTokenManager, enabled bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !enabled {
			return c.Next()
		}
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return apperrors.NewUnauthorized("missing authorization header")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return apperrors.NewUnauthorized("invalid authorization header")
		}
		if err := tokens.Verify(parts[1]); err != nil {
			return apperrors.NewUnauthorized("invalid service token")
		}
		return c.Next()
	}
}

// CallerID extracts the caller's user id from the identity header.
func CallerID(c *fiber.Ctx) (int64, error) {
	raw := c.Get(UserHeader)
	if raw == "" {
		return 0, apperrors.NewValidationError("missing "+UserHeader+" header", nil)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid "+UserHeader+" header", nil)
	}
	return id, nil
}
