package gateway

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/rental-service/internal/auth"
	apperrors "github.com/spec-kit/rental-service/pkg/util"
)

// RateLimit returns a fixed-window per-caller limiter backed by Redis.
// A limit of zero disables limiting. Callers without an identity header are
// keyed by client IP so registration traffic is still bounded.
func RateLimit(client *redis.Client, limitPerMinute int, logger *zap.Logger) fiber.Handler {
	if limitPerMinute <= 0 || client == nil {
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	return func(c *fiber.Ctx) error {
		caller := c.Get(auth.UserHeader)
		if caller == "" {
			caller = "ip:" + c.IP()
		}
		window := time.Now().Unix() / 60
		key := fmt.Sprintf("ratelimit:%s:%d", caller, window)

		count, err := client.Incr(c.UserContext(), key).Result()
		if err != nil {
			// limiter degrades open when redis is unreachable
			logger.Warn("rate limit check failed", zap.Error(err))
			return c.Next()
		}
		if count == 1 {
			client.Expire(c.UserContext(), key, time.Minute)
		}
		if count > int64(limitPerMinute) {
			return apperrors.NewDomainError("RATE_LIMITED", "too many requests", http.StatusTooManyRequests, nil)
		}
		return c.Next()
	}
}
