package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arklim/social-platform-community/internal/core/port"
)

// RateLimiterConfig tunes the sliding-window limiter for one route group.
type RateLimiterConfig struct {
	Window      time.Duration
	MaxAttempts int
}

// IdentifierFunc derives the rate-limit bucket key from the request.
type IdentifierFunc func(c *gin.Context) string

// ClientIPIdentifier buckets requests by client IP.
func ClientIPIdentifier(scope string) IdentifierFunc {
	return func(c *gin.Context) string {
		return fmt.Sprintf("%s:%s", scope, c.ClientIP())
	}
}

// RateLimiter enforces a sliding-window limit backed by the attempt store.
// A store failure lets the request through; availability over strictness.
func RateLimiter(store port.RateLimitStore, cfg RateLimiterConfig, identify IdentifierFunc, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		identifier := identify(c)
		now := time.Now()
		ctx := c.Request.Context()

		count, earliest, err := store.Tally(ctx, identifier, cfg.Window, now)
		if err != nil {
			log.Warn("rate limit check failed", zap.Error(err))
			c.Next()
			return
		}

		if count >= cfg.MaxAttempts {
			retryAfter := cfg.Window
			if !earliest.IsZero() {
				retryAfter = earliest.Add(cfg.Window).Sub(now)
				if retryAfter < time.Second {
					retryAfter = time.Second
				}
			}

			c.Header("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":     "RATE_LIMIT_EXCEEDED",
				"message":  "too many attempts, retry later",
				"trace_id": GetTraceID(c),
			})
			return
		}

		if err := store.RecordAttempt(ctx, identifier, now); err != nil {
			log.Warn("rate limit record failed", zap.Error(err))
		}

		c.Next()
	}
}
