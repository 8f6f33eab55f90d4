package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"event-planner-api/internal/response"
)

// RateAllower is the slice of the token bucket the middleware needs
type RateAllower interface {
	Allow(ctx context.Context, key string) (bool, int, error)
}

// RateLimit spends one token per mutating request, keyed by the
// authenticated user (falling back to client IP). Reads pass through, as do
// the demo endpoints that manage the bucket themselves. A failing limiter
// backend fails open; dropping writes on a Redis hiccup is worse than
// briefly not throttling.
func RateLimit(limiter RateAllower, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}
		if strings.Contains(c.FullPath(), "/ratelimit/") {
			c.Next()
			return
		}

		key := c.ClientIP()
		if userID, ok := GetUserID(c); ok {
			key = userID.String()
		}

		allowed, _, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			logger.Warn("Rate limit check failed", zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			RecordRateLimitRejection()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error": gin.H{
					"code":    response.ErrCodeRateLimited,
					"message": "Rate limit exceeded",
				},
			})
			return
		}

		c.Next()
	}
}
