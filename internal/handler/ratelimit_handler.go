package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"event-planner-api/internal/middleware"
	"event-planner-api/internal/ratelimit"
	"event-planner-api/internal/response"
)

type RateLimitHandler struct {
	limiter *ratelimit.Limiter
	logger  *zap.Logger
}

func NewRateLimitHandler(limiter *ratelimit.Limiter, logger *zap.Logger) *RateLimitHandler {
	return &RateLimitHandler{limiter: limiter, logger: logger}
}

// Consume handles POST /ratelimit/consume. It spends one token for the
// caller and reports the bucket state, rejecting with 429 when empty.
func (h *RateLimitHandler) Consume(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "User not authenticated")
		return
	}

	allowed, remaining, err := h.limiter.Allow(c.Request.Context(), userID.String())
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	status := ratelimit.StatusFor(remaining, h.limiter.Capacity())
	if !allowed {
		middleware.RecordRateLimitRejection()
		c.JSON(http.StatusTooManyRequests, gin.H{
			"success": false,
			"error": gin.H{
				"code":    response.ErrCodeRateLimited,
				"message": "Rate limit exceeded",
			},
			"data": status,
		})
		return
	}

	response.SendSuccess(c, http.StatusOK, status)
}

// Status handles GET /ratelimit/status without spending a token
func (h *RateLimitHandler) Status(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "User not authenticated")
		return
	}

	status, err := h.limiter.Status(c.Request.Context(), userID.String())
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, status)
}

// Reset handles POST /ratelimit/reset, refilling the caller's bucket
func (h *RateLimitHandler) Reset(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "User not authenticated")
		return
	}

	if err := h.limiter.Reset(c.Request.Context(), userID.String()); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	status, err := h.limiter.Status(c.Request.Context(), userID.String())
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, status)
}
