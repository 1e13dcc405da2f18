package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// RateLimit throttles requests per client IP. When the store fails the request is
// rejected with 500 rather than let through.
func RateLimit(l *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		logger := GetLoggerFromCtx(c.Request.Context()).With(slog.String("ip", ip))

		state, err := l.Get(c.Request.Context(), ip)
		if err != nil {
			logger.Error("Rate limit store failed", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error during rate limit check"})
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(state.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(state.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(state.Reset, 10))
		if !state.Reached {
			c.Next()
			return
		}

		retryAfter := time.Until(time.Unix(state.Reset, 0)).Round(time.Second)
		if retryAfter < time.Second {
			retryAfter = time.Second
		}
		c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
		logger.Warn("Rate limit exceeded", slog.Int64("limit", state.Limit), slog.Duration("retry_after", retryAfter))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please try again later."})
	}
}
