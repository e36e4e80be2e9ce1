package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/yizeng/gab/gin/mongo/inventory/internal/api/handler/v1/response"
)

// RateLimit shares one token bucket across all clients. A zero limit turns
// the middleware into a no-op.
func RateLimit(limit float64, burst int) gin.HandlerFunc {
	if limit <= 0 {
		return func(ctx *gin.Context) { ctx.Next() }
	}

	limiter := rate.NewLimiter(rate.Limit(limit), burst)

	return func(ctx *gin.Context) {
		if !limiter.Allow() {
			rateLimitRejects.Inc()
			ctx.Header("Retry-After", "1")
			response.RenderErr(ctx, response.ErrTooManyRequests())
			return
		}

		ctx.Header("X-RateLimit-Limit", strconv.Itoa(int(limit)))
		ctx.Header("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))

		ctx.Next()
	}
}
