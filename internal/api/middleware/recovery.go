package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/yizeng/gab/gin/mongo/inventory/internal/api/handler/v1/response"
)

var panicRecoveries = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "inventory_panic_recoveries_total",
		Help: "Total number of panics recovered in HTTP handlers",
	},
)

// Recovery turns a panic into the generic 500 body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(ctx *gin.Context, recovered interface{}) {
		panicRecoveries.Inc()

		var err error
		switch v := recovered.(type) {
		case error:
			err = fmt.Errorf("panic: %w", v)
		default:
			err = fmt.Errorf("panic: %v", v)
		}

		response.RenderErr(ctx, response.ErrInternalServerError(err))
	})
}
