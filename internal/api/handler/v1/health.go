package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/mongo/inventory/internal/api/handler/v1/response"
)

// HandleHealthcheck godoc
// @Summary      Liveness probe
// @Tags         probes
// @Produce      json
// @Success      200  {object}  response.Health
// @Router       /healthz [get]
func HandleHealthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, response.Health{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
	})
}

type ReadinessHandler struct {
	ready func() bool
}

// NewReadinessHandler answers with the value of ready at request time.
func NewReadinessHandler(ready func() bool) *ReadinessHandler {
	return &ReadinessHandler{
		ready: ready,
	}
}

// HandleReady godoc
// @Summary      Readiness probe
// @Description  Ready only while the persistence connection is connected.
// @Tags         probes
// @Produce      plain
// @Success      200  {string}  string  "ready"
// @Failure      503  {string}  string  "not ready"
// @Router       /readyz [get]
func (h *ReadinessHandler) HandleReady(ctx *gin.Context) {
	if !h.ready() {
		ctx.String(http.StatusServiceUnavailable, "not ready")
		return
	}

	ctx.String(http.StatusOK, "ready")
}
