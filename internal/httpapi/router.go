package httpapi

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"smuggr.xyz/timeweave/internal/logging"
	"smuggr.xyz/timeweave/internal/metrics"
)

// NewRouter wires middleware and routes in the order noah-isme's
// api-gateway main.go establishes them: recovery, request id, request
// logging, metrics, then routes.
func NewRouter(logger *zap.Logger, m *metrics.Metrics, h *Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.RequestID())
	r.Use(logging.GinMiddleware(logger))
	r.Use(m.Middleware())

	r.GET("/health", h.Health)
	r.POST("/solve", h.Solve)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	return r
}
