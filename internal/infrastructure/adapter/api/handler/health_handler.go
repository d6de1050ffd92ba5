package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/port/core"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/api/dto"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/database"
)

// HealthChecker reports whether the database is reachable
type HealthChecker interface {
	Health(ctx context.Context) (database.PoolStats, error)
}

// HealthHandler serves the unauthenticated liveness check
type HealthHandler struct {
	checker HealthChecker
	logger  coreport.Logger
}

func NewHealthHandler(checker HealthChecker, logger coreport.Logger) *HealthHandler {
	return &HealthHandler{checker: checker, logger: logger}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	stats, err := h.checker.Health(c.Request.Context())
	if err != nil {
		h.logger.Error("Health check failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusServiceUnavailable, dto.Failure("database unavailable", nil))
		return
	}

	c.JSON(http.StatusOK, dto.Success("ok", gin.H{"database": stats}))
}
