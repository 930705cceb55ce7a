package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	redisclient "user-profile-service/pkg/redis"
)

// healthCheckTimeout bounds each dependency probe.
const healthCheckTimeout = 2 * time.Second

// HealthHandler reports liveness and readiness for operational checks.
// Liveness never touches dependencies; readiness pings the store and,
// when enabled, the cache.
type HealthHandler struct {
	db      *gorm.DB
	redis   *redisclient.Client
	service string
	log     *zap.Logger
}

// NewHealthHandler creates a new HealthHandler. redis may be nil when the
// cache is disabled.
func NewHealthHandler(db *gorm.DB, redis *redisclient.Client, service string, log *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:      db,
		redis:   redis,
		service: service,
		log:     log,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.service,
	})
}

// Live handles GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"alive": true})
}

// Ready handles GET /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	checks := gin.H{}
	ready := true

	if err := h.pingDatabase(ctx); err != nil {
		h.log.Warn("readiness check failed: database", zap.Error(err))
		checks["database"] = "unreachable"
		ready = false
	} else {
		checks["database"] = "ok"
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx); err != nil {
			h.log.Warn("readiness check failed: redis", zap.Error(err))
			checks["redis"] = "unreachable"
			ready = false
		} else {
			checks["redis"] = "ok"
		}
	}

	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"ready": ready, "checks": checks})
}

func (h *HealthHandler) pingDatabase(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
