package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

const healthCheckTimeout = 2 * time.Second

func getHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Ledger engine API v1"})
}

func getHealth(db HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.String(http.StatusOK, "OK")
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			middleware.GetLoggerFromCtx(ctx).Error("Health check failed", slog.String("error", err.Error()))
			c.String(http.StatusServiceUnavailable, "database unavailable")
			return
		}
		c.String(http.StatusOK, "OK")
	}
}

// registerHomeRoutes registers the public root and health routes.
func registerHomeRoutes(r *gin.Engine, db HealthChecker) {
	r.GET("/", getHome)
	r.GET("/health", getHealth(db))
}
