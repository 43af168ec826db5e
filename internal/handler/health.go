package handler

import (
	"context"
	"net/http"
	"time"

	"posadmin/internal/config"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Health reports process liveness and database connectivity. It never exposes
// credentials or connection strings.
func Health(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "disconnected"
		}

		status := http.StatusOK
		overall := "ok"
		if dbStatus != "connected" {
			status = http.StatusServiceUnavailable
			overall = "degraded"
		}

		c.JSON(status, gin.H{
			"status":      overall,
			"database":    dbStatus,
			"environment": cfg.Env,
			"version":     cfg.Version,
		})
	}
}
