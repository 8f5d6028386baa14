package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports readiness: 200 while both Postgres and Redis answer a
// ping, 503 otherwise. The body names the failing dependency so an
// operator can tell which one dropped without reading logs.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		postgres := "ok"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			postgres = "unreachable"
		}

		cache := "ok"
		if rdb.Ping(ctx).Err() != nil {
			cache = "unreachable"
		}

		status := http.StatusOK
		if postgres != "ok" || cache != "ok" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"status":   http.StatusText(status),
			"postgres": postgres,
			"redis":    cache,
		})
	}
}
