package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/S-chezDev/grandmas-liquors-sub000/internal/worker"
)

// Health reports DB and Redis connectivity plus the dead-letter backlog of
// the job queues. Returns 503 when either store is unreachable.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbOK := true
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			dbOK = false
		}

		redisOK := rdb.Ping(ctx).Err() == nil

		body := gin.H{
			"ok":    dbOK && redisOK,
			"db":    estadoConexion(dbOK),
			"redis": estadoConexion(redisOK),
		}
		if redisOK {
			body["dlq"] = worker.PendientesDLQ(ctx, rdb)
		}

		status := http.StatusOK
		if !dbOK || !redisOK {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, body)
	}
}

func estadoConexion(ok bool) string {
	if ok {
		return "connected"
	}
	return "error"
}
