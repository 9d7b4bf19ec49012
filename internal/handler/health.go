package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/SmekensRuben/HotelSuite/internal/search"
)

// Health reports database, Redis, and search engine reachability. The search
// probe is informational only: a down index degrades product search, it does
// not take the API out of rotation.
func Health(db *gorm.DB, rdb *redis.Client, searchClient *search.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		checks := gin.H{
			"db":    probe(func() error { return pingDB(ctx, db) }),
			"redis": probe(func() error { return rdb.Ping(ctx).Err() }),
		}
		switch {
		case searchClient == nil:
			checks["search"] = "disabled"
		default:
			checks["search"] = probe(func() error { return searchClient.Healthy(ctx) })
		}

		status := http.StatusOK
		if checks["db"] != "up" || checks["redis"] != "up" {
			status = http.StatusServiceUnavailable
		}
		checks["ok"] = status == http.StatusOK
		c.JSON(status, checks)
	}
}

func pingDB(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func probe(fn func() error) string {
	if err := fn(); err != nil {
		return "down"
	}
	return "up"
}
