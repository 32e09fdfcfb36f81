package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type HealthHandler struct {
	pool    *pgxpool.Pool
	rdb     *redis.Client
	startAt time.Time
}

func NewHealthHandler(pool *pgxpool.Pool, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{
		pool:    pool,
		rdb:     rdb,
		startAt: time.Now(),
	}
}

// Live handles GET /health/live.
func (h *HealthHandler) Live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready handles GET /health/ready. Degraded when Postgres or Redis is
// unreachable; a disabled Redis does not degrade readiness.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	dbCheck, dbUp := pingCheck(ctx, func(ctx context.Context) error {
		return h.pool.Ping(ctx)
	})

	overall := "healthy"
	if !dbUp {
		overall = "degraded"
	}

	var redisCheck fiber.Map
	if h.rdb == nil {
		redisCheck = fiber.Map{"status": "disabled"}
	} else {
		var redisUp bool
		redisCheck, redisUp = pingCheck(ctx, func(ctx context.Context) error {
			return h.rdb.Ping(ctx).Err()
		})
		if !redisUp {
			overall = "degraded"
		}
	}

	status := fiber.StatusOK
	if overall != "healthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"database": dbCheck,
			"redis":    redisCheck,
		},
		"uptime_seconds": int(time.Since(h.startAt).Seconds()),
	})
}

func pingCheck(ctx context.Context, ping func(context.Context) error) (fiber.Map, bool) {
	start := time.Now()
	err := ping(ctx)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return fiber.Map{
			"status":     "down",
			"latency_ms": latency,
			"error":      "connection failed",
		}, false
	}
	return fiber.Map{
		"status":     "up",
		"latency_ms": latency,
	}, true
}
