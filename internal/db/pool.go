package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	connectAttempts = 5
	connectBackoff  = 2 * time.Second

	connLifetime    = time.Hour
	connIdleTimeout = 30 * time.Minute
)

// NewPool connects to PostgreSQL with bounded retries. Postgres may still be
// starting when the API container comes up, so a few attempts with backoff
// beat failing immediately. Pool bounds come from config: imports burst many
// short inserts, so maxConns should cover concurrent importers plus request
// traffic.
func NewPool(ctx context.Context, databaseURL string, maxConns, minConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	cfg.MaxConns = maxConns
	cfg.MinConns = minConns
	cfg.MaxConnLifetime = connLifetime
	cfg.MaxConnIdleTime = connIdleTimeout
	cfg.HealthCheckPeriod = time.Minute

	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		pool, err := connect(ctx, cfg)
		if err == nil {
			log.Printf("database connected (pool %d-%d conns)", minConns, maxConns)
			return pool, nil
		}
		lastErr = err

		log.Printf("database connection attempt %d/%d failed: %v", attempt, connectAttempts, err)
		if attempt < connectAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(connectBackoff):
			}
		}
	}

	return nil, fmt.Errorf("database connection failed after %d attempts: %w", connectAttempts, lastErr)
}

func connect(ctx context.Context, cfg *pgxpool.Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
