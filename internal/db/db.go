package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolOptions tunes the connection pool. Zero values keep the pgx defaults.
type PoolOptions struct {
	MaxConns        int32
	MaxConnLifetime time.Duration
	// ConnectAttempts bounds how often the initial ping is tried; at least once.
	ConnectAttempts int
	RetryDelay      time.Duration
}

const pingTimeout = 5 * time.Second

// NewPool creates a pgx pool and waits until the database answers a ping.
// Sessions run in UTC so date and time columns read back as written.
func NewPool(ctx context.Context, dsn string, opts PoolOptions) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	cfg.ConnConfig.RuntimeParams["timezone"] = "UTC"
	if _, ok := cfg.ConnConfig.RuntimeParams["application_name"]; !ok {
		cfg.ConnConfig.RuntimeParams["application_name"] = "courtmaster"
	}
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}
	if opts.MaxConnLifetime > 0 {
		cfg.MaxConnLifetime = opts.MaxConnLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := waitForPing(ctx, pool, opts); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

type pinger interface {
	Ping(ctx context.Context) error
}

func waitForPing(ctx context.Context, p pinger, opts PoolOptions) error {
	attempts := max(opts.ConnectAttempts, 1)
	delay := opts.RetryDelay
	if delay <= 0 {
		delay = 2 * time.Second
	}

	var err error
	for i := 1; i <= attempts; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err = p.Ping(pingCtx)
		cancel()
		if err == nil {
			return nil
		}
		if i == attempts {
			break
		}

		log.Printf("database not ready (attempt %d/%d): %v", i, attempts, err)
		select {
		case <-ctx.Done():
			return fmt.Errorf("failed to ping database: %w", ctx.Err())
		case <-time.After(delay):
		}
	}
	return fmt.Errorf("failed to ping database after %d attempts: %w", attempts, err)
}
