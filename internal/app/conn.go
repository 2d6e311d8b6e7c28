package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"lingolog.app/backend/internal/cli"
	"lingolog.app/backend/internal/config"
	"lingolog.app/backend/internal/db"
)

// connect loads configuration and opens a database pool bounded by timeout.
// The returned cancel func owns the context; the caller owns the pool.
func connect(timeout time.Duration, envLoader *cli.EnvLoader) (context.Context, context.CancelFunc, *config.Config, *db.Pool, error) {
	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		cancel()
		return nil, nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return ctx, cancel, cfg, pool, nil
}
