package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"market-dispatch/internal/repository"
)

// тестовый seam
var newPool = repository.NewPool

// connectDbWithRetry dials the database up to retries times, sleeping
// delay between attempts. Each attempt gets its own timeout so a hung
// dial cannot eat the whole retry budget.
func connectDbWithRetry(ctx context.Context, dsn string, retries int, delay time.Duration) (*pgxpool.Pool, error) {
	const attemptTimeout = 3 * time.Second

	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
		pool, err := newPool(attemptCtx, dsn)
		cancel()
		if err == nil {
			log.Printf("database ready, attempt %d", attempt)
			return pool, nil
		}

		lastErr = err
		log.Printf("database dial %d/%d: %v", attempt, retries, err)
		if attempt == retries {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	return nil, fmt.Errorf("db connect failed after %d attempts: %w", retries, lastErr)
}
