//go:build integration

package app_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"market-dispatch/internal/app"
	"market-dispatch/internal/config"
)

// Requires a reachable database (see DB_* env vars): builds the full
// container and checks the core pieces resolve.
func TestMustBuildContainer_Integration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c := app.MustBuildContainer(ctx)
	require.NotNil(t, c)

	err := c.Invoke(func(cfg *config.Config, pool *pgxpool.Pool, srv *http.Server) {
		require.NotNil(t, cfg)
		require.NotNil(t, pool)
		require.NotNil(t, srv)
	})
	require.NoError(t, err)
}
