//go:build integration

package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"market-dispatch/internal/repository"
)

func TestBotSessionRepo_GetAndPut(t *testing.T) {
	require.NotNil(t, tcPool, "tcPool must be initialized in TestMain")

	ctx := context.Background()
	repo := repository.NewBotSessionRepo(tcPool)

	_, err := tcPool.Exec(ctx, `TRUNCATE bot_sessions`)
	require.NoError(t, err)

	state, err := repo.Get(ctx, 777)
	require.NoError(t, err)
	require.Empty(t, state, "unknown chat has no session")

	require.NoError(t, repo.Put(ctx, 777, "awaiting_contact"))

	state, err = repo.Get(ctx, 777)
	require.NoError(t, err)
	require.Equal(t, "awaiting_contact", state)

	// upsert перезаписывает состояние
	require.NoError(t, repo.Put(ctx, 777, "linked"))

	state, err = repo.Get(ctx, 777)
	require.NoError(t, err)
	require.Equal(t, "linked", state)
}
