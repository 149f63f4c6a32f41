package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReactionRepository_Increment(t *testing.T) {
	store := setupTestStore(t)
	repo := store.Reactions
	ctx := context.Background()

	t.Run("unseen pair reads zero", func(t *testing.T) {
		count, err := repo.Get(ctx, 1, 99)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("deltas accumulate", func(t *testing.T) {
		require.NoError(t, repo.Increment(ctx, 1, 2, 3))
		require.NoError(t, repo.Increment(ctx, 1, 2, 2))

		count, err := repo.Get(ctx, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(5), count)
	})

	t.Run("pairs are independent", func(t *testing.T) {
		require.NoError(t, repo.Increment(ctx, 2, 2, 1))

		count, err := repo.Get(ctx, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(5), count)
	})

	t.Run("negative delta clamps at zero", func(t *testing.T) {
		require.NoError(t, repo.Increment(ctx, 1, 2, -3))
		count, err := repo.Get(ctx, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		require.NoError(t, repo.Increment(ctx, 1, 2, -10))
		count, err = repo.Get(ctx, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)

		require.NoError(t, repo.Increment(ctx, 3, 3, -4))
		count, err = repo.Get(ctx, 3, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})
}

func TestReactionRepository_ConcurrentIncrements(t *testing.T) {
	store := setupTestStore(t)
	repo := store.Reactions
	ctx := context.Background()

	const workers, perWorker = 8, 25

	var wg sync.WaitGroup
	errs := make(chan error, workers*perWorker)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				if err := repo.Increment(ctx, 10, 20, 1); err != nil {
					errs <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	count, err := repo.Get(ctx, 10, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(workers*perWorker), count)
}

func TestReactionRepository_Listing(t *testing.T) {
	store := setupTestStore(t)
	repo := store.Reactions
	ctx := context.Background()

	require.NoError(t, repo.Increment(ctx, 1, 100, 2))
	require.NoError(t, repo.Increment(ctx, 1, 101, 5))
	require.NoError(t, repo.Increment(ctx, 1, 102, 2))
	require.NoError(t, repo.Increment(ctx, 2, 100, 1))

	counts, err := repo.ListGuild(ctx, 1)
	require.NoError(t, err)
	require.Len(t, counts, 3)
	assert.Equal(t, int64(101), counts[0].UserID)
	assert.Equal(t, int64(5), counts[0].Count)
	assert.Equal(t, int64(100), counts[1].UserID)
	assert.Equal(t, int64(102), counts[2].UserID)
	assert.NotNil(t, counts[0].LastReactionAt)

	empty, err := repo.ListGuild(ctx, 404)
	require.NoError(t, err)
	assert.Empty(t, empty)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Len(t, all[1], 3)
	require.Len(t, all[2], 1)
	assert.Equal(t, int64(1), all[2][0].Count)
}
