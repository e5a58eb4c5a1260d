package checkpoint

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLifecycle(t *testing.T) (*Lifecycle, string, func()) {
	tmpDir, err := os.MkdirTemp("", "lifecycle-test-*")
	require.NoError(t, err)

	logger := zerolog.New(os.Stdout).Level(zerolog.Disabled)
	lc := NewLifecycle(filepath.Join(tmpDir, "checkpoints.db"), logger)

	cleanup := func() {
		lc.Close(context.Background())
		os.RemoveAll(tmpDir)
	}
	return lc, tmpDir, cleanup
}

func TestLifecycleAcquire(t *testing.T) {
	t.Run("should return the identical instance on repeated calls", func(t *testing.T) {
		lc, _, cleanup := setupTestLifecycle(t)
		defer cleanup()

		ctx := context.Background()
		first, err := lc.Acquire(ctx)
		require.NoError(t, err)

		second, err := lc.Acquire(ctx)
		require.NoError(t, err)

		assert.Same(t, first, second)
	})

	t.Run("should hand one instance to concurrent callers", func(t *testing.T) {
		lc, _, cleanup := setupTestLifecycle(t)
		defer cleanup()

		const callers = 16
		stores := make([]*Store, callers)
		errs := make([]error, callers)

		var wg sync.WaitGroup
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				stores[i], errs[i] = lc.Acquire(context.Background())
			}(i)
		}
		wg.Wait()

		for i := 0; i < callers; i++ {
			require.NoError(t, errs[i])
			assert.Same(t, stores[0], stores[i])
		}
	})
}

func TestLifecycleClose(t *testing.T) {
	t.Run("should recreate the store after close", func(t *testing.T) {
		lc, _, cleanup := setupTestLifecycle(t)
		defer cleanup()

		ctx := context.Background()
		first, err := lc.Acquire(ctx)
		require.NoError(t, err)

		require.NoError(t, lc.Close(ctx))

		second, err := lc.Acquire(ctx)
		require.NoError(t, err)

		assert.NotSame(t, first, second)
	})

	t.Run("should no-op when nothing was acquired", func(t *testing.T) {
		lc, _, cleanup := setupTestLifecycle(t)
		defer cleanup()

		assert.NoError(t, lc.Close(context.Background()))
	})

	t.Run("should not leave a store open when close overlaps acquire", func(t *testing.T) {
		lc, _, cleanup := setupTestLifecycle(t)
		defer cleanup()

		ctx := context.Background()
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if store, err := lc.Acquire(ctx); err == nil {
					_ = store
				}
			}()
			wg.Add(1)
			go func() {
				defer wg.Done()
				lc.Close(ctx)
			}()
		}
		wg.Wait()

		// Whatever interleaving happened, the lifecycle must still
		// hand out a fresh working store afterwards
		require.NoError(t, lc.Close(ctx))
		store, err := lc.Acquire(ctx)
		require.NoError(t, err)
		assert.NoError(t, store.Save(ctx, &Checkpoint{ThreadID: "t", State: []byte(`{}`)}))
	})
}

func TestLifecycleInitFailure(t *testing.T) {
	t.Run("should not poison the singleton on failed initialization", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "lifecycle-test-*")
		require.NoError(t, err)
		defer os.RemoveAll(tmpDir)

		// A regular file where the parent directory should be makes
		// initialization fail
		blocker := filepath.Join(tmpDir, "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

		logger := zerolog.New(os.Stdout).Level(zerolog.Disabled)
		lc := NewLifecycle(filepath.Join(blocker, "checkpoints.db"), logger)
		defer lc.Close(context.Background())

		ctx := context.Background()
		_, err = lc.Acquire(ctx)
		require.Error(t, err)

		var initErr *InitializationError
		assert.ErrorAs(t, err, &initErr)

		// Clearing the obstruction lets a later acquire succeed
		require.NoError(t, os.Remove(blocker))

		store, err := lc.Acquire(ctx)
		require.NoError(t, err)
		assert.NotNil(t, store)
	})
}
