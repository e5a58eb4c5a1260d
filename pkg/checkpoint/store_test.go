package checkpoint

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	tmpDir, err := os.MkdirTemp("", "checkpoint-test-*")
	require.NoError(t, err)

	store := Open(filepath.Join(tmpDir, "checkpoints.db"))
	require.NoError(t, store.Initialize(context.Background()))

	cleanup := func() {
		store.Close(context.Background())
		os.RemoveAll(tmpDir)
	}
	return store, cleanup
}

func TestStoreInitialize(t *testing.T) {
	t.Run("should create the database and parent directories", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "checkpoint-test-*")
		require.NoError(t, err)
		defer os.RemoveAll(tmpDir)

		path := filepath.Join(tmpDir, "nested", "checkpoints.db")
		store := Open(path)
		require.NoError(t, store.Initialize(context.Background()))
		defer store.Close(context.Background())

		_, err = os.Stat(path)
		assert.NoError(t, err)
	})

	t.Run("should be idempotent while open", func(t *testing.T) {
		store, cleanup := setupTestStore(t)
		defer cleanup()

		assert.NoError(t, store.Initialize(context.Background()))
	})
}

func TestStoreSaveLoad(t *testing.T) {
	t.Run("should round-trip a checkpoint", func(t *testing.T) {
		store, cleanup := setupTestStore(t)
		defer cleanup()

		ctx := context.Background()
		cp := &Checkpoint{
			ThreadID: "thread-1",
			State:    json.RawMessage(`{"messages":["hello"]}`),
		}
		require.NoError(t, store.Save(ctx, cp))
		assert.NotEmpty(t, cp.ID)
		assert.False(t, cp.CreatedAt.IsZero())

		loaded, err := store.Load(ctx, cp.ID)
		require.NoError(t, err)
		assert.Equal(t, cp.ThreadID, loaded.ThreadID)
		assert.JSONEq(t, string(cp.State), string(loaded.State))
	})

	t.Run("should require a thread id", func(t *testing.T) {
		store, cleanup := setupTestStore(t)
		defer cleanup()

		err := store.Save(context.Background(), &Checkpoint{State: json.RawMessage(`{}`)})
		assert.Error(t, err)
	})

	t.Run("should return ErrNotFound for an unknown id", func(t *testing.T) {
		store, cleanup := setupTestStore(t)
		defer cleanup()

		_, err := store.Load(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStoreLatest(t *testing.T) {
	t.Run("should return the most recent checkpoint for a thread", func(t *testing.T) {
		store, cleanup := setupTestStore(t)
		defer cleanup()

		ctx := context.Background()
		base := time.Now().UTC()
		for i, state := range []string{`{"n":1}`, `{"n":2}`, `{"n":3}`} {
			require.NoError(t, store.Save(ctx, &Checkpoint{
				ThreadID:  "thread-1",
				State:     json.RawMessage(state),
				CreatedAt: base.Add(time.Duration(i) * time.Second),
			}))
		}
		require.NoError(t, store.Save(ctx, &Checkpoint{
			ThreadID: "thread-2",
			State:    json.RawMessage(`{"other":true}`),
		}))

		latest, err := store.Latest(ctx, "thread-1")
		require.NoError(t, err)
		assert.JSONEq(t, `{"n":3}`, string(latest.State))
	})

	t.Run("should return ErrNotFound for an empty thread", func(t *testing.T) {
		store, cleanup := setupTestStore(t)
		defer cleanup()

		_, err := store.Latest(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStoreList(t *testing.T) {
	t.Run("should list newest first and honor the limit", func(t *testing.T) {
		store, cleanup := setupTestStore(t)
		defer cleanup()

		ctx := context.Background()
		base := time.Now().UTC()
		for i := 0; i < 5; i++ {
			require.NoError(t, store.Save(ctx, &Checkpoint{
				ThreadID:  "thread-1",
				State:     json.RawMessage(`{}`),
				CreatedAt: base.Add(time.Duration(i) * time.Second),
			}))
		}

		all, err := store.List(ctx, "thread-1", 0)
		require.NoError(t, err)
		assert.Len(t, all, 5)

		limited, err := store.List(ctx, "thread-1", 2)
		require.NoError(t, err)
		require.Len(t, limited, 2)
		assert.True(t, !limited[0].CreatedAt.Before(limited[1].CreatedAt))
	})
}

func TestStoreDeleteClear(t *testing.T) {
	t.Run("should delete a single checkpoint", func(t *testing.T) {
		store, cleanup := setupTestStore(t)
		defer cleanup()

		ctx := context.Background()
		cp := &Checkpoint{ThreadID: "thread-1", State: json.RawMessage(`{}`)}
		require.NoError(t, store.Save(ctx, cp))
		require.NoError(t, store.Delete(ctx, cp.ID))

		_, err := store.Load(ctx, cp.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("should clear only the named thread", func(t *testing.T) {
		store, cleanup := setupTestStore(t)
		defer cleanup()

		ctx := context.Background()
		require.NoError(t, store.Save(ctx, &Checkpoint{ThreadID: "thread-1", State: json.RawMessage(`{}`)}))
		require.NoError(t, store.Save(ctx, &Checkpoint{ThreadID: "thread-2", State: json.RawMessage(`{}`)}))

		require.NoError(t, store.Clear(ctx, "thread-1"))

		one, err := store.List(ctx, "thread-1", 0)
		require.NoError(t, err)
		assert.Empty(t, one)

		two, err := store.List(ctx, "thread-2", 0)
		require.NoError(t, err)
		assert.Len(t, two, 1)
	})
}

func TestStoreClosed(t *testing.T) {
	t.Run("should reject operations after close", func(t *testing.T) {
		store, cleanup := setupTestStore(t)
		defer cleanup()

		require.NoError(t, store.Close(context.Background()))

		err := store.Save(context.Background(), &Checkpoint{ThreadID: "t", State: json.RawMessage(`{}`)})
		assert.ErrorIs(t, err, ErrStoreClosed)
	})

	t.Run("should no-op closing an uninitialized store", func(t *testing.T) {
		store := Open(filepath.Join(os.TempDir(), "never-opened.db"))
		assert.NoError(t, store.Close(context.Background()))
	})
}
