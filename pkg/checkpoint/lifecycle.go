package checkpoint

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Lifecycle owns the shared checkpoint store for a process. The first
// Acquire lazily constructs and initializes the store; later calls
// return the cached instance without touching the disk. Concurrent
// first calls join a single in-flight initialization. A failed
// initialization leaves the lifecycle empty so the next Acquire
// retries instead of returning a broken instance.
type Lifecycle struct {
	path   string
	logger zerolog.Logger

	group singleflight.Group

	mu    sync.Mutex
	store *Store
}

// NewLifecycle creates a lifecycle for a store at the given path
func NewLifecycle(path string, logger zerolog.Logger) *Lifecycle {
	return &Lifecycle{
		path:   path,
		logger: logger,
	}
}

func (l *Lifecycle) current() *Store {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store
}

// Acquire returns the shared store, initializing it on first use
func (l *Lifecycle) Acquire(ctx context.Context) (*Store, error) {
	if store := l.current(); store != nil {
		return store, nil
	}

	v, err, shared := l.group.Do("store", func() (interface{}, error) {
		// A finished flight may have populated the cache already
		if store := l.current(); store != nil {
			return store, nil
		}

		l.logger.Debug().Str("path", l.path).Msg("Initializing checkpoint store")

		store := Open(l.path)
		if err := store.Initialize(ctx); err != nil {
			return nil, &InitializationError{Path: l.path, Err: err}
		}

		l.mu.Lock()
		l.store = store
		l.mu.Unlock()
		return store, nil
	})
	if err != nil {
		return nil, err
	}

	if shared {
		l.logger.Debug().Msg("Joined in-flight checkpoint store initialization")
	}
	return v.(*Store), nil
}

// Close releases the store and resets the lifecycle so a subsequent
// Acquire starts fresh. Closing an empty lifecycle is a no-op.
func (l *Lifecycle) Close(ctx context.Context) error {
	// Join any in-flight initialization first: a store published by a
	// concurrent Acquire must not survive the reset still open.
	l.group.Do("store", func() (interface{}, error) {
		return nil, nil
	})

	l.mu.Lock()
	store := l.store
	l.store = nil
	l.mu.Unlock()

	if store == nil {
		return nil
	}

	l.logger.Debug().Str("path", l.path).Msg("Closing checkpoint store")
	return store.Close(ctx)
}
