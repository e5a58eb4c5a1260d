package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/Dhineshkumaran/openwork/pkg/backend"
	"github.com/Dhineshkumaran/openwork/pkg/checkpoint"
)

// Thread is one conversation session. Each thread gets its own backend
// from the agent's strategy and its own checkpoint lineage.
type Thread struct {
	id           string
	backend      backend.Backend
	checkpointer *checkpoint.Store
}

// Thread opens a conversation thread, binding a session backend via the
// agent's strategy. A blank id gets a generated one.
func (a *Agent) Thread(threadID string) (*Thread, error) {
	if threadID == "" {
		threadID = uuid.NewString()
	}

	b, err := a.backend.NewBackend(backend.Session{ThreadID: threadID})
	if err != nil {
		return nil, fmt.Errorf("failed to create session backend: %w", err)
	}

	return &Thread{
		id:           threadID,
		backend:      b,
		checkpointer: a.checkpointer,
	}, nil
}

// ID returns the thread identifier
func (t *Thread) ID() string {
	return t.id
}

// Backend returns the thread's file backend
func (t *Thread) Backend() backend.Backend {
	return t.backend
}

// SaveState snapshots the thread's state into the checkpoint store
func (t *Thread) SaveState(ctx context.Context, state json.RawMessage) (*checkpoint.Checkpoint, error) {
	cp := &checkpoint.Checkpoint{
		ThreadID: t.id,
		State:    state,
	}
	if err := t.checkpointer.Save(ctx, cp); err != nil {
		return nil, err
	}
	return cp, nil
}

// LatestState loads the thread's most recent checkpoint
func (t *Thread) LatestState(ctx context.Context) (*checkpoint.Checkpoint, error) {
	return t.checkpointer.Latest(ctx, t.id)
}

// ClearState removes all checkpoints for the thread
func (t *Thread) ClearState(ctx context.Context) error {
	return t.checkpointer.Clear(ctx, t.id)
}
