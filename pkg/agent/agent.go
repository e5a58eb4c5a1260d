package agent

import (
	"fmt"

	"github.com/Dhineshkumaran/openwork/pkg/backend"
	"github.com/Dhineshkumaran/openwork/pkg/checkpoint"
	"github.com/Dhineshkumaran/openwork/pkg/model"
)

// Config holds everything an agent needs at construction time
type Config struct {
	// Model is the resolved model. A nil client with a non-empty ID is
	// accepted: resolution of bare identifiers is deferred to the
	// provider layer at call time.
	Model model.Resolved

	// Checkpointer persists thread state across restarts
	Checkpointer *checkpoint.Store

	// Backend builds the file backend for each conversation thread
	Backend backend.Strategy
}

// Agent is an assembled agent runtime handle. It is bound to one model
// client, one checkpoint store, and one backend strategy for its whole
// lifetime.
type Agent struct {
	model        model.Resolved
	checkpointer *checkpoint.Store
	backend      backend.Strategy
}

// New constructs an agent from a complete configuration
func New(cfg Config) (*Agent, error) {
	if cfg.Model.ID == "" {
		return nil, fmt.Errorf("model is required")
	}
	if cfg.Checkpointer == nil {
		return nil, fmt.Errorf("checkpointer is required")
	}
	if cfg.Backend == nil {
		return nil, fmt.Errorf("backend strategy is required")
	}

	return &Agent{
		model:        cfg.Model,
		checkpointer: cfg.Checkpointer,
		backend:      cfg.Backend,
	}, nil
}

// Model returns the resolved model the agent is bound to
func (a *Agent) Model() model.Resolved {
	return a.model
}

// Checkpointer returns the checkpoint store the agent persists to
func (a *Agent) Checkpointer() *checkpoint.Store {
	return a.checkpointer
}

// BackendKind returns the backend variant the agent's sessions use
func (a *Agent) BackendKind() backend.Kind {
	return a.backend.Kind()
}
