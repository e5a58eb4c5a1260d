package runtime

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/Dhineshkumaran/openwork/pkg/agent"
	"github.com/Dhineshkumaran/openwork/pkg/backend"
	"github.com/Dhineshkumaran/openwork/pkg/checkpoint"
	"github.com/Dhineshkumaran/openwork/pkg/model"
)

// CheckpointFilename is the constant database filename placed under the
// host application's data directory.
const CheckpointFilename = "checkpoints.db"

// Config holds factory configuration
type Config struct {
	// Credentials supplies the default model and provider API keys
	Credentials model.CredentialSource

	// DataDir is the host application's user-data directory; the
	// checkpoint database lives at DataDir/checkpoints.db
	DataDir string

	// Logger for diagnostics. Optional.
	Logger zerolog.Logger
}

// Options selects what to assemble for one runtime
type Options struct {
	// ModelID names the model; empty selects the configured default
	ModelID string

	// WorkspacePath binds sessions to a real directory; empty keeps
	// sessions on isolated in-memory filesystems
	WorkspacePath string
}

// Factory assembles agent runtimes. One factory per process owns the
// shared checkpoint store lifecycle.
type Factory struct {
	resolver  *model.Resolver
	lifecycle *checkpoint.Lifecycle
	logger    zerolog.Logger
}

// New creates a runtime factory
func New(cfg Config) (*Factory, error) {
	if cfg.Credentials == nil {
		return nil, fmt.Errorf("credential source is required")
	}
	if cfg.DataDir == "" {
		return nil, fmt.Errorf("data directory is required")
	}

	resolver, err := model.NewResolver(cfg.Credentials, cfg.Logger)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(cfg.DataDir, CheckpointFilename)

	return &Factory{
		resolver:  resolver,
		lifecycle: checkpoint.NewLifecycle(path, cfg.Logger),
		logger:    cfg.Logger,
	}, nil
}

// CreateAgentRuntime assembles an agent: model resolution, then
// checkpoint store acquisition, then backend strategy, then the agent
// constructor. Each step must complete before the next starts, and any
// failure surfaces immediately with no partial agent constructed.
func (f *Factory) CreateAgentRuntime(ctx context.Context, opts Options) (*agent.Agent, error) {
	resolved, err := f.resolver.Resolve(opts.ModelID)
	if err != nil {
		return nil, err
	}
	f.logger.Debug().Str("model", resolved.ID).Msg("Model resolved")

	store, err := f.lifecycle.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	f.logger.Debug().Str("path", store.Path()).Msg("Checkpoint store ready")

	strategy, err := backend.NewStrategy(opts.WorkspacePath, f.logger)
	if err != nil {
		return nil, err
	}
	f.logger.Debug().Str("backend", string(strategy.Kind())).Msg("Backend strategy selected")

	a, err := agent.New(agent.Config{
		Model:        resolved,
		Checkpointer: store,
		Backend:      strategy,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to construct agent: %w", err)
	}

	f.logger.Debug().Msg("Agent runtime assembled")
	return a, nil
}

// Close releases the shared checkpoint store. A later
// CreateAgentRuntime call starts a fresh store lifecycle.
func (f *Factory) Close(ctx context.Context) error {
	return f.lifecycle.Close(ctx)
}
