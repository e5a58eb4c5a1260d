package backend

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Strategy decides which backend variant a runtime hands to its agent
// sessions. The decision is made once, when the runtime is assembled,
// and stays immutable for the runtime's lifetime; NewBackend is invoked
// once per conversation thread by the agent framework.
type Strategy interface {
	// NewBackend constructs the backend for one agent session
	NewBackend(session Session) (Backend, error)

	// Kind returns the variant this strategy produces
	Kind() Kind
}

// NewStrategy builds the backend strategy for a runtime. An empty
// workspace path selects the virtual variant: every session gets its
// own in-memory filesystem and two concurrent sessions never see each
// other's files. A non-empty path selects the directory variant: every
// session reads and writes the real directory, with virtual paths
// resolved under the root.
func NewStrategy(workspacePath string, logger zerolog.Logger) (Strategy, error) {
	if workspacePath == "" {
		logger.Debug().Msg("Using virtual filesystem backend")
		return &virtualStrategy{logger: logger}, nil
	}

	root, err := filepath.Abs(workspacePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace path: %w", err)
	}

	logger.Debug().Str("root", root).Msg("Using directory filesystem backend")
	return &directoryStrategy{root: root, logger: logger}, nil
}

type virtualStrategy struct {
	logger zerolog.Logger
}

func (s *virtualStrategy) NewBackend(session Session) (Backend, error) {
	s.logger.Debug().
		Str("thread", session.ThreadID).
		Msg("Creating virtual backend for session")

	// A fresh in-memory filesystem per session keeps threads isolated
	return &fsBackend{fs: afero.NewMemMapFs(), kind: KindVirtual}, nil
}

func (s *virtualStrategy) Kind() Kind {
	return KindVirtual
}

type directoryStrategy struct {
	root   string
	logger zerolog.Logger
}

func (s *directoryStrategy) NewBackend(session Session) (Backend, error) {
	info, err := os.Stat(s.root)
	if err != nil {
		return nil, fmt.Errorf("workspace root %s: %w", s.root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("workspace root %s is not a directory", s.root)
	}

	s.logger.Debug().
		Str("thread", session.ThreadID).
		Str("root", s.root).
		Msg("Creating directory backend for session")

	fs := afero.NewBasePathFs(afero.NewOsFs(), s.root)
	return &fsBackend{fs: fs, kind: KindDirectory}, nil
}

func (s *directoryStrategy) Kind() Kind {
	return KindDirectory
}
