package backend

import (
	"fmt"
	"os"
	"path"

	"github.com/spf13/afero"
)

// Kind identifies the backend variant
type Kind string

const (
	// KindVirtual is an in-memory backend with no on-disk footprint,
	// isolated per conversation thread
	KindVirtual Kind = "virtual"

	// KindDirectory maps agent-visible virtual paths onto a real
	// directory on disk
	KindDirectory Kind = "directory"
)

// Session carries the per-session context the agent framework hands to
// the backend factory when a conversation thread starts
type Session struct {
	ThreadID string
}

// Backend is the file capability handed to an agent session. All paths
// are virtual-absolute: they begin with "/" regardless of where the
// backend stores its files.
type Backend interface {
	// ReadFile returns the contents of a file
	ReadFile(path string) ([]byte, error)

	// WriteFile writes a file, creating parent directories as needed
	WriteFile(path string, data []byte) error

	// List returns the names of entries in a directory
	List(dir string) ([]string, error)

	// Remove deletes a file or empty directory
	Remove(path string) error

	// Stat returns file metadata
	Stat(path string) (os.FileInfo, error)

	// Kind returns the backend variant
	Kind() Kind
}

// fsBackend implements Backend over an afero filesystem
type fsBackend struct {
	fs   afero.Fs
	kind Kind
}

func normalize(p string) (string, error) {
	if p == "" {
		return "", fmt.Errorf("path is required")
	}
	cleaned := path.Clean("/" + p)
	return cleaned, nil
}

func (b *fsBackend) ReadFile(p string) ([]byte, error) {
	cleaned, err := normalize(p)
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(b.fs, cleaned)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", cleaned, err)
	}
	return data, nil
}

func (b *fsBackend) WriteFile(p string, data []byte) error {
	cleaned, err := normalize(p)
	if err != nil {
		return err
	}
	if err := b.fs.MkdirAll(path.Dir(cleaned), 0755); err != nil {
		return fmt.Errorf("failed to create directories for %s: %w", cleaned, err)
	}
	if err := afero.WriteFile(b.fs, cleaned, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", cleaned, err)
	}
	return nil
}

func (b *fsBackend) List(dir string) ([]string, error) {
	cleaned, err := normalize(dir)
	if err != nil {
		return nil, err
	}
	entries, err := afero.ReadDir(b.fs, cleaned)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", cleaned, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

func (b *fsBackend) Remove(p string) error {
	cleaned, err := normalize(p)
	if err != nil {
		return err
	}
	if err := b.fs.Remove(cleaned); err != nil {
		return fmt.Errorf("failed to remove %s: %w", cleaned, err)
	}
	return nil
}

func (b *fsBackend) Stat(p string) (os.FileInfo, error) {
	cleaned, err := normalize(p)
	if err != nil {
		return nil, err
	}
	info, err := b.fs.Stat(cleaned)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", cleaned, err)
	}
	return info, nil
}

func (b *fsBackend) Kind() Kind {
	return b.kind
}
