package model

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedProvider is returned when a model identifier names a
	// recognized provider that is not implemented yet
	ErrUnsupportedProvider = errors.New("provider not yet supported - use anthropic or openai")

	// ErrNoModel is returned when no model is named and no default
	// model is configured
	ErrNoModel = errors.New("no model specified and no default model configured")
)

// MissingCredentialError is returned when a classified provider has no
// configured API key
type MissingCredentialError struct {
	Provider string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("no API key configured for provider %q", e.Provider)
}

// IsMissingCredential reports whether err is a MissingCredentialError
func IsMissingCredential(err error) bool {
	var mce *MissingCredentialError
	return errors.As(err, &mce)
}
