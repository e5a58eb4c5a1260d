package model

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Resolver resolves model identifiers to configured provider clients
type Resolver struct {
	credentials CredentialSource
	logger      zerolog.Logger
}

// NewResolver creates a new resolver over a credential source
func NewResolver(credentials CredentialSource, logger zerolog.Logger) (*Resolver, error) {
	if credentials == nil {
		return nil, fmt.Errorf("credential source is required")
	}
	return &Resolver{
		credentials: credentials,
		logger:      logger,
	}, nil
}

// Resolve maps a model identifier to a configured provider client. An
// empty identifier substitutes the configured default model. Identifiers
// with an unrecognized prefix are returned unchanged with a nil client;
// the agent constructor accepts bare identifiers for providers this
// resolver does not special-case.
//
// Resolution is synchronous and never retries: a missing credential or
// an unsupported provider is an immediate hard failure.
func (r *Resolver) Resolve(modelID string) (Resolved, error) {
	if modelID == "" {
		modelID = r.credentials.DefaultModelID()
		if modelID == "" {
			return Resolved{}, ErrNoModel
		}
	}

	provider := Classify(modelID)

	switch provider {
	case ProviderAnthropic, ProviderOpenAI:
		key, ok := r.credentials.APIKey(provider.String())

		r.logger.Debug().
			Str("model", modelID).
			Str("provider", provider.String()).
			Bool("credential_present", ok).
			Msg("Resolved model provider")

		if !ok {
			return Resolved{}, &MissingCredentialError{Provider: provider.String()}
		}

		resolved := Resolved{ID: modelID, Provider: provider}
		if provider == ProviderAnthropic {
			resolved.Client = NewAnthropicClient(modelID, key)
		} else {
			resolved.Client = NewOpenAIClient(modelID, key)
		}
		return resolved, nil

	case ProviderGemini:
		r.logger.Debug().
			Str("model", modelID).
			Str("provider", provider.String()).
			Msg("Model provider not supported")

		return Resolved{}, fmt.Errorf("model %q: %w", modelID, ErrUnsupportedProvider)

	default:
		// Unrecognized prefix: hand the identifier through unresolved
		r.logger.Debug().
			Str("model", modelID).
			Msg("Passing unrecognized model identifier through")

		return Resolved{ID: modelID, Provider: ProviderUnknown}, nil
	}
}
