package model

import "strings"

// Provider identifies a recognized model provider
type Provider int

const (
	// ProviderUnknown means the identifier matched no recognized prefix
	ProviderUnknown Provider = iota

	// ProviderAnthropic handles claude* model identifiers
	ProviderAnthropic

	// ProviderOpenAI handles gpt* model identifiers
	ProviderOpenAI

	// ProviderGemini is recognized but not yet supported
	ProviderGemini
)

// String returns the provider name used in configuration and logs
func (p Provider) String() string {
	switch p {
	case ProviderAnthropic:
		return "anthropic"
	case ProviderOpenAI:
		return "openai"
	case ProviderGemini:
		return "gemini"
	default:
		return "unknown"
	}
}

// Classify maps a model identifier to its provider by prefix.
// Classification is a pure function of the prefix, checked in fixed
// priority order: claude, gpt, gemini, anything else.
func Classify(modelID string) Provider {
	switch {
	case strings.HasPrefix(modelID, "claude"):
		return ProviderAnthropic
	case strings.HasPrefix(modelID, "gpt"):
		return ProviderOpenAI
	case strings.HasPrefix(modelID, "gemini"):
		return ProviderGemini
	default:
		return ProviderUnknown
	}
}

// ProviderClient is a configured provider SDK client bound to a model
type ProviderClient interface {
	// Provider returns the provider name
	Provider() string

	// ModelID returns the model identifier the client is bound to
	ModelID() string
}

// Resolved is the outcome of model resolution. For recognized providers
// Client carries a configured SDK client. For unrecognized prefixes
// Client is nil and ID is handed through unchanged, leaving resolution
// to the agent constructor.
type Resolved struct {
	ID       string
	Provider Provider
	Client   ProviderClient
}

// CredentialSource supplies the configured default model and provider API keys
type CredentialSource interface {
	// DefaultModelID returns the configured default model identifier
	DefaultModelID() string

	// APIKey returns the key for a provider, and whether one is configured
	APIKey(provider string) (string, bool)
}
