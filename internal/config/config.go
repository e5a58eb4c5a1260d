package config

import "github.com/Dhineshkumaran/openwork/pkg/model"

// Settings is the credential source handed to the runtime factory
var _ model.CredentialSource = (*Settings)(nil)

// Settings holds the host application's runtime configuration
type Settings struct {
	// Default model identifier used when a caller does not name one
	DefaultModel string `json:"default_model" mapstructure:"default_model"`

	// API keys keyed by provider name ("anthropic", "openai", ...)
	APIKeys map[string]string `json:"api_keys" mapstructure:"api_keys"`

	// Data directory holding the checkpoint database and logs
	DataDir string `json:"data_dir" mapstructure:"data_dir"`

	// Logging configuration
	Logging LoggingSettings `json:"logging" mapstructure:"logging"`
}

// LoggingSettings holds logging configuration
type LoggingSettings struct {
	Level     string `json:"level" mapstructure:"level"`
	File      string `json:"file" mapstructure:"file"`
	Redaction bool   `json:"redaction" mapstructure:"redaction"`
}

// DefaultSettings returns settings with defaults applied
func DefaultSettings() *Settings {
	return &Settings{
		DefaultModel: "claude-3-5-sonnet-20241022",
		APIKeys:      map[string]string{},
		Logging: LoggingSettings{
			Level:     "info",
			Redaction: true,
		},
	}
}

// DefaultModelID returns the configured default model identifier
func (s *Settings) DefaultModelID() string {
	return s.DefaultModel
}

// APIKey returns the configured key for a provider, and whether one exists
func (s *Settings) APIKey(provider string) (string, bool) {
	key, ok := s.APIKeys[provider]
	if !ok || key == "" {
		return "", false
	}
	return key, true
}
