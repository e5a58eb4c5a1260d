package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Loader handles configuration loading
type Loader struct {
	configPath string
}

// NewLoader creates a new config loader
func NewLoader(configPath string) *Loader {
	return &Loader{
		configPath: configPath,
	}
}

// Load loads the configuration from file
func (l *Loader) Load() (*Settings, error) {
	configPath := l.configPath
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = filepath.Join(home, ".openwork", "openwork.json")
	}

	settings := DefaultSettings()

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("json")

	v.SetEnvPrefix("OPENWORK")
	v.AutomaticEnv()

	// Missing config file falls back to defaults plus env overrides
	if _, err := os.Stat(configPath); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := v.Unmarshal(settings); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	// A file with "api_keys": null unmarshals to a nil map
	if settings.APIKeys == nil {
		settings.APIKeys = map[string]string{}
	}

	if key := v.GetString("anthropic_api_key"); key != "" {
		settings.APIKeys["anthropic"] = key
	}
	if key := v.GetString("openai_api_key"); key != "" {
		settings.APIKeys["openai"] = key
	}

	if settings.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		settings.DataDir = filepath.Join(home, ".openwork")
	}

	if settings.Logging.File == "" {
		settings.Logging.File = filepath.Join(settings.DataDir, "openwork.log")
	}

	return settings, nil
}

// Save saves the configuration to file
func (l *Loader) Save(settings *Settings) error {
	configPath := l.configPath
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = filepath.Join(home, ".openwork", "openwork.json")
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("json")

	v.Set("default_model", settings.DefaultModel)
	v.Set("api_keys", settings.APIKeys)
	v.Set("data_dir", settings.DataDir)
	v.Set("logging", settings.Logging)

	if err := v.WriteConfig(); err != nil {
		if os.IsNotExist(err) {
			if err := v.SafeWriteConfig(); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}
		} else {
			return fmt.Errorf("failed to write config file: %w", err)
		}
	}

	return nil
}

// Load is a convenience function that creates a loader and loads the settings
func Load(configPath string) (*Settings, error) {
	return NewLoader(configPath).Load()
}
