package runtime

import (
	"fmt"

	"github.com/Dhineshkumaran/openwork/internal/config"
	"github.com/Dhineshkumaran/openwork/internal/logger"
)

// NewFromSettings assembles a factory from loaded host settings,
// constructing the logger those settings describe. The settings supply
// the credentials and the data directory. The returned logger owns the
// log file and should be closed after the factory.
func NewFromSettings(settings *config.Settings) (*Factory, *logger.Logger, error) {
	if settings == nil {
		return nil, nil, fmt.Errorf("settings are required")
	}

	l, err := logger.New(logger.Config{
		Level:     settings.Logging.Level,
		File:      settings.Logging.File,
		Redaction: settings.Logging.Redaction,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	factory, err := New(Config{
		Credentials: settings,
		DataDir:     settings.DataDir,
		Logger:      l.GetZerolog(),
	})
	if err != nil {
		l.Close()
		return nil, nil, err
	}

	return factory, l, nil
}
