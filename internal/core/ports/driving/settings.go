package driving

import (
	"context"

	"github.com/custodia-labs/tagger-cli/internal/core/domain"
)

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns the current settings with defaults applied.
	Get() (*domain.AppSettings, error)

	// Set validates and persists a single setting.
	Set(key, value string) error

	// ConfigPath returns the location of the configuration file.
	ConfigPath() string

	// Check verifies the configured service is reachable.
	Check(ctx context.Context) error
}
