package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/tagger-cli/internal/core/domain"
	"github.com/custodia-labs/tagger-cli/internal/core/ports/driven"
	"github.com/custodia-labs/tagger-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// SettingsService reads and writes application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	pinger      driven.TaggingService
}

// NewSettingsService creates a new settings service.
// pinger may be nil, in which case Check always succeeds.
func NewSettingsService(configStore driven.ConfigStore, pinger driven.TaggingService) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		pinger:      pinger,
	}
}

// Get returns the stored settings with defaults for absent keys.
// Values of the wrong type fall back to their default.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		ServiceURL:      s.getString(domain.KeyServiceURL, defaults.ServiceURL),
		TimeoutSeconds:  s.getInt(domain.KeyServiceTimeout, defaults.TimeoutSeconds),
		RateLimit:       s.getFloat(domain.KeyServiceRateLimit, defaults.RateLimit),
		ValidateUploads: s.getBool(domain.KeyUploadValidate, defaults.ValidateUploads),
		OutputDir:       s.getString(domain.KeyOutputDir, defaults.OutputDir),
		OutputFilename:  s.getString(domain.KeyOutputFilename, defaults.OutputFilename),
		PreviewAddr:     s.getString(domain.KeyPreviewAddr, defaults.PreviewAddr),
	}

	return settings, nil
}

// Set parses value for key, validates the result and persists it.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	var stored any
	switch key {
	case domain.KeyServiceURL:
		if !strings.HasSuffix(value, "/") {
			value += "/"
		}
		settings.ServiceURL = value
		stored = value
	case domain.KeyServiceTimeout:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		settings.TimeoutSeconds = n
		stored = int64(n)
	case domain.KeyServiceRateLimit:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		settings.RateLimit = f
		stored = f
	case domain.KeyUploadValidate:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		settings.ValidateUploads = b
		stored = b
	case domain.KeyOutputDir:
		settings.OutputDir = value
		stored = value
	case domain.KeyOutputFilename:
		settings.OutputFilename = value
		stored = value
	case domain.KeyPreviewAddr:
		settings.PreviewAddr = value
		stored = value
	default:
		return fmt.Errorf("%w: unknown key %q", domain.ErrInvalidInput, key)
	}

	if err := settings.Validate(); err != nil {
		return err
	}
	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// ConfigPath returns the path of the configuration file.
func (s *SettingsService) ConfigPath() string {
	return s.configStore.Path()
}

// Check verifies the tagging service answers.
func (s *SettingsService) Check(ctx context.Context) error {
	if s.pinger == nil {
		return nil
	}
	return s.pinger.Ping(ctx)
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if val, ok := s.configStore.GetString(key); ok && val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if val, ok := s.configStore.GetInt(key); ok && val > 0 {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if val, ok := s.configStore.GetFloat(key); ok {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if val, ok := s.configStore.GetBool(key); ok {
		return val
	}
	return defaultVal
}
