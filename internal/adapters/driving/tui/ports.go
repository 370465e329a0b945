// Package tui provides an interactive terminal user interface for reviewing
// and correcting PDF accessibility tags.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/tagger-cli/internal/core/ports/driving"
)

// Previewer resolves artifact IDs to browsable URLs.
type Previewer interface {
	ArtifactURL(id string) string
}

// Ports aggregates everything the TUI needs from the rest of the application.
type Ports struct {
	// Session holds the snapshot under review. Required.
	Session driving.SessionService

	// Settings reads and writes configuration.
	Settings driving.SettingsService

	// Preview serves generated artifacts over HTTP. Optional.
	Preview Previewer

	// OpenURL opens a URL in the user's browser. Optional.
	OpenURL func(url string) error

	// Changes delivers paths of watched files that changed. Optional.
	Changes <-chan string
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(session driving.SessionService, settings driving.SettingsService) *Ports {
	return &Ports{
		Session:  session,
		Settings: settings,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Session == nil {
		return ErrMissingSessionService
	}
	if p.Settings == nil {
		return ErrMissingSettingsService
	}
	return nil
}
