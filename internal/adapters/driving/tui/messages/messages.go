// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/tagger-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewUpload prompts for a PDF to tag.
	ViewUpload
	// ViewReview lists tagged regions and edits their tags.
	ViewReview
	// ViewMetadata shows and edits document metadata.
	ViewMetadata
	// ViewGenerate shows the generation dialog.
	ViewGenerate
	// ViewSettings shows the active configuration.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewUpload:
		return "upload"
	case ViewReview:
		return "review"
	case ViewMetadata:
		return "metadata"
	case ViewGenerate:
		return "generate"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// UploadRequested asks the app to tag the PDF at Path.
type UploadRequested struct {
	Path string
}

// UploadCompleted carries the result of a tagging request.
type UploadCompleted struct {
	Result domain.UploadResult
}

// SnapshotUpdated signals the session snapshot changed.
type SnapshotUpdated struct{}

// GenerationRequested asks the app to open a generation request.
type GenerationRequested struct{}

// GenerationCompleted carries the result of a render request.
type GenerationCompleted struct {
	Result domain.GenerationResult
}

// GenerationClosed signals the generation dialog was dismissed.
type GenerationClosed struct{}

// ArtifactSaveRequested asks the app to write the artifact to disk.
type ArtifactSaveRequested struct{}

// ArtifactSaved reports where the artifact was written.
type ArtifactSaved struct {
	Path  string
	Bytes int64
	Err   error
}

// FileChanged is sent when a watched file is written.
type FileChanged struct {
	Path string
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Path     string
	Err      error
}

// ArtifactOpenRequested asks the app to show the artifact in a browser.
type ArtifactOpenRequested struct{}

// SettingSaved reports the outcome of changing one setting.
type SettingSaved struct {
	Key string
	Err error
}

// ServiceChecked reports whether the tagging service answered a ping.
type ServiceChecked struct {
	Err error
}
