package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tagger-cli/internal/core/ports/driven"
	"github.com/custodia-labs/tagger-cli/internal/core/ports/driving"
	"github.com/custodia-labs/tagger-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// PreviewServer serves generated documents over loopback HTTP.
type PreviewServer interface {
	Start() error
	Stop() error
	BaseURL() string
	ArtifactURL(id string) string
}

// Services holds the dependencies the commands run against.
type Services struct {
	Session  driving.SessionService
	Settings driving.SettingsService
	Watcher  driven.FileWatcher
	Preview  PreviewServer

	// OpenURL opens a URL in the system browser.
	OpenURL func(string) error
}

var (
	sessionService  driving.SessionService
	settingsService driving.SettingsService
	fileWatcher     driven.FileWatcher
	previewServer   PreviewServer
	openURL         func(string) error

	verbose bool
)

// errNotConfigured is returned when a command runs before Configure.
var errNotConfigured = errors.New("services not configured")

var rootCmd = &cobra.Command{
	Use:   "tagger",
	Short: "Review and fix accessibility tags in PDF documents",
	Long: `Tagger sends a PDF to a tagging service, lets you review and correct
the structural tag of every region and the document metadata, and
renders a tagged PDF from the result.

Run 'tagger tui' for the interactive reviewer, or use the tag and
generate commands from scripts.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Configure installs the services used by every command.
func Configure(s Services) {
	sessionService = s.Session
	settingsService = s.Settings
	fileWatcher = s.Watcher
	previewServer = s.Preview
	openURL = s.OpenURL
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// commandContext returns the command context, never nil.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
