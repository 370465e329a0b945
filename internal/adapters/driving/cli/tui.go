package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/tagger-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/tagger-cli/internal/logger"
)

// errNoTerminal is returned when the TUI is started without a terminal.
var errNoTerminal = errors.New("the interactive UI requires a terminal; use 'tagger tag' or 'tagger generate' instead")

var tuiWatch bool

// isTerminal reports whether stdout is attached to a terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui [file.pdf]",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for Tagger.

The TUI uploads a PDF for tagging, lets you review and correct the tag
of every region and the document metadata, and renders the tagged PDF.
Generated documents are served on a local preview server and can be
opened in the browser or saved to the output directory.

With --watch, the file is re-tagged each time it changes on disk.

Controls:
  ↑/k, ↓/j - Navigate regions
  Enter/e  - Edit tag / Confirm
  ←/h, →/l - Previous / next tag while editing
  m        - Edit metadata
  g        - Generate PDF
  Esc      - Back / Cancel
  ?        - Toggle help
  q        - Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().BoolVarP(&tuiWatch, "watch", "w", false, "Re-tag the file whenever it changes")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	var file string
	if len(args) == 1 {
		file = args[0]
	}
	if tuiWatch && file == "" {
		return errors.New("--watch requires a file argument")
	}
	if sessionService == nil || settingsService == nil {
		return errNotConfigured
	}
	if !isTerminal() {
		return errNoTerminal
	}

	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	// Build ports from configuration
	ports := tui.NewPorts(sessionService, settingsService)
	ports.OpenURL = openURL

	if previewServer != nil {
		if err := previewServer.Start(); err != nil {
			logger.Warn("preview server unavailable: %v", err)
		} else {
			defer func() {
				if err := previewServer.Stop(); err != nil {
					logger.Warn("preview server stop: %v", err)
				}
			}()
			ports.Preview = previewServer
		}
	}

	if tuiWatch {
		if fileWatcher == nil {
			return errors.New("file watcher not configured")
		}
		changes, err := fileWatcher.Watch(ctx, file)
		if err != nil {
			return fmt.Errorf("watching %s: %w", file, err)
		}
		ports.Changes = changes
	}

	// Create the TUI app
	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(ctx)
	if file != "" {
		app.WithFile(file)
	}

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
