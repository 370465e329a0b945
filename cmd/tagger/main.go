// Command tagger reviews and corrects accessibility tags in PDF documents.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/custodia-labs/tagger-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/tagger-cli/internal/adapters/driven/pdfinfo"
	artifactfile "github.com/custodia-labs/tagger-cli/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/tagger-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tagger-cli/internal/adapters/driven/tagging/remote"
	"github.com/custodia-labs/tagger-cli/internal/adapters/driven/watch"
	"github.com/custodia-labs/tagger-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/tagger-cli/internal/adapters/driving/preview"
	"github.com/custodia-labs/tagger-cli/internal/core/domain"
	"github.com/custodia-labs/tagger-cli/internal/core/ports/driven"
	"github.com/custodia-labs/tagger-cli/internal/core/services"
	"github.com/custodia-labs/tagger-cli/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var configStore driven.ConfigStore
	fileStore, err := file.NewConfigStore("")
	if err != nil {
		logger.Warn("config unavailable, using defaults: %v", err)
		configStore = memory.NewConfigStore()
	} else {
		configStore = fileStore
	}

	// The settings service needs the client for Check, and the client is
	// built from the settings, so read them with a pinger-less service first.
	settings, err := services.NewSettingsService(configStore, nil).Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	client, err := remote.NewClient(remote.Config{
		BaseURL:   settings.ServiceURL,
		Timeout:   time.Duration(settings.TimeoutSeconds) * time.Second,
		RateLimit: settings.RateLimit,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'tagger config set service.url <url>' to fix the service address.")
		return 1
	}
	settingsService := services.NewSettingsService(configStore, client)

	artifacts, err := artifactfile.NewArtifactStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer func() {
		if err := artifacts.Close(); err != nil {
			logger.Warn("artifact store close: %v", err)
		}
	}()

	inspector := pdfinfo.NewInspector()
	var uploadInspector driven.PDFInspector
	if settings.ValidateUploads {
		uploadInspector = inspector
	}

	pipeline := services.NewGenerationPipeline(client, artifacts, inspector)
	session := services.NewSessionService(client, pipeline, uploadInspector)
	defer func() {
		if err := session.Close(); err != nil {
			logger.Warn("session close: %v", err)
		}
	}()

	filename := settings.OutputFilename
	if filename == "" {
		filename = domain.DefaultOutputFilename
	}

	cli.SetVersion(version)
	cli.Configure(cli.Services{
		Session:  session,
		Settings: settingsService,
		Watcher:  watch.NewWatcher(watch.DefaultDebounce),
		Preview:  preview.NewServer(settings.PreviewAddr, filename, artifacts, session),
		OpenURL:  preview.OpenBrowser,
	})

	if err := cli.Execute(ctx); err != nil {
		return 1
	}
	return 0
}
