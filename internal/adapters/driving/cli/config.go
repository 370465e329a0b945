package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tagger-cli/internal/core/domain"
)

var configCheck bool

var configCmd = &cobra.Command{
	Use:     "config",
	Aliases: []string{"settings"},
	Short:   "Manage application settings",
	Long: `View and change the tagging service connection, upload validation,
output location and preview server settings.

Settings are stored in a TOML file; 'tagger config path' prints its location.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a single setting and save it.

Available keys:
  service.url              Base URL of the tagging service
  service.timeout_seconds  Timeout for each request
  service.rate_limit       Requests per second sent to the service
  upload.validate          Check files locally before upload (true/false)
  output.dir               Directory generated PDFs are saved to
  output.filename          Default name of generated PDFs
  preview.addr             Listen address of the preview server`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if settingsService == nil {
			return errors.New("settings service not configured")
		}
		cmd.Println(settingsService.ConfigPath())
		return nil
	},
}

func init() {
	configCmd.PersistentFlags().BoolVar(&configCheck, "check", false, "Check the tagging service is reachable")
	// Values such as -5 are arguments, not flags.
	configSetCmd.Flags().SetInterspersed(false)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()
	for _, key := range domain.SettingKeys {
		value, _ := settings.Value(key)
		if value == "" {
			value = "(not set)"
		}
		cmd.Printf("  %-24s %s\n", key, value)
	}
	cmd.Println()
	cmd.Printf("Config file: %s\n", settingsService.ConfigPath())

	if err := settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'tagger config set' to fix configuration issues.")
	}

	if configCheck {
		cmd.Printf("Checking %s... ", settings.ServiceURL)
		if err := settingsService.Check(commandContext(cmd)); err != nil {
			cmd.Println("unreachable")
			return fmt.Errorf("service check failed: %w", err)
		}
		cmd.Println("ok")
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	stored, _ := settings.Value(key)
	cmd.Printf("%s = %s\n", key, stored)
	return nil
}
