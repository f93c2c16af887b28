package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "Manage application settings",
	Annotations: map[string]string{annotationNoStore: "true"},
	RunE:        runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Show current settings",
	Annotations: map[string]string{annotationNoStore: "true"},
	RunE:        runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a setting and write it to config.toml.

Keys:
  storage.data_dir  directory holding db.sqlite
  log.verbose       true or false`,
	Args:        cobra.ExactArgs(2),
	Annotations: map[string]string{annotationNoStore: "true"},
	RunE:        runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
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

	dataDir := settings.DataDir
	if dataDir == "" {
		dataDir = "(default)"
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	if path := settingsService.ConfigPath(); path != "" {
		cmd.Printf("  File: %s\n", path)
	}
	cmd.Println()
	cmd.Println("[storage]")
	cmd.Printf("  data_dir: %s\n", dataDir)
	cmd.Println()
	cmd.Println("[log]")
	cmd.Printf("  verbose: %t\n", settings.Verbose)

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}

	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}
