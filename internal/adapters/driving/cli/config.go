package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shoplist/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
	Long: `Show the effective settings, or change them with a subcommand.

Settings live in a TOML file; every key is optional.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file location",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configThemeCmd = &cobra.Command{
	Use:       "theme <light|dark>",
	Short:     "Set the theme used by the editor and snapshots",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(domain.ThemeLight), string(domain.ThemeDark)},
	RunE:      runConfigTheme,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configThemeCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if services == nil || services.Settings == nil {
		return errors.New("settings service not configured")
	}

	settings, err := services.Settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[UI]")
	cmd.Printf("  Theme: %s\n", settings.Theme)
	cmd.Printf("  Resources: %s\n", orDefault(settings.ResourceDir, "(auto)"))
	cmd.Println()

	cmd.Println("[OAuth]")
	cmd.Printf("  Client file: %s\n", settings.OAuth.ClientFile)
	cmd.Printf("  Timeout: %s\n", settings.OAuth.Timeout)
	cmd.Println()

	cmd.Println("[Store]")
	cmd.Printf("  Backend: %s\n", settings.Store.Backend)
	if settings.Store.Backend == domain.StoreBackendFirebase {
		cmd.Printf("  Database URL: %s\n", orDefault(settings.Store.DatabaseURL, "(not set)"))
		cmd.Printf("  Service account: %s\n", settings.Store.ServiceAccountFile)
	}
	cmd.Printf("  Record path: %s\n", settings.Store.RecordPath)
	cmd.Println()

	cmd.Println("[Mail]")
	cmd.Printf("  Subject: %s\n", settings.Mail.Subject)
	cmd.Printf("  Attachment: %s\n", settings.Mail.AttachmentName)

	if services.ConfigPath != "" {
		cmd.Println()
		cmd.Printf("Config file: %s\n", services.ConfigPath)
	}
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if services == nil || services.ConfigPath == "" {
		return errors.New("config path not available")
	}
	cmd.Println(services.ConfigPath)
	return nil
}

func runConfigTheme(cmd *cobra.Command, args []string) error {
	if services == nil || services.Settings == nil {
		return errors.New("settings service not configured")
	}
	theme := domain.Theme(strings.ToLower(args[0]))
	if err := services.Settings.SetTheme(theme); err != nil {
		return fmt.Errorf("failed to set theme: %w", err)
	}
	cmd.Printf("Theme set to %s\n", theme)
	return nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
