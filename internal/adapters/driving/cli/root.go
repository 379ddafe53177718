// Package cli provides the cobra command tree for shoplist.
// Running shoplist with no subcommand opens the interactive editor.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shoplist/internal/core/ports/driving"
	"github.com/custodia-labs/shoplist/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose   bool
	configDir string
	storeFlag string
)

// skipBootstrap marks commands that run without services.
const skipBootstrap = "skip-bootstrap"

// Options carries the global flags to the bootstrap hook.
type Options struct {
	// ConfigDir overrides the configuration directory; empty means default.
	ConfigDir string

	// Store overrides the configured credential store backend.
	Store string

	// Interactive is set when the TUI will own the terminal, so logs
	// must not go to stderr.
	Interactive bool
}

// Services is everything the commands drive.
type Services struct {
	Session  driving.SessionService
	Dispatch driving.DispatchService
	Settings driving.SettingsService

	// ConfigPath is the settings file location.
	ConfigPath string

	// StartupErrors are non-fatal problems found while wiring, such as an
	// unreachable credential store.
	StartupErrors []error

	// Close releases stores and log files.
	Close func() error
}

// Bootstrap builds the services once flags are parsed.
type Bootstrap func(ctx context.Context, opts Options) (*Services, error)

var (
	bootstrap Bootstrap
	services  *Services
)

var rootCmd = &cobra.Command{
	Use:   "shoplist",
	Short: "Edit a shopping list and email it to yourself",
	Long: `shoplist is a small shopping-list editor.

Type your items, sign in with Google, and send the list to your own inbox
as a rendered picture. Your sign-in is remembered between launches.

Run without a subcommand to open the interactive editor.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentPreRunE = setup
	rootCmd.PersistentPostRunE = teardown
	rootCmd.RunE = runTUI

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.shoplist)")
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "credential store backend: firebase, sqlite or memory")
}

// SetBootstrap sets the hook that wires services after flag parsing.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices installs ready-made services, bypassing the bootstrap hook.
func SetServices(s *Services) {
	services = s
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if cmd.Annotations[skipBootstrap] == "true" || services != nil {
		return nil
	}
	if bootstrap == nil {
		return errors.New("services not configured")
	}

	s, err := bootstrap(commandContext(cmd), Options{
		ConfigDir:   configDir,
		Store:       storeFlag,
		Interactive: cmd == rootCmd || cmd == tuiCmd,
	})
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	services = s
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if services == nil || services.Close == nil {
		return nil
	}
	err := services.Close()
	services.Close = nil
	return err
}

// requireServices returns the wired services or an error for commands
// that cannot run without them.
func requireServices() (*Services, error) {
	if services == nil || services.Session == nil {
		return nil, errors.New("session service not configured")
	}
	return services, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
