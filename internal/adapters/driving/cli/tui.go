package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/shoplist/internal/adapters/driving/tui"
	"github.com/custodia-labs/shoplist/internal/adapters/driving/tui/views/notice"
)

// ErrNotTerminal is returned when the editor is started without a TTY.
var ErrNotTerminal = errors.New("the interactive editor needs a terminal; use 'shoplist send' in scripts")

// isTerminal reports whether fd is a terminal. Replaced in tests.
var isTerminal = term.IsTerminal

// runApp runs the editor until it exits. Replaced in tests.
var runApp = func(app *tui.App) error { return app.Run() }

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive shopping-list editor.

Your last saved Google sign-in is restored silently on start.

Controls:
  ↑/↓, tab   - Move between items
  ctrl+n     - Add item
  ctrl+d     - Delete item
  ctrl+s     - Send shopping list
  ctrl+t     - Toggle light/dark theme
  ctrl+g     - Sign in with Google
  ctrl+o     - Log out
  ctrl+c     - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	if !isTerminal(int(os.Stdin.Fd())) || !isTerminal(int(os.Stdout.Fd())) {
		return ErrNotTerminal
	}

	s, err := requireServices()
	if err != nil {
		return err
	}

	app, err := tui.NewApp(tui.NewPorts(s.Session, s.Dispatch, s.Settings))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(commandContext(cmd))
	for _, startupErr := range s.StartupErrors {
		app.Notify(notice.FromError(startupErr))
	}

	if err := runApp(app); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
