package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shoplist/internal/adapters/driving/tui"
	"github.com/custodia-labs/shoplist/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/shoplist/internal/core/domain"
)

func withTerminal(t *testing.T, tty bool, run func(*tui.App) error) {
	t.Helper()
	origTerm, origRun := isTerminal, runApp
	isTerminal = func(int) bool { return tty }
	runApp = run
	t.Cleanup(func() { isTerminal, runApp = origTerm, origRun })
}

func TestTUICmd_ShortDescription(t *testing.T) {
	assert.Equal(t, "Launch the interactive terminal UI", tuiCmd.Short)
}

func TestTUICmd_LongDescription(t *testing.T) {
	assert.Contains(t, tuiCmd.Long, "Controls:")
	assert.Contains(t, tuiCmd.Long, "ctrl+s")
}

func TestTUICmd_RequiresTerminal(t *testing.T) {
	svc, _, _, _ := newServices()
	withTerminal(t, false, func(*tui.App) error {
		t.Fatal("app should not run without a terminal")
		return nil
	})

	_, err := execute(t, svc, "tui")

	assert.ErrorIs(t, err, ErrNotTerminal)
}

func TestTUICmd_RunsApp(t *testing.T) {
	svc, _, _, _ := newServices()
	svc.StartupErrors = []error{domain.ErrStoreUnavailable}

	var started *tui.App
	withTerminal(t, true, func(app *tui.App) error {
		started = app
		return nil
	})

	_, err := execute(t, svc, "tui")

	require.NoError(t, err)
	require.NotNil(t, started)
	n, ok := started.CurrentNotice()
	require.True(t, ok)
	assert.Equal(t, messages.NoticeWarning, n.Level)
	assert.Equal(t, "Credential store unavailable", n.Title)
}

func TestRootCmd_DefaultsToTUI(t *testing.T) {
	svc, _, _, _ := newServices()
	ran := false
	withTerminal(t, true, func(*tui.App) error {
		ran = true
		return nil
	})

	_, err := execute(t, svc)

	require.NoError(t, err)
	assert.True(t, ran)
}

func TestTUICmd_RunError(t *testing.T) {
	svc, _, _, _ := newServices()
	withTerminal(t, true, func(*tui.App) error {
		return errors.New("terminal closed")
	})

	_, err := execute(t, svc, "tui")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "TUI error")
}
