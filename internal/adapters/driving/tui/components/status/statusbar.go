// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/shoplist/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/shoplist/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/shoplist/internal/adapters/driving/tui/styles"
)

// Bar displays the running background activity and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	spinner spinner.Model
	running []messages.Activity
	message string
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Muted

	return &Bar{
		styles:   s,
		keymap:   km,
		spinner: sp,
		width:   80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update advances the spinner while an activity is running.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); !ok {
		return s, nil
	}
	if len(s.running) == 0 {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the activity or the last message.
func (s *Bar) renderLeft() string {
	if label := activityLabel(s.Activity()); label != "" {
		return s.spinner.View() + " " + s.styles.Muted.Render(label)
	}
	if s.message != "" {
		return s.styles.Normal.Render(s.message)
	}
	return s.styles.Muted.Render("Ready")
}

func activityLabel(a messages.Activity) string {
	switch a {
	case messages.ActivityRestoring:
		return "Restoring session..."
	case messages.ActivitySigningIn:
		return "Waiting for Google sign-in..."
	case messages.ActivitySigningOut:
		return "Logging out..."
	case messages.ActivitySending:
		return "Sending shopping list..."
	case messages.ActivityIdle:
		return ""
	}
	return ""
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	bindings := s.keymap.ShortHelp()
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Help.Render(strings.Join(hints, " | "))
}

// Start marks an activity as running and returns the spinner tick
// when the bar was idle. Overlapping activities show the newest.
func (s *Bar) Start(a messages.Activity) tea.Cmd {
	if a == messages.ActivityIdle {
		return nil
	}
	wasIdle := len(s.running) == 0
	s.running = append(s.running, a)
	s.message = ""
	if wasIdle {
		return s.spinner.Tick
	}
	return nil
}

// Done marks an activity finished and records message for when the bar
// falls idle. Finishing an activity that is not running only sets message.
func (s *Bar) Done(a messages.Activity, message string) {
	for i, r := range s.running {
		if r == a {
			s.running = append(s.running[:i], s.running[i+1:]...)
			break
		}
	}
	s.message = message
}

// Activity returns the newest running activity.
func (s *Bar) Activity() messages.Activity {
	if len(s.running) == 0 {
		return messages.ActivityIdle
	}
	return s.running[len(s.running)-1]
}

// Running reports whether a is in progress.
func (s *Bar) Running(a messages.Activity) bool {
	for _, r := range s.running {
		if r == a {
			return true
		}
	}
	return false
}

// SetMessage shows message while idle.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetStyles swaps the palette, for theme toggles.
func (s *Bar) SetStyles(st *styles.Styles) {
	if st == nil {
		return
	}
	s.styles = st
	s.spinner.Style = st.Muted
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}
