// Package styles provides the light and dark colour themes for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/shoplist/internal/core/domain"
)

// Theme defines the colour palette and styling for the TUI.
type Theme struct {
	// Name is the domain theme this palette was built from.
	Name domain.Theme

	// Background is the screen colour.
	Background lipgloss.Color

	// Card is the fill behind each list row.
	Card lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Button is the fill of bottom-bar actions.
	Button lipgloss.Color

	// Danger marks destructive actions and errors.
	Danger lipgloss.Color

	// Accent highlights the focused card.
	Accent lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Success indicates positive outcomes.
	Success lipgloss.Color

	// Warning indicates caution.
	Warning lipgloss.Color
}

// ThemeFor builds the terminal palette for a domain theme.
// Unknown themes get light.
func ThemeFor(t domain.Theme) *Theme {
	if !t.IsValid() {
		t = domain.ThemeLight
	}
	p := t.Palette()
	theme := &Theme{
		Name:       t,
		Background: lipgloss.Color(p.Background),
		Card:       lipgloss.Color(p.Card),
		Foreground: lipgloss.Color(p.Foreground),
		Button:     lipgloss.Color(p.Button),
		Danger:     lipgloss.Color(p.Danger),
	}
	if t == domain.ThemeDark {
		theme.Accent = lipgloss.Color("#64B5F6")
		theme.Muted = lipgloss.Color("#9E9E9E")
		theme.Success = lipgloss.Color("#81C784")
		theme.Warning = lipgloss.Color("#FFD54F")
	} else {
		theme.Accent = lipgloss.Color("#1976D2")
		theme.Muted = lipgloss.Color("#757575")
		theme.Success = lipgloss.Color("#388E3C")
		theme.Warning = lipgloss.Color("#F57C00")
	}
	return theme
}

// DefaultTheme returns the light theme.
func DefaultTheme() *Theme {
	return ThemeFor(domain.ThemeLight)
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Screen paints the whole terminal background.
	Screen lipgloss.Style

	// Title style for headers.
	Title lipgloss.Style

	// TopBar holds the title, identity and key hints.
	TopBar lipgloss.Style

	// Normal style for regular text.
	Normal lipgloss.Style

	// Muted style for less important text.
	Muted lipgloss.Style

	// Card wraps an unfocused list row.
	Card lipgloss.Style

	// FocusedCard wraps the row being edited.
	FocusedCard lipgloss.Style

	// Button style for bottom-bar actions.
	Button lipgloss.Style

	// DangerButton style for destructive actions.
	DangerButton lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// Success style for success messages.
	Success lipgloss.Style

	// Warning style for warning messages.
	Warning lipgloss.Style

	// Modal frames a notice dialog.
	Modal lipgloss.Style

	// StatusBar style for the status bar.
	StatusBar lipgloss.Style

	// Help style for help text.
	Help lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Screen: lipgloss.NewStyle().
			Background(theme.Background).
			Foreground(theme.Foreground),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground),

		TopBar: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Background(theme.Card).
			Padding(0, 1),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Card: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Button).
			Background(theme.Card).
			Foreground(theme.Foreground).
			Padding(0, 1),

		FocusedCard: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Accent).
			Background(theme.Card).
			Foreground(theme.Foreground).
			Padding(0, 1),

		Button: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Background(theme.Button).
			Padding(0, 2),

		DangerButton: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(theme.Danger).
			Padding(0, 1),

		Error: lipgloss.NewStyle().
			Foreground(theme.Danger),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		Modal: lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(theme.Accent).
			Background(theme.Card).
			Foreground(theme.Foreground).
			Padding(1, 3),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Card).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// ForTheme returns styles for a domain theme.
func ForTheme(t domain.Theme) *Styles {
	return NewStyles(ThemeFor(t))
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
