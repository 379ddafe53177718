// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/shoplist/internal/adapters/driving/tui/styles"
)

// Placeholder is shown in a blank row.
const Placeholder = "Enter item"

// CardHeight is the number of terminal lines one rendered card takes.
const CardHeight = 3

// ItemInput is one shopping-list row drawn as a card with a text field.
type ItemInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	rowID     int
	width     int
}

// NewItemInput creates an unfocused card for the row.
func NewItemInput(s *styles.Styles, rowID int, text string) *ItemInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = Placeholder
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.SetValue(text)

	in := &ItemInput{
		textinput: ti,
		styles:    s,
		rowID:     rowID,
	}
	in.SetWidth(60)
	return in
}

// Init initialises the input.
func (s *ItemInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (s *ItemInput) Update(msg tea.Msg) (*ItemInput, tea.Cmd) {
	var cmd tea.Cmd
	s.textinput, cmd = s.textinput.Update(msg)
	return s, cmd
}

// View renders the card.
func (s *ItemInput) View() string {
	card := s.styles.Card
	if s.textinput.Focused() {
		card = s.styles.FocusedCard
	}
	remove := s.styles.DangerButton.Render("✕")
	field := lipgloss.NewStyle().Width(s.textinput.Width + 1).Render(s.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return card.Render(lipgloss.JoinHorizontal(lipgloss.Center, field, " ", remove))
}

// RowID returns the list row this card edits.
func (s *ItemInput) RowID() int {
	return s.rowID
}

// Value returns the current input value.
func (s *ItemInput) Value() string {
	return s.textinput.Value()
}

// SetValue sets the input value.
func (s *ItemInput) SetValue(value string) {
	s.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (s *ItemInput) Focus() tea.Cmd {
	return s.textinput.Focus()
}

// Blur removes focus from the input.
func (s *ItemInput) Blur() {
	s.textinput.Blur()
}

// Focused returns whether the input is focused.
func (s *ItemInput) Focused() bool {
	return s.textinput.Focused()
}

// SetStyles swaps the palette, for theme toggles.
func (s *ItemInput) SetStyles(st *styles.Styles) {
	if st != nil {
		s.styles = st
	}
}

// SetWidth sets the outer width of the card.
func (s *ItemInput) SetWidth(width int) {
	s.width = width
	// Account for border, padding and the remove marker
	inputWidth := width - 10
	if inputWidth < 10 {
		inputWidth = 10
	}
	s.textinput.Width = inputWidth
}

// Width returns the current width.
func (s *ItemInput) Width() int {
	return s.width
}
