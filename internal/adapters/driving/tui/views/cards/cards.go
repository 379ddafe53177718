// Package cards provides the scrollable list of editable item cards.
package cards

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/shoplist/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/shoplist/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/shoplist/internal/core/domain"
)

// View owns the List Model and one card per row.
// Cards are kept in row order; focus is an index into them, -1 when empty.
type View struct {
	styles *styles.Styles
	list   *domain.List
	cards  []*input.ItemInput
	focus  int
	offset int

	width  int
	height int
}

// NewView creates the card list with one blank row, focused.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	v := &View{
		styles: s,
		list:   domain.NewList(),
		focus:  -1,
		width:  80,
		height: 3 * input.CardHeight,
	}
	v.Add()
	return v
}

// Init starts the cursor blink.
func (v *View) Init() tea.Cmd {
	if c := v.focused(); c != nil {
		return c.Init()
	}
	return nil
}

// Update forwards input to the focused card and copies its text into the list.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	c := v.focused()
	if c == nil {
		return v, nil
	}
	var cmd tea.Cmd
	c, cmd = c.Update(msg)
	v.list.SetText(c.RowID(), c.Value())
	return v, cmd
}

// Add appends a blank row and focuses it.
func (v *View) Add() tea.Cmd {
	row := v.list.Add("")
	card := input.NewItemInput(v.styles, row.ID, row.Text)
	card.SetWidth(v.cardWidth())
	v.cards = append(v.cards, card)
	return v.setFocus(len(v.cards) - 1)
}

// RemoveFocused deletes the focused row. Focus moves to the next row,
// or the previous one when the last row was removed.
func (v *View) RemoveFocused() tea.Cmd {
	c := v.focused()
	if c == nil {
		return nil
	}
	v.list.Remove(c.RowID())
	v.cards = append(v.cards[:v.focus], v.cards[v.focus+1:]...)

	next := v.focus
	v.focus = -1
	if next >= len(v.cards) {
		next = len(v.cards) - 1
	}
	if next < 0 {
		v.offset = 0
		return nil
	}
	return v.setFocus(next)
}

// FocusNext moves focus down, wrapping to the first row.
func (v *View) FocusNext() tea.Cmd {
	if len(v.cards) == 0 {
		return nil
	}
	return v.setFocus((v.focus + 1) % len(v.cards))
}

// FocusPrev moves focus up, wrapping to the last row.
func (v *View) FocusPrev() tea.Cmd {
	if len(v.cards) == 0 {
		return nil
	}
	return v.setFocus((v.focus - 1 + len(v.cards)) % len(v.cards))
}

func (v *View) setFocus(i int) tea.Cmd {
	if c := v.focused(); c != nil {
		c.Blur()
	}
	v.focus = i
	v.ensureVisible()
	return v.cards[i].Focus()
}

func (v *View) focused() *input.ItemInput {
	if v.focus < 0 || v.focus >= len(v.cards) {
		return nil
	}
	return v.cards[v.focus]
}

// visible returns how many cards fit in the body.
func (v *View) visible() int {
	n := v.height / input.CardHeight
	if n < 1 {
		n = 1
	}
	return n
}

func (v *View) ensureVisible() {
	n := v.visible()
	if v.focus < v.offset {
		v.offset = v.focus
	}
	if v.focus >= v.offset+n {
		v.offset = v.focus - n + 1
	}
	if last := len(v.cards) - n; v.offset > last {
		v.offset = last
	}
	if v.offset < 0 {
		v.offset = 0
	}
}

// View renders the cards that fit in the body.
func (v *View) View() string {
	if len(v.cards) == 0 {
		return v.styles.Muted.Render("Your shopping list is empty. Press ctrl+n to add an item.")
	}
	end := v.offset + v.visible()
	if end > len(v.cards) {
		end = len(v.cards)
	}
	parts := make([]string, 0, end-v.offset)
	for _, c := range v.cards[v.offset:end] {
		parts = append(parts, c.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Items returns the trimmed, non-blank texts in row order.
func (v *View) Items() []string {
	return v.list.Items()
}

// Len returns the number of rows.
func (v *View) Len() int {
	return len(v.cards)
}

// Focus returns the focused index, or -1.
func (v *View) Focus() int {
	return v.focus
}

// SetStyles swaps the palette on every card.
func (v *View) SetStyles(s *styles.Styles) {
	if s == nil {
		return
	}
	v.styles = s
	for _, c := range v.cards {
		c.SetStyles(s)
	}
}

// SetSize sets the body area the cards may use.
func (v *View) SetSize(width, height int) {
	v.width = width
	v.height = height
	for _, c := range v.cards {
		c.SetWidth(v.cardWidth())
	}
	if v.focus >= 0 {
		v.ensureVisible()
	}
}

func (v *View) cardWidth() int {
	return v.width - 2
}

// Summary returns a one-line description of the list for the status bar.
func (v *View) Summary() string {
	switch n := len(v.Items()); n {
	case 0:
		return "No items"
	case 1:
		return "1 item"
	default:
		return fmt.Sprintf("%d items", n)
	}
}
