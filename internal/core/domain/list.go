package domain

import "strings"

// EmptyListNotice is shown in place of items when nothing is left after
// blank rows are dropped.
const EmptyListNotice = "Your shopping list is empty."

// Row is one editable line of the shopping list.
// Identity is the row ID, not the text: duplicates and blanks are allowed.
type Row struct {
	// ID is unique within a List for its lifetime.
	ID int
	// Text is the raw, untrimmed text as typed.
	Text string
}

// List is the ordered, mutable collection of rows behind the editor.
// It lives only as long as the running shell and is never persisted.
type List struct {
	rows   []Row
	nextID int
}

// NewList creates an empty list.
func NewList() *List {
	return &List{nextID: 1}
}

// Add appends a new row after all existing rows and returns it.
func (l *List) Add(text string) Row {
	if l.nextID == 0 {
		l.nextID = 1
	}
	row := Row{ID: l.nextID, Text: text}
	l.nextID++
	l.rows = append(l.rows, row)
	return row
}

// Remove deletes the row with the given ID.
// Returns false if no such row exists.
func (l *List) Remove(id int) bool {
	for i, r := range l.rows {
		if r.ID == id {
			l.rows = append(l.rows[:i], l.rows[i+1:]...)
			return true
		}
	}
	return false
}

// SetText replaces the text of the row with the given ID.
// Returns false if no such row exists.
func (l *List) SetText(id int, text string) bool {
	for i := range l.rows {
		if l.rows[i].ID == id {
			l.rows[i].Text = text
			return true
		}
	}
	return false
}

// Rows returns a copy of all rows in order, blanks included.
func (l *List) Rows() []Row {
	out := make([]Row, len(l.rows))
	copy(out, l.rows)
	return out
}

// Len returns the number of rows, blanks included.
func (l *List) Len() int {
	return len(l.rows)
}

// Items returns the trimmed, non-empty row texts in row order.
// Blank rows are dropped here, at read time, never at edit time.
func (l *List) Items() []string {
	items := make([]string, 0, len(l.rows))
	for _, r := range l.rows {
		if text := strings.TrimSpace(r.Text); text != "" {
			items = append(items, text)
		}
	}
	return items
}

// Summary returns the plain-text body sent alongside the snapshot.
func Summary(items []string) string {
	if len(items) == 0 {
		return EmptyListNotice
	}
	var b strings.Builder
	b.WriteString("Your shopping list:\n\n")
	for i, item := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- ")
		b.WriteString(item)
	}
	return b.String()
}
