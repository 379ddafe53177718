// Package notice provides the modal dialog used to report outcomes.
package notice

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/shoplist/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/shoplist/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/shoplist/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/shoplist/internal/core/domain"
)

// View shows one notice at a time and queues the rest.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	queue  []messages.Notice
	width  int
	height int
}

// NewView creates an empty notice view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{styles: s, keymap: km, width: 80, height: 24}
}

// Push queues a notice behind any already showing.
func (v *View) Push(n messages.Notice) {
	v.queue = append(v.queue, n)
}

// Visible reports whether a notice is showing.
func (v *View) Visible() bool {
	return len(v.queue) > 0
}

// Current returns the notice on screen.
func (v *View) Current() (messages.Notice, bool) {
	if len(v.queue) == 0 {
		return messages.Notice{}, false
	}
	return v.queue[0], true
}

// Pending returns how many notices are queued, the visible one included.
func (v *View) Pending() int {
	return len(v.queue)
}

// Update dismisses the visible notice on enter or esc; other keys are swallowed.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !v.Visible() {
		return v, nil
	}
	if keymap.Matches(keyMsg.String(), v.keymap.Dismiss) {
		v.queue = v.queue[1:]
		return v, func() tea.Msg { return messages.NoticeDismissed{} }
	}
	return v, nil
}

// View renders the visible notice centred on the screen.
func (v *View) View() string {
	n, ok := v.Current()
	if !ok {
		return ""
	}

	var title string
	switch n.Level {
	case messages.NoticeWarning:
		title = v.styles.Warning.Bold(true).Render(n.Title)
	case messages.NoticeError:
		title = v.styles.Error.Bold(true).Render(n.Title)
	case messages.NoticeInfo:
		title = v.styles.Success.Bold(true).Render(n.Title)
	}

	width := v.width / 2
	if width < 30 {
		width = 30
	}
	body := lipgloss.NewStyle().Width(width).Render(n.Text)
	button := v.styles.Button.Render("OK")
	hint := v.styles.Help.Render(v.keymap.Dismiss.Help().Key + " to close")
	if more := v.Pending() - 1; more > 0 {
		hint += v.styles.Muted.Render(fmt.Sprintf("  (%d more)", more))
	}

	box := v.styles.Modal.Render(lipgloss.JoinVertical(lipgloss.Left,
		title, "", body, "", button+"  "+hint,
	))
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, box)
}

// SetStyles swaps the palette, for theme toggles.
func (v *View) SetStyles(s *styles.Styles) {
	if s != nil {
		v.styles = s
	}
}

// SetSize sets the area the dialog is centred in.
func (v *View) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// FromError maps an operation failure to the notice shown for it.
func FromError(err error) messages.Notice {
	switch {
	case errors.Is(err, domain.ErrNotSignedIn):
		return messages.Notice{
			Level: messages.NoticeWarning,
			Title: "Not signed in",
			Text:  "Please sign in with Google before sending.",
		}
	case errors.Is(err, domain.ErrMissingClientConfig):
		return messages.Notice{
			Level: messages.NoticeError,
			Title: "Missing client configuration",
			Text:  "credentials.json was not found. Download the OAuth client file from Google Cloud Console and place it next to shoplist.",
		}
	case errors.Is(err, domain.ErrAuthorizationFailed):
		return messages.Notice{
			Level: messages.NoticeError,
			Title: "Sign-in failed",
			Text:  err.Error(),
		}
	case errors.Is(err, domain.ErrRateLimited):
		return messages.Notice{
			Level: messages.NoticeWarning,
			Title: "Slow down",
			Text:  "Please wait a moment before sending again.",
		}
	case errors.Is(err, domain.ErrRenderFailed):
		return messages.Notice{
			Level: messages.NoticeError,
			Title: "Could not draw the list",
			Text:  err.Error(),
		}
	case errors.Is(err, domain.ErrSendFailed):
		return messages.Notice{
			Level: messages.NoticeError,
			Title: "Send failed",
			Text:  err.Error(),
		}
	case errors.Is(err, domain.ErrStoreUnavailable):
		return messages.Notice{
			Level: messages.NoticeWarning,
			Title: "Credential store unavailable",
			Text:  "Your sign-in will not be remembered for the next launch.",
		}
	default:
		return messages.Notice{
			Level: messages.NoticeError,
			Title: "Error",
			Text:  err.Error(),
		}
	}
}
