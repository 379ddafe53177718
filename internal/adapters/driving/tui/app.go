package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/shoplist/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/shoplist/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/shoplist/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/shoplist/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/shoplist/internal/adapters/driving/tui/views/cards"
	"github.com/custodia-labs/shoplist/internal/adapters/driving/tui/views/notice"
	"github.com/custodia-labs/shoplist/internal/core/domain"
	"github.com/custodia-labs/shoplist/internal/logger"
)

// WindowTitle is the terminal title while the shell runs.
const WindowTitle = "Shopping List"

// chromeHeight is the number of lines used by the top, bottom and status bars.
const chromeHeight = 4

// App is the main TUI application model.
// It implements tea.Model and owns every piece of widget state; background
// work reports back only through messages.
type App struct {
	ports  *Ports
	ctx    context.Context
	keymap *keymap.KeyMap
	styles *styles.Styles
	theme  domain.Theme

	cards  *cards.View
	notice *notice.View
	status *status.Bar

	// events carries messages produced while a command is still running.
	events  chan tea.Msg
	authURL string

	width  int
	height int
	ready  bool
}

// NewApp creates a new TUI application with the given ports.
// The saved theme is applied when settings are available.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, err
	}

	theme := domain.ThemeLight
	if ports.Settings != nil {
		settings, err := ports.Settings.Get()
		if err != nil {
			logger.Warn("Failed to load settings: %v", err)
		} else if settings.Theme.IsValid() {
			theme = settings.Theme
		}
	}

	s := styles.ForTheme(theme)
	km := keymap.DefaultKeyMap()

	return &App{
		ports:  ports,
		ctx:    context.Background(),
		keymap: km,
		styles: s,
		theme:  theme,
		cards:  cards.NewView(s),
		notice: notice.NewView(s, km),
		status: status.NewBar(s, km),
		events: make(chan tea.Msg, 1),
	}, nil
}

// WithContext sets the context for service calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Notify queues a notice, shown once the shell is drawn.
func (a *App) Notify(n messages.Notice) {
	a.notice.Push(n)
}

// Init implements tea.Model.
// It starts the silent restore and the event pump.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle(WindowTitle),
		a.cards.Init(),
		a.status.Start(messages.ActivityRestoring),
		a.restore(),
		a.waitForEvent(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.setSize(msg.Width, msg.Height)
		return a, nil

	case spinner.TickMsg:
		a.status, cmd = a.status.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), a.keymap.Quit) {
			return a, tea.Quit
		}
		if a.notice.Visible() {
			a.notice, cmd = a.notice.Update(msg)
			return a, cmd
		}
		return a, a.handleKey(msg)

	case messages.RestoreCompleted:
		a.status.Done(messages.ActivityRestoring, "")
		if msg.Err != nil {
			logger.Warn("Auto-login failed: %v", msg.Err)
			return a, nil
		}
		if msg.Identity != nil {
			a.notice.Push(messages.Notice{
				Level: messages.NoticeInfo,
				Title: "Signed in",
				Text:  "Signed in as " + msg.Identity.Email,
			})
		}
		return a, nil

	case messages.AuthURLReady:
		a.setAuthURL(msg.URL)
		return a, a.waitForEvent()

	case messages.SignInCompleted:
		a.setAuthURL("")
		if msg.Err != nil {
			a.status.Done(messages.ActivitySigningIn, "Sign-in failed")
			if !errors.Is(msg.Err, context.Canceled) {
				a.notice.Push(notice.FromError(msg.Err))
			}
			return a, nil
		}
		a.status.Done(messages.ActivitySigningIn, "Signed in")
		if msg.Identity != nil {
			a.notice.Push(messages.Notice{
				Level: messages.NoticeInfo,
				Title: "Signed in",
				Text:  "Signed in as " + msg.Identity.Email,
			})
		}
		return a, nil

	case messages.SignOutCompleted:
		if msg.Err != nil {
			a.status.Done(messages.ActivitySigningOut, "Logged out; saved sign-in could not be removed")
			a.notice.Push(messages.Notice{
				Level: messages.NoticeWarning,
				Title: "Logged out",
				Text:  "You have been logged out, but the saved sign-in could not be removed. It may be used again on the next launch.",
			})
			return a, nil
		}
		a.status.Done(messages.ActivitySigningOut, "Logged out")
		a.notice.Push(messages.Notice{
			Level: messages.NoticeInfo,
			Title: "Logged out",
			Text:  "You have been logged out successfully.",
		})
		return a, nil

	case messages.SendCompleted:
		if msg.Err != nil {
			a.status.Done(messages.ActivitySending, "Send failed")
			a.notice.Push(notice.FromError(msg.Err))
			return a, nil
		}
		a.status.Done(messages.ActivitySending, "Shopping list sent")
		text := "Your shopping list was emailed to you."
		if id := a.ports.Session.Identity(); id != nil {
			text = "Your shopping list was emailed to " + id.Email + "."
		}
		a.notice.Push(messages.Notice{
			Level: messages.NoticeInfo,
			Title: "Sent",
			Text:  text,
		})
		return a, nil

	case messages.ThemeSaved:
		if msg.Err != nil {
			logger.Warn("Failed to save theme %s: %v", msg.Theme, msg.Err)
		}
		return a, nil

	case messages.NoticeDismissed:
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Cursor blink and other component messages
	a.cards, cmd = a.cards.Update(msg)
	return a, cmd
}

// handleKey dispatches a key press when no notice is showing.
func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	k := msg.String()
	switch {
	case keymap.Matches(k, a.keymap.Add):
		return a.cards.Add()
	case keymap.Matches(k, a.keymap.Delete):
		return a.cards.RemoveFocused()
	case keymap.Matches(k, a.keymap.Up):
		return a.cards.FocusPrev()
	case keymap.Matches(k, a.keymap.Down):
		return a.cards.FocusNext()
	case keymap.Matches(k, a.keymap.Send):
		return a.send()
	case keymap.Matches(k, a.keymap.Theme):
		return a.toggleTheme()
	case keymap.Matches(k, a.keymap.SignIn):
		return a.signIn()
	case keymap.Matches(k, a.keymap.SignOut):
		return a.signOut()
	}

	var cmd tea.Cmd
	a.cards, cmd = a.cards.Update(msg)
	return cmd
}

// restore returns a command that silently rebuilds the saved session.
func (a *App) restore() tea.Cmd {
	return func() tea.Msg {
		id, err := a.ports.Session.Restore(a.ctx)
		return messages.RestoreCompleted{Identity: id, Err: err}
	}
}

// send returns a command that mails a snapshot of the current items.
// Items and theme are captured now, on the UI goroutine.
func (a *App) send() tea.Cmd {
	if a.status.Running(messages.ActivitySending) {
		a.status.SetMessage("Already sending")
		return nil
	}
	items := a.cards.Items()
	theme := a.theme
	tick := a.status.Start(messages.ActivitySending)
	return tea.Batch(tick, func() tea.Msg {
		err := a.ports.Dispatch.Send(a.ctx, items, theme)
		return messages.SendCompleted{Items: len(items), Err: err}
	})
}

// signIn returns a command that runs the browser flow.
// The consent URL is handed back through the events channel.
func (a *App) signIn() tea.Cmd {
	switch a.ports.Session.State() {
	case domain.SessionSigningIn:
		return nil
	case domain.SessionSignedIn:
		if id := a.ports.Session.Identity(); id != nil {
			a.status.SetMessage("Already signed in as " + id.Email)
		}
		return nil
	case domain.SessionSignedOut:
	}
	if a.status.Running(messages.ActivitySigningIn) {
		return nil
	}

	ctx := a.ctx
	events := a.events
	prompt := func(url string) {
		select {
		case events <- messages.AuthURLReady{URL: url}:
		case <-ctx.Done():
		}
	}

	tick := a.status.Start(messages.ActivitySigningIn)
	return tea.Batch(tick, func() tea.Msg {
		id, err := a.ports.Session.SignIn(ctx, prompt)
		return messages.SignInCompleted{Identity: id, Err: err}
	})
}

// signOut returns a command that clears the session and the stored record.
func (a *App) signOut() tea.Cmd {
	if a.ports.Session.State() != domain.SessionSignedIn {
		a.status.SetMessage("Not signed in")
		return nil
	}
	tick := a.status.Start(messages.ActivitySigningOut)
	return tea.Batch(tick, func() tea.Msg {
		return messages.SignOutCompleted{Err: a.ports.Session.SignOut(a.ctx)}
	})
}

// toggleTheme switches palettes now and persists the choice in the background.
func (a *App) toggleTheme() tea.Cmd {
	a.theme = a.theme.Toggle()
	a.styles = styles.ForTheme(a.theme)
	a.cards.SetStyles(a.styles)
	a.notice.SetStyles(a.styles)
	a.status.SetStyles(a.styles)

	if a.ports.Settings == nil {
		return nil
	}
	theme := a.theme
	return func() tea.Msg {
		return messages.ThemeSaved{Theme: theme, Err: a.ports.Settings.SetTheme(theme)}
	}
}

// waitForEvent returns a command that delivers the next event.
// Handlers re-arm it after each delivery.
func (a *App) waitForEvent() tea.Cmd {
	events := a.events
	return func() tea.Msg {
		select {
		case msg := <-events:
			return msg
		case <-a.ctx.Done():
			return nil
		}
	}
}

// setAuthURL shows or hides the consent URL line above the cards.
func (a *App) setAuthURL(url string) {
	a.authURL = url
	if a.ready {
		a.setSize(a.width, a.height)
	}
}

func (a *App) setSize(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	body := height - chromeHeight
	if a.authURL != "" {
		body--
	}
	a.cards.SetSize(width, body)
	a.notice.SetSize(width, height)
	a.status.SetWidth(width)
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	if a.notice.Visible() {
		return a.paint(a.notice.View())
	}

	parts := []string{a.viewTopBar()}
	if a.authURL != "" {
		parts = append(parts, a.styles.Muted.Render(
			"If the browser did not open, visit: "+a.authURL))
	}
	parts = append(parts, a.cards.View())

	body := lipgloss.JoinVertical(lipgloss.Left, parts...)
	footer := lipgloss.JoinVertical(lipgloss.Left, a.viewBottomBar(), a.status.View())

	gap := a.height - lipgloss.Height(body) - lipgloss.Height(footer)
	if gap < 0 {
		gap = 0
	}
	return a.paint(body + strings.Repeat("\n", gap+1) + footer)
}

// paint fills the terminal with the theme background.
func (a *App) paint(content string) string {
	return a.styles.Screen.Width(a.width).Height(a.height).Render(content)
}

// viewTopBar renders the title, theme, identity and account hints.
func (a *App) viewTopBar() string {
	title := a.styles.Title.Render("🛒 " + WindowTitle)
	theme := a.styles.Muted.Render("[" + a.theme.String() + "]")
	identity := a.styles.Normal.Render(a.IdentityLabel())

	signedIn := a.ports.Session.State() == domain.SessionSignedIn
	bindings := a.keymap.AccountHelp(signedIn)
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s %s", h.Key, h.Desc))
	}
	right := identity + "  " + a.styles.Help.Render(strings.Join(hints, " | "))
	left := title + " " + theme

	padding := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}
	return a.styles.TopBar.Width(a.width).Render(left + strings.Repeat(" ", padding) + right)
}

// viewBottomBar renders the add and send actions.
func (a *App) viewBottomBar() string {
	parts := make([]string, 0, 5)
	for _, b := range a.keymap.ActionHelp() {
		h := b.Help()
		label := strings.ToUpper(h.Desc[:1]) + h.Desc[1:]
		if keymap.Matches(h.Key, a.keymap.Add) {
			label = "+ " + label
		}
		parts = append(parts, a.styles.Button.Render(label+" ("+h.Key+")"), " ")
	}
	parts = append(parts, " ", a.styles.Muted.Render(a.cards.Summary()))
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// IdentityLabel returns the account text shown in the top bar.
func (a *App) IdentityLabel() string {
	switch a.ports.Session.State() {
	case domain.SessionSigningIn:
		return "Signing in…"
	case domain.SessionSignedIn:
		if id := a.ports.Session.Identity(); id != nil {
			return id.Email
		}
	case domain.SessionSignedOut:
	}
	return "Not signed in"
}

// Run starts the TUI application and blocks until it exits.
// Background commands see a context cancelled on exit.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(a.ctx)
	defer cancel()
	a.ctx = ctx

	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Theme returns the active theme.
func (a *App) Theme() domain.Theme {
	return a.theme
}

// Items returns the non-blank list items.
func (a *App) Items() []string {
	return a.cards.Items()
}

// Rows returns the number of rows, blanks included.
func (a *App) Rows() int {
	return a.cards.Len()
}

// AuthURL returns the consent URL while sign-in waits, else "".
func (a *App) AuthURL() string {
	return a.authURL
}

// CurrentNotice returns the notice on screen, if any.
func (a *App) CurrentNotice() (messages.Notice, bool) {
	return a.notice.Current()
}

// Activity returns the newest running background activity.
func (a *App) Activity() messages.Activity {
	return a.status.Activity()
}

// Ready returns whether the app has been sized.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.setSize(width, height)
}
