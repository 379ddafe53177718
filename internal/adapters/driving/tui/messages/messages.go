// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/shoplist/internal/core/domain"
)

// Activity identifies which background operation is running.
type Activity int

const (
	// ActivityIdle means nothing is running.
	ActivityIdle Activity = iota
	// ActivityRestoring is the silent launch-time restore.
	ActivityRestoring
	// ActivitySigningIn is the interactive browser sign-in.
	ActivitySigningIn
	// ActivitySigningOut deletes the stored record.
	ActivitySigningOut
	// ActivitySending renders and mails the list.
	ActivitySending
)

// String returns the string representation of the activity.
func (a Activity) String() string {
	switch a {
	case ActivityIdle:
		return "idle"
	case ActivityRestoring:
		return "restoring"
	case ActivitySigningIn:
		return "signing_in"
	case ActivitySigningOut:
		return "signing_out"
	case ActivitySending:
		return "sending"
	default:
		return "unknown"
	}
}

// RestoreCompleted carries the outcome of the launch-time restore.
// A nil Identity with a nil Err means nothing was restored.
type RestoreCompleted struct {
	Identity *domain.Identity
	Err      error
}

// AuthURLReady carries the consent URL while sign-in waits for the browser.
type AuthURLReady struct {
	URL string
}

// SignInCompleted carries the outcome of an interactive sign-in.
type SignInCompleted struct {
	Identity *domain.Identity
	Err      error
}

// SignOutCompleted signals the session was cleared.
// Err reports a failure to delete the stored record.
type SignOutCompleted struct {
	Err error
}

// SendCompleted carries the outcome of a send.
type SendCompleted struct {
	Items int
	Err   error
}

// ThemeSaved signals a theme toggle was persisted.
type ThemeSaved struct {
	Theme domain.Theme
	Err   error
}

// NoticeLevel is the severity of a modal notice.
type NoticeLevel int

const (
	// NoticeInfo reports a success.
	NoticeInfo NoticeLevel = iota
	// NoticeWarning reports a recoverable user mistake.
	NoticeWarning
	// NoticeError reports a failed operation.
	NoticeError
)

// String returns the string representation of the level.
func (l NoticeLevel) String() string {
	switch l {
	case NoticeInfo:
		return "info"
	case NoticeWarning:
		return "warning"
	case NoticeError:
		return "error"
	default:
		return "unknown"
	}
}

// Notice asks the shell to show a modal dialog.
type Notice struct {
	Level NoticeLevel
	Title string
	Text  string
}

// NoticeDismissed signals the user closed the modal.
type NoticeDismissed struct{}

// Quit signals the application should exit.
type Quit struct{}
