package domain

// SessionState is the sign-in state of the shell.
type SessionState int

const (
	// SessionSignedOut means no usable session exists.
	SessionSignedOut SessionState = iota
	// SessionSigningIn means an interactive sign-in is in progress.
	SessionSigningIn
	// SessionSignedIn means a complete session is installed.
	SessionSignedIn
)

// String returns the string representation of the state.
func (s SessionState) String() string {
	switch s {
	case SessionSignedOut:
		return "signed_out"
	case SessionSigningIn:
		return "signing_in"
	case SessionSignedIn:
		return "signed_in"
	default:
		return "unknown"
	}
}

// Identity describes the signed-in account.
type Identity struct {
	// Email is the verified address of the account, also the send target.
	Email string
}
