package domain

import "time"

// StoreBackend identifies where the credential record is kept.
type StoreBackend string

// Available credential store backends.
const (
	// StoreBackendFirebase keeps the record in a Firebase Realtime Database.
	StoreBackendFirebase StoreBackend = "firebase"

	// StoreBackendSQLite keeps the record in a local SQLite file.
	StoreBackendSQLite StoreBackend = "sqlite"

	// StoreBackendMemory keeps the record in process memory only.
	StoreBackendMemory StoreBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StoreBackend) IsValid() bool {
	switch b {
	case StoreBackendFirebase, StoreBackendSQLite, StoreBackendMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StoreBackend) String() string {
	return string(b)
}

// StoreSettings configures the credential store.
type StoreSettings struct {
	// Backend selects the store implementation.
	Backend StoreBackend
	// DatabaseURL is the Firebase Realtime Database endpoint.
	DatabaseURL string
	// RecordPath is the fixed logical path of the credential record.
	RecordPath string
	// ServiceAccountFile is the service credential file, relative to the
	// resource directory unless absolute.
	ServiceAccountFile string
}

// OAuthSettings configures the interactive sign-in.
type OAuthSettings struct {
	// ClientFile is the registered client descriptor, relative to the
	// resource directory unless absolute.
	ClientFile string
	// Timeout bounds how long sign-in waits for the browser redirect.
	Timeout time.Duration
}

// MailSettings configures the outgoing message.
type MailSettings struct {
	Subject        string
	AttachmentName string
}

// AppSettings represents all user-configurable settings.
type AppSettings struct {
	// Theme is the palette used by the shell and the snapshot.
	Theme Theme

	// ResourceDir overrides where credential files are looked up.
	ResourceDir string

	OAuth OAuthSettings
	Store StoreSettings
	Mail  MailSettings
}

// DefaultAppSettings returns settings matching the out-of-the-box behaviour.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Theme: ThemeLight,
		OAuth: OAuthSettings{
			ClientFile: "credentials.json",
			Timeout:    5 * time.Minute,
		},
		Store: StoreSettings{
			Backend:            StoreBackendFirebase,
			RecordPath:         "/users/credentials",
			ServiceAccountFile: "firebase_key.json",
		},
		Mail: MailSettings{
			Subject:        "Your Shopping List",
			AttachmentName: "shopping_list.png",
		},
	}
}
