package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/shoplist/internal/core/domain"
	"github.com/custodia-labs/shoplist/internal/core/ports/driven"
	"github.com/custodia-labs/shoplist/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyTheme              = "ui.theme"
	keyResourceDir        = "resources.dir"
	keyOAuthClientFile    = "oauth.client_file"
	keyOAuthTimeout       = "oauth.timeout_seconds"
	keyStoreBackend       = "store.backend"
	keyStoreDatabaseURL   = "store.database_url"
	keyStoreRecordPath    = "store.record_path"
	keyStoreServiceAcct   = "store.service_account_file"
	keyMailSubject        = "mail.subject"
	keyMailAttachmentName = "mail.attachment_name"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Missing or invalid values
// fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()
	if s.configStore == nil {
		return &defaults, nil
	}

	settings := &domain.AppSettings{
		Theme:       s.getTheme(defaults.Theme),
		ResourceDir: s.getString(keyResourceDir, defaults.ResourceDir),
		OAuth: domain.OAuthSettings{
			ClientFile: s.getString(keyOAuthClientFile, defaults.OAuth.ClientFile),
			Timeout:    s.getSeconds(keyOAuthTimeout, defaults.OAuth.Timeout),
		},
		Store: domain.StoreSettings{
			Backend:            s.getBackend(defaults.Store.Backend),
			DatabaseURL:        s.getString(keyStoreDatabaseURL, defaults.Store.DatabaseURL),
			RecordPath:         s.getString(keyStoreRecordPath, defaults.Store.RecordPath),
			ServiceAccountFile: s.getString(keyStoreServiceAcct, defaults.Store.ServiceAccountFile),
		},
		Mail: domain.MailSettings{
			Subject:        s.getString(keyMailSubject, defaults.Mail.Subject),
			AttachmentName: s.getString(keyMailAttachmentName, defaults.Mail.AttachmentName),
		},
	}

	return settings, nil
}

// SetTheme persists the theme choice.
func (s *SettingsService) SetTheme(theme domain.Theme) error {
	if !theme.IsValid() {
		return fmt.Errorf("%w: invalid theme: %s", domain.ErrInvalidInput, theme)
	}
	if s.configStore == nil {
		return nil
	}
	if err := s.configStore.Put(keyTheme, theme.String()); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val, ok := s.configStore.Lookup(key)
	if !ok || val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getSeconds(key string, defaultVal time.Duration) time.Duration {
	val, ok := s.configStore.LookupInt(key)
	if !ok || val <= 0 {
		return defaultVal
	}
	return time.Duration(val) * time.Second
}

func (s *SettingsService) getTheme(defaultVal domain.Theme) domain.Theme {
	theme := domain.Theme(s.getString(keyTheme, ""))
	if !theme.IsValid() {
		return defaultVal
	}
	return theme
}

func (s *SettingsService) getBackend(defaultVal domain.StoreBackend) domain.StoreBackend {
	backend := domain.StoreBackend(s.getString(keyStoreBackend, ""))
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
