package driving

import "github.com/custodia-labs/shoplist/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// SetTheme persists the theme choice.
	SetTheme(theme domain.Theme) error
}
