package driven

import "github.com/custodia-labs/shoplist/internal/core/domain"

// Renderer turns list items into an image snapshot.
type Renderer interface {
	// Render returns PNG bytes for the items in the given theme.
	// An empty slice renders a placeholder line, never an empty body.
	Render(items []string, theme domain.Theme) ([]byte, error)
}
