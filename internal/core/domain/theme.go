package domain

// Theme selects the light or dark palette.
type Theme string

// Available themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// IsValid returns true if the theme is recognised.
func (t Theme) IsValid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// String returns the string representation.
func (t Theme) String() string {
	return string(t)
}

// Palette holds the hex colours for one theme.
type Palette struct {
	Background string
	Card       string
	Foreground string
	Button     string
	Danger     string
}

// Palette returns the colours for the theme. Unknown themes get light.
func (t Theme) Palette() Palette {
	if t == ThemeDark {
		return Palette{
			Background: "#1E1E1E",
			Card:       "#2B2B2B",
			Foreground: "#F1F1F1",
			Button:     "#333333",
			Danger:     "#E57373",
		}
	}
	return Palette{
		Background: "#FFFFFF",
		Card:       "#F5F5F5",
		Foreground: "#000000",
		Button:     "#E0E0E0",
		Danger:     "#F44336",
	}
}
