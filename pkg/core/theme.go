package core

// Theme is the UI color preference persisted alongside the notes.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether the theme is one of the enumerated values.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// DefaultTheme is substituted for missing or invalid stored values.
const DefaultTheme = ThemeLight
