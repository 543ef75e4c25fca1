package render

// Glamour standard styles
const (
	StyleDark       = "dark"
	StyleLight      = "light"
	StyleDracula    = "dracula"
	StyleTokyoNight = "tokyo-night"
	StylePink       = "pink"
	StyleNoTTY      = "notty"
	StyleASCII      = "ascii"
)

// StyleInfo describes a markdown style for display purposes
type StyleInfo struct {
	Name        string
	Description string
}

// MarkdownStyles returns the built-in markdown styles
func MarkdownStyles() []StyleInfo {
	return []StyleInfo{
		{Name: StyleDark, Description: "Dark theme (default)"},
		{Name: StyleLight, Description: "Light theme for bright terminals"},
		{Name: StyleDracula, Description: "Dracula color scheme"},
		{Name: StyleTokyoNight, Description: "Tokyo Night color scheme"},
		{Name: StylePink, Description: "Pink accents"},
		{Name: StyleNoTTY, Description: "Plain text (no styling)"},
		{Name: StyleASCII, Description: "ASCII-only output"},
	}
}

// IsBuiltinStyle reports whether style names a built-in markdown style
// rather than a path to a JSON style file
func IsBuiltinStyle(style string) bool {
	for _, s := range MarkdownStyles() {
		if s.Name == style {
			return true
		}
	}
	return false
}
