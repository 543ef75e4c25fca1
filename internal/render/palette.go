package render

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Palette defines the color scheme for the chat interface
type Palette struct {
	Name        string
	Description string

	// Surfaces
	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	// Accents. UserBubble fills the user's messages and the send button.
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	UserBubble lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color

	// Text
	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color
	OnBubble lipgloss.Color
}

var (
	// AmberPalette is the default: orange accents with a yellow user bubble
	AmberPalette = Palette{
		Name:        "amber",
		Description: "Amber - Warm dark theme with orange and yellow accents",

		Background: lipgloss.Color("#1c1917"),
		Surface:    lipgloss.Color("#292524"),
		Border:     lipgloss.Color("#57534e"),

		Primary:    lipgloss.Color("#FF9D00"),
		Secondary:  lipgloss.Color("#a3e635"),
		UserBubble: lipgloss.Color("#FFD21E"),
		Warning:    lipgloss.Color("#fbbf24"),
		Error:      lipgloss.Color("#f87171"),

		Text:     lipgloss.Color("#f5f5f4"),
		TextDim:  lipgloss.Color("#a8a29e"),
		TextMute: lipgloss.Color("#57534e"),
		OnBubble: lipgloss.Color("#1c1917"),
	}

	TokyoNightPalette = Palette{
		Name:        "tokyonight",
		Description: "Tokyo Night - Dark theme with blue accents",

		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#24283b"),
		Border:     lipgloss.Color("#414868"),

		Primary:    lipgloss.Color("#7aa2f7"),
		Secondary:  lipgloss.Color("#9ece6a"),
		UserBubble: lipgloss.Color("#bb9af7"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),

		Text:     lipgloss.Color("#c0caf5"),
		TextDim:  lipgloss.Color("#565f89"),
		TextMute: lipgloss.Color("#3b4261"),
		OnBubble: lipgloss.Color("#1a1b26"),
	}

	NordPalette = Palette{
		Name:        "nord",
		Description: "Nord - Arctic-inspired theme with cool tones",

		Background: lipgloss.Color("#2e3440"),
		Surface:    lipgloss.Color("#3b4252"),
		Border:     lipgloss.Color("#4c566a"),

		Primary:    lipgloss.Color("#88c0d0"),
		Secondary:  lipgloss.Color("#a3be8c"),
		UserBubble: lipgloss.Color("#ebcb8b"),
		Warning:    lipgloss.Color("#d08770"),
		Error:      lipgloss.Color("#bf616a"),

		Text:     lipgloss.Color("#eceff4"),
		TextDim:  lipgloss.Color("#7b88a1"),
		TextMute: lipgloss.Color("#4c566a"),
		OnBubble: lipgloss.Color("#2e3440"),
	}
)

var (
	paletteMu      sync.RWMutex
	currentPalette = AmberPalette
)

// GetPalette returns the active palette
func GetPalette() Palette {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	return currentPalette
}

// SetPalette activates the named palette. It reports false and leaves the
// active palette unchanged when the name is unknown.
func SetPalette(name string) bool {
	p, ok := PaletteByName(name)
	if !ok {
		return false
	}
	paletteMu.Lock()
	currentPalette = p
	paletteMu.Unlock()
	return true
}

// PaletteByName looks up a built-in palette
func PaletteByName(name string) (Palette, bool) {
	for _, p := range AvailablePalettes() {
		if p.Name == name {
			return p, true
		}
	}
	return Palette{}, false
}

// AvailablePalettes lists the built-in palettes, default first
func AvailablePalettes() []Palette {
	return []Palette{AmberPalette, TokyoNightPalette, NordPalette}
}

// PaletteNames returns the names of the built-in palettes
func PaletteNames() []string {
	palettes := AvailablePalettes()
	names := make([]string, len(palettes))
	for i, p := range palettes {
		names[i] = p.Name
	}
	return names
}
