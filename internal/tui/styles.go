// Package tui provides the terminal user interface for aichat.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/aichat/internal/errors"
	"github.com/diogo/aichat/internal/render"
)

// Color variables (updated from the palette)
var (
	colorBorder lipgloss.Color

	colorPrimary    lipgloss.Color
	colorSecondary  lipgloss.Color
	colorUserBubble lipgloss.Color
	colorWarning    lipgloss.Color
	colorError      lipgloss.Color

	colorText     lipgloss.Color
	colorTextDim  lipgloss.Color
	colorTextMute lipgloss.Color
	colorOnBubble lipgloss.Color
)

// Style variables (rebuilt when the palette changes)
var (
	headerStyle   lipgloss.Style
	titleStyle    lipgloss.Style
	subtitleStyle lipgloss.Style
	onlineStyle   lipgloss.Style
	hintStyle     lipgloss.Style

	messagesAreaStyle lipgloss.Style

	userBubbleStyle      lipgloss.Style
	userLabelStyle       lipgloss.Style
	assistantBubbleStyle lipgloss.Style
	assistantLabelStyle  lipgloss.Style
	timestampStyle       lipgloss.Style

	inputPanelStyle lipgloss.Style
	inputLabelStyle lipgloss.Style
	typingStyle     lipgloss.Style

	presetKeyStyle  lipgloss.Style
	presetTextStyle lipgloss.Style

	statusBarStyle  lipgloss.Style
	statusKeyStyle  lipgloss.Style
	statusDescStyle lipgloss.Style

	noticeStyle lipgloss.Style
	errorStyle  lipgloss.Style
)

// Gradient colors for the typing animation
var gradientColors = []lipgloss.Color{
	lipgloss.Color("#FF9D00"),
	lipgloss.Color("#FFB000"),
	lipgloss.Color("#FFC300"),
	lipgloss.Color("#FFD21E"),
	lipgloss.Color("#FFC300"),
	lipgloss.Color("#FFB000"),
}

func init() {
	UpdateTheme()
}

// UpdateTheme refreshes all styles from the active palette
func UpdateTheme() {
	p := render.GetPalette()

	colorBorder = p.Border
	colorPrimary = p.Primary
	colorSecondary = p.Secondary
	colorUserBubble = p.UserBubble
	colorWarning = p.Warning
	colorError = p.Error
	colorText = p.Text
	colorTextDim = p.TextDim
	colorTextMute = p.TextMute
	colorOnBubble = p.OnBubble

	rebuildStyles()
}

func rebuildStyles() {
	headerStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Padding(0, 2)

	titleStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	subtitleStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	onlineStyle = lipgloss.NewStyle().
		Foreground(colorSecondary)

	hintStyle = lipgloss.NewStyle().
		Foreground(colorTextMute).
		Italic(true)

	messagesAreaStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	// User messages sit on the right on a filled bubble
	userBubbleStyle = lipgloss.NewStyle().
		Background(colorUserBubble).
		Foreground(colorOnBubble).
		Padding(0, 1)

	userLabelStyle = lipgloss.NewStyle().
		Foreground(colorUserBubble).
		Bold(true)

	assistantBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Foreground(colorText).
		Padding(0, 1)

	assistantLabelStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	timestampStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	inputPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	inputLabelStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		MarginRight(1)

	typingStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Italic(true)

	presetKeyStyle = lipgloss.NewStyle().
		Foreground(colorOnBubble).
		Background(colorPrimary).
		Padding(0, 1)

	presetTextStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	statusBarStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	statusKeyStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Bold(true)

	statusDescStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	noticeStyle = lipgloss.NewStyle().
		Foreground(colorWarning).
		Italic(true)

	errorStyle = lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true)
}

// FormatError returns a styled error message with a hint for reply failures.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	errStyle := lipgloss.NewStyle().Foreground(colorError)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errStyle.Render(fmt.Sprintf("✗ %v", err)))

	switch {
	case errors.IsTimeoutError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: The assistant took too long. Type /retry to ask again"))
	case errors.IsTransportError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: The reply source is unavailable. Type /retry to ask again"))
	case errors.IsReplySourceError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Type /retry to ask again"))
	}

	return sb.String()
}

// PrintError prints a styled error message.
func PrintError(err error) {
	if err == nil {
		return
	}
	fmt.Println(FormatError(err))
}
