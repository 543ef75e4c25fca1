package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/diogo/aichat/internal/errors"
	"github.com/diogo/aichat/internal/render"
)

// spinner draws an animated indicator on stderr while a reply is pending
type spinner struct {
	message string
	out     io.Writer
	stop    chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	frame   int
	stopped bool // Flag to prevent double-close
}

// newSpinner creates a new animated spinner
func newSpinner(message string) *spinner {
	return newSpinnerTo(os.Stderr, message)
}

func newSpinnerTo(out io.Writer, message string) *spinner {
	return &spinner{
		message: message,
		out:     out,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// restart returns a fresh spinner with the same message and output.
// A stopped spinner cannot be started again.
func (s *spinner) restart() *spinner {
	return newSpinnerTo(s.out, s.message)
}

// start begins the animation
func (s *spinner) start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(120 * time.Millisecond)
		defer ticker.Stop()

		// Hide cursor
		fmt.Fprint(s.out, "\033[?25l")

		for {
			select {
			case <-s.stop:
				// Clear line and show cursor
				fmt.Fprint(s.out, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				s.mu.Lock()
				s.render()
				s.frame++
				s.mu.Unlock()
			}
		}
	}()
}

// render draws the current frame: three dots with one lit, then the message
func (s *spinner) render() {
	p := render.GetPalette()

	var dots strings.Builder
	active := s.frame % 3
	for i := 0; i < 3; i++ {
		color := p.TextMute
		if i == active {
			color = p.Primary
		}
		dots.WriteString(lipgloss.NewStyle().Foreground(color).Render("●"))
	}

	msg := lipgloss.NewStyle().Foreground(p.TextDim).Italic(true).Render(s.message)
	fmt.Fprintf(s.out, "\r\033[K%s %s", dots.String(), msg)
}

// stopOnce safely closes the stop channel only once
func (s *spinner) stopOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		close(s.stop)
		s.stopped = true
	}
}

// formatErrorMessage formats an error with a hint for reply failures
func formatErrorMessage(err error, context string) string {
	if err == nil {
		return ""
	}

	p := render.GetPalette()
	errorStyle := lipgloss.NewStyle().Foreground(p.Error)
	dimStyle := lipgloss.NewStyle().Foreground(p.TextDim)

	var sb strings.Builder
	sb.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s: %v", context, err)))

	switch {
	case apperrors.IsTimeoutError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: The assistant took too long to answer. Send the message again"))
	case apperrors.IsTransportError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: The reply source is unavailable. Check --replies and try again"))
	case apperrors.IsReplySourceError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Send the message again"))
	case apperrors.IsSettingError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Run 'aichat config show' to see the current settings"))
	}

	return sb.String()
}
