package commands

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/diogo/aichat/internal/config"
	"github.com/diogo/aichat/internal/reply"
	"github.com/diogo/aichat/internal/transcript"
	"github.com/diogo/aichat/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(store *transcript.Store, opts tui.ChatOptions) error
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// TUI is the terminal user interface.
	TUI TUIInterface

	// NewSource builds the reply source for a configuration.
	NewSource func(cfg config.Config) (reply.Source, error)

	// Stdin and Stdout are used by line mode.
	Stdin  io.Reader
	Stdout io.Writer

	// IsTTY reports whether stdout is an interactive terminal.
	IsTTY func() bool
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(store *transcript.Store, opts tui.ChatOptions) error {
	return tui.RunChat(store, opts)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		TUI:       &DefaultTUI{},
		NewSource: newReplySource,
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
		IsTTY:     isStdoutTTY,
	}
}

// newReplySource builds the canned reply source, reading the reply set from
// the configured file when one is set
func newReplySource(cfg config.Config) (reply.Source, error) {
	opts := []reply.CannedOption{reply.WithDelay(cfg.ReplyDelay())}

	if cfg.RepliesFile != "" {
		replies, err := reply.LoadReplies(cfg.RepliesFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, reply.WithReplies(replies))
	}

	return reply.NewCanned(opts...), nil
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// isStderrTTY returns true if stderr is connected to a terminal
func isStderrTTY() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}
