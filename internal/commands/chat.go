package commands

import (
	"context"
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/diogo/aichat/internal/config"
	"github.com/diogo/aichat/internal/render"
	"github.com/diogo/aichat/internal/transcript"
	"github.com/diogo/aichat/internal/tui"
)

// NewChatCmd creates the chat command
func NewChatCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start a chat session with the assistant.

F1, F2 and F3 insert quick replies. Type /help for the chat commands,
and 'exit', '/exit' or press Esc to end the session.

When stdout is not a terminal, messages are read line by line from stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, deps)
		},
	}
}

func runChat(cmd *cobra.Command, deps *Dependencies) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := openDebugLog(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	source, err := deps.NewSource(cfg)
	if err != nil {
		return fmt.Errorf("failed to create reply source: %w", err)
	}

	if cfg.TUITheme != "" && !render.SetPalette(cfg.TUITheme) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: unknown theme '%s', using '%s'\n",
			cfg.TUITheme, render.GetPalette().Name)
	}
	tui.UpdateTheme()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store := transcript.NewStore(source,
		transcript.WithGreeting(cfg.Greeting),
		transcript.WithLogger(logger),
		transcript.WithContext(ctx),
	)
	defer store.Close()

	if deps.IsTTY() {
		logger.Printf("starting chat TUI (locale %s, delay %s)", cfg.Locale, cfg.ReplyDelay())
		return deps.TUI.RunChat(store, tui.ChatOptions{
			Locale:      cfg.Locale,
			CopyReplies: cfg.CopyToClipboard,
			Render:      render.OptionsFromConfig(cfg),
		})
	}

	logger.Printf("starting line mode")
	lm := &lineMode{
		store:  store,
		in:     deps.Stdin,
		out:    deps.Stdout,
		locale: cfg.Locale,
	}
	if isStderrTTY() {
		lm.indicator = newSpinner("Assistant is typing")
	}
	return lm.run(ctx)
}

// openDebugLog returns the logger for lifecycle events. With debug enabled
// it writes to debug.log in the config directory; otherwise it discards.
func openDebugLog(cfg config.Config) (*log.Logger, func(), error) {
	if !cfg.Debug {
		return log.New(io.Discard, "", 0), func() {}, nil
	}

	path, err := config.GetDebugLogPath()
	if err != nil {
		return nil, nil, err
	}

	f, err := tea.LogToFile(path, "aichat")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open debug log: %w", err)
	}

	// LogToFile points the standard logger at the file
	return log.Default(), func() { _ = f.Close() }, nil
}
