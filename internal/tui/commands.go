package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/diogo/aichat/internal/errors"
	"github.com/diogo/aichat/internal/models"
	"github.com/diogo/aichat/internal/transcript"
)

// helpText lists the slash commands
const helpText = "/reset new chat • /retry ask again • /copy copy last reply • /export [path] save chat • /exit quit • //text sends /text"

// isCommand reports whether input is a slash command or a bare exit word
func isCommand(input string) bool {
	return strings.HasPrefix(input, "/") || input == "exit" || input == "quit"
}

// unescapeCommand turns "//text" into the literal message "/text"
func unescapeCommand(input string) (string, bool) {
	if !strings.HasPrefix(input, "//") {
		return "", false
	}
	return input[1:], true
}

// runCommand executes a slash command. Commands never touch the transcript
// except /reset and /retry, which go through the store.
func (m Model) runCommand(input string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(input)
	name, args := fields[0], fields[1:]

	m.notice = ""
	m.cmdErr = nil

	switch name {
	case "/exit", "/quit", "exit", "quit":
		m.store.Close()
		return m, tea.Quit

	case "/help":
		m.notice = helpText

	case "/reset", "/new":
		m.store.Reset()
		m.updateViewport()
		m.viewport.GotoTop()
		m.notice = "Started a new chat"

	case "/retry":
		if err := m.store.Retry(); err != nil {
			if errors.Is(err, apperrors.ErrNothingToRetry) {
				m.notice = "Nothing to retry"
				return m, nil
			}
			m.cmdErr = err
			return m, nil
		}
		return m, m.startTyping()

	case "/copy":
		last, ok := m.store.Snapshot().LastFrom(models.SenderAssistant)
		if !ok {
			m.notice = "No reply to copy"
			return m, nil
		}
		return m, m.copy(last.Text)

	case "/export":
		path := defaultExportPath(time.Now())
		if len(args) > 0 {
			path = args[0]
		}
		return m, exportChat(m.store.Snapshot(), path)

	default:
		m.notice = fmt.Sprintf("Unknown command %s. %s", name, helpText)
	}

	return m, nil
}

// defaultExportPath names an export file after the current time
func defaultExportPath(now time.Time) string {
	return fmt.Sprintf("aichat-%s.md", now.Format("20060102-150405"))
}

// exportChat writes a snapshot of the transcript off the update loop.
// The format follows the file extension.
func exportChat(state transcript.State, path string) tea.Cmd {
	return func() tea.Msg {
		opts := transcript.DefaultExportOptions()
		opts.Format = transcript.FormatForPath(path)

		data, err := transcript.Export(state, opts)
		if err != nil {
			return exportedMsg{path: path, err: err}
		}
		if err := os.WriteFile(path, data, 0o600); err != nil {
			return exportedMsg{path: path, err: err}
		}
		return exportedMsg{path: path}
	}
}
