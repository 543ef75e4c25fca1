package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/diogo/aichat/internal/errors"
	"github.com/diogo/aichat/internal/models"
	"github.com/diogo/aichat/internal/render"
	"github.com/diogo/aichat/internal/transcript"
)

// Animation tick message
type animationTickMsg time.Time

// Message types for the TUI
type (
	// replyMsg carries a finished reply cycle from the store's channel
	replyMsg struct {
		completion transcript.Completion
	}
	copiedMsg struct {
		err error
	}
	exportedMsg struct {
		path string
		err  error
	}
)

// Presets are the quick replies bound to F1, F2 and F3
var Presets = []string{
	"Tell me about yourself",
	"How do you work?",
	"Help me with a task",
}

// ChatOptions configures the chat model
type ChatOptions struct {
	// Locale selects the timestamp format
	Locale string
	// CopyReplies copies every assistant reply to the clipboard
	CopyReplies bool
	// Render configures markdown rendering of assistant replies
	Render render.Options
}

// Model represents the TUI state. The store is owned by the bubbletea loop:
// every store call happens in Update.
type Model struct {
	store *transcript.Store
	opts  ChatOptions

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	ready          bool
	animationFrame int
	notice         string // feedback from slash commands
	cmdErr         error  // failure of the last slash command

	// copyText writes to the system clipboard
	copyText func(string) error

	// Dimensions
	width  int
	height int
}

// NewChatModel creates a chat model observing store
func NewChatModel(store *transcript.Store, opts ChatOptions) Model {
	if opts.Render.Width == 0 {
		opts.Render = render.DefaultOptions()
	}

	ta := textarea.New()
	ta.Placeholder = "Type a message..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = typingStyle

	return Model{
		store:    store,
		opts:     opts,
		textarea: ta,
		spinner:  s,
		copyText: clipboard.WriteAll,
	}
}

// Init starts listening for reply completions
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		waitForReply(m.store.Completions()),
	)
}

// waitForReply receives the next completion. It is armed once in Init and
// re-armed after every replyMsg, so exactly one receiver is live.
func waitForReply(ch <-chan transcript.Completion) tea.Cmd {
	return func() tea.Msg {
		return replyMsg{completion: <-ch}
	}
}

// animationTick returns a command that sends animation tick messages
func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 3 // Header panel with border
		inputHeight := 5  // Input panel with border
		presetHeight := 1 // Quick replies
		statusHeight := 2 // Status bar and notice line

		vpHeight := m.height - headerHeight - inputHeight - presetHeight - statusHeight - 2
		if vpHeight < 5 {
			vpHeight = 5
		}

		contentWidth := m.width - 4

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
		}
		m.textarea.SetWidth(contentWidth - 4)
		m.updateViewport()
		m.viewport.GotoBottom()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.store.Close()
			return m, tea.Quit

		case "esc":
			// A pending reply cannot be cancelled; Esc only quits when idle
			if m.store.PendingReply() {
				return m, nil
			}
			m.store.Close()
			return m, tea.Quit

		case "f1", "f2", "f3":
			if m.store.PendingReply() {
				return m, nil
			}
			preset := Presets[int(msg.String()[1]-'1')]
			m.textarea.SetValue(preset)
			m.store.UpdateDraft(preset)
			return m, nil

		case "enter":
			return m.submit()
		}

	case replyMsg:
		if m.store.Apply(msg.completion) {
			m.updateViewport()
			m.viewport.GotoBottom()
			if m.opts.CopyReplies && m.store.LastError() == nil {
				if last, ok := m.store.Snapshot().LastFrom(models.SenderAssistant); ok {
					cmds = append(cmds, m.copy(last.Text))
				}
			}
		}
		cmds = append(cmds, waitForReply(m.store.Completions()))

	case copiedMsg:
		if msg.err != nil {
			m.cmdErr = fmt.Errorf("copy failed: %w", msg.err)
		} else {
			m.notice = "Reply copied to clipboard"
		}

	case exportedMsg:
		if msg.err != nil {
			m.cmdErr = fmt.Errorf("export failed: %w", msg.err)
		} else {
			m.notice = "Chat exported to " + msg.path
		}

	case spinner.TickMsg:
		if m.store.PendingReply() {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.store.PendingReply() {
			m.animationFrame++
			cmds = append(cmds, animationTick())
		}
	}

	// Input is frozen while a reply is pending. Only KeyMsg reaches the
	// textarea to keep escape sequences out of the draft.
	if !m.store.PendingReply() {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
			m.store.UpdateDraft(m.textarea.Value())
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit handles Enter: slash commands run locally, anything else goes to
// the store. A leading "//" sends the rest of the line starting with "/".
// Rejected submissions (blank draft, reply pending) are ignored.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.store.PendingReply() {
		return m, nil
	}

	text := m.textarea.Value()
	input := strings.TrimSpace(text)
	if literal, ok := unescapeCommand(input); ok {
		text = literal
	} else if isCommand(input) {
		m.textarea.Reset()
		m.store.UpdateDraft("")
		return m.runCommand(input)
	}

	if _, err := m.store.Submit(text); err != nil {
		if apperrors.IsRejection(err) {
			return m, nil
		}
		m.cmdErr = err
		return m, nil
	}

	m.textarea.Reset()
	m.notice = ""
	m.cmdErr = nil
	m.updateViewport()
	m.viewport.GotoBottom()

	return m, m.startTyping()
}

// startTyping begins the typing indicator animation
func (m *Model) startTyping() tea.Cmd {
	m.animationFrame = 0
	return tea.Batch(
		m.spinner.Tick,
		animationTick(),
	)
}

// copy writes text to the clipboard off the update loop
func (m Model) copy(text string) tea.Cmd {
	copyText := m.copyText
	return func() tea.Msg {
		return copiedMsg{err: copyText(text)}
	}
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return typingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 4
	state := m.store.Snapshot()

	// Header
	status := onlineStyle.Render("● online")
	if state.PendingReply {
		status = typingStyle.Render("typing...")
	}
	headerContent := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("✦ AI Assistant"),
		hintStyle.Render("  •  "),
		status,
		hintStyle.Render("  •  "),
		subtitleStyle.Render(transcript.Title(state)),
	)
	sections = append(sections, headerStyle.Width(contentWidth).Render(headerContent))

	// Messages
	messagesPanel := messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(m.viewport.View())
	sections = append(sections, messagesPanel)

	// Quick replies
	sections = append(sections, m.renderPresets())

	// Input
	var inputContent string
	if state.PendingReply {
		inputContent = m.renderTypingIndicator()
	} else {
		inputContent = lipgloss.JoinVertical(
			lipgloss.Left,
			inputLabelStyle.Render("You"),
			m.textarea.View(),
		)
	}
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputContent))

	sections = append(sections, m.renderStatusBar(contentWidth))

	// Feedback and errors
	switch {
	case state.LastError != nil:
		sections = append(sections, formatReplyError(state.LastError))
	case m.cmdErr != nil:
		sections = append(sections, FormatError(m.cmdErr))
	case m.notice != "":
		sections = append(sections, noticeStyle.Render(m.notice))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// formatReplyError always offers /retry, whatever the source's error type
func formatReplyError(err error) string {
	out := FormatError(err)
	if !apperrors.IsReplySourceError(err) {
		out += lipgloss.NewStyle().Foreground(colorTextDim).Render("\n  Hint: Type /retry to ask again")
	}
	return out
}

// renderTypingIndicator renders the animated "Assistant is typing" bubble
func (m Model) renderTypingIndicator() string {
	frame := m.animationFrame

	var dots strings.Builder
	active := (frame / 4) % 3
	for i := 0; i < 3; i++ {
		style := lipgloss.NewStyle().Foreground(colorTextMute)
		if i == active {
			style = lipgloss.NewStyle().Foreground(gradientColors[frame%len(gradientColors)]).Bold(true)
		}
		dots.WriteString(style.Render("●"))
		if i < 2 {
			dots.WriteString(" ")
		}
	}

	label := typingStyle.Render("Assistant is typing")
	return fmt.Sprintf("%s %s %s", m.spinner.View(), dots.String(), label)
}

// renderPresets renders the quick reply shortcuts
func (m Model) renderPresets() string {
	items := make([]string, len(Presets))
	for i, p := range Presets {
		items[i] = presetKeyStyle.Render(fmt.Sprintf("F%d", i+1)) + " " + presetTextStyle.Render(p)
	}
	return " " + strings.Join(items, "   ")
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"F1-F3", "Quick reply"},
		{"/help", "Commands"},
		{"Esc", "Quit"},
		{"↑↓", "Scroll"},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}

	bar := strings.Join(items, statusDescStyle.Render("  │  "))
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// updateViewport refreshes the viewport content from the store
func (m *Model) updateViewport() {
	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6
	if bubbleWidth < 10 {
		bubbleWidth = 10
	}

	for i, msg := range m.store.Messages() {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(m.renderMessage(msg, bubbleWidth))
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// renderMessage renders one transcript entry with its label and timestamp
func (m Model) renderMessage(msg models.Message, bubbleWidth int) string {
	clock := timestampStyle.Render(render.FormatClock(msg.CreatedAt, m.opts.Locale))

	if msg.IsUser() {
		label := userLabelStyle.Render(msg.Sender.Label()) + " " + clock
		style := userBubbleStyle
		if lipgloss.Width(msg.Text)+2 > bubbleWidth {
			style = style.Width(bubbleWidth)
		}
		bubble := style.Render(msg.Text)
		block := lipgloss.JoinVertical(lipgloss.Right, label, bubble)
		return lipgloss.PlaceHorizontal(m.viewport.Width, lipgloss.Right, block)
	}

	label := assistantLabelStyle.Render("✦ "+msg.Sender.Label()) + " " + clock
	rendered := render.Reply(msg.Text, m.opts.Render.WithWidth(bubbleWidth-4))
	bubble := assistantBubbleStyle.Width(bubbleWidth).Render(rendered)
	return label + "\n" + bubble
}

// RunChat starts the chat TUI on store and closes the store on exit
func RunChat(store *transcript.Store, opts ChatOptions) error {
	defer store.Close()

	p := tea.NewProgram(
		NewChatModel(store, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
