package transcript

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/diogo/aichat/internal/models"
)

// ExportFormat represents the format for exporting a transcript
type ExportFormat string

const (
	ExportFormatMarkdown ExportFormat = "markdown"
	ExportFormatJSON     ExportFormat = "json"
)

// ExportOptions configures how a transcript is exported
type ExportOptions struct {
	Format          ExportFormat
	IncludeMetadata bool // Include session id and message ids
	TimeLayout      string
}

// DefaultExportOptions returns sensible defaults for export
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		Format:          ExportFormatMarkdown,
		IncludeMetadata: false,
		TimeLayout:      "15:04:05",
	}
}

// FormatForPath picks the export format from a file extension
func FormatForPath(path string) ExportFormat {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ExportFormatJSON
	}
	return ExportFormatMarkdown
}

// Title names a transcript after its first user message
func Title(state State) string {
	msg, ok := firstFrom(state, models.SenderUser)
	if !ok {
		return "New chat"
	}

	title := strings.Join(strings.Fields(msg.Text), " ")
	runes := []rune(title)
	if len(runes) > 50 {
		title = string(runes[:50]) + "..."
	}
	return title
}

// Export renders the transcript in the format named by opts
func Export(state State, opts ExportOptions) ([]byte, error) {
	switch opts.Format {
	case ExportFormatJSON:
		return ExportJSON(state, opts)
	case ExportFormatMarkdown, "":
		return []byte(ExportMarkdown(state, opts)), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", opts.Format)
	}
}

// ExportMarkdown renders the transcript as Markdown
func ExportMarkdown(state State, opts ExportOptions) string {
	layout := opts.TimeLayout
	if layout == "" {
		layout = DefaultExportOptions().TimeLayout
	}

	var sb strings.Builder

	// Header
	sb.WriteString("# ")
	sb.WriteString(Title(state))
	sb.WriteString("\n\n")

	if opts.IncludeMetadata {
		sb.WriteString("**Session:** ")
		sb.WriteString(state.SessionID)
		sb.WriteString("\n")
	}
	if first, ok := firstFrom(state, ""); ok {
		sb.WriteString("**Started:** ")
		sb.WriteString(first.CreatedAt.Format("2006-01-02 15:04:05"))
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("**Messages:** %d\n", len(state.Messages)))
	sb.WriteString("\n---\n\n")

	for i, msg := range state.Messages {
		sb.WriteString("## ")
		sb.WriteString(msg.Sender.Label())
		if !msg.CreatedAt.IsZero() {
			sb.WriteString(" (")
			sb.WriteString(msg.CreatedAt.Format(layout))
			sb.WriteString(")")
		}
		sb.WriteString("\n\n")

		sb.WriteString(msg.Text)
		sb.WriteString("\n")

		// Separator between messages (except last)
		if i < len(state.Messages)-1 {
			sb.WriteString("\n---\n\n")
		}
	}

	if state.PendingReply {
		sb.WriteString("\n_Assistant is typing..._\n")
	}

	return sb.String()
}

// ExportJSON renders the transcript as indented JSON
func ExportJSON(state State, opts ExportOptions) ([]byte, error) {
	type exportMessage struct {
		ID        int64     `json:"id,omitempty"`
		Sender    string    `json:"sender"`
		Text      string    `json:"text"`
		CreatedAt time.Time `json:"created_at"`
	}

	type exportTranscript struct {
		SessionID    string          `json:"session_id,omitempty"`
		Title        string          `json:"title"`
		PendingReply bool            `json:"pending_reply"`
		Messages     []exportMessage `json:"messages"`
	}

	export := exportTranscript{
		Title:        Title(state),
		PendingReply: state.PendingReply,
		Messages:     make([]exportMessage, len(state.Messages)),
	}
	if opts.IncludeMetadata {
		export.SessionID = state.SessionID
	}

	for i, msg := range state.Messages {
		export.Messages[i] = exportMessage{
			Sender:    msg.Sender.String(),
			Text:      msg.Text,
			CreatedAt: msg.CreatedAt,
		}
		if opts.IncludeMetadata {
			export.Messages[i].ID = msg.ID
		}
	}

	return json.MarshalIndent(export, "", "  ")
}

// firstFrom returns the oldest message by sender, or the oldest message of
// all when sender is empty
func firstFrom(state State, sender models.Sender) (models.Message, bool) {
	for _, msg := range state.Messages {
		if sender == "" || msg.Sender == sender {
			return msg, true
		}
	}
	return models.Message{}, false
}
