// Package models defines the value types shared across aichat packages.
package models

import "time"

// Sender identifies who authored a message
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Valid reports whether s is one of the known senders
func (s Sender) Valid() bool {
	return s == SenderUser || s == SenderAssistant
}

func (s Sender) String() string {
	return string(s)
}

// Label returns the display name used in the transcript
func (s Sender) Label() string {
	switch s {
	case SenderUser:
		return "You"
	case SenderAssistant:
		return "Assistant"
	default:
		return "Unknown"
	}
}

// Message is a single entry in a transcript. Messages are values and are
// never modified after they are appended.
type Message struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	CreatedAt time.Time `json:"created_at"`
}

// IsUser reports whether the message was written by the user
func (m Message) IsUser() bool {
	return m.Sender == SenderUser
}

// IsAssistant reports whether the message was written by the assistant
func (m Message) IsAssistant() bool {
	return m.Sender == SenderAssistant
}
