// Package transcript owns the message list of a chat session and the
// pending-reply lifecycle around it.
//
// A Store is driven by a single owner (the TUI update loop or the line-mode
// loop). Submit appends the user's message and hands the conversation to a
// reply.Source on a separate goroutine; the result comes back on
// Completions() and the owner feeds it to Apply. Each submission is one
// cycle:
//
//	Idle --Submit--> AwaitingReply --Apply--> Idle
//
// Submit is only accepted from Idle, and a completion is only applied while
// its own cycle is awaiting a reply.
package transcript

import (
	"github.com/diogo/aichat/internal/models"
)

// Phase is the state machine position of a transcript
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAwaitingReply
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingReply:
		return "awaiting-reply"
	default:
		return "unknown"
	}
}

// State is the observable content of a session
type State struct {
	SessionID    string
	Messages     []models.Message
	PendingReply bool
	DraftInput   string

	// LastError is the most recent reply source failure. It is cleared by the
	// next accepted submission or a successful retry.
	LastError error
}

// Phase derives the state machine phase
func (s State) Phase() Phase {
	if s.PendingReply {
		return PhaseAwaitingReply
	}
	return PhaseIdle
}

// Len returns the number of messages
func (s State) Len() int {
	return len(s.Messages)
}

// Last returns the newest message, if any
func (s State) Last() (models.Message, bool) {
	if len(s.Messages) == 0 {
		return models.Message{}, false
	}
	return s.Messages[len(s.Messages)-1], true
}

// LastFrom returns the newest message written by sender
func (s State) LastFrom(sender models.Sender) (models.Message, bool) {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Sender == sender {
			return s.Messages[i], true
		}
	}
	return models.Message{}, false
}

// clone returns a copy that shares no backing array with s
func (s State) clone() State {
	out := s
	out.Messages = append([]models.Message(nil), s.Messages...)
	return out
}
