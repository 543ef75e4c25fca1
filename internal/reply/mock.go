package reply

import (
	"context"
	"sync"
	"time"

	"github.com/diogo/aichat/internal/models"
)

// Mock is a deterministic Source for tests: fixed text, optional error and
// delay, and a record of every call.
type Mock struct {
	Text  string
	Err   error
	Delay time.Duration

	// Block, when non-nil, holds each call until a value is sent or the
	// channel is closed.
	Block chan struct{}

	mu        sync.Mutex
	calls     int
	lastInput []models.Message
}

// Ensure Mock implements Source
var _ Source = (*Mock)(nil)

// GenerateReply records the call and returns Text or Err
func (m *Mock) GenerateReply(ctx context.Context, conversation []models.Message) (string, error) {
	m.mu.Lock()
	m.calls++
	m.lastInput = append([]models.Message(nil), conversation...)
	m.mu.Unlock()

	if m.Block != nil {
		select {
		case <-m.Block:
		case <-ctx.Done():
			return "", contextError(ctx.Err())
		}
	}

	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return "", contextError(ctx.Err())
		}
	}

	if m.Err != nil {
		return "", m.Err
	}
	return m.Text, nil
}

// Calls returns how many times GenerateReply was invoked
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastConversation returns the conversation passed to the most recent call
func (m *Mock) LastConversation() []models.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Message(nil), m.lastInput...)
}
