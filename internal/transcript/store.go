package transcript

import (
	"context"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/diogo/aichat/internal/errors"
	"github.com/diogo/aichat/internal/models"
	"github.com/diogo/aichat/internal/reply"
)

// DefaultGreeting seeds every new session
const DefaultGreeting = "Hi! I'm an AI assistant. How can I help you?"

// Completion is the outcome of one reply cycle, delivered on Completions()
type Completion struct {
	Cycle uint64
	Text  string
	Err   error
}

// Store is the sole owner and mutator of a session's State.
//
// Store is not safe for concurrent use. All methods must be called from the
// goroutine that owns the session; only the reply source runs elsewhere.
type Store struct {
	source   reply.Source
	greeting string
	clock    func() time.Time
	logger   *log.Logger

	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc

	state   State
	ids     idGenerator
	cycle   uint64
	results chan Completion
}

// Option configures a Store
type Option func(*Store)

// WithGreeting sets the assistant message every session starts with
func WithGreeting(text string) Option {
	return func(s *Store) {
		if strings.TrimSpace(text) != "" {
			s.greeting = text
		}
	}
}

// WithClock overrides time.Now, mainly for tests
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLogger sets where lifecycle events are logged
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithContext sets the parent context of every session. Canceling it
// abandons any in-flight reply.
func WithContext(ctx context.Context) Option {
	return func(s *Store) {
		if ctx != nil {
			s.parent = ctx
		}
	}
}

// NewStore creates a store holding a fresh session seeded with the greeting
func NewStore(source reply.Source, opts ...Option) *Store {
	s := &Store{
		source:   source,
		greeting: DefaultGreeting,
		clock:    time.Now,
		logger:   log.New(io.Discard, "", 0),
		parent:   context.Background(),
		results:  make(chan Completion, 1),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.newSession()
	return s
}

// newSession replaces the state with a freshly seeded one
func (s *Store) newSession() {
	if s.cancel != nil {
		s.cancel()
	}
	s.ctx, s.cancel = context.WithCancel(s.parent)

	// Bump the cycle so completions from the old session never match
	s.cycle++

	s.state = State{SessionID: uuid.NewString()}
	s.append(models.SenderAssistant, s.greeting)

	s.logger.Printf("session %s started", s.state.SessionID)
}

// Submit appends a user message and starts the reply cycle for it.
//
// Blank text (after trimming) is rejected with ErrEmptyMessage and a second
// submission while a reply is pending is rejected with ErrReplyPending.
// Neither rejection changes the state. Submit never blocks on the reply
// source.
func (s *Store) Submit(text string) (models.Message, error) {
	if strings.TrimSpace(text) == "" {
		return models.Message{}, apperrors.ErrEmptyMessage
	}
	if s.state.PendingReply {
		s.logger.Printf("session %s: submit rejected, reply pending", s.state.SessionID)
		return models.Message{}, apperrors.ErrReplyPending
	}

	msg := s.append(models.SenderUser, text)
	s.state.DraftInput = ""
	s.state.LastError = nil
	s.dispatch()

	return msg, nil
}

// Retry asks the reply source again after a failed cycle. The user message
// that failed is not appended a second time.
func (s *Store) Retry() error {
	if s.state.PendingReply {
		return apperrors.ErrReplyPending
	}
	if s.state.LastError == nil {
		return apperrors.ErrNothingToRetry
	}

	s.state.LastError = nil
	s.dispatch()
	return nil
}

// dispatch moves to AwaitingReply and runs the reply source for a snapshot
// of the conversation
func (s *Store) dispatch() {
	s.cycle++
	s.state.PendingReply = true

	cycle := s.cycle
	ctx := s.ctx
	conversation := append([]models.Message(nil), s.state.Messages...)
	source := s.source

	s.logger.Printf("session %s: cycle %d awaiting reply", s.state.SessionID, cycle)

	go func() {
		var c Completion
		if source == nil {
			c = Completion{Cycle: cycle, Err: apperrors.NewTransportError("no reply source configured", nil)}
		} else {
			text, err := source.GenerateReply(ctx, conversation)
			c = Completion{Cycle: cycle, Text: text, Err: err}
		}

		select {
		case s.results <- c:
		case <-ctx.Done():
		}
	}()
}

// Completions delivers the results of reply cycles. The owner receives from
// it and passes each value to Apply.
func (s *Store) Completions() <-chan Completion {
	return s.results
}

// Apply feeds a completed cycle back into the state. It reports whether the
// state changed; completions for another cycle, or arriving when no reply is
// pending, are ignored.
func (s *Store) Apply(c Completion) bool {
	if c.Cycle != s.cycle {
		s.logger.Printf("session %s: ignoring stale completion for cycle %d (current %d)",
			s.state.SessionID, c.Cycle, s.cycle)
		return false
	}
	if !s.state.PendingReply {
		s.logger.Printf("session %s: ignoring duplicate completion for cycle %d", s.state.SessionID, c.Cycle)
		return false
	}

	if c.Err != nil {
		s.fail(c.Err)
		return true
	}
	if strings.TrimSpace(c.Text) == "" {
		s.fail(apperrors.NewReplySourceError(apperrors.KindUnknown, "empty reply", nil))
		return true
	}

	return s.receiveReply(c.Text) == nil
}

// receiveReply appends the assistant message and returns to Idle
func (s *Store) receiveReply(text string) error {
	if !s.state.PendingReply {
		return apperrors.ErrNoPendingReply
	}

	s.append(models.SenderAssistant, text)
	s.state.PendingReply = false

	s.logger.Printf("session %s: cycle %d replied", s.state.SessionID, s.cycle)
	return nil
}

// fail returns to Idle keeping the error so the caller can offer a retry
func (s *Store) fail(err error) {
	s.state.PendingReply = false
	s.state.LastError = err

	s.logger.Printf("session %s: cycle %d failed: %v", s.state.SessionID, s.cycle, err)
}

// Wait blocks until the pending cycle has been applied, receiving from
// Completions itself. It returns immediately when no reply is pending.
// Wait must not be used while another receiver drains Completions.
func (s *Store) Wait(ctx context.Context) error {
	for s.state.PendingReply {
		select {
		case c := <-s.results:
			s.Apply(c)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// UpdateDraft stores the text being composed
func (s *Store) UpdateDraft(text string) {
	s.state.DraftInput = text
}

// Reset discards the session and starts a new one. A reply still in flight
// for the old session is abandoned and its completion ignored.
func (s *Store) Reset() {
	s.logger.Printf("session %s reset", s.state.SessionID)
	s.newSession()
}

// Close abandons any in-flight reply. The store must not be used afterwards.
func (s *Store) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}

// Snapshot returns a copy of the state safe to keep after further mutations
func (s *Store) Snapshot() State {
	return s.state.clone()
}

// Messages returns a copy of the transcript
func (s *Store) Messages() []models.Message {
	return append([]models.Message(nil), s.state.Messages...)
}

// PendingReply reports whether a reply is awaited
func (s *Store) PendingReply() bool {
	return s.state.PendingReply
}

// Draft returns the text being composed
func (s *Store) Draft() string {
	return s.state.DraftInput
}

// Phase returns the current state machine phase
func (s *Store) Phase() Phase {
	return s.state.Phase()
}

// LastError returns the most recent reply failure, if any
func (s *Store) LastError() error {
	return s.state.LastError
}

// SessionID returns the id of the current session
func (s *Store) SessionID() string {
	return s.state.SessionID
}

// append adds a message at the tail. Timestamps never go backwards even if
// the clock does.
func (s *Store) append(sender models.Sender, text string) models.Message {
	now := s.clock()
	if last, ok := s.state.Last(); ok && now.Before(last.CreatedAt) {
		now = last.CreatedAt
	}

	msg := models.Message{
		ID:        s.ids.Next(now),
		Text:      text,
		Sender:    sender,
		CreatedAt: now,
	}
	s.state.Messages = append(s.state.Messages, msg)
	return msg
}
