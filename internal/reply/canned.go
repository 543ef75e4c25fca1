package reply

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/diogo/aichat/internal/models"

	apperrors "github.com/diogo/aichat/internal/errors"
)

// DefaultDelay is how long the canned source "types" before answering
const DefaultDelay = 1500 * time.Millisecond

// DefaultReplies is the fixed set the canned source picks from
var DefaultReplies = []string{
	"Great question! I can help you with that.",
	"Got it. Let's work through this task together.",
	"Interesting! Here's what I think about it...",
	"I've processed your request and I'm ready to suggest a solution.",
}

// Canned is a stand-in reply source. It ignores the conversation, waits a
// fixed delay and returns one reply chosen uniformly at random.
type Canned struct {
	delay   time.Duration
	replies []string

	mu  sync.Mutex
	rng *rand.Rand
}

// CannedOption configures a Canned source
type CannedOption func(*Canned)

// WithDelay sets the simulated typing delay. Negative values are treated as zero.
func WithDelay(d time.Duration) CannedOption {
	return func(c *Canned) {
		if d < 0 {
			d = 0
		}
		c.delay = d
	}
}

// WithReplies replaces the canned reply set. Blank entries are dropped; an
// empty result keeps the previous set.
func WithReplies(replies []string) CannedOption {
	return func(c *Canned) {
		cleaned := cleanReplies(replies)
		if len(cleaned) > 0 {
			c.replies = cleaned
		}
	}
}

// WithRand sets the random source used for selection
func WithRand(r *rand.Rand) CannedOption {
	return func(c *Canned) {
		if r != nil {
			c.rng = r
		}
	}
}

// NewCanned creates a canned source with DefaultDelay and DefaultReplies
func NewCanned(opts ...CannedOption) *Canned {
	c := &Canned{
		delay:   DefaultDelay,
		replies: append([]string(nil), DefaultReplies...),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GenerateReply waits for the configured delay and returns a random reply.
// If ctx ends first the reply is abandoned with a canceled or timeout error.
func (c *Canned) GenerateReply(ctx context.Context, _ []models.Message) (string, error) {
	if c.delay > 0 {
		timer := time.NewTimer(c.delay)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			return "", contextError(ctx.Err())
		}
	} else if err := ctx.Err(); err != nil {
		return "", contextError(err)
	}

	return c.pick(), nil
}

// Delay returns the configured typing delay
func (c *Canned) Delay() time.Duration {
	return c.delay
}

// Replies returns a copy of the reply set
func (c *Canned) Replies() []string {
	return append([]string(nil), c.replies...)
}

func (c *Canned) pick() string {
	// rand.Rand is not safe for concurrent use
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.replies[c.rng.Intn(len(c.replies))]
}

func contextError(err error) error {
	if err == context.DeadlineExceeded {
		return apperrors.NewReplySourceError(apperrors.KindTimeout, "deadline exceeded", err)
	}
	return apperrors.NewCanceledError(err)
}
