// Package reply provides the sources that produce assistant replies.
//
// A Source is asynchronous from the transcript's point of view: the
// transcript calls GenerateReply on its own goroutine and never blocks its
// owner on it. Implementations may take as long as they need and must honor
// ctx cancellation.
package reply

import (
	"context"

	"github.com/diogo/aichat/internal/models"
)

// Source produces the text of the next assistant reply for a conversation.
type Source interface {
	GenerateReply(ctx context.Context, conversation []models.Message) (string, error)
}

// SourceFunc adapts an ordinary function to the Source interface.
type SourceFunc func(ctx context.Context, conversation []models.Message) (string, error)

// GenerateReply calls f(ctx, conversation).
func (f SourceFunc) GenerateReply(ctx context.Context, conversation []models.Message) (string, error) {
	return f(ctx, conversation)
}
