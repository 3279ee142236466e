// G:\go_spurchat\internal\services\chat\interface.go
package chat

import (
	"context"
	"time"

	"github.com/iyunix/go-spurchat/internal/domain"
)

// Turn is one prior exchange in storage vocabulary.
type Turn struct {
	Sender domain.Sender
	Text   string
}

// ReplyProvider produces the assistant reply for a new user message.
type ReplyProvider interface {
	GenerateReply(ctx context.Context, prior []Turn, message string) (string, error)
}

// PromptSource supplies the fixed system instruction block.
type PromptSource interface {
	SystemPrompt() string
}

// SubmitTurnResult is what a chat turn hands back to the caller.
type SubmitTurnResult struct {
	Reply     string `json:"reply"`
	SessionID string `json:"sessionId"`
}

// HistoryItem is one message as exposed over the API.
type HistoryItem struct {
	ID        string        `json:"id"`
	Sender    domain.Sender `json:"sender"`
	Text      string        `json:"text"`
	Timestamp time.Time     `json:"timestamp"`
}

// SessionSummary is one sidebar entry.
type SessionSummary struct {
	ID        string    `json:"id"`
	Title     *string   `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}
