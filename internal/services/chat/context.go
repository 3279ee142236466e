//G:\go_spurchat\internal\services\chat\context.go
package chat

import "github.com/iyunix/go-spurchat/internal/domain"

// TurnsFromHistory converts stored rows into turns, preserving order.
func TurnsFromHistory(messages []domain.Message) []Turn {
	turns := make([]Turn, 0, len(messages))
	for _, m := range messages {
		turns = append(turns, Turn{Sender: m.Sender, Text: m.Content})
	}
	return turns
}

// PriorContext drops the newest turn, which is the user message that was
// just written and is passed to the generator separately.
func PriorContext(turns []Turn) []Turn {
	if len(turns) == 0 {
		return turns
	}
	return turns[:len(turns)-1]
}
