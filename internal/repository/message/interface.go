// File: internal/repository/message/interface.go
package message

import (
	"context"

	"github.com/iyunix/go-spurchat/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) (*domain.Message, error)
	// FindBySessionID returns the whole conversation in canonical order.
	FindBySessionID(ctx context.Context, sessionID string) ([]domain.Message, error)
	CountBySessionID(ctx context.Context, sessionID string) (int64, error)
}
