// File: internal/repository/message/message_repository.go
package message

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/iyunix/go-spurchat/internal/domain"
)

type gormMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &gormMessageRepository{db: db}
}

func (r *gormMessageRepository) Create(ctx context.Context, message *domain.Message) (*domain.Message, error) {
	if message == nil {
		return nil, errors.New("message cannot be nil")
	}
	if err := message.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return nil, fmt.Errorf("create message in session %s: %w", message.SessionID, err)
	}
	return message, nil
}

// FindBySessionID orders by created_at; the UUIDv7 id breaks ties between
// rows written within the same clock tick.
func (r *gormMessageRepository) FindBySessionID(ctx context.Context, sessionID string) ([]domain.Message, error) {
	if sessionID == "" {
		return nil, errors.New("session id is required")
	}

	messages := []domain.Message{}
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("find messages for session %s: %w", sessionID, err)
	}
	return messages, nil
}

func (r *gormMessageRepository) CountBySessionID(ctx context.Context, sessionID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Message{}).Where("session_id = ?", sessionID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count messages for session %s: %w", sessionID, err)
	}
	return count, nil
}
