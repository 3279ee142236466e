// File: internal/repository/session/session_repository.go
package session

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/iyunix/go-spurchat/internal/domain"
)

var ErrSessionNotFound = errors.New("session not found")

type gormSessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &gormSessionRepository{db: db}
}

func (r *gormSessionRepository) Create(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	if session == nil {
		return nil, errors.New("session cannot be nil")
	}
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

// CreateIfAbsent relies on a single INSERT ... ON CONFLICT DO NOTHING, so two
// concurrent first messages for the same client id cannot both insert.
func (r *gormSessionRepository) CreateIfAbsent(ctx context.Context, session *domain.Session) (bool, error) {
	if session == nil || session.ID == "" {
		return false, errors.New("session id is required")
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(session)
	if result.Error != nil {
		return false, fmt.Errorf("create session %s: %w", session.ID, result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *gormSessionRepository) BackfillTitle(ctx context.Context, sessionID, title string) (bool, error) {
	if sessionID == "" {
		return false, errors.New("session id is required")
	}
	if title == "" {
		return false, nil
	}

	result := r.db.WithContext(ctx).
		Model(&domain.Session{}).
		Where("id = ? AND (title IS NULL OR title = '')", sessionID).
		Update("title", title)
	if result.Error != nil {
		return false, fmt.Errorf("backfill title for session %s: %w", sessionID, result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *gormSessionRepository) FindByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session id is required")
	}

	var session domain.Session
	err := r.db.WithContext(ctx).Where("id = ?", sessionID).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find session %s: %w", sessionID, err)
	}
	return &session, nil
}

func (r *gormSessionRepository) FindAll(ctx context.Context) ([]domain.Session, error) {
	sessions := []domain.Session{}
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// DeleteAll clears messages before sessions inside one transaction, so the
// result does not depend on the driver enforcing the cascade.
func (r *gormSessionRepository) DeleteAll(ctx context.Context) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&domain.Message{}).Error; err != nil {
			return fmt.Errorf("delete messages: %w", err)
		}
		result := tx.Where("1 = 1").Delete(&domain.Session{})
		if result.Error != nil {
			return fmt.Errorf("delete sessions: %w", result.Error)
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
