// File: internal/repository/session/interface.go
package session

import (
	"context"

	"github.com/iyunix/go-spurchat/internal/domain"
)

// SessionRepository handles session data operations.
type SessionRepository interface {
	// Create inserts a brand-new session, generating its id.
	Create(ctx context.Context, session *domain.Session) (*domain.Session, error)
	// CreateIfAbsent inserts the session unless one with the same id exists.
	// It reports whether a row was inserted.
	CreateIfAbsent(ctx context.Context, session *domain.Session) (bool, error)
	// BackfillTitle sets the title only when it is still NULL or empty.
	BackfillTitle(ctx context.Context, sessionID, title string) (bool, error)
	FindByID(ctx context.Context, sessionID string) (*domain.Session, error)
	// FindAll lists every session, newest first.
	FindAll(ctx context.Context) ([]domain.Session, error)
	// DeleteAll removes every session together with its messages.
	DeleteAll(ctx context.Context) (int64, error)
}
