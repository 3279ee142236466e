// File: internal/domain/session.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TitleMaxRunes is how much of the first user message becomes the session title.
const TitleMaxRunes = 50

// Session represents a single support conversation.
type Session struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	Title     *string   `gorm:"type:text" json:"title"` // nil until the first user message
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`

	Messages []Message `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeCreate assigns a time-ordered id when the caller did not supply one.
func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		s.ID = id.String()
	}
	return nil
}

// HasTitle reports whether the one-time title has already been set.
func (s *Session) HasTitle() bool {
	return s.Title != nil && *s.Title != ""
}

// TitleFromMessage derives a session title from the first user message.
// It cuts on rune boundaries so multi-byte text is never split.
func TitleFromMessage(message string) string {
	if message == "" {
		return ""
	}
	count := 0
	for i := range message {
		if count == TitleMaxRunes {
			return message[:i]
		}
		count++
	}
	return message
}
