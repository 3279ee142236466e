// File: internal/domain/message.go
package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sender identifies who wrote a message. Storage only ever knows these two values.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// Valid reports whether s is one of the permitted senders.
func (s Sender) Valid() bool {
	return s == SenderUser || s == SenderAI
}

var (
	ErrInvalidSender  = errors.New("sender must be 'user' or 'ai'")
	ErrEmptyContent   = errors.New("message content cannot be empty")
	ErrMissingSession = errors.New("message must belong to a session")
)

// Message represents a single turn within a session.
type Message struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	SessionID string    `gorm:"type:text;not null;index" json:"session_id"`
	Sender    Sender    `gorm:"type:varchar(10);not null;check:chk_messages_sender,sender IN ('user','ai')" json:"sender"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

// Validate checks the invariants a message must satisfy before it is written.
func (m *Message) Validate() error {
	if m.SessionID == "" {
		return ErrMissingSession
	}
	if !m.Sender.Valid() {
		return ErrInvalidSender
	}
	if m.Content == "" {
		return ErrEmptyContent
	}
	return nil
}

// BeforeCreate assigns a UUIDv7 so ids sort the same way as creation time.
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		m.ID = id.String()
	}
	return m.Validate()
}
