// G:\go_spurchat\internal\services\chat_service.go
package services

import (
	"context"
	"strings"
	"time"

	"github.com/iyunix/go-spurchat/internal/domain"
	"github.com/iyunix/go-spurchat/internal/repository/message"
	"github.com/iyunix/go-spurchat/internal/repository/session"
	chatservice "github.com/iyunix/go-spurchat/internal/services/chat"
)

const (
	msgMessageRequired   = "Message is required and cannot be empty"
	msgSessionIDRequired = "Session ID is required"
)

// ChatService runs chat turns against the session store and the reply generator.
type ChatService struct {
	sessionRepo session.SessionRepository
	messageRepo message.MessageRepository
	replies     chatservice.ReplyProvider
	logger      Logger
	now         func() time.Time
}

func NewChatService(
	sessionRepo session.SessionRepository,
	messageRepo message.MessageRepository,
	replies chatservice.ReplyProvider,
	logger Logger,
) (*ChatService, error) {
	if sessionRepo == nil {
		return nil, chatservice.NewValidationError("constructor", "session repository is required")
	}
	if messageRepo == nil {
		return nil, chatservice.NewValidationError("constructor", "message repository is required")
	}
	if replies == nil {
		return nil, chatservice.NewValidationError("constructor", "reply generator is required")
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}

	return &ChatService{
		sessionRepo: sessionRepo,
		messageRepo: messageRepo,
		replies:     replies,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}, nil
}

// SetClock replaces the time source used for message timestamps.
func (s *ChatService) SetClock(now func() time.Time) {
	s.now = now
}

// SubmitTurn persists the user message, asks for a reply with the prior
// conversation as context and persists the reply. The user message is kept
// even when generation fails.
func (s *ChatService) SubmitTurn(ctx context.Context, text, sessionID string) (*chatservice.SubmitTurnResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, chatservice.NewValidationError("submit_turn", msgMessageRequired)
	}

	sessionID, err := s.resolveSession(ctx, text, sessionID)
	if err != nil {
		return nil, err
	}

	userMsg := &domain.Message{
		SessionID: sessionID,
		Sender:    domain.SenderUser,
		Content:   text,
		CreatedAt: s.now(),
	}
	if _, err := s.messageRepo.Create(ctx, userMsg); err != nil {
		s.logger.Error("failed to save user message", "session_id", sessionID, "error", err)
		return nil, chatservice.NewInternalError("save_user_message", err)
	}

	history, err := s.messageRepo.FindBySessionID(ctx, sessionID)
	if err != nil {
		s.logger.Error("failed to load conversation", "session_id", sessionID, "error", err)
		return nil, chatservice.NewInternalError("load_history", err)
	}
	prior := chatservice.PriorContext(chatservice.TurnsFromHistory(history))

	reply, err := s.replies.GenerateReply(ctx, prior, text)
	if err != nil {
		if chatservice.TypeOf(err) == chatservice.ErrTypeInternal {
			return nil, chatservice.NewInternalError("generate_reply", err)
		}
		return nil, err
	}

	// The reply is never stamped before the message it answers.
	replyAt := s.now()
	if replyAt.Before(userMsg.CreatedAt) {
		replyAt = userMsg.CreatedAt
	}
	aiMsg := &domain.Message{
		SessionID: sessionID,
		Sender:    domain.SenderAI,
		Content:   reply,
		CreatedAt: replyAt,
	}
	if _, err := s.messageRepo.Create(ctx, aiMsg); err != nil {
		s.logger.Error("failed to save ai message", "session_id", sessionID, "error", err)
		return nil, chatservice.NewInternalError("save_ai_message", err)
	}

	s.logger.Info("chat turn completed", "session_id", sessionID, "prior_turns", len(prior))
	return &chatservice.SubmitTurnResult{Reply: reply, SessionID: sessionID}, nil
}

// resolveSession returns the id to write to, creating the session when it
// does not exist yet. Existing titles are only filled in, never replaced.
func (s *ChatService) resolveSession(ctx context.Context, text, sessionID string) (string, error) {
	title := domain.TitleFromMessage(text)

	if sessionID == "" {
		created, err := s.sessionRepo.Create(ctx, &domain.Session{Title: &title, CreatedAt: s.now()})
		if err != nil {
			s.logger.Error("failed to create session", "error", err)
			return "", chatservice.NewInternalError("create_session", err)
		}
		s.logger.Info("session created", "session_id", created.ID)
		return created.ID, nil
	}

	inserted, err := s.sessionRepo.CreateIfAbsent(ctx, &domain.Session{ID: sessionID, Title: &title, CreatedAt: s.now()})
	if err != nil {
		s.logger.Error("failed to resolve session", "session_id", sessionID, "error", err)
		return "", chatservice.NewInternalError("resolve_session", err)
	}
	if inserted {
		s.logger.Info("session created from client id", "session_id", sessionID)
		return sessionID, nil
	}

	if _, err := s.sessionRepo.BackfillTitle(ctx, sessionID, title); err != nil {
		s.logger.Error("failed to backfill session title", "session_id", sessionID, "error", err)
		return "", chatservice.NewInternalError("backfill_title", err)
	}
	return sessionID, nil
}

// GetHistory returns the conversation oldest first. Unknown ids yield an
// empty list.
func (s *ChatService) GetHistory(ctx context.Context, sessionID string) ([]chatservice.HistoryItem, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, chatservice.NewValidationError("get_history", msgSessionIDRequired)
	}

	messages, err := s.messageRepo.FindBySessionID(ctx, sessionID)
	if err != nil {
		s.logger.Error("failed to load history", "session_id", sessionID, "error", err)
		return nil, chatservice.NewInternalError("get_history", err)
	}

	items := make([]chatservice.HistoryItem, 0, len(messages))
	for _, m := range messages {
		items = append(items, chatservice.HistoryItem{
			ID:        m.ID,
			Sender:    m.Sender,
			Text:      m.Content,
			Timestamp: m.CreatedAt,
		})
	}
	return items, nil
}

// ListSessions returns every session, newest first.
func (s *ChatService) ListSessions(ctx context.Context) ([]chatservice.SessionSummary, error) {
	sessions, err := s.sessionRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to list sessions", "error", err)
		return nil, chatservice.NewInternalError("list_sessions", err)
	}

	summaries := make([]chatservice.SessionSummary, 0, len(sessions))
	for _, sess := range sessions {
		summaries = append(summaries, chatservice.SessionSummary{
			ID:        sess.ID,
			Title:     sess.Title,
			CreatedAt: sess.CreatedAt,
		})
	}
	return summaries, nil
}

// DeleteAllSessions removes every session and message.
func (s *ChatService) DeleteAllSessions(ctx context.Context) error {
	deleted, err := s.sessionRepo.DeleteAll(ctx)
	if err != nil {
		s.logger.Error("failed to delete sessions", "error", err)
		return chatservice.NewInternalError("delete_all_sessions", err)
	}
	s.logger.Warn("all chat history deleted", "sessions", deleted)
	return nil
}
