package services

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iyunix/go-spurchat/internal/database"
	"github.com/iyunix/go-spurchat/internal/domain"
	"github.com/iyunix/go-spurchat/internal/repository/message"
	"github.com/iyunix/go-spurchat/internal/repository/session"
	"github.com/iyunix/go-spurchat/internal/services/ai"
	chatservice "github.com/iyunix/go-spurchat/internal/services/chat"
)

type scriptedReplies struct {
	mu      sync.Mutex
	replies []string
	err     error
	prior   [][]chatservice.Turn
}

func (s *scriptedReplies) GenerateReply(ctx context.Context, prior []chatservice.Turn, message string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prior = append(s.prior, prior)
	if s.err != nil {
		return "", s.err
	}
	if len(s.replies) == 0 {
		return "ok", nil
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	return reply, nil
}

type failingProvider struct{ err error }

func (f failingProvider) Name() string { return "failing" }

func (f failingProvider) CreateCompletion(ctx context.Context, req ai.CompletionRequest) (string, error) {
	return "", f.err
}

type testEnv struct {
	service  *ChatService
	sessions session.SessionRepository
	messages message.MessageRepository
}

func newTestEnv(t *testing.T, replies chatservice.ReplyProvider) *testEnv {
	t.Helper()
	db, err := database.Open(database.Config{
		Driver: database.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "chat.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	env := &testEnv{
		sessions: session.NewSessionRepository(db),
		messages: message.NewMessageRepository(db),
	}
	env.service, err = NewChatService(env.sessions, env.messages, replies, nil)
	require.NoError(t, err)

	// Each call moves the clock forward so ordering is deterministic.
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	env.service.SetClock(func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	})
	return env
}

func TestSubmitTurnCreatesSession(t *testing.T) {
	ctx := context.Background()
	replies := &scriptedReplies{replies: []string{"We ship in 3-5 business days."}}
	env := newTestEnv(t, replies)

	result, err := env.service.SubmitTurn(ctx, "How long does shipping take?", "")
	require.NoError(t, err)
	assert.Equal(t, "We ship in 3-5 business days.", result.Reply)
	assert.NotEmpty(t, result.SessionID)
	assert.Empty(t, replies.prior[0], "first turn has no prior context")

	history, err := env.service.GetHistory(ctx, result.SessionID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.SenderUser, history[0].Sender)
	assert.Equal(t, "How long does shipping take?", history[0].Text)
	assert.Equal(t, domain.SenderAI, history[1].Sender)
	assert.Equal(t, "We ship in 3-5 business days.", history[1].Text)
	assert.False(t, history[1].Timestamp.Before(history[0].Timestamp))

	sessions, err := env.service.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.NotNil(t, sessions[0].Title)
	assert.Equal(t, "How long does shipping take?", *sessions[0].Title)
}

func TestSubmitTurnCarriesPriorContext(t *testing.T) {
	ctx := context.Background()
	replies := &scriptedReplies{replies: []string{"Hello!", "Within 30 days."}}
	env := newTestEnv(t, replies)

	first, err := env.service.SubmitTurn(ctx, "Hi", "")
	require.NoError(t, err)

	second, err := env.service.SubmitTurn(ctx, "What is your return policy?", first.SessionID)
	require.NoError(t, err)
	assert.Equal(t, first.SessionID, second.SessionID)

	assert.Equal(t, []chatservice.Turn{
		{Sender: domain.SenderUser, Text: "Hi"},
		{Sender: domain.SenderAI, Text: "Hello!"},
	}, replies.prior[1])

	history, err := env.service.GetHistory(ctx, first.SessionID)
	require.NoError(t, err)
	require.Len(t, history, 4)
	assert.Equal(t, "What is your return policy?", history[2].Text)
	assert.Equal(t, "Within 30 days.", history[3].Text)
}

func TestSubmitTurnWithUnknownClientID(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, &scriptedReplies{})

	result, err := env.service.SubmitTurn(ctx, "Hello there", "client-generated-id")
	require.NoError(t, err)
	assert.Equal(t, "client-generated-id", result.SessionID)

	got, err := env.sessions.FindByID(ctx, "client-generated-id")
	require.NoError(t, err)
	require.NotNil(t, got.Title)
	assert.Equal(t, "Hello there", *got.Title)
}

func TestSubmitTurnTitleIsTruncated(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, &scriptedReplies{})

	long := strings.Repeat("é", 80)
	result, err := env.service.SubmitTurn(ctx, long, "")
	require.NoError(t, err)

	got, err := env.sessions.FindByID(ctx, result.SessionID)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("é", domain.TitleMaxRunes), *got.Title)

	history, err := env.service.GetHistory(ctx, result.SessionID)
	require.NoError(t, err)
	assert.Equal(t, long, history[0].Text)
}

func TestSubmitTurnNeverOverwritesTitle(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, &scriptedReplies{})

	first, err := env.service.SubmitTurn(ctx, "Original question", "")
	require.NoError(t, err)
	_, err = env.service.SubmitTurn(ctx, "Follow-up question", first.SessionID)
	require.NoError(t, err)

	got, err := env.sessions.FindByID(ctx, first.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "Original question", *got.Title)
}

func TestSubmitTurnBackfillsMissingTitle(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, &scriptedReplies{})

	empty := ""
	_, err := env.sessions.Create(ctx, &domain.Session{ID: "untitled", Title: &empty})
	require.NoError(t, err)

	_, err = env.service.SubmitTurn(ctx, "Now with a title", "untitled")
	require.NoError(t, err)

	got, err := env.sessions.FindByID(ctx, "untitled")
	require.NoError(t, err)
	assert.Equal(t, "Now with a title", *got.Title)
}

func TestSubmitTurnRejectsBlankMessage(t *testing.T) {
	ctx := context.Background()
	replies := &scriptedReplies{}
	env := newTestEnv(t, replies)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := env.service.SubmitTurn(ctx, text, "")
		require.Error(t, err)
		assert.Equal(t, chatservice.ErrTypeInvalidInput, chatservice.TypeOf(err))
		assert.Equal(t, "Message is required and cannot be empty", chatservice.PublicMessage(err))
	}

	assert.Empty(t, replies.prior)
	sessions, err := env.service.ListSessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestSubmitTurnAuthFailureKeepsUserMessage(t *testing.T) {
	ctx := context.Background()
	generator, err := chatservice.NewReplyGenerator(
		chatservice.DefaultConfig(),
		failingProvider{err: &ai.AIError{Type: ai.ErrTypeAuth, Code: 401, Operation: "completion"}},
		staticPrompt("persona"),
		nil,
	)
	require.NoError(t, err)
	env := newTestEnv(t, generator)

	_, err = env.service.SubmitTurn(ctx, "Hello", "sess-auth")
	require.Error(t, err)
	assert.Equal(t, chatservice.ErrTypeConfiguration, chatservice.TypeOf(err))
	assert.Equal(t, "Invalid OpenAI API key. Please check your OPENAI_API_KEY configuration.", chatservice.PublicMessage(err))

	history, err := env.service.GetHistory(ctx, "sess-auth")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.SenderUser, history[0].Sender)
}

func TestSubmitTurnGenerationFailure(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, &scriptedReplies{err: chatservice.NewGenerationError("generate_reply", errors.New("timeout"))})

	_, err := env.service.SubmitTurn(ctx, "Hello", "")
	assert.Equal(t, chatservice.ErrTypeGeneration, chatservice.TypeOf(err))
}

func TestSubmitTurnUnclassifiedGeneratorErrorIsInternal(t *testing.T) {
	env := newTestEnv(t, &scriptedReplies{err: errors.New("boom")})

	_, err := env.service.SubmitTurn(context.Background(), "Hello", "")
	assert.Equal(t, chatservice.ErrTypeInternal, chatservice.TypeOf(err))
	assert.Equal(t, "Internal Server Error", chatservice.PublicMessage(err))
}

func TestGetHistory(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, &scriptedReplies{})

	_, err := env.service.GetHistory(ctx, "")
	assert.Equal(t, chatservice.ErrTypeInvalidInput, chatservice.TypeOf(err))

	items, err := env.service.GetHistory(ctx, "does-not-exist")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestListSessionsNewestFirst(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, &scriptedReplies{})

	older, err := env.service.SubmitTurn(ctx, "older", "")
	require.NoError(t, err)
	newer, err := env.service.SubmitTurn(ctx, "newer", "")
	require.NoError(t, err)

	sessions, err := env.service.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, newer.SessionID, sessions[0].ID)
	assert.Equal(t, older.SessionID, sessions[1].ID)
}

func TestDeleteAllSessions(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, &scriptedReplies{})

	first, err := env.service.SubmitTurn(ctx, "one", "")
	require.NoError(t, err)
	_, err = env.service.SubmitTurn(ctx, "two", "")
	require.NoError(t, err)

	require.NoError(t, env.service.DeleteAllSessions(ctx))

	sessions, err := env.service.ListSessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	history, err := env.service.GetHistory(ctx, first.SessionID)
	require.NoError(t, err)
	assert.Empty(t, history)

	// Deleting again is harmless.
	require.NoError(t, env.service.DeleteAllSessions(ctx))
}

func TestNewChatServiceRequiresDependencies(t *testing.T) {
	_, err := NewChatService(nil, nil, nil, nil)
	assert.Error(t, err)
}

type staticPrompt string

func (p staticPrompt) SystemPrompt() string { return string(p) }
