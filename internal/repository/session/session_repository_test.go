package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/iyunix/go-spurchat/internal/database"
	"github.com/iyunix/go-spurchat/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(database.Config{
		Driver: database.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "sessions.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func strPtr(s string) *string { return &s }

func TestCreateGeneratesID(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))

	created, err := repo.Create(context.Background(), &domain.Session{Title: strPtr("Where is my order?")})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestCreateIfAbsent(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(newTestDB(t))

	inserted, err := repo.CreateIfAbsent(ctx, &domain.Session{ID: "client-id-1", Title: strPtr("first")})
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repo.CreateIfAbsent(ctx, &domain.Session{ID: "client-id-1", Title: strPtr("second")})
	require.NoError(t, err)
	assert.False(t, inserted)

	got, err := repo.FindByID(ctx, "client-id-1")
	require.NoError(t, err)
	require.NotNil(t, got.Title)
	assert.Equal(t, "first", *got.Title)
}

func TestCreateIfAbsentRequiresID(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))
	_, err := repo.CreateIfAbsent(context.Background(), &domain.Session{})
	assert.Error(t, err)
}

func TestBackfillTitle(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewSessionRepository(db)

	_, err := repo.Create(ctx, &domain.Session{ID: "untitled"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Session{ID: "blank", Title: strPtr("")})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Session{ID: "titled", Title: strPtr("keep me")})
	require.NoError(t, err)

	updated, err := repo.BackfillTitle(ctx, "untitled", "hello")
	require.NoError(t, err)
	assert.True(t, updated)

	updated, err = repo.BackfillTitle(ctx, "blank", "hello")
	require.NoError(t, err)
	assert.True(t, updated)

	updated, err = repo.BackfillTitle(ctx, "titled", "overwrite")
	require.NoError(t, err)
	assert.False(t, updated)

	got, err := repo.FindByID(ctx, "titled")
	require.NoError(t, err)
	assert.Equal(t, "keep me", *got.Title)

	got, err = repo.FindByID(ctx, "untitled")
	require.NoError(t, err)
	assert.Equal(t, "hello", *got.Title)
}

func TestFindByIDNotFound(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))
	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestFindAllNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(newTestDB(t))

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"oldest", "middle", "newest"} {
		_, err := repo.Create(ctx, &domain.Session{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Minute)})
		require.NoError(t, err)
	}

	sessions, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Equal(t, "newest", sessions[0].ID)
	assert.Equal(t, "middle", sessions[1].ID)
	assert.Equal(t, "oldest", sessions[2].ID)
}

func TestFindAllEmpty(t *testing.T) {
	sessions, err := NewSessionRepository(newTestDB(t)).FindAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, sessions)
	assert.Empty(t, sessions)
}

func TestDeleteAllRemovesMessages(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewSessionRepository(db)

	_, err := repo.Create(ctx, &domain.Session{ID: "s1"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Session{ID: "s2"})
	require.NoError(t, err)
	require.NoError(t, db.Create(&domain.Message{SessionID: "s1", Sender: domain.SenderUser, Content: "hi"}).Error)
	require.NoError(t, db.Create(&domain.Message{SessionID: "s2", Sender: domain.SenderAI, Content: "hello"}).Error)

	deleted, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	var sessions, messages int64
	require.NoError(t, db.Model(&domain.Session{}).Count(&sessions).Error)
	require.NoError(t, db.Model(&domain.Message{}).Count(&messages).Error)
	assert.Zero(t, sessions)
	assert.Zero(t, messages)
}
