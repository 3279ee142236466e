package chat

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPromptIsEmbedded(t *testing.T) {
	store, err := NewPromptStore("", nil)
	require.NoError(t, err)

	prompt := store.SystemPrompt()
	assert.Contains(t, prompt, "SpurStore")
	assert.Contains(t, prompt, "30-day hassle-free returns")
	assert.NoError(t, store.StartWatching())
	store.StopWatching()
}

func TestPromptStoreLoadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persona.md")
	require.NoError(t, os.WriteFile(path, []byte("  You are Bob.\n"), 0o644))

	store, err := NewPromptStore(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "You are Bob.", store.SystemPrompt())
}

func TestPromptStoreRejectsMissingOrEmptyFile(t *testing.T) {
	dir := t.TempDir()
	_, err := NewPromptStore(filepath.Join(dir, "missing.md"), nil)
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.md")
	require.NoError(t, os.WriteFile(empty, []byte("\n\n"), 0o644))
	_, err = NewPromptStore(empty, nil)
	assert.Error(t, err)
}

func TestPromptStoreReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persona.md")
	require.NoError(t, os.WriteFile(path, []byte("first"), 0o644))

	store, err := NewPromptStore(path, nil)
	require.NoError(t, err)
	require.NoError(t, store.StartWatching())
	t.Cleanup(store.StopWatching)

	require.NoError(t, os.WriteFile(path, []byte("second"), 0o644))

	select {
	case <-store.Reloaded():
	case <-time.After(5 * time.Second):
		t.Fatal("prompt was not reloaded")
	}
	assert.Equal(t, "second", store.SystemPrompt())
}

func TestPromptStoreKeepsLastGoodPrompt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persona.md")
	require.NoError(t, os.WriteFile(path, []byte("good"), 0o644))

	store, err := NewPromptStore(path, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("   "), 0o644))
	store.reload()
	assert.Equal(t, "good", store.SystemPrompt())
}
