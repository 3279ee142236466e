package widget

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "widget.json")
	store := NewFileStore(path)

	id, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, id)

	require.NoError(t, store.Save("s1"))
	id, err = NewFileStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "s1", id)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]string
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, map[string]string{"chatSessionId": "s1"}, raw)

	require.NoError(t, store.Clear())
	id, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, id)
	require.NoError(t, store.Clear())
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "widget.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(path).Load()
	assert.Error(t, err)
}
