package widget

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// SessionKey is the single durable key the widget keeps.
const SessionKey = "chatSessionId"

// SessionStore remembers the last active session id between runs.
type SessionStore interface {
	Load() (string, error)
	Save(sessionID string) error
	Clear() error
}

// FileStore keeps the key in a small JSON document.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultStorePath is <user config dir>/spurchat/widget.json.
func DefaultStorePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "spurchat", "widget.json"), nil
}

func (f *FileStore) Load() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return "", err
	}
	return values[SessionKey], nil
}

func (f *FileStore) Save(sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return err
	}
	values[SessionKey] = sessionID
	return f.write(values)
}

func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := values[SessionKey]; !ok {
		return nil
	}
	delete(values, SessionKey)
	return f.write(values)
}

func (f *FileStore) read() (map[string]string, error) {
	values := map[string]string{}
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read widget store: %w", err)
	}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse widget store %s: %w", f.path, err)
	}
	return values, nil
}

// write replaces the file atomically.
func (f *FileStore) write(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create widget store dir: %w", err)
	}
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write widget store: %w", err)
	}
	return os.Rename(tmp, f.path)
}

// MemoryStore is an in-process SessionStore.
type MemoryStore struct {
	mu        sync.Mutex
	sessionID string
}

func (m *MemoryStore) Load() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionID, nil
}

func (m *MemoryStore) Save(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessionID = sessionID
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessionID = ""
	return nil
}
