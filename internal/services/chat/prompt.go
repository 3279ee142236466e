// G:\go_spurchat\internal\services\chat\prompt.go
package chat

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

//go:embed prompts/support_agent.md
var defaultSystemPrompt string

// DefaultSystemPrompt returns the built-in SpurStore support persona.
func DefaultSystemPrompt() string {
	return strings.TrimSpace(defaultSystemPrompt)
}

const promptReloadDebounce = 100 * time.Millisecond

// PromptStore holds the system instruction block. When backed by a file it
// can watch that file and swap the prompt in place after edits.
type PromptStore struct {
	path   string
	logger Logger

	mu     sync.RWMutex
	prompt string

	watcher    *fsnotify.Watcher
	debounce   *time.Timer
	debounceMu sync.Mutex
	reloaded   chan struct{}
}

// NewPromptStore loads the prompt from path, or uses the embedded persona
// when path is empty.
func NewPromptStore(path string, logger Logger) (*PromptStore, error) {
	if logger == nil {
		logger = nopLogger{}
	}
	s := &PromptStore{path: path, logger: logger, reloaded: make(chan struct{}, 1)}

	if path == "" {
		s.prompt = DefaultSystemPrompt()
		return s, nil
	}

	prompt, err := readPrompt(path)
	if err != nil {
		return nil, err
	}
	s.prompt = prompt
	return s, nil
}

func (s *PromptStore) SystemPrompt() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prompt
}

// StartWatching reloads the prompt whenever its file is written or replaced.
// It is a no-op for the embedded prompt.
func (s *PromptStore) StartWatching() error {
	if s.path == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// Watch the directory so editors that replace the file are still seen.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return err
	}
	s.watcher = watcher

	go s.watchLoop()
	s.logger.Info("watching system prompt for changes", "path", s.path)
	return nil
}

func (s *PromptStore) StopWatching() {
	s.debounceMu.Lock()
	if s.debounce != nil {
		s.debounce.Stop()
	}
	s.debounceMu.Unlock()

	if s.watcher != nil {
		s.watcher.Close()
	}
}

// Reloaded signals after each successful reload. Used by tests.
func (s *PromptStore) Reloaded() <-chan struct{} {
	return s.reloaded
}

func (s *PromptStore) watchLoop() {
	target := filepath.Clean(s.path)
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			s.scheduleReload()
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Error("system prompt watcher error", "error", err)
		}
	}
}

func (s *PromptStore) scheduleReload() {
	s.debounceMu.Lock()
	defer s.debounceMu.Unlock()

	if s.debounce != nil {
		s.debounce.Stop()
	}
	s.debounce = time.AfterFunc(promptReloadDebounce, s.reload)
}

func (s *PromptStore) reload() {
	prompt, err := readPrompt(s.path)
	if err != nil {
		// Keep serving the last good prompt.
		s.logger.Warn("system prompt reload failed", "path", s.path, "error", err)
		return
	}

	s.mu.Lock()
	s.prompt = prompt
	s.mu.Unlock()

	s.logger.Info("system prompt reloaded", "path", s.path, "length", len(prompt))
	select {
	case s.reloaded <- struct{}{}:
	default:
	}
}

func readPrompt(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read system prompt: %w", err)
	}
	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return "", fmt.Errorf("system prompt file %s is empty", path)
	}
	return prompt, nil
}
