package widget

import (
	"context"
	"sync"
	"time"

	"github.com/iyunix/go-spurchat/internal/client"
)

// API is the subset of the chat API the widget uses.
type API interface {
	SendMessage(ctx context.Context, message, sessionID string) (*client.ChatResponse, error)
	GetHistory(ctx context.Context, sessionID string) ([]client.Message, error)
	GetSessions(ctx context.Context) ([]client.Session, error)
	DeleteAllSessions(ctx context.Context) (string, error)
}

// Logger is satisfied by services.Logger.
type Logger interface {
	Warn(msg string, keysAndValues ...interface{})
}

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{}) {}

// Controller drives State with real events and executes the effects each
// transition asks for.
type Controller struct {
	api    API
	store  SessionStore
	logger Logger
	now    func() time.Time

	mu    sync.Mutex
	state State
}

func NewController(api API, store SessionStore, logger Logger) *Controller {
	if store == nil {
		store = &MemoryStore{}
	}
	if logger == nil {
		logger = nopLogger{}
	}
	return &Controller{api: api, store: store, logger: logger, now: time.Now}
}

// State returns a snapshot of the current UI state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Init restores the remembered session and loads the sidebar.
func (c *Controller) Init(ctx context.Context) {
	sessionID, err := c.store.Load()
	if err != nil {
		c.logger.Warn("failed to read remembered session", "error", err)
	}
	if sessionID != "" {
		c.Open(ctx, sessionID)
	}
	c.RefreshSessions(ctx)
}

// Send submits text as the next user turn.
func (c *Controller) Send(ctx context.Context, text string) {
	c.apply(ctx, func(s State) (State, []Effect) {
		return s.SetInput(text).Submit(c.now())
	})
}

func (c *Controller) NewChat(ctx context.Context) {
	c.apply(ctx, State.NewChat)
}

func (c *Controller) Open(ctx context.Context, sessionID string) {
	c.apply(ctx, func(s State) (State, []Effect) { return s.OpenSession(sessionID) })
}

func (c *Controller) DeleteSession(ctx context.Context, sessionID string) {
	c.apply(ctx, func(s State) (State, []Effect) { return s.DeleteSessionLocal(sessionID) })
}

func (c *Controller) ClearAll(ctx context.Context) {
	c.apply(ctx, State.ClearAll)
}

func (c *Controller) Search(query string) {
	c.update(func(s State) State { return s.SetSearch(query) })
}

func (c *Controller) ToggleSidebar() {
	c.update(State.ToggleSidebar)
}

func (c *Controller) RefreshSessions(ctx context.Context) {
	c.run(ctx, []Effect{{Kind: EffectRefreshSessions}})
}

func (c *Controller) update(fn func(State) State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = fn(c.state)
}

func (c *Controller) apply(ctx context.Context, fn func(State) (State, []Effect)) {
	c.mu.Lock()
	next, effects := fn(c.state)
	c.state = next
	c.mu.Unlock()

	c.run(ctx, effects)
}

// run executes effects in order. Effects produced while handling one are
// queued behind the rest.
func (c *Controller) run(ctx context.Context, effects []Effect) {
	for len(effects) > 0 {
		effect := effects[0]
		effects = append(effects[1:], c.execute(ctx, effect)...)
	}
}

func (c *Controller) execute(ctx context.Context, effect Effect) []Effect {
	switch effect.Kind {
	case EffectSendMessage:
		resp, err := c.api.SendMessage(ctx, effect.Text, effect.SessionID)
		c.mu.Lock()
		defer c.mu.Unlock()
		if err != nil {
			c.state = c.state.SendFailed(err.Error())
			return nil
		}
		var next []Effect
		c.state, next = c.state.SendSucceeded(*resp, c.now())
		return next

	case EffectLoadHistory:
		messages, err := c.api.GetHistory(ctx, effect.SessionID)
		c.mu.Lock()
		defer c.mu.Unlock()
		var next []Effect
		if err != nil {
			c.logger.Warn("failed to load history", "session_id", effect.SessionID, "error", err)
			c.state, next = c.state.HistoryFailed()
			return next
		}
		c.state, next = c.state.HistoryLoaded(effect.SessionID, messages)
		return next

	case EffectPersistSession:
		if err := c.store.Save(effect.SessionID); err != nil {
			c.logger.Warn("failed to remember session", "session_id", effect.SessionID, "error", err)
		}

	case EffectForgetSession:
		if err := c.store.Clear(); err != nil {
			c.logger.Warn("failed to forget session", "error", err)
		}

	case EffectRefreshSessions:
		sessions, err := c.api.GetSessions(ctx)
		if err != nil {
			// The sidebar keeps its previous contents.
			c.logger.Warn("failed to fetch sessions", "error", err)
			return nil
		}
		c.update(func(s State) State { return s.SessionsLoaded(sessions) })

	case EffectDeleteAll:
		_, err := c.api.DeleteAllSessions(ctx)
		c.mu.Lock()
		defer c.mu.Unlock()
		if err != nil {
			c.state = c.state.ClearAllFailed(err.Error())
			return nil
		}
		var next []Effect
		c.state, next = c.state.AllDeleted()
		return next
	}
	return nil
}
