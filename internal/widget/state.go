// Package widget holds the chat client's UI state. Every event is a pure
// transition on State that returns the new state plus the side effects the
// caller must perform.
package widget

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/iyunix/go-spurchat/internal/client"
	"github.com/iyunix/go-spurchat/internal/domain"
)

const (
	MaxMessageLength = 2000

	ErrMessageTooLong  = "Message is too long. Please keep it under 2000 characters."
	ErrHistoryFailed   = "Failed to load chat history. Starting fresh."
	UntitledSessionTag = "Untitled Chat"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSending
	PhaseLoading
)

func (p Phase) String() string {
	switch p {
	case PhaseSending:
		return "sending"
	case PhaseLoading:
		return "loading"
	default:
		return "idle"
	}
}

// Entry is one rendered message.
type Entry struct {
	ID        string
	Sender    domain.Sender
	Text      string
	Timestamp time.Time
	// Pending marks the optimistic user entry of the in-flight send.
	Pending bool
}

type EffectKind int

const (
	EffectSendMessage EffectKind = iota
	EffectLoadHistory
	EffectPersistSession
	EffectForgetSession
	EffectRefreshSessions
	EffectDeleteAll
)

type Effect struct {
	Kind      EffectKind
	SessionID string
	Text      string
}

type State struct {
	Phase       Phase
	Input       string
	Messages    []Entry
	SessionID   string
	Sessions    []client.Session
	Error       string
	SidebarOpen bool
	OpenMenuID  string
	Search      string

	localSeq int
}

func (s State) SetInput(text string) State {
	s.Input = text
	return s
}

// Submit sends the current input. It is ignored while a request is in
// flight or when the trimmed input is empty.
func (s State) Submit(now time.Time) (State, []Effect) {
	text := strings.TrimSpace(s.Input)
	if text == "" || s.Phase != PhaseIdle {
		return s, nil
	}
	if utf8.RuneCountInString(text) > MaxMessageLength {
		s.Error = ErrMessageTooLong
		return s, nil
	}

	s.localSeq++
	s.Error = ""
	s.Messages = appendEntry(s.Messages, Entry{
		ID:        fmt.Sprintf("local-%d", s.localSeq),
		Sender:    domain.SenderUser,
		Text:      text,
		Timestamp: now,
		Pending:   true,
	})
	s.Input = ""
	s.Phase = PhaseSending
	return s, []Effect{{Kind: EffectSendMessage, SessionID: s.SessionID, Text: text}}
}

// SendSucceeded appends the reply. A brand-new conversation adopts the
// session id the server assigned.
func (s State) SendSucceeded(resp client.ChatResponse, now time.Time) (State, []Effect) {
	if s.Phase != PhaseSending {
		return s, nil
	}

	messages := make([]Entry, 0, len(s.Messages)+1)
	for _, m := range s.Messages {
		m.Pending = false
		messages = append(messages, m)
	}
	s.localSeq++
	s.Messages = append(messages, Entry{
		ID:        fmt.Sprintf("local-%d", s.localSeq),
		Sender:    domain.SenderAI,
		Text:      resp.Reply,
		Timestamp: now,
	})
	s.Phase = PhaseIdle

	var effects []Effect
	if s.SessionID == "" && resp.SessionID != "" {
		s.SessionID = resp.SessionID
		effects = append(effects,
			Effect{Kind: EffectPersistSession, SessionID: resp.SessionID},
			Effect{Kind: EffectRefreshSessions},
		)
	}
	return s, effects
}

// SendFailed drops only the optimistic entry and shows the error.
func (s State) SendFailed(message string) State {
	if s.Phase != PhaseSending {
		return s
	}
	kept := make([]Entry, 0, len(s.Messages))
	for _, m := range s.Messages {
		if !m.Pending {
			kept = append(kept, m)
		}
	}
	s.Messages = kept
	s.Error = message
	s.Phase = PhaseIdle
	return s
}

func (s State) NewChat() (State, []Effect) {
	s.Messages = nil
	s.SessionID = ""
	s.Error = ""
	s.SidebarOpen = false
	return s, []Effect{{Kind: EffectForgetSession}}
}

// OpenSession starts loading a stored conversation.
func (s State) OpenSession(sessionID string) (State, []Effect) {
	if sessionID == "" || s.Phase == PhaseSending {
		return s, nil
	}
	s.Phase = PhaseLoading
	s.Error = ""
	return s, []Effect{{Kind: EffectLoadHistory, SessionID: sessionID}}
}

// HistoryLoaded replaces the transcript wholesale.
func (s State) HistoryLoaded(sessionID string, messages []client.Message) (State, []Effect) {
	entries := make([]Entry, 0, len(messages))
	for _, m := range messages {
		entries = append(entries, Entry{ID: m.ID, Sender: m.Sender, Text: m.Text, Timestamp: m.Timestamp})
	}
	s.Messages = entries
	s.SessionID = sessionID
	s.SidebarOpen = false
	s.Phase = PhaseIdle
	return s, []Effect{{Kind: EffectPersistSession, SessionID: sessionID}}
}

func (s State) HistoryFailed() (State, []Effect) {
	s, effects := s.NewChat()
	s.Error = ErrHistoryFailed
	s.Phase = PhaseIdle
	return s, effects
}

func (s State) SessionsLoaded(sessions []client.Session) State {
	s.Sessions = append([]client.Session(nil), sessions...)
	return s
}

func (s State) ToggleSidebar() State {
	s.SidebarOpen = !s.SidebarOpen
	return s
}

// ToggleMenu opens the per-session menu, or closes it when already open.
func (s State) ToggleMenu(sessionID string) State {
	if s.OpenMenuID == sessionID {
		s.OpenMenuID = ""
	} else {
		s.OpenMenuID = sessionID
	}
	return s
}

func (s State) SetSearch(query string) State {
	s.Search = query
	return s
}

// VisibleSessions filters the sidebar by a case-insensitive title match.
// Untitled sessions only show while the search box is empty.
func (s State) VisibleSessions() []client.Session {
	query := strings.ToLower(strings.TrimSpace(s.Search))
	visible := make([]client.Session, 0, len(s.Sessions))
	for _, sess := range s.Sessions {
		if query == "" {
			visible = append(visible, sess)
			continue
		}
		if sess.Title != nil && strings.Contains(strings.ToLower(*sess.Title), query) {
			visible = append(visible, sess)
		}
	}
	return visible
}

// DeleteSessionLocal hides a session from the sidebar. The server keeps it;
// it reappears on the next refresh.
func (s State) DeleteSessionLocal(sessionID string) (State, []Effect) {
	s.OpenMenuID = ""
	kept := make([]client.Session, 0, len(s.Sessions))
	for _, sess := range s.Sessions {
		if sess.ID != sessionID {
			kept = append(kept, sess)
		}
	}
	s.Sessions = kept

	if sessionID != "" && sessionID == s.SessionID {
		return s.NewChat()
	}
	return s, nil
}

// ClearAll asks the server to delete every session.
func (s State) ClearAll() (State, []Effect) {
	if s.Phase != PhaseIdle {
		return s, nil
	}
	s.Phase = PhaseLoading
	return s, []Effect{{Kind: EffectDeleteAll}}
}

func (s State) AllDeleted() (State, []Effect) {
	s, effects := s.NewChat()
	s.Sessions = nil
	s.Phase = PhaseIdle
	return s, append(effects, Effect{Kind: EffectRefreshSessions})
}

func (s State) ClearAllFailed(message string) State {
	s.Error = message
	s.Phase = PhaseIdle
	return s
}

// SessionLabel is the sidebar text for a session.
func SessionLabel(sess client.Session) string {
	if sess.Title == nil || *sess.Title == "" {
		return UntitledSessionTag
	}
	return *sess.Title
}

func appendEntry(entries []Entry, e Entry) []Entry {
	out := make([]Entry, 0, len(entries)+1)
	out = append(out, entries...)
	return append(out, e)
}
