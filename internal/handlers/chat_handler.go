// File: internal/handlers/chat_handler.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iyunix/go-spurchat/internal/services"
	chatservice "github.com/iyunix/go-spurchat/internal/services/chat"
)

const (
	msgMessageRequired   = "Message is required and cannot be empty"
	msgSessionIDRequired = "Session ID is required"
	msgInvalidBody       = "Invalid request body"
	msgHistoryDeleted    = "All chat history deleted successfully"
)

// ChatService is the conversation API the handlers depend on.
type ChatService interface {
	SubmitTurn(ctx context.Context, message, sessionID string) (*chatservice.SubmitTurnResult, error)
	GetHistory(ctx context.Context, sessionID string) ([]chatservice.HistoryItem, error)
	ListSessions(ctx context.Context) ([]chatservice.SessionSummary, error)
	DeleteAllSessions(ctx context.Context) error
}

type ChatHandler struct {
	ChatService ChatService
	Logger      services.Logger
}

func NewChatHandler(cs ChatService, logger services.Logger) *ChatHandler {
	if logger == nil {
		logger = &services.NoOpLogger{}
	}
	return &ChatHandler{ChatService: cs, Logger: logger}
}

type sendMessageRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
}

// SendMessage handles POST /chat/message.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "message" {
			writeError(w, msgMessageRequired, http.StatusBadRequest)
			return
		}
		writeError(w, msgInvalidBody, http.StatusBadRequest)
		return
	}

	result, err := h.ChatService.SubmitTurn(r.Context(), req.Message, req.SessionID)
	if err != nil {
		h.respondError(w, "send_message", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetHistory handles GET /chat/history/{sessionId}.
func (h *ChatHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	messages, err := h.ChatService.GetHistory(r.Context(), sessionID)
	if err != nil {
		h.respondError(w, "get_history", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"messages": messages})
}

// MissingSessionID answers /chat/history without a session segment.
func (h *ChatHandler) MissingSessionID(w http.ResponseWriter, r *http.Request) {
	writeError(w, msgSessionIDRequired, http.StatusBadRequest)
}

// ListSessions handles GET /chat/sessions.
func (h *ChatHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.ChatService.ListSessions(r.Context())
	if err != nil {
		h.respondError(w, "list_sessions", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"sessions": sessions})
}

// DeleteAllSessions handles DELETE /chat/sessions.
func (h *ChatHandler) DeleteAllSessions(w http.ResponseWriter, r *http.Request) {
	if err := h.ChatService.DeleteAllSessions(r.Context()); err != nil {
		h.respondError(w, "delete_all_sessions", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": msgHistoryDeleted})
}

func (h *ChatHandler) respondError(w http.ResponseWriter, operation string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.Logger.Error("chat request failed", "operation", operation, "error", err)
	}
	writeError(w, chatservice.PublicMessage(err), status)
}

func statusFor(err error) int {
	if chatservice.TypeOf(err) == chatservice.ErrTypeInvalidInput {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError is a helper for sending JSON error responses.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}
