package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/iyunix/go-spurchat/internal/services"
)

// FrontendLogPayload defines the structure for logs coming from the widget.
type FrontendLogPayload struct {
	Level   string `json:"level"`             // e.g., "info", "error", "warn"
	Message string `json:"message"`           // The main log message
	Context any    `json:"context,omitempty"` // Optional extra data (e.g., stack trace)
}

type LogHandler struct {
	Logger services.Logger
}

func NewLogHandler(logger services.Logger) *LogHandler {
	if logger == nil {
		logger = &services.NoOpLogger{}
	}
	return &LogHandler{Logger: logger}
}

// LogFrontendEvent handles incoming log requests from the widget.
func (h *LogHandler) LogFrontendEvent(w http.ResponseWriter, r *http.Request) {
	var payload FrontendLogPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, msgInvalidBody, http.StatusBadRequest)
		return
	}

	keysAndValues := []interface{}{"client_message", payload.Message, "context", payload.Context}
	switch strings.ToLower(payload.Level) {
	case "error":
		h.Logger.Error("CLIENT_LOG", keysAndValues...)
	case "warn", "warning":
		h.Logger.Warn("CLIENT_LOG", keysAndValues...)
	case "debug":
		h.Logger.Debug("CLIENT_LOG", keysAndValues...)
	default:
		h.Logger.Info("CLIENT_LOG", keysAndValues...)
	}

	w.WriteHeader(http.StatusNoContent)
}
