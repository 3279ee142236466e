// File: internal/handlers/page_handlers.go
package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/iyunix/go-spurchat/internal/domain"
	"github.com/iyunix/go-spurchat/internal/services"
)

//go:embed templates/*.html
var templateFS embed.FS

var transcriptTemplate = template.Must(template.ParseFS(templateFS, "templates/transcript.html"))

type transcriptMessage struct {
	Sender    domain.Sender
	Text      string
	HTML      template.HTML
	Timestamp time.Time
}

// PageHandler renders read-only HTML views of stored conversations.
type PageHandler struct {
	ChatService ChatService
	Logger      services.Logger
	markdown    goldmark.Markdown
}

func NewPageHandler(cs ChatService, logger services.Logger) *PageHandler {
	if logger == nil {
		logger = &services.NoOpLogger{}
	}
	return &PageHandler{
		ChatService: cs,
		Logger:      logger,
		// Raw HTML in replies is escaped, never passed through.
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
	}
}

// ShowTranscript handles GET /chat/transcript/{sessionId}. Assistant replies
// are Markdown and are rendered; user text is shown as typed.
func (h *PageHandler) ShowTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	items, err := h.ChatService.GetHistory(r.Context(), sessionID)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			h.Logger.Error("transcript load failed", "session_id", sessionID, "error", err)
		}
		http.Error(w, http.StatusText(status), status)
		return
	}

	messages := make([]transcriptMessage, 0, len(items))
	for _, item := range items {
		msg := transcriptMessage{Sender: item.Sender, Text: item.Text, Timestamp: item.Timestamp}
		if item.Sender == domain.SenderAI {
			rendered, err := h.renderMarkdown(item.Text)
			if err != nil {
				h.Logger.Warn("markdown render failed", "message_id", item.ID, "error", err)
				rendered = template.HTML(template.HTMLEscapeString(item.Text))
			}
			msg.HTML = rendered
		}
		messages = append(messages, msg)
	}

	title := "Conversation"
	if len(items) > 0 {
		title = domain.TitleFromMessage(items[0].Text)
	}

	var buf bytes.Buffer
	if err := transcriptTemplate.Execute(&buf, map[string]interface{}{
		"Title":    title,
		"Messages": messages,
	}); err != nil {
		h.Logger.Error("transcript render failed", "session_id", sessionID, "error", err)
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
		return
	}

	addSecurityHeaders(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *PageHandler) renderMarkdown(text string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := h.markdown.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func addSecurityHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'unsafe-inline'")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
}
