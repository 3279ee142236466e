// File: internal/handlers/router.go
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iyunix/go-spurchat/internal/middleware"
	"github.com/iyunix/go-spurchat/internal/services"
)

// NewRouter wires every HTTP route and the shared middleware chain.
func NewRouter(chat *ChatHandler, pages *PageHandler, logs *LogHandler, logger services.Logger) http.Handler {
	if logger == nil {
		logger = &services.NoOpLogger{}
	}
	router := mux.NewRouter()
	router.Use(middleware.RequestID, middleware.LoggingMiddleware(logger))

	router.HandleFunc("/health", Health).Methods(http.MethodGet)

	chatRoutes := router.PathPrefix("/chat").Subrouter()
	chatRoutes.HandleFunc("/message", chat.SendMessage).Methods(http.MethodPost)
	chatRoutes.HandleFunc("/history", chat.MissingSessionID).Methods(http.MethodGet)
	chatRoutes.HandleFunc("/history/", chat.MissingSessionID).Methods(http.MethodGet)
	chatRoutes.HandleFunc("/history/{sessionId}", chat.GetHistory).Methods(http.MethodGet)
	chatRoutes.HandleFunc("/sessions", chat.ListSessions).Methods(http.MethodGet)
	chatRoutes.HandleFunc("/sessions", chat.DeleteAllSessions).Methods(http.MethodDelete)
	chatRoutes.HandleFunc("/transcript/{sessionId}", pages.ShowTranscript).Methods(http.MethodGet)

	router.HandleFunc("/api/log", logs.LogFrontendEvent).Methods(http.MethodPost)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, "Not Found", http.StatusNotFound)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})

	// CORS and panic recovery sit outside the router so preflight requests
	// and method mismatches are covered too.
	return middleware.CORS(middleware.RecoverPanic(logger)(router))
}

// Health handles GET /health.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
