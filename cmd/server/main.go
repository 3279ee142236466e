// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iyunix/go-spurchat/internal/config"
	"github.com/iyunix/go-spurchat/internal/database"
	"github.com/iyunix/go-spurchat/internal/handlers"
	"github.com/iyunix/go-spurchat/internal/repository/message"
	"github.com/iyunix/go-spurchat/internal/repository/session"
	"github.com/iyunix/go-spurchat/internal/services"
	"github.com/iyunix/go-spurchat/internal/services/ai"
	chatservice "github.com/iyunix/go-spurchat/internal/services/chat"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	logger, closeLog := services.NewProductionLogger("spurchat", cfg.LoggerOptions())
	defer closeLog()
	for _, warning := range cfg.Warnings() {
		logger.Warn(warning)
	}

	db, err := database.Open(cfg.DatabaseConfig())
	if err != nil {
		log.Fatalf("❌ DB Error: %v", err)
	}
	defer database.Close(db)

	// --- Repositories ---
	sessionRepo := session.NewSessionRepository(db)
	messageRepo := message.NewMessageRepository(db)

	// --- Services ---
	provider, err := ai.NewProvider(cfg.AIConfig())
	if err != nil {
		// Keep serving; every chat turn reports the problem to the client.
		logger.Error("completion provider unavailable", "provider", cfg.LLMProvider, "error", err)
		provider = ai.NewUnavailableProvider(cfg.LLMProvider, err)
	}

	prompts, err := chatservice.NewPromptStore(cfg.SystemPromptFile, logger)
	if err != nil {
		log.Fatalf("❌ Failed to load system prompt: %v", err)
	}
	if err := prompts.StartWatching(); err != nil {
		logger.Warn("system prompt hot reload disabled", "error", err)
	}
	defer prompts.StopWatching()

	generator, err := chatservice.NewReplyGenerator(cfg.ChatConfig(), provider, prompts, logger)
	if err != nil {
		log.Fatalf("❌ Failed to initialize reply generator: %v", err)
	}

	chatService, err := services.NewChatService(sessionRepo, messageRepo, generator, logger)
	if err != nil {
		log.Fatalf("❌ Failed to initialize chat service: %v", err)
	}

	// --- Handlers ---
	router := handlers.NewRouter(
		handlers.NewChatHandler(chatService, logger),
		handlers.NewPageHandler(chatService, logger),
		handlers.NewLogHandler(logger),
		logger,
	)

	// --- Server Configuration ---
	port := ":" + cfg.ServerPort
	srv := &http.Server{
		Addr:              port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// --- Startup Logging ---
	log.Printf("==================================================")
	log.Printf("🛍️  SpurChat - Customer Support Chat")
	log.Printf("==================================================")
	log.Printf("🚀 Server starting on port %s", port)
	log.Printf("🌐 Local access: http://localhost%s", port)
	log.Printf("🗄️  Database: %s", cfg.DBDriver)
	log.Printf("🤖 Provider: %s (%s)", provider.Name(), cfg.LLMModel)
	log.Printf("🔄 Server ready to accept connections!")
	log.Printf("==================================================")

	// --- Start Server in Goroutine ---
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("🛑 Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("❌ Server shutdown failed: %v", err)
		return
	}
	log.Println("✅ Server stopped gracefully")
}
