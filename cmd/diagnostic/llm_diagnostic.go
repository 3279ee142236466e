// File: cmd/diagnostic/llm_diagnostic.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/iyunix/go-spurchat/internal/config"
	"github.com/iyunix/go-spurchat/internal/domain"
	"github.com/iyunix/go-spurchat/internal/services/ai"
	chatservice "github.com/iyunix/go-spurchat/internal/services/chat"
)

// Sends one support question through the configured provider and persona,
// exactly as a chat turn would, and prints the reply.
func main() {
	question := flag.String("q", "What is your return policy?", "question to ask")
	timeout := flag.Duration("timeout", 60*time.Second, "request timeout")
	flag.Parse()

	fmt.Println("🚀 Testing reply generation...")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	fmt.Printf("✅ Provider: %s, model: %s, max tokens: %d\n", cfg.LLMProvider, cfg.LLMModel, cfg.LLMMaxTokens)

	provider, err := ai.NewProvider(cfg.AIConfig())
	if err != nil {
		log.Fatalf("❌ Provider setup failed: %v", err)
	}

	prompts, err := chatservice.NewPromptStore(cfg.SystemPromptFile, nil)
	if err != nil {
		log.Fatalf("❌ System prompt failed to load: %v", err)
	}

	generator, err := chatservice.NewReplyGenerator(cfg.ChatConfig(), provider, prompts, nil)
	if err != nil {
		log.Fatalf("❌ Generator setup failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	prior := []chatservice.Turn{
		{Sender: domain.SenderUser, Text: "Hi"},
		{Sender: domain.SenderAI, Text: "Hello! How can I help you today?"},
	}
	start := time.Now()
	reply, err := generator.GenerateReply(ctx, prior, *question)
	if err != nil {
		log.Fatalf("❌ %s (%v)", chatservice.PublicMessage(err), err)
	}

	fmt.Printf("✅ Response in %v:\n%s\n", time.Since(start).Round(time.Millisecond), reply)
}
