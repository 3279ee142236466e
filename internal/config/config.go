// File: internal/config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/iyunix/go-spurchat/internal/database"
	"github.com/iyunix/go-spurchat/internal/services"
	"github.com/iyunix/go-spurchat/internal/services/ai"
	chatservice "github.com/iyunix/go-spurchat/internal/services/chat"
)

type Config struct {
	ServerPort  string
	Environment string

	DBDriver    string
	DatabaseURL string

	LLMProvider     string
	LLMModel        string
	LLMMaxTokens    int
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	OllamaHost      string
	AnthropicAPIKey string
	// Optional override for the built-in support persona.
	SystemPromptFile string

	LogLevel  string
	LogFormat string
	LogFile   string
}

// Load reads configuration from environment variables or .env file.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	return &Config{
		ServerPort:       getEnv("PORT", "3000"),
		Environment:      env,
		DBDriver:         strings.ToLower(getEnv("DB_DRIVER", database.DriverSQLite)),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		LLMProvider:      strings.ToLower(getEnv("LLM_PROVIDER", ai.ProviderOpenAI)),
		LLMModel:         getEnv("LLM_MODEL", chatservice.DefaultModel),
		LLMMaxTokens:     getEnvAsInt("LLM_MAX_TOKENS", chatservice.DefaultMaxTokens),
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", ""),
		OllamaHost:       getEnv("OLLAMA_HOST", "http://localhost:11434"),
		AnthropicAPIKey:  getEnv("ANTHROPIC_API_KEY", ""),
		SystemPromptFile: getEnv("SYSTEM_PROMPT_FILE", ""),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", defaultLogFormat(env)),
		LogFile:          getEnv("LOG_FILE", ""),
	}
}

// Validate reports settings the server cannot start with. A missing OpenAI
// key is not one of them: each chat turn reports it instead.
func (c *Config) Validate() error {
	missing := []string{}
	if c.ServerPort == "" {
		missing = append(missing, "PORT")
	}
	if c.DBDriver == database.DriverPostgres && c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missing)
	}

	if _, err := strconv.Atoi(c.ServerPort); err != nil {
		return fmt.Errorf("PORT must be a number, got %q", c.ServerPort)
	}
	switch c.DBDriver {
	case database.DriverSQLite, database.DriverPostgres:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if err := c.AIConfig().Validate(); err != nil {
		return err
	}
	return c.ChatConfig().Validate()
}

// Warnings lists settings that are allowed but will make chat turns fail.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.LLMProvider == ai.ProviderOpenAI && c.OpenAIAPIKey == "" {
		warnings = append(warnings, "OPENAI_API_KEY is not set; chat replies will fail until it is configured")
	}
	if c.LLMProvider == ai.ProviderAnthropic && c.AnthropicAPIKey == "" {
		warnings = append(warnings, "ANTHROPIC_API_KEY is not set; chat replies will fail until it is configured")
	}
	return warnings
}

func (c *Config) IsProduction() bool {
	return strings.ToLower(c.Environment) == "production"
}

func (c *Config) DatabaseConfig() database.Config {
	return database.Config{Driver: c.DBDriver, DSN: c.DatabaseURL, Debug: strings.EqualFold(c.LogLevel, "debug")}
}

func (c *Config) AIConfig() *ai.Config {
	return &ai.Config{
		Provider:        c.LLMProvider,
		APIKey:          c.OpenAIAPIKey,
		BaseURL:         c.OpenAIBaseURL,
		OllamaHost:      c.OllamaHost,
		AnthropicAPIKey: c.AnthropicAPIKey,
		Model:           c.LLMModel,
		MaxTokens:       c.LLMMaxTokens,
	}
}

func (c *Config) ChatConfig() *chatservice.Config {
	cfg := chatservice.DefaultConfig()
	cfg.ChatModel = c.LLMModel
	cfg.MaxTokens = c.LLMMaxTokens
	cfg.SystemPromptFile = c.SystemPromptFile
	return cfg
}

func (c *Config) LoggerOptions() services.LoggerOptions {
	return services.LoggerOptions{Level: c.LogLevel, Format: c.LogFormat, File: c.LogFile}
}

func defaultLogFormat(env string) string {
	if strings.ToLower(env) == "production" {
		return "json"
	}
	return "text"
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an env var as an integer, with a fallback.
func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as integer. Using default value.", key)
		return defaultValue
	}
	return intValue
}
