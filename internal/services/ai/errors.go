// File: internal/services/ai/errors.go
package ai

import (
	"errors"
	"fmt"
)

type ErrorType string

const (
	ErrTypeConfig    ErrorType = "CONFIG"
	ErrTypeAuth      ErrorType = "AUTH"
	ErrTypeNetwork   ErrorType = "NETWORK"
	ErrTypeRateLimit ErrorType = "RATE_LIMIT"
	ErrTypeProvider  ErrorType = "PROVIDER"
)

type AIError struct {
	Type      ErrorType
	Code      int
	Message   string
	Model     string
	Operation string
	Cause     error
}

func (e *AIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("AI %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("AI %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *AIError) Unwrap() error {
	return e.Cause
}

func NewConfigError(msg string) *AIError {
	return &AIError{Type: ErrTypeConfig, Message: msg, Operation: "config"}
}

func NewProviderError(operation, msg string, cause error) *AIError {
	return &AIError{Type: ErrTypeProvider, Operation: operation, Message: msg, Cause: cause}
}

// IsCredentialError reports whether err means the provider rejected or never
// received a credential. Those are operator problems, not transient ones.
func IsCredentialError(err error) bool {
	var aiErr *AIError
	if !errors.As(err, &aiErr) {
		return false
	}
	return aiErr.Type == ErrTypeAuth || aiErr.Type == ErrTypeConfig
}
