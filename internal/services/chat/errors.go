// G:\go_spurchat\internal\services\chat\errors.go
package chat

import (
	"errors"
	"fmt"
)

type ErrorType string

const (
	ErrTypeInvalidInput  ErrorType = "INVALID_INPUT"
	ErrTypeConfiguration ErrorType = "CONFIGURATION"
	ErrTypeGeneration    ErrorType = "GENERATION"
	ErrTypeInternal      ErrorType = "INTERNAL"
)

// Client-facing messages. Internal causes stay in the logs.
const (
	MsgInvalidCredential = "Invalid OpenAI API key. Please check your OPENAI_API_KEY configuration."
	MsgGenerationFailed  = "Failed to generate response from AI service. Please try again."
	MsgInternal          = "Internal Server Error"
)

type ChatError struct {
	Type      ErrorType
	Operation string
	Message   string
	SessionID string
	Cause     error
}

func (e *ChatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("Chat %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("Chat %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *ChatError) Unwrap() error {
	return e.Cause
}

func NewValidationError(operation, msg string) *ChatError {
	return &ChatError{Type: ErrTypeInvalidInput, Operation: operation, Message: msg}
}

func NewConfigurationError(operation string, cause error) *ChatError {
	return &ChatError{Type: ErrTypeConfiguration, Operation: operation, Message: MsgInvalidCredential, Cause: cause}
}

func NewGenerationError(operation string, cause error) *ChatError {
	return &ChatError{Type: ErrTypeGeneration, Operation: operation, Message: MsgGenerationFailed, Cause: cause}
}

func NewInternalError(operation string, cause error) *ChatError {
	return &ChatError{Type: ErrTypeInternal, Operation: operation, Message: MsgInternal, Cause: cause}
}

// TypeOf classifies err. Anything that is not a ChatError counts as internal.
func TypeOf(err error) ErrorType {
	var chatErr *ChatError
	if errors.As(err, &chatErr) {
		return chatErr.Type
	}
	return ErrTypeInternal
}

// PublicMessage returns the text that may be shown to the client for err.
func PublicMessage(err error) string {
	var chatErr *ChatError
	if errors.As(err, &chatErr) && chatErr.Type != ErrTypeInternal {
		return chatErr.Message
	}
	return MsgInternal
}
