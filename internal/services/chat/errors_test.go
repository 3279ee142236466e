package chat

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeOf(t *testing.T) {
	assert.Equal(t, ErrTypeInvalidInput, TypeOf(NewValidationError("submit_turn", "bad")))
	assert.Equal(t, ErrTypeGeneration, TypeOf(fmt.Errorf("wrapped: %w", NewGenerationError("op", nil))))
	assert.Equal(t, ErrTypeInternal, TypeOf(errors.New("boom")))
}

func TestPublicMessageHidesInternalDetail(t *testing.T) {
	err := NewInternalError("persist", errors.New("UNIQUE constraint failed: sessions.id"))
	assert.Equal(t, MsgInternal, PublicMessage(err))
	assert.Equal(t, MsgInternal, PublicMessage(errors.New("raw")))
	assert.Contains(t, err.Error(), "UNIQUE constraint")

	assert.Equal(t, "Message is required", PublicMessage(NewValidationError("op", "Message is required")))
}
