package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleFromMessage(t *testing.T) {
	assert.Equal(t, "", TitleFromMessage(""))
	assert.Equal(t, "Hi", TitleFromMessage("Hi"))

	exact := strings.Repeat("a", TitleMaxRunes)
	assert.Equal(t, exact, TitleFromMessage(exact))
	assert.Equal(t, exact, TitleFromMessage(exact+"bcd"))

	multi := strings.Repeat("日", 60)
	got := TitleFromMessage(multi)
	assert.Equal(t, strings.Repeat("日", TitleMaxRunes), got)
}

func TestSessionHasTitle(t *testing.T) {
	empty := ""
	title := "Where is my order?"
	assert.False(t, (&Session{}).HasTitle())
	assert.False(t, (&Session{Title: &empty}).HasTitle())
	assert.True(t, (&Session{Title: &title}).HasTitle())
}

func TestMessageValidate(t *testing.T) {
	valid := Message{SessionID: "s1", Sender: SenderUser, Content: "Hi"}
	assert.NoError(t, valid.Validate())

	noSession := valid
	noSession.SessionID = ""
	assert.ErrorIs(t, noSession.Validate(), ErrMissingSession)

	badSender := valid
	badSender.Sender = "assistant"
	assert.ErrorIs(t, badSender.Validate(), ErrInvalidSender)

	empty := valid
	empty.Content = ""
	assert.ErrorIs(t, empty.Validate(), ErrEmptyContent)
}

func TestSenderValid(t *testing.T) {
	assert.True(t, SenderUser.Valid())
	assert.True(t, SenderAI.Valid())
	assert.False(t, Sender("system").Valid())
}
