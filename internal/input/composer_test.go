package input

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdeck/askdeck/internal/chat"
	"github.com/askdeck/askdeck/internal/domain"
)

func TestCompose_EmptyInputRejected(t *testing.T) {
	composer := NewComposer()

	_, ok := composer.Compose()
	assert.False(t, ok)

	composer.SetText("   \t ")
	_, ok = composer.Compose()
	assert.False(t, ok, "whitespace-only text is still empty")
}

func TestCompose_PlainText(t *testing.T) {
	composer := NewComposer()
	composer.SetText("  Hello  ")

	composed, ok := composer.Compose()
	require.True(t, ok)
	assert.Equal(t, "Hello", composed.Display)
	assert.Equal(t, "Hello", composed.Payload)
	assert.Equal(t, domain.DefaultSystemPrompt, composed.SystemPrompt)
	assert.Nil(t, composed.Attachment)
}

func TestCompose_ModeFraming(t *testing.T) {
	composer := NewComposer()
	composer.ToggleMode(domain.ModeSearch)
	composer.SetText("capital of France")

	composed, ok := composer.Compose()
	require.True(t, ok)
	assert.Equal(t, "🔍 capital of France", composed.Display)
	assert.Equal(t, "capital of France", composed.Payload)
	cfg, _ := domain.GetModeConfig(domain.ModeSearch)
	assert.Equal(t, cfg.SystemPrompt, composed.SystemPrompt)
}

func TestToggleMode_Semantics(t *testing.T) {
	composer := NewComposer()

	composer.ToggleMode(domain.ModeStudy)
	assert.Equal(t, domain.ModeStudy, composer.Mode())

	// Selecting another mode replaces the active one.
	composer.ToggleMode(domain.ModeSearch)
	assert.Equal(t, domain.ModeSearch, composer.Mode())

	// Selecting the active mode clears it.
	composer.ToggleMode(domain.ModeSearch)
	assert.Equal(t, domain.ModeNone, composer.Mode())
}

func TestCompose_TextAttachmentTruncated(t *testing.T) {
	composer := NewComposer()
	composer.Stage(&chat.Attachment{
		Name:    "big.txt",
		Kind:    chat.AttachmentKindText,
		Content: strings.Repeat("a", 5000),
	})

	composed, ok := composer.Compose()
	require.True(t, ok, "an attachment alone is submittable")
	assert.Contains(t, composed.Payload, strings.Repeat("a", TextAttachmentCap))
	assert.NotContains(t, composed.Payload, strings.Repeat("a", TextAttachmentCap+1))
	assert.Contains(t, composed.Payload, "Please analyze this file.")
	assert.Equal(t, "📎 big.txt", composed.Display)
	// The staged attachment keeps its full content for display.
	assert.Len(t, composed.Attachment.Content, 5000)
}

func TestCompose_TextAttachmentWithQuestion(t *testing.T) {
	composer := NewComposer()
	composer.Stage(&chat.Attachment{
		Name:    "notes.md",
		Kind:    chat.AttachmentKindText,
		Content: "some notes",
	})
	composer.SetText("summarize this")

	composed, ok := composer.Compose()
	require.True(t, ok)
	assert.Equal(t, "📎 notes.md\n\nsummarize this", composed.Display)
	assert.Contains(t, composed.Payload, `"notes.md"`)
	assert.Contains(t, composed.Payload, "some notes")
	assert.Contains(t, composed.Payload, "User question: summarize this")
}

func TestCompose_ImageAttachment(t *testing.T) {
	composer := NewComposer()
	composer.Stage(&chat.Attachment{
		Name:    "photo.png",
		Kind:    chat.AttachmentKindImage,
		Content: "data:image/png;base64,xyz",
	})

	composed, ok := composer.Compose()
	require.True(t, ok)
	assert.Equal(t, "[User attached an image: photo.png] Please describe or analyze this image.", composed.Payload)

	composer.SetText("what breed is this dog?")
	composed, _ = composer.Compose()
	assert.Equal(t, "[User attached an image: photo.png] what breed is this dog?", composed.Payload)
}

func TestStage_ReplacesPreviousAttachment(t *testing.T) {
	composer := NewComposer()
	composer.Stage(&chat.Attachment{Name: "first.txt", Kind: chat.AttachmentKindText})
	composer.Stage(&chat.Attachment{Name: "second.txt", Kind: chat.AttachmentKindText})

	require.NotNil(t, composer.Attachment())
	assert.Equal(t, "second.txt", composer.Attachment().Name)

	composer.ClearAttachment()
	assert.Nil(t, composer.Attachment())
}

func TestReset_ClearsTextAndAttachmentButKeepsMode(t *testing.T) {
	composer := NewComposer()
	composer.SetText("hello")
	composer.Stage(&chat.Attachment{Name: "f.txt", Kind: chat.AttachmentKindText})
	composer.ToggleMode(domain.ModeStudy)

	composer.Reset()

	assert.Empty(t, composer.Text())
	assert.Nil(t, composer.Attachment())
	assert.Equal(t, domain.ModeStudy, composer.Mode())
}

func TestPlaceholder(t *testing.T) {
	composer := NewComposer()
	assert.Equal(t, "Ask anything", composer.Placeholder())

	composer.ToggleMode(domain.ModeCreateImage)
	assert.Equal(t, "Describe the image you want...", composer.Placeholder())

	composer.Stage(&chat.Attachment{Name: "f.txt", Kind: chat.AttachmentKindText})
	assert.Equal(t, "Ask about this file...", composer.Placeholder())
}
