package input

import (
	"fmt"
	"strings"

	"github.com/askdeck/askdeck/internal/chat"
	"github.com/askdeck/askdeck/internal/domain"
)

// TextAttachmentCap bounds how much of a text attachment is embedded in the
// outgoing payload. The staged attachment itself keeps its full content.
const TextAttachmentCap = 3000

// Composed is the normalized outgoing payload built from the staged input
// state just before submission.
type Composed struct {
	// Display is the user-visible message text, framed with the mode icon
	// or attachment label.
	Display string
	// Payload is the text actually sent to the assistant.
	Payload string
	// SystemPrompt matches the active mode, or the default persona.
	SystemPrompt string
	Attachment   *chat.Attachment
	Mode         domain.Mode
}

// Composer collects the next outgoing message from typed text, a staged
// attachment and an active mode. At most one attachment and one mode are
// staged at a time.
type Composer struct {
	text       string
	attachment *chat.Attachment
	mode       domain.Mode
}

func NewComposer() *Composer {
	return &Composer{}
}

func (o *Composer) SetText(text string) { o.text = text }
func (o *Composer) Text() string        { return o.text }

// Stage replaces any previously staged attachment.
func (o *Composer) Stage(attachment *chat.Attachment) { o.attachment = attachment }

func (o *Composer) Attachment() *chat.Attachment { return o.attachment }

func (o *Composer) ClearAttachment() { o.attachment = nil }

// ToggleMode selects a mode, or clears it when it is already active.
func (o *Composer) ToggleMode(mode domain.Mode) {
	if o.mode == mode {
		o.mode = domain.ModeNone
		return
	}
	o.mode = mode
}

func (o *Composer) Mode() domain.Mode { return o.mode }

// Placeholder mirrors the input hint of the active state.
func (o *Composer) Placeholder() string {
	if o.attachment != nil {
		return "Ask about this file..."
	}
	if cfg, ok := domain.GetModeConfig(o.mode); ok {
		return cfg.Placeholder
	}
	return "Ask anything"
}

// Compose builds the outgoing pair from the current state. It returns
// ok=false when there is nothing to send; that is a rejection, not an error.
// Compose does not clear the staged state; the engine does that once the
// user turn is committed.
func (o *Composer) Compose() (Composed, bool) {
	question := strings.TrimSpace(o.text)
	if question == "" && o.attachment == nil {
		return Composed{}, false
	}

	composed := Composed{
		Display:      question,
		Payload:      question,
		SystemPrompt: domain.DefaultSystemPrompt,
		Attachment:   o.attachment,
		Mode:         o.mode,
	}
	if cfg, ok := domain.GetModeConfig(o.mode); ok {
		composed.SystemPrompt = cfg.SystemPrompt
		composed.Display = cfg.Icon + " " + question
	}

	if o.attachment != nil {
		composed.Display = attachmentDisplay(o.attachment.Name, question)
		composed.Payload = attachmentPayload(o.attachment, question)
	}
	return composed, true
}

// Reset clears the staged text and attachment after a send. The active mode
// survives a send; it is only cleared by toggling.
func (o *Composer) Reset() {
	o.text = ""
	o.attachment = nil
}

func attachmentDisplay(name, question string) string {
	if question == "" {
		return fmt.Sprintf("📎 %s", name)
	}
	return fmt.Sprintf("📎 %s\n\n%s", name, question)
}

func attachmentPayload(attachment *chat.Attachment, question string) string {
	if attachment.Kind == chat.AttachmentKindImage {
		if question == "" {
			return fmt.Sprintf("[User attached an image: %s] Please describe or analyze this image.", attachment.Name)
		}
		return fmt.Sprintf("[User attached an image: %s] %s", attachment.Name, question)
	}

	snippet := attachment.Content
	if runes := []rune(snippet); len(runes) > TextAttachmentCap {
		snippet = string(runes[:TextAttachmentCap])
	}
	if question == "" {
		return fmt.Sprintf("Here is the content of the attached file %q:\n\n%s\n\nPlease analyze this file.", attachment.Name, snippet)
	}
	return fmt.Sprintf("Here is the content of the attached file %q:\n\n%s\n\nUser question: %s", attachment.Name, snippet, question)
}
