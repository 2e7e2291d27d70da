package chat

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

const (
	AttachmentKindImage = "image"
	AttachmentKindText  = "text"
)

// Attachment is a file staged alongside a user message. Image content is a
// data URL so it stays renderable without the original file; text content is
// the decoded file body.
type Attachment struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Content string `json:"content"`
}

// Message is one turn of a conversation. Text is the display form, already
// framed with any mode icon or attachment label.
type Message struct {
	Role       string      `json:"role"`
	Text       string      `json:"text"`
	Attachment *Attachment `json:"attachment,omitempty"`
	Mode       string      `json:"mode,omitempty"`
}

// Session is one saved conversation. Title is derived once from the first
// user message and never recomputed.
type Session struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Session) IsEmpty() bool {
	return len(s.Messages) == 0
}

func (s *Session) Append(msg Message) {
	s.Messages = append(s.Messages, msg)
}

func (s *Session) GetLastMessage() *Message {
	if len(s.Messages) == 0 {
		return nil
	}
	return &s.Messages[len(s.Messages)-1]
}

const titleMaxLen = 40

// DeriveTitle builds a session title from the first user message.
func DeriveTitle(firstMessage string) string {
	runes := []rune(firstMessage)
	if len(runes) <= titleMaxLen {
		return firstMessage
	}
	return string(runes[:titleMaxLen]) + "..."
}
