package assistant

import "context"

// Client is the assistant endpoint collaborator: one question in, one text
// reply out. The endpoint's reasoning is a black box.
type Client interface {
	Ask(ctx context.Context, message, systemPrompt string) (string, error)
	Endpoint() string
}
