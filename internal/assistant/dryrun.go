package assistant

import (
	"context"
	"fmt"
)

// DryRun echoes the outgoing request instead of calling the endpoint. Useful
// offline and in tests.
type DryRun struct{}

func NewDryRun() *DryRun {
	return &DryRun{}
}

func (o *DryRun) Endpoint() string {
	return "dry-run"
}

func (o *DryRun) Ask(ctx context.Context, message, systemPrompt string) (string, error) {
	return fmt.Sprintf("Dry run. System prompt: %s\nMessage: %s", systemPrompt, message), nil
}
