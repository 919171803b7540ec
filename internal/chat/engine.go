package chat

import (
	"context"

	anthropic "github.com/liushuangls/go-anthropic/v2"
)

// Engine is the reasoning-engine surface the orchestrator depends on.
// The go-anthropic client satisfies it; tests substitute a scripted fake.
// The orchestrator receives its engine at construction time and never
// builds one itself.
type Engine interface {
	CreateMessages(ctx context.Context, request anthropic.MessagesRequest) (anthropic.MessagesResponse, error)
}
