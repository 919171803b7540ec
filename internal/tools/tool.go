// Package tools provides the dispatch table for the capabilities the
// reasoning engine may invoke: forecast, sports schedule and air quality.
package tools

import (
	"context"
	"encoding/json"

	anthropic "github.com/liushuangls/go-anthropic/v2"
)

// Tool is one capability advertised to the reasoning engine. Each tool
// decodes its own typed argument struct from the raw invocation input and
// validates it at dispatch time.
type Tool interface {
	// Name returns the unique identifier advertised to the engine.
	Name() string

	// Definition returns the invocation schema advertised on every request.
	Definition() anthropic.ToolDefinition

	// Execute runs the tool and returns its serialized result payload.
	Execute(ctx context.Context, input json.RawMessage) (string, error)
}
