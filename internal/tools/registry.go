package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	anthropic "github.com/liushuangls/go-anthropic/v2"
)

// ErrUnknownTool is returned when the reasoning engine requests a tool
// that was never registered.
var ErrUnknownTool = errors.New("unknown tool")

// Registry holds the registered tools in a stable order, so the schema
// list advertised to the reasoning engine is identical on every request.
type Registry struct {
	order  []Tool
	byName map[string]Tool
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Tool),
	}
}

// Register adds a tool. Registering the same name again replaces the
// executor but keeps the original position.
func (r *Registry) Register(tool Tool) {
	if _, ok := r.byName[tool.Name()]; ok {
		for i, t := range r.order {
			if t.Name() == tool.Name() {
				r.order[i] = tool
				break
			}
		}
	} else {
		r.order = append(r.order, tool)
	}
	r.byName[tool.Name()] = tool
}

// Definitions returns the invocation schemas in registration order.
func (r *Registry) Definitions() []anthropic.ToolDefinition {
	defs := make([]anthropic.ToolDefinition, 0, len(r.order))
	for _, tool := range r.order {
		defs = append(defs, tool.Definition())
	}
	return defs
}

// Execute dispatches an invocation to the named tool. Unregistered names
// produce ErrUnknownTool rather than a fault, so the caller decides how
// to represent the failure back to the engine.
func (r *Registry) Execute(ctx context.Context, name string, input json.RawMessage) (string, error) {
	tool, ok := r.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return tool.Execute(ctx, input)
}
