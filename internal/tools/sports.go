package tools

import (
	"context"
	"encoding/json"
	"fmt"

	anthropic "github.com/liushuangls/go-anthropic/v2"
	"github.com/liushuangls/go-anthropic/v2/jsonschema"
)

// SportsService is the provider surface the sports tool depends on.
type SportsService interface {
	Sports(ctx context.Context, location string) json.RawMessage
}

// SportsArgs are the arguments of a get_sports invocation.
type SportsArgs struct {
	Location string `json:"location"`
}

// SportsTool looks up recent and upcoming sports events for a location.
type SportsTool struct {
	service SportsService
}

// NewSportsTool creates the sports lookup tool.
func NewSportsTool(service SportsService) *SportsTool {
	return &SportsTool{service: service}
}

func (t *SportsTool) Name() string { return "get_sports" }

func (t *SportsTool) Definition() anthropic.ToolDefinition {
	return anthropic.ToolDefinition{
		Name:        t.Name(),
		Description: "Get recent or upcoming sports events/scores for a location. Covers Football, Cricket, and Golf.",
		InputSchema: jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"location": {
					Type:        jsonschema.String,
					Description: "The city or region (e.g. 'London', 'Madrid')",
				},
			},
			Required: []string{"location"},
		},
	}
}

func (t *SportsTool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	var args SportsArgs
	if err := json.Unmarshal(input, &args); err != nil {
		return "", fmt.Errorf("decoding get_sports arguments: %w", err)
	}
	if args.Location == "" {
		return "", fmt.Errorf("get_sports requires a location")
	}
	return string(t.service.Sports(ctx, args.Location)), nil
}
