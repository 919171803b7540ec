package tools

import (
	"context"
	"encoding/json"
	"fmt"

	anthropic "github.com/liushuangls/go-anthropic/v2"
	"github.com/liushuangls/go-anthropic/v2/jsonschema"
)

// AirQualityService is the provider surface the air-quality tool depends on.
type AirQualityService interface {
	AirQuality(ctx context.Context, location string) json.RawMessage
}

// AirQualityArgs are the arguments of a get_air_quality invocation.
type AirQualityArgs struct {
	Location string `json:"location"`
}

// AirQualityTool looks up the current air quality index for a location.
type AirQualityTool struct {
	service AirQualityService
}

// NewAirQualityTool creates the air-quality lookup tool.
func NewAirQualityTool(service AirQualityService) *AirQualityTool {
	return &AirQualityTool{service: service}
}

func (t *AirQualityTool) Name() string { return "get_air_quality" }

func (t *AirQualityTool) Definition() anthropic.ToolDefinition {
	return anthropic.ToolDefinition{
		Name:        t.Name(),
		Description: "Get current air quality index (AQI) and pollutant levels.",
		InputSchema: jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"location": {
					Type:        jsonschema.String,
					Description: "The city to check air quality for",
				},
			},
			Required: []string{"location"},
		},
	}
}

func (t *AirQualityTool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	var args AirQualityArgs
	if err := json.Unmarshal(input, &args); err != nil {
		return "", fmt.Errorf("decoding get_air_quality arguments: %w", err)
	}
	if args.Location == "" {
		return "", fmt.Errorf("get_air_quality requires a location")
	}
	return string(t.service.AirQuality(ctx, args.Location)), nil
}
