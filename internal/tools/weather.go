package tools

import (
	"context"
	"encoding/json"
	"fmt"

	anthropic "github.com/liushuangls/go-anthropic/v2"
	"github.com/liushuangls/go-anthropic/v2/jsonschema"

	"github.com/askaweather/chat-gateway/internal/dates"
)

// ForecastService is the provider surface the weather tool depends on.
type ForecastService interface {
	Forecast(ctx context.Context, location, date string) json.RawMessage
}

// WeatherArgs are the arguments of a get_weather invocation.
type WeatherArgs struct {
	Location string `json:"location"`
	Date     string `json:"date,omitempty"`
}

// WeatherTool looks up the forecast for a location and optional date.
// Relative date expressions are normalized before they reach the provider;
// a missing date means current conditions.
type WeatherTool struct {
	service ForecastService
}

// NewWeatherTool creates the forecast lookup tool.
func NewWeatherTool(service ForecastService) *WeatherTool {
	return &WeatherTool{service: service}
}

func (t *WeatherTool) Name() string { return "get_weather" }

func (t *WeatherTool) Definition() anthropic.ToolDefinition {
	return anthropic.ToolDefinition{
		Name:        t.Name(),
		Description: "Get the weather forecast for a specific location and date. usage: call this when the user asks about weather. Do NOT call this if the user has not provided a location.",
		InputSchema: jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"location": {
					Type:        jsonschema.String,
					Description: "The city and optional state/country (e.g. 'Berlin', 'New York, NY')",
				},
				"date": {
					Type:        jsonschema.String,
					Description: "The date in YYYY-MM-DD format. If the user says 'tomorrow' or 'next Tuesday', you can convert it or pass the string directly (e.g. 'tomorrow'). If asking for 'now' or 'current', leave this blank.",
				},
			},
			Required: []string{"location"},
		},
	}
}

func (t *WeatherTool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	var args WeatherArgs
	if err := json.Unmarshal(input, &args); err != nil {
		return "", fmt.Errorf("decoding get_weather arguments: %w", err)
	}
	if args.Location == "" {
		return "", fmt.Errorf("get_weather requires a location")
	}

	date := ""
	if args.Date != "" {
		date = dates.Resolve(args.Date)
	}

	return string(t.service.Forecast(ctx, args.Location, date)), nil
}
