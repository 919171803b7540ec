package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/askaweather/chat-gateway/internal/dates"
)

type fakeProvider struct {
	forecastLocation string
	forecastDate     string
	sportsLocation   string
	aqiLocation      string
	payload          string
}

func (f *fakeProvider) Forecast(ctx context.Context, location, date string) json.RawMessage {
	f.forecastLocation = location
	f.forecastDate = date
	return json.RawMessage(f.payload)
}

func (f *fakeProvider) Sports(ctx context.Context, location string) json.RawMessage {
	f.sportsLocation = location
	return json.RawMessage(f.payload)
}

func (f *fakeProvider) AirQuality(ctx context.Context, location string) json.RawMessage {
	f.aqiLocation = location
	return json.RawMessage(f.payload)
}

func newTestRegistry(provider *fakeProvider) *Registry {
	r := NewRegistry()
	r.Register(NewWeatherTool(provider))
	r.Register(NewSportsTool(provider))
	r.Register(NewAirQualityTool(provider))
	return r
}

func TestRegistry_DefinitionsStableOrder(t *testing.T) {
	r := newTestRegistry(&fakeProvider{payload: "{}"})

	want := []string{"get_weather", "get_sports", "get_air_quality"}
	for attempt := 0; attempt < 3; attempt++ {
		defs := r.Definitions()
		if len(defs) != len(want) {
			t.Fatalf("expected %d definitions, got %d", len(want), len(defs))
		}
		for i, def := range defs {
			if def.Name != want[i] {
				t.Errorf("definition %d = %q, want %q", i, def.Name, want[i])
			}
		}
	}
}

func TestRegistry_UnknownTool(t *testing.T) {
	r := newTestRegistry(&fakeProvider{payload: "{}"})

	_, err := r.Execute(context.Background(), "get_stock_price", json.RawMessage(`{}`))
	if !errors.Is(err, ErrUnknownTool) {
		t.Errorf("expected ErrUnknownTool, got %v", err)
	}
}

func TestWeatherTool_NormalizesDate(t *testing.T) {
	provider := &fakeProvider{payload: `{"forecast":{}}`}
	r := newTestRegistry(provider)

	out, err := r.Execute(context.Background(), "get_weather",
		json.RawMessage(`{"location":"Berlin","date":"tomorrow"}`))
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if out != `{"forecast":{}}` {
		t.Errorf("unexpected output %q", out)
	}
	if provider.forecastLocation != "Berlin" {
		t.Errorf("expected location Berlin, got %q", provider.forecastLocation)
	}
	want := dates.Resolve("tomorrow")
	if provider.forecastDate != want {
		t.Errorf("expected normalized date %q, got %q", want, provider.forecastDate)
	}
}

func TestWeatherTool_AbsentDateMeansCurrentConditions(t *testing.T) {
	provider := &fakeProvider{payload: `{}`}
	r := newTestRegistry(provider)

	if _, err := r.Execute(context.Background(), "get_weather",
		json.RawMessage(`{"location":"Berlin"}`)); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if provider.forecastDate != "" {
		t.Errorf("expected empty date downstream, got %q", provider.forecastDate)
	}
}

func TestWeatherTool_AbsoluteDatePassesThrough(t *testing.T) {
	provider := &fakeProvider{payload: `{}`}
	r := newTestRegistry(provider)

	if _, err := r.Execute(context.Background(), "get_weather",
		json.RawMessage(`{"location":"Manchester","date":"2024-03-25"}`)); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if provider.forecastDate != "2024-03-25" {
		t.Errorf("expected date 2024-03-25, got %q", provider.forecastDate)
	}
}

func TestTools_MissingLocation(t *testing.T) {
	r := newTestRegistry(&fakeProvider{payload: "{}"})

	for _, name := range []string{"get_weather", "get_sports", "get_air_quality"} {
		if _, err := r.Execute(context.Background(), name, json.RawMessage(`{}`)); err == nil {
			t.Errorf("%s: expected error for missing location", name)
		}
	}
}

func TestTools_MalformedArguments(t *testing.T) {
	r := newTestRegistry(&fakeProvider{payload: "{}"})

	if _, err := r.Execute(context.Background(), "get_sports", json.RawMessage(`{"location":42}`)); err == nil {
		t.Error("expected error for malformed arguments")
	}
}

func TestSportsAndAirQuality_PassLocation(t *testing.T) {
	provider := &fakeProvider{payload: `{"ok":true}`}
	r := newTestRegistry(provider)

	if _, err := r.Execute(context.Background(), "get_sports",
		json.RawMessage(`{"location":"London"}`)); err != nil {
		t.Fatalf("get_sports failed: %v", err)
	}
	if provider.sportsLocation != "London" {
		t.Errorf("expected sports location London, got %q", provider.sportsLocation)
	}

	if _, err := r.Execute(context.Background(), "get_air_quality",
		json.RawMessage(`{"location":"Delhi"}`)); err != nil {
		t.Fatalf("get_air_quality failed: %v", err)
	}
	if provider.aqiLocation != "Delhi" {
		t.Errorf("expected air quality location Delhi, got %q", provider.aqiLocation)
	}
}

func TestRegistry_RegisterSameNameKeepsPosition(t *testing.T) {
	provider := &fakeProvider{payload: "{}"}
	r := newTestRegistry(provider)
	r.Register(NewWeatherTool(provider))

	defs := r.Definitions()
	if len(defs) != 3 {
		t.Fatalf("expected 3 definitions after re-register, got %d", len(defs))
	}
	if defs[0].Name != "get_weather" {
		t.Errorf("expected get_weather to keep first position, got %q", defs[0].Name)
	}
}
