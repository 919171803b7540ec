package weatherapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/askaweather/chat-gateway/internal/config"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		WeatherAPIKey:              "dummy-key",
		WeatherAPIBaseURL:          baseURL,
		WeatherAPITimeout:          5,
		ForecastDays:               1,
		RetryMaxAttempts:           2,
		RetryInitialBackoff:        1,
		CircuitBreakerMaxFailures:  5,
		CircuitBreakerResetTimeout: 1,
	}
}

func TestForecast_CurrentConditions(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/forecast.json" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		gotQuery = map[string]string{
			"key":  r.URL.Query().Get("key"),
			"q":    r.URL.Query().Get("q"),
			"dt":   r.URL.Query().Get("dt"),
			"days": r.URL.Query().Get("days"),
		}
		w.Write([]byte(`{"location":{"name":"Berlin"},"current":{"temp_c":15.0}}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	result := client.Forecast(context.Background(), "Berlin", "")

	var parsed map[string]any
	if err := json.Unmarshal(result, &parsed); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}
	if loc, _ := parsed["location"].(map[string]any); loc["name"] != "Berlin" {
		t.Errorf("unexpected payload: %s", result)
	}

	if gotQuery["key"] != "dummy-key" {
		t.Errorf("expected key param, got %q", gotQuery["key"])
	}
	if gotQuery["q"] != "Berlin" {
		t.Errorf("expected q=Berlin, got %q", gotQuery["q"])
	}
	if gotQuery["dt"] != "" {
		t.Errorf("expected no dt param for current conditions, got %q", gotQuery["dt"])
	}
	if gotQuery["days"] != "1" {
		t.Errorf("expected days=1, got %q", gotQuery["days"])
	}
}

func TestForecast_WithDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("dt"); got != "2024-03-25" {
			t.Errorf("expected dt=2024-03-25, got %q", got)
		}
		if got := r.URL.Query().Get("days"); got != "" {
			t.Errorf("expected no days param when date is set, got %q", got)
		}
		w.Write([]byte(`{"forecast":{"forecastday":[{"date":"2024-03-25"}]}}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	result := client.Forecast(context.Background(), "Manchester", "2024-03-25")

	var parsed map[string]any
	if err := json.Unmarshal(result, &parsed); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}
	if _, ok := parsed["forecast"]; !ok {
		t.Errorf("unexpected payload: %s", result)
	}
}

func TestFetch_Non200BecomesErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Bad Request", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	result := client.Forecast(context.Background(), "InvalidCity", "")

	var parsed map[string]string
	if err := json.Unmarshal(result, &parsed); err != nil {
		t.Fatalf("error payload is not JSON: %v", err)
	}
	if parsed["error"] == "" {
		t.Fatalf("expected error payload, got %s", result)
	}
	if want := "400"; !strings.Contains(parsed["error"], want) {
		t.Errorf("expected error mentioning %q, got %q", want, parsed["error"])
	}
}

func TestFetch_UnreachableBecomesErrorPayload(t *testing.T) {
	// Point at a closed port; the retries exhaust and the adapter still
	// returns a payload rather than an error.
	client := NewClient(testConfig("http://127.0.0.1:1"))
	result := client.Sports(context.Background(), "London")

	var parsed map[string]string
	if err := json.Unmarshal(result, &parsed); err != nil {
		t.Fatalf("error payload is not JSON: %v", err)
	}
	if parsed["error"] == "" {
		t.Fatalf("expected error payload, got %s", result)
	}
}

func TestSports_Query(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sports.json" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "London" {
			t.Errorf("expected q=London, got %q", got)
		}
		w.Write([]byte(`{"football":[{"match":"Arsenal vs Spurs","start":"2024-03-25 20:00"}]}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	result := client.Sports(context.Background(), "London")

	var parsed map[string]any
	if err := json.Unmarshal(result, &parsed); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}
	if _, ok := parsed["football"]; !ok {
		t.Errorf("unexpected payload: %s", result)
	}
}

func TestAirQuality_Query(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/current.json" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("aqi"); got != "yes" {
			t.Errorf("expected aqi=yes, got %q", got)
		}
		w.Write([]byte(`{"current":{"air_quality":{"pm2_5":12.1}}}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	result := client.AirQuality(context.Background(), "Delhi")

	var parsed map[string]any
	if err := json.Unmarshal(result, &parsed); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}
	if _, ok := parsed["current"]; !ok {
		t.Errorf("unexpected payload: %s", result)
	}
}

func TestHealthCheck(t *testing.T) {
	client := NewClient(testConfig("http://example.invalid"))
	ok, err := client.HealthCheck(context.Background())
	if !ok || err != nil {
		t.Errorf("expected healthy client, got ok=%v err=%v", ok, err)
	}

	cfg := testConfig("http://example.invalid")
	cfg.WeatherAPIKey = ""
	client = NewClient(cfg)
	ok, err = client.HealthCheck(context.Background())
	if ok || err == nil {
		t.Error("expected unhealthy client without key")
	}
}
