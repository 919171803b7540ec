// Package weatherapi wraps the WeatherAPI.com lookups used by the chat
// tools: forecast, sports schedule and air quality.
package weatherapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/askaweather/chat-gateway/internal/config"
	"github.com/askaweather/chat-gateway/internal/observability"
	"github.com/askaweather/chat-gateway/internal/resilience"
)

// Client calls WeatherAPI.com. Upstream failures never surface as Go
// errors: non-2xx responses and exhausted network retries are converted
// into an error-shaped JSON payload, so the reasoning engine can narrate
// the failure to the user instead of the run aborting.
type Client struct {
	baseURL      string
	key          string
	forecastDays int
	httpClient   *http.Client
	retry        *resilience.RetryConfig
	breaker      *resilience.CircuitBreaker
}

// NewClient creates a WeatherAPI client from service configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:      cfg.WeatherAPIBaseURL,
		key:          cfg.WeatherAPIKey,
		forecastDays: cfg.ForecastDays,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.WeatherAPITimeout) * time.Second,
		},
		retry: &resilience.RetryConfig{
			MaxAttempts:    cfg.RetryMaxAttempts,
			InitialBackoff: time.Duration(cfg.RetryInitialBackoff) * time.Millisecond,
			MaxBackoff:     2 * time.Second,
			Multiplier:     2.0,
		},
		breaker: resilience.NewCircuitBreaker(
			"weatherapi",
			cfg.CircuitBreakerMaxFailures,
			time.Duration(cfg.CircuitBreakerResetTimeout)*time.Second,
		),
	}
}

// Forecast fetches weather data for a location. With a date it requests
// that specific day; without one it requests the current conditions plus
// the configured short-range outlook.
func (c *Client) Forecast(ctx context.Context, location, date string) json.RawMessage {
	params := url.Values{}
	params.Set("q", location)
	if date != "" {
		params.Set("dt", date)
	} else {
		params.Set("days", strconv.Itoa(c.forecastDays))
	}
	return c.fetch(ctx, "forecast.json", params)
}

// Sports fetches recent and upcoming sports events for a location.
func (c *Client) Sports(ctx context.Context, location string) json.RawMessage {
	params := url.Values{}
	params.Set("q", location)
	return c.fetch(ctx, "sports.json", params)
}

// AirQuality fetches the current air quality index for a location.
func (c *Client) AirQuality(ctx context.Context, location string) json.RawMessage {
	params := url.Values{}
	params.Set("q", location)
	params.Set("aqi", "yes")
	return c.fetch(ctx, "current.json", params)
}

// HealthCheck validates that the client is usable. It deliberately makes
// no upstream request to avoid burning quota on every readiness probe.
func (c *Client) HealthCheck(ctx context.Context) (bool, error) {
	if c.key == "" {
		return false, fmt.Errorf("weatherapi key is not configured")
	}
	return true, nil
}

func (c *Client) fetch(ctx context.Context, endpoint string, params url.Values) json.RawMessage {
	params.Set("key", c.key)
	requestURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())

	var payload json.RawMessage
	call := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		if resp.StatusCode != http.StatusOK {
			payload = errorPayload(fmt.Sprintf("WeatherAPI returned %d: %s", resp.StatusCode, string(body)))
			return nil
		}

		payload = body
		return nil
	}

	err := c.breaker.Call(func() error {
		return resilience.Retry(ctx, c.retry, call)
	})
	observability.UpdateCircuitBreakerState(c.breaker.Name(), int(c.breaker.State()))
	if err != nil {
		return errorPayload(fmt.Sprintf("WeatherAPI request failed: %v", err))
	}
	return payload
}

func errorPayload(message string) json.RawMessage {
	b, _ := json.Marshal(map[string]string{"error": message})
	return b
}
