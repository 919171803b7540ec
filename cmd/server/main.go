package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	anthropic "github.com/liushuangls/go-anthropic/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/askaweather/chat-gateway/internal/chat"
	"github.com/askaweather/chat-gateway/internal/config"
	"github.com/askaweather/chat-gateway/internal/observability"
	"github.com/askaweather/chat-gateway/internal/server"
	"github.com/askaweather/chat-gateway/internal/tools"
	"github.com/askaweather/chat-gateway/internal/weatherapi"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Use fmt for fatal errors before logger is initialized
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	observability.InitLogger(cfg.LogLevel, cfg.LogPretty)
	logger := observability.GetLogger()

	logger.Info().
		Str("port", cfg.Port).
		Str("model", cfg.AnthropicModel).
		Int("max_turns", cfg.MaxTurns).
		Str("log_level", cfg.LogLevel).
		Bool("metrics_enabled", cfg.MetricsEnabled).
		Msg("Chat Gateway Service starting")

	// The engine client is constructed once here and injected; the
	// orchestrator never owns credentials or client lifecycle.
	engine := anthropic.NewClient(cfg.AnthropicAPIKey)
	provider := weatherapi.NewClient(cfg)

	registry := tools.NewRegistry()
	registry.Register(tools.NewWeatherTool(provider))
	registry.Register(tools.NewSportsTool(provider))
	registry.Register(tools.NewAirQualityTool(provider))

	orchestrator := chat.NewOrchestrator(engine, registry, cfg)

	// Create HTTP server
	mux := http.NewServeMux()
	mux.Handle("/chat", server.CORS(cfg.AllowedOrigins, server.ChatHandler(orchestrator)))
	mux.HandleFunc("/chat/ws", server.ChatWSHandler(orchestrator, cfg.AllowedOrigins))
	mux.HandleFunc("/health", observability.HealthCheckHandler())

	engineCheck := func(ctx context.Context) (bool, error) {
		// Validate configuration only; a real request on every probe
		// would burn tokens.
		if cfg.AnthropicAPIKey == "" {
			return false, fmt.Errorf("anthropic api key is not configured")
		}
		return true, nil
	}
	mux.HandleFunc("/ready", observability.ReadinessHandler(map[string]observability.HealthCheckFunc{
		"anthropic":  engineCheck,
		"weatherapi": provider.HealthCheck,
	}))

	// Metrics endpoint (Prometheus)
	if cfg.MetricsEnabled {
		mux.Handle("/metrics", promhttp.Handler())
		logger.Info().Msg("Prometheus metrics enabled at /metrics")
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute, // A full tool loop can span several engine round trips
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info().Str("port", cfg.Port).Msg("Server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited gracefully")
}
