// Package main is the entry point for TurnBattle.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/turnbattle/internal/game"
	"github.com/samdwyer/turnbattle/internal/logging"
	"github.com/samdwyer/turnbattle/internal/telemetry"
)

func main() {
	// Load .env file for local development
	// This makes HONEYCOMB_TURNBATTLE_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := game.LoadConfig(os.Getenv("TURNBATTLE_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.LogFile, logging.ParseLevel(os.Getenv("TURNBATTLE_LOG_LEVEL")))
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logger.Sync()

	exportTraces := setupOTelEnv()

	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx, telemetry.Options{
		Export:     exportTraces,
		Attributes: []attribute.KeyValue{attribute.Int64("battle.seed", cfg.Seed)},
	})
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Battle will run without observability")
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	g, err := game.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize game: %v", err)
	}

	if err := g.Run(ctx); err != nil {
		log.Fatalf("Game error: %v", err)
	}
}

// setupOTelEnv maps our Honeycomb variables onto the standard OTEL_* ones.
// It reports whether an API key was found; without one traces are not exported.
func setupOTelEnv() bool {
	apiKey := os.Getenv("HONEYCOMB_TURNBATTLE_API_KEY")
	if apiKey == "" {
		return false
	}
	dataset := os.Getenv("HONEYCOMB_TURNBATTLE_DATASET")
	if dataset == "" {
		dataset = "turnbattle"
	}

	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	// The .env file may hold an unexpanded reference, so the header is built here
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	return true
}
