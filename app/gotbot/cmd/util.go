package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/mzaytsev/gotbot/internal/bot"
	"github.com/mzaytsev/gotbot/internal/config"
	"github.com/mzaytsev/gotbot/internal/engine"
	"github.com/mzaytsev/gotbot/internal/telemetry"
)

func setupContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	// Setup graceful shutdown
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		log.Println("Interrupt signal detected, shutting down gracefully...")
		cancel()
		<-interrupt
		log.Fatal("Forcing shutdown")
	}()

	return ctx
}

func newBot(cfg config.Config) *bot.Bot {
	// Failed calls abort the whole step, so the client must not retry behind
	// the bot's back
	client := anthropic.NewClient(
		option.WithAPIKey(cfg.AnthropicAPIKey),
		option.WithMaxRetries(0),
	)
	sender := engine.NewStreamingMessageSender(client)
	thinker := engine.NewThinker(sender, anthropic.Model(cfg.Model), cfg.Temperature, cfg.MaxOutputTokens)
	return bot.New(thinker, cfg.MaxIterations)
}

func createTelemetryProvider(ctx context.Context, cfg config.Config) (*telemetry.Provider, error) {
	telemetryConfig := telemetry.Config{
		Enabled:  cfg.TelemetryEnabled,
		Endpoint: cfg.TelemetryEndpoint,
	}
	return telemetry.NewProvider(ctx, telemetryConfig, version)
}
