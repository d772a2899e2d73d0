package cmd

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mzaytsev/gotbot/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "gotbot",
	Short: "Chain-of-thought chatbot",
	Long: `Gotbot is a chain-of-thought chatbot. Each user message is answered by
iterating a hosted language model, accumulating a visible reasoning chain,
until the model emits a final answer or the iteration cap forces one.`,
}

func Execute() error {
	return rootCmd.Execute()
}

// loadConfig loads the .env file and environment configuration and fails if
// required credentials are missing. Called by the commands that talk to the
// model endpoint; missing config is a startup error, never a per-request one.
func loadConfig() (config.Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
