package cmd

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mzaytsev/gotbot/internal/bot"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the bot on the console",
	Long: `Starts an interactive console session. Each line you type is processed
through the chain-of-thought loop; type 'exit', 'quit' or 'q' to leave.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := setupContext()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	telemetryProvider, err := createTelemetryProvider(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := telemetryProvider.Shutdown(context.Background()); err != nil {
			log.Printf("Failed to shut down telemetry provider: %v", err)
		}
	}()

	b := newBot(cfg)
	sess := bot.NewSession(cfg.HistorySize)

	fmt.Println("Chain-of-Thought chatbot")
	fmt.Println("Type 'exit' or 'quit' to leave")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if isExitCommand(line) {
			fmt.Println("Bye!")
			return nil
		}

		answer, err := b.Respond(ctx, sess, line)
		if err != nil {
			// The request is aborted but the session stays usable
			fmt.Printf("Error: %v\n\n", err)
			continue
		}
		fmt.Printf("Bot: %s\n\n", answer)
	}

	return scanner.Err()
}

func isExitCommand(line string) bool {
	switch strings.ToLower(line) {
	case "exit", "quit", "q", "выход":
		return true
	}
	return false
}
