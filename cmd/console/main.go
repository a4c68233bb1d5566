package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/set-night/giftshop/internal/config"
)

var (
	verbose bool
	noDelay bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "console",
	Short: "Gift shop assistant in the terminal",
	Long: `console drives the gift shop assistant from a terminal.

It runs the same conversation, cart and checkout as the Telegram bot,
with one shopping session kept in memory for the life of the process.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

// loadShop reads shop settings from the environment, honoring --no-delay.
func loadShop() (*config.Shop, error) {
	shop, err := config.LoadShop()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if noDelay {
		shop.ReplyDelay = 0
		shop.AuthDelay = 0
		shop.OrderProcessingDelay = 0
	}
	return shop, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&noDelay, "no-delay", false, "Answer immediately instead of simulating latency")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(catalogCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
