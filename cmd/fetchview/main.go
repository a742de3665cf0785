package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/fetchview/internal/config"
	"github.com/samvad-hq/fetchview/internal/logger"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fetchview: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fetchview",
	Short: "Fetch remote JSON and render it as loading, content or error",
	Long: `fetchview fetches JSON collections and single-resource lookups and renders
them through one of three surfaces: plain terminal output, an interactive TUI,
or an HTML page served over HTTP.

Examples:
  fetchview list                     # Show configured endpoints
  fetchview fetch posts              # Fetch and print the posts collection
  fetchview fetch pokemon Pikachu    # Look up one resource
  fetchview check                    # Probe every endpoint once
  fetchview tui                      # Interactive view
  fetchview serve                    # Page server on LISTEN_ADDR`,
	SilenceUsage: true,
}

var (
	fetchFormat  string
	historyLimit int
)

func init() {
	fetchCmd.Flags().StringVarP(&fetchFormat, "format", "f", "text", "output format: text, html or json")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of entries to show")

	rootCmd.AddCommand(listCmd, fetchCmd, checkCmd, tuiCmd, serveCmd, historyCmd)
}

// setup loads config and initializes the logger. The TUI owns the terminal,
// so it logs to tui_log_file instead of log_output.
func setup(tui bool) (*config.Config, logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	output := cfg.LogOutput
	if tui {
		output = cfg.TUILogFile
	}
	log, err := logger.InitTo(cfg, output)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
