// Package cmd provides the posync command line: the HTTP server and offline tools.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "posync",
	Short: "Daily reconciliation for POS agents",
	Long: `posync records a POS agent's day (cash movements, deposits, withdrawals
and terminal balances) and reconciles it into cash and capital summaries.

Example:
  posync serve
  posync compare bank.csv ledger.xlsx --column1 Reference --column2 Ref`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile != "" {
			// LoadConfig reads CONFIG_FILE
			if err := os.Setenv("CONFIG_FILE", cfgFile); err != nil {
				return fmt.Errorf("failed to select config file: %w", err)
			}
		}
		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}
		slog.SetDefault(newLogger(level))
		return nil
	},
}

// Execute runs the root command. It is called once by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file (environment variables and .env still apply)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(compareCmd)
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
