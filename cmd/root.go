package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/epistemiq/epistemiq/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "epistemiq",
	Short: "Learn from your own errors",
	Long:  "EpistemIQ — terminal companion that turns your compiler errors and code into quizzes, tracks per-topic proficiency, and explains what confuses you.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	// Missing .env is fine; the environment may carry the keys directly.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides EPISTEMIQ_DB env var)")

	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(understandCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then EPISTEMIQ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// newLogger builds the process logger: console encoding for interactive
// use, JSON when EPISTEMIQ_ENV=production.
func newLogger() *zap.Logger {
	var cfg zap.Config
	if os.Getenv("EPISTEMIQ_ENV") == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		// The TUI owns the terminal; keep interactive logging quiet.
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// openStore resolves the DB path and opens the proficiency store.
func openStore(cmd *cobra.Command, logger *zap.Logger) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath, logger)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
