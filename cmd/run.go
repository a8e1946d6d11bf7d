package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/epistemiq/epistemiq/internal/app"
	"github.com/epistemiq/epistemiq/internal/explain"
	"github.com/epistemiq/epistemiq/internal/feedback"
	"github.com/epistemiq/epistemiq/internal/llm"
	"github.com/epistemiq/epistemiq/internal/quizgen"
	"github.com/epistemiq/epistemiq/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI at
// the home screen.
func runApp(cmd *cobra.Command) error {
	opts, st, logger, err := buildOptions(cmd)
	if err != nil {
		return err
	}
	defer st.Close()
	defer logger.Sync()

	return app.Run(opts)
}

// buildOptions wires the store and, when a provider is configured, the
// generator-backed services. The app works without a provider; LLM
// features are simply unavailable.
func buildOptions(cmd *cobra.Command) (app.Options, *store.Store, *zap.Logger, error) {
	logger := newLogger()

	st, err := openStore(cmd, logger)
	if err != nil {
		return app.Options{}, nil, nil, err
	}

	opts := app.Options{Store: st, Logger: logger}

	provider, err := llm.NewProviderFromEnv(cmd.Context(), st, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Quiz and understand features will be unavailable.")
	} else {
		opts.QuizGen = quizgen.New(provider, logger)
		opts.Feedback = feedback.New(provider, logger)
		opts.Explain = explain.New(provider, logger)
	}

	return opts, st, logger, nil
}

// requireLLM fails the command with a clear message when no provider is
// configured.
func requireLLM(opts app.Options) error {
	if opts.QuizGen == nil {
		return fmt.Errorf("no generator API key configured: set EPISTEMIQ_GEMINI_API_KEY, GEMINI_API_KEY, OPENAI_API_KEY, or ANTHROPIC_API_KEY")
	}
	return nil
}
