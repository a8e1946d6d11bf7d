package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/epistemiq/epistemiq/internal/app"
	quizscreen "github.com/epistemiq/epistemiq/internal/screens/quiz"
)

var quizCmd = &cobra.Command{
	Use:   "quiz <file>",
	Short: "Quiz yourself on a code snippet",
	Long:  "Generates a multiple-choice quiz from a source file, optionally steered by --focus, scores your answers, and updates per-topic proficiency.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, st, logger, err := buildOptions(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		defer logger.Sync()

		if err := requireLLM(opts); err != nil {
			return err
		}

		code, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		focus, _ := cmd.Flags().GetString("focus")

		opts.Initial = quizscreen.New(opts.QuizGen, opts.Feedback, opts.Explain, st, quizscreen.Source{
			Code:  string(code),
			Focus: focus,
		}, logger)
		return app.Run(opts)
	},
}

func init() {
	quizCmd.Flags().String("focus", "", "Topic to steer the questions toward, e.g. \"error handling\"")
}
