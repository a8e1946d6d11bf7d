package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/epistemiq/epistemiq/internal/app"
	"github.com/epistemiq/epistemiq/internal/quizgen"
	quizscreen "github.com/epistemiq/epistemiq/internal/screens/quiz"
)

var learnCmd = &cobra.Command{
	Use:   "learn <diagnostic message>",
	Short: "Quiz yourself on a compiler diagnostic",
	Long:  "Generates a short multiple-choice quiz from an error message (and, with --file, the code it points at), scores your answers, and updates per-topic proficiency.",
	Args:  cobra.MinimumNArgs(1),
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

		diag := quizgen.Diagnostic{Message: strings.Join(args, " ")}
		if file, _ := cmd.Flags().GetString("file"); file != "" {
			code, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read %s: %w", file, err)
			}
			diag.Code = string(code)
		}

		opts.Initial = quizscreen.New(opts.QuizGen, opts.Feedback, opts.Explain, st, quizscreen.Source{Diagnostic: diag}, logger)
		return app.Run(opts)
	},
}

func init() {
	learnCmd.Flags().String("file", "", "Source file the diagnostic points at, included as context")
}
