package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/epistemiq/epistemiq/internal/app"
	understandscreen "github.com/epistemiq/epistemiq/internal/screens/understand"
)

var understandCmd = &cobra.Command{
	Use:   "understand <file>",
	Short: "Get explanations for code that confuses you",
	Long:  "Opens a dialogue over a source file: state what confuses you, read a tailored explanation, and keep asking follow-ups. Nothing is scored or stored.",
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

		opts.Initial = understandscreen.New(string(code), opts.Explain, logger)
		return app.Run(opts)
	},
}
