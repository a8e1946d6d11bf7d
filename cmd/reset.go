package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear proficiency aggregates",
	Long:  "Clears the per-topic proficiency aggregates. The quiz answer log is kept unless --purge-history is given.",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		defer logger.Sync()

		st, err := openStore(cmd, logger)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.ResetProficiency(cmd.Context()); err != nil {
			return fmt.Errorf("reset proficiency: %w", err)
		}

		if purge, _ := cmd.Flags().GetBool("purge-history"); purge {
			if err := st.PurgeHistory(cmd.Context()); err != nil {
				return fmt.Errorf("purge history: %w", err)
			}
			fmt.Println("Proficiency and quiz history cleared.")
			return nil
		}

		fmt.Println("Proficiency cleared. Quiz history kept (use --purge-history to clear it too).")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("purge-history", false, "Also clear the quiz answer log")
}
