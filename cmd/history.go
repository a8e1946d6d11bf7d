package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the quiz answer log, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		defer logger.Sync()

		st, err := openStore(cmd, logger)
		if err != nil {
			return err
		}
		defer st.Close()

		entries := st.GetQuizHistory(cmd.Context())
		if len(entries) == 0 {
			fmt.Println("No quiz answers recorded yet.")
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		if limit > 0 && len(entries) > limit {
			entries = entries[:limit]
		}

		for _, e := range entries {
			verdict := "✗"
			if e.Correct {
				verdict = "✓"
			}
			fmt.Printf("%s  %-18s %6d ms  %s\n",
				verdict, e.Topic, e.ResponseTimeMs, e.Timestamp.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 50, "Maximum number of entries to show (0 for all)")
}
