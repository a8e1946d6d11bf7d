package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/epistemiq/epistemiq/internal/dashboard"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-topic proficiency",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		defer logger.Sync()

		st, err := openStore(cmd, logger)
		if err != nil {
			return err
		}
		defer st.Close()

		summary := dashboard.Overview(st.GetAllProficiency(cmd.Context()))
		if len(summary.Rows) == 0 {
			fmt.Println("No proficiency data yet. Take a quiz first.")
			return nil
		}

		fmt.Printf("Overall: %.1f%% accuracy over %d answers, mean response %.0f ms\n\n",
			summary.OverallAccuracy, summary.TotalQuestions, summary.MeanResponseTime)
		fmt.Printf("%-18s %8s %7s %-6s %s\n", "TOPIC", "ACCURACY", "ANSWERS", "LEVEL", "LAST TESTED")
		for _, row := range summary.Rows {
			last := "never"
			if row.LastTested != nil {
				last = row.LastTested.Format("2006-01-02 15:04")
			}
			fmt.Printf("%-18s %7.1f%% %7d %-6s %s\n",
				row.Topic, row.Accuracy, row.TotalQuestions, string(row.Bucket), last)
		}
		return nil
	},
}
