package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the store with sample proficiency data",
	Long:  "Inserts randomized plausible proficiency rows for every topic, for trying out the dashboard. Existing rows are never overwritten.",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		defer logger.Sync()

		st, err := openStore(cmd, logger)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Seed(cmd.Context()); err != nil {
			return fmt.Errorf("seed store: %w", err)
		}
		fmt.Println("Sample proficiency data inserted.")
		return nil
	},
}
