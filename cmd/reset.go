package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Prune the submission log",
	RunE: func(cmd *cobra.Command, args []string) error {
		keep, _ := cmd.Flags().GetInt("keep")
		if keep < 0 {
			return fmt.Errorf("--keep must not be negative")
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		n, err := st.SubmissionRepo().Prune(cmd.Context(), keep)
		if err != nil {
			return fmt.Errorf("prune submissions: %w", err)
		}
		fmt.Printf("Removed %d entries, kept the latest %d.\n", n, keep)
		return nil
	},
}

func init() {
	resetCmd.Flags().Int("keep", 0, "Number of most recent entries to keep")
}
