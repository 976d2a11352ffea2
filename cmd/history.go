package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent submission attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		entries, err := st.SubmissionRepo().Recent(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query submissions: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No submissions recorded.")
			return nil
		}

		fmt.Printf("%-19s  %-12s  %-7s  %6s  %8s  %s\n", "TIME", "CASE", "STATUS", "FIELDS", "LATENCY", "ERROR")
		for _, e := range entries {
			status := "ok"
			if !e.Success {
				status = "failed"
			}
			caseID := e.CaseID
			if caseID == "" {
				caseID = "-"
			}
			fmt.Printf("%-19s  %-12s  %-7s  %6d  %6dms  %s\n",
				e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				caseID, status, e.FieldsWritten, e.LatencyMs, e.ErrorMessage)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Number of entries to show")
}
