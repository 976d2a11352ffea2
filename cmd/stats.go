package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize submission attempts",
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

		var ok, failed, fields int
		var latency int64
		cases := make(map[string]bool)
		for _, e := range entries {
			if e.Success {
				ok++
				fields += e.FieldsWritten
			} else {
				failed++
			}
			latency += e.LatencyMs
			if e.CaseID != "" {
				cases[e.CaseID] = true
			}
		}

		fmt.Printf("Attempts:   %d\n", len(entries))
		fmt.Printf("Succeeded:  %d\n", ok)
		fmt.Printf("Failed:     %d\n", failed)
		fmt.Printf("Cases:      %d\n", len(cases))
		if ok > 0 {
			fmt.Printf("Avg fields: %.1f\n", float64(fields)/float64(ok))
		}
		if len(entries) > 0 {
			fmt.Printf("Avg latency: %dms\n", latency/int64(len(entries)))
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("limit", 1000, "Number of recent attempts to include")
}
