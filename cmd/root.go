package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/delectable/internal/applog"
	"github.com/abhisek/delectable/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "delectable",
	Short: "Clinical trial questionnaire in the terminal",
	Long: `Delectable renders a clinical-trial questionnaire from a REDCap-style
form catalog and field catalog, applies branching logic as answers change,
and submits the visible answers as one record to the REDCap API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		if level == "" {
			return nil
		}
		return applog.SetLevel(level)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides DELECTABLE_DB env var)")
	pf.String("forms", "", "Form catalog path or URL, .xlsx or .csv (overrides DELECTABLE_FORMS)")
	pf.String("fields", "", "Field catalog path or URL, .xlsx or .csv (overrides DELECTABLE_FIELDS)")
	pf.String("log-level", "", "Log level: error, warning, info, verbose (overrides DELECTABLE_LOG_LEVEL)")
	pf.Bool("numbering", false, "Prefix questions with <form index>.<position> (overrides DELECTABLE_NUMBERING)")

	rootCmd.Flags().String("api-url", "", "REDCap API endpoint (overrides DELECTABLE_API_URL)")
	rootCmd.Flags().Bool("dry-run", false, "Log records instead of sending them")

	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then DELECTABLE_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
