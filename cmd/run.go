package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/untillpro/goutils/logger"

	"github.com/abhisek/delectable/internal/app"
	"github.com/abhisek/delectable/internal/applog"
	"github.com/abhisek/delectable/internal/lint"
	"github.com/abhisek/delectable/internal/screens/questionnaire"
	"github.com/abhisek/delectable/internal/submission"
)

// runApp loads the catalogs, opens the store, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cat, g, err := loadCatalog(ctx, cmd)
	if err != nil {
		return err
	}

	res := lint.Run(cat, g)
	if n := res.Count(lint.SeverityError); n > 0 {
		fmt.Fprintf(os.Stderr, "Catalog has %d error(s); run 'delectable lint' for details.\n", n)
	}

	client, err := submission.NewClient(submissionConfig(cmd))
	if err != nil {
		return fmt.Errorf("submission client: %w", err)
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	logCfg := applog.ConfigFromEnv(st.Path())
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		logCfg.Level = v
	}
	restore, err := applog.ToFile(logCfg)
	if err != nil {
		return fmt.Errorf("log file: %w", err)
	}
	defer restore()

	for _, issue := range res.Issues {
		if issue.Severity != lint.SeverityInfo {
			logger.Warning("catalog: " + issue.String())
		}
	}
	logger.Info(fmt.Sprintf("catalog loaded: %d forms, %d fields, %d branching edges",
		len(cat.Forms()), len(cat.Fields()), len(g.Edges())))

	root := questionnaire.New(questionnaire.Deps{
		Catalog: cat,
		Graph:   g,
		Client:  client,
		Repo:    st.SubmissionRepo(),
		Form:    formConfig(cmd),
	})
	return app.Run(root)
}
