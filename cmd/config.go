package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/delectable/internal/branching"
	"github.com/abhisek/delectable/internal/catalog"
	"github.com/abhisek/delectable/internal/form"
	"github.com/abhisek/delectable/internal/submission"
)

// catalogConfig reads the catalog sources from env, then flags.
func catalogConfig(cmd *cobra.Command) catalog.Config {
	cfg := catalog.ConfigFromEnv()
	if v, _ := cmd.Flags().GetString("forms"); v != "" {
		cfg.FormsSource = v
	}
	if v, _ := cmd.Flags().GetString("fields"); v != "" {
		cfg.FieldsSource = v
	}
	return cfg
}

// loadCatalog loads both catalogs and compiles their branching logic.
func loadCatalog(ctx context.Context, cmd *cobra.Command) (*catalog.Catalog, *branching.Graph, error) {
	cat, err := catalog.Load(ctx, catalogConfig(cmd))
	if err != nil {
		return nil, nil, err
	}
	g, err := branching.Compile(cat.Fields())
	if err != nil {
		return nil, nil, fmt.Errorf("compile branching logic: %w", err)
	}
	return cat, g, nil
}

func submissionConfig(cmd *cobra.Command) submission.Config {
	cfg := submission.ConfigFromEnv()
	if v, _ := cmd.Flags().GetString("api-url"); v != "" {
		cfg.APIURL = v
	}
	if cmd.Flags().Changed("dry-run") {
		cfg.DryRun, _ = cmd.Flags().GetBool("dry-run")
	}
	return cfg
}

func formConfig(cmd *cobra.Command) form.Config {
	cfg := form.ConfigFromEnv()
	if cmd.Flags().Changed("numbering") {
		cfg.Numbering, _ = cmd.Flags().GetBool("numbering")
	}
	return cfg
}
