package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/delectable/internal/lint"
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Check the form and field catalogs",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		cat, g, err := loadCatalog(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		res := lint.Run(cat, g)

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				return err
			}
		} else {
			for _, issue := range res.Issues {
				fmt.Println(issue.String())
			}
			fmt.Printf("%d forms, %d fields: %d error(s), %d warning(s), %d info\n",
				len(cat.Forms()), len(cat.Fields()),
				res.Count(lint.SeverityError), res.Count(lint.SeverityWarning), res.Count(lint.SeverityInfo))
		}

		if !res.Valid {
			return errors.New("catalog has errors")
		}
		return nil
	},
}

func init() {
	lintCmd.Flags().Bool("json", false, "Print the result as JSON")
}
