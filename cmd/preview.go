package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/delectable/internal/catalog"
	"github.com/abhisek/delectable/internal/form"
	"github.com/abhisek/delectable/internal/session"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print a materialized form page (no database, no submission)",
	Long: `Build one page of the questionnaire the way the TUI would and print it.

Answers given with --answer are applied in order, so branching logic and the
review page can be checked without clicking through the forms.`,
	Example: `  delectable preview --form symptoms --day 7 --answer fever=1
  delectable preview --form review --case PT001 --day 3 --answer cdai_d3_pain=2`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("form", catalog.HomeFormID, "Form id to render")
	previewCmd.Flags().Int("day", 0, "Visit day (1-7)")
	previewCmd.Flags().String("case", "", "Patient code")
	previewCmd.Flags().StringArray("answer", nil, "Answer as field=value (repeatable)")
	previewCmd.Flags().Bool("record", false, "Also print the record that would be submitted")
}

func runPreview(cmd *cobra.Command, args []string) error {
	formID, _ := cmd.Flags().GetString("form")
	answers, _ := cmd.Flags().GetStringArray("answer")
	withRecord, _ := cmd.Flags().GetBool("record")

	cat, g, err := loadCatalog(cmd.Context(), cmd)
	if err != nil {
		return err
	}

	sess := session.New(cat, g)
	if c, _ := cmd.Flags().GetString("case"); c != "" {
		sess.SetCaseID(c)
	}
	if cmd.Flags().Changed("day") {
		day, _ := cmd.Flags().GetInt("day")
		if sess.SelectDay(day) == session.HintInvalid {
			return fmt.Errorf("invalid visit day %d: must be %d-%d", day, session.FirstVisitDay, session.LastVisitDay)
		}
	}

	for _, a := range answers {
		name, text, ok := strings.Cut(a, "=")
		if !ok {
			return fmt.Errorf("invalid --answer %q: want field=value", a)
		}
		fs, known := cat.Field(name)
		if !known {
			return fmt.Errorf("unknown field %q", name)
		}
		sess.Apply(name, form.Coerce(fs.Widget, text))
	}

	page, err := form.Materialize(cat, sess, formID, formConfig(cmd))
	if err != nil {
		return err
	}
	printPage(os.Stdout, page)

	if withRecord {
		rec, err := sess.Record()
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return err
		}
		fmt.Printf("\n── Record ──\n%s\n", out)
	}
	return nil
}

func printPage(w io.Writer, page *form.Page) {
	fmt.Fprintf(w, "%s (%s)\n", page.Title, page.FormID)

	if page.Kind == form.KindReview {
		if len(page.Review) == 0 {
			fmt.Fprintln(w, "  No answers yet.")
		}
		for _, row := range page.Review {
			fmt.Fprintf(w, "  %-40s %s\n", row.Question, row.Answer)
		}
		if page.Status != "" {
			fmt.Fprintf(w, "\n%s\n", page.Status)
		}
		return
	}

	for _, f := range page.Fields {
		if f.SectionHeader != "" {
			fmt.Fprintf(w, "\n── %s ──\n", f.SectionHeader)
		}
		state := ""
		switch {
		case f.Hidden:
			state = " (hidden)"
		case f.Value != nil:
			state = " = " + form.FormatValue(f.Value)
		}
		fmt.Fprintf(w, "  %s [%s]%s\n", f.Label, f.Widget, state)
		for _, c := range f.Choices {
			fmt.Fprintf(w, "      %d) %s\n", c.Code, c.Label)
		}
	}
}
