package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"homunculus/internal/lint"
	"homunculus/internal/paths"
	"homunculus/internal/tui"
)

func newLintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint",
		Short: "Scan the project for debug leftovers",
		Long: `Scan project sources for statements that should not ship: console.log
and debugger in JavaScript, fmt.Print in Go, print and breakpoint in
Python. Exits nonzero when anything is found.`,
		RunE: runLint,
	}
}

func runLint(cmd *cobra.Command, _ []string) error {
	pp, err := paths.Resolve(projectDir)
	if err != nil {
		return err
	}

	report, err := lint.Scan(pp.Root, logger)
	if err != nil {
		return err
	}

	if outputJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		cmd.Println(string(data))
	} else {
		writeLintReport(cmd, report)
	}

	if n := len(report.Findings); n > 0 {
		return fmt.Errorf("%d debug statements found", n)
	}
	return nil
}

func writeLintReport(cmd *cobra.Command, report lint.Report) {
	fmt.Fprintf(cmd.OutOrStdout(), "Scanned %d files under %s\n", report.Scanned, report.Root)

	if len(report.Findings) == 0 {
		cmd.Println("No debug statements found.")
		return
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tLINE\tRULE\tSNIPPET")
	for _, f := range report.Findings {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", f.Path, f.Line, f.Rule, tui.TruncateWithEllipsis(f.Snippet, 60))
	}
	w.Flush()
}
