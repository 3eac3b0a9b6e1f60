package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"homunculus/internal/instinct"
	"homunculus/internal/paths"
	"homunculus/internal/tui"
)

var (
	importForce      bool
	exportOutput     string
	evolveNoProgress bool
)

func newInstinctCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instinct",
		Short: "Manage learned instincts",
	}

	cmd.AddCommand(newInstinctStatusCmd())
	cmd.AddCommand(newInstinctShowCmd())
	cmd.AddCommand(newInstinctImportCmd())
	cmd.AddCommand(newInstinctExportCmd())
	cmd.AddCommand(newInstinctEvolveCmd())

	return cmd
}

func newInstinctStore() (*instinct.Store, error) {
	gp, err := paths.ResolveGlobal()
	if err != nil {
		return nil, err
	}
	return instinct.NewStore(gp, logger), nil
}

func newInstinctStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show stored instincts and their confidence",
		RunE:  runInstinctStatus,
	}
}

type instinctStatusRow struct {
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Filename   string  `json:"filename"`
}

func runInstinctStatus(cmd *cobra.Command, _ []string) error {
	store, err := newInstinctStore()
	if err != nil {
		return err
	}

	instincts, err := store.List()
	if err != nil {
		return err
	}
	stats, hasLog, err := store.Stats()
	if err != nil {
		return err
	}

	if outputJSON {
		payload := struct {
			Dir          string                     `json:"dir"`
			Instincts    []instinctStatusRow        `json:"instincts"`
			Observations *instinct.ObservationStats `json:"observations,omitempty"`
		}{
			Dir:       store.Dir(),
			Instincts: make([]instinctStatusRow, 0, len(instincts)),
		}
		for _, inst := range instincts {
			payload.Instincts = append(payload.Instincts, instinctStatusRow{
				Name:       inst.Name,
				Category:   inst.Category,
				Confidence: inst.Confidence,
				Filename:   inst.Filename,
			})
		}
		if hasLog {
			payload.Observations = &stats
		}

		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	writeInstinctTable(cmd, store.Dir(), instincts, stats, hasLog)
	return nil
}

func writeInstinctTable(cmd *cobra.Command, dir string, instincts []instinct.Instinct, stats instinct.ObservationStats, hasLog bool) {
	fmt.Fprintf(cmd.OutOrStdout(), "Instinct store: %s\n", dir)

	if len(instincts) == 0 {
		cmd.Println("(no instincts recorded)")
	} else {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tCATEGORY\tCONFIDENCE")
		for _, inst := range instincts {
			fmt.Fprintf(w, "%s\t%s\t%s %.0f%%\n",
				inst.Name, inst.Category, confidenceBar(inst.Confidence), inst.Confidence*100)
		}
		w.Flush()
	}

	if hasLog {
		fmt.Fprintf(cmd.OutOrStdout(), "Observations: %d entries (%d bytes)\n", stats.Entries, stats.Bytes)
	} else {
		cmd.Println("Observations: none recorded yet")
	}
}

// confidenceBar renders a fixed-width gauge like [████████░░░░░░░░░░░░].
func confidenceBar(confidence float64) string {
	const width = 20
	filled := int(confidence * width)
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

func newInstinctShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Render a stored instinct",
		Args:  cobra.ExactArgs(1),
		RunE:  runInstinctShow,
	}
}

func runInstinctShow(cmd *cobra.Command, args []string) error {
	store, err := newInstinctStore()
	if err != nil {
		return err
	}

	instincts, err := store.List()
	if err != nil {
		return err
	}

	inst, ok := findInstinct(instincts, args[0])
	if !ok {
		return fmt.Errorf("no instinct named %q", args[0])
	}

	if outputJSON {
		meta, err := inst.Meta.Map()
		if err != nil {
			return fmt.Errorf("encode %s: %w", inst.Filename, err)
		}
		payload := struct {
			Filename string         `json:"filename"`
			Metadata map[string]any `json:"metadata"`
			Body     string         `json:"body"`
		}{inst.Filename, meta, inst.Body}

		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	bold := lipgloss.NewStyle().Bold(true)
	faint := lipgloss.NewStyle().Faint(true)
	cmd.Println(bold.Render(inst.Name) + faint.Render(fmt.Sprintf(" (%s) ", inst.Category)) + confidenceBar(inst.Confidence) + fmt.Sprintf(" %.0f%%", inst.Confidence*100))
	cmd.Println()

	rendered, err := renderMarkdown(inst.Body)
	if err != nil {
		// Fall back to the raw body when the terminal renderer balks.
		cmd.Println(inst.Body)
		return nil
	}
	cmd.Println(rendered)
	return nil
}

func renderMarkdown(body string) (string, error) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
	if err != nil {
		return "", err
	}
	return r.Render(body)
}

func findInstinct(instincts []instinct.Instinct, name string) (instinct.Instinct, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for _, inst := range instincts {
		stem := strings.TrimSuffix(inst.Filename, ".md")
		if strings.ToLower(inst.Name) == needle || strings.ToLower(stem) == needle || inst.Filename == name {
			return inst, true
		}
	}
	return instinct.Instinct{}, false
}

func newInstinctImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Copy an instinct file into the store",
		Args:  cobra.ExactArgs(1),
		RunE:  runInstinctImport,
	}

	cmd.Flags().BoolVar(&importForce, "force", false, "Overwrite an existing instinct with the same filename")

	return cmd
}

func runInstinctImport(cmd *cobra.Command, args []string) error {
	store, err := newInstinctStore()
	if err != nil {
		return err
	}

	res, err := store.Import(args[0], importForce)
	if err != nil {
		return err
	}

	if outputJSON {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	bold := lipgloss.NewStyle().Bold(true)
	faint := lipgloss.NewStyle().Faint(true)

	if res.Skipped {
		yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
		cmd.Println(yellow.Render("–") + " " + bold.Render(res.Name) + " already exists (use --force to overwrite)")
		return nil
	}

	green := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	cmd.Println(green.Render("✓") + " " + bold.Render(res.Name))
	cmd.Println(faint.Render(fmt.Sprintf("  confidence %.2f · %s", res.Confidence, res.Dest)))
	return nil
}

func newInstinctExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Bundle every instinct into a portable JSON file",
		RunE:  runInstinctExport,
	}

	cmd.Flags().StringVarP(&exportOutput, "output", "o", "instincts-export.json", "Bundle destination path")

	return cmd
}

func runInstinctExport(cmd *cobra.Command, _ []string) error {
	store, err := newInstinctStore()
	if err != nil {
		return err
	}

	res, err := store.Export(exportOutput)
	if err != nil {
		return err
	}

	if outputJSON {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Exported %d instincts to %s\n", res.Count, res.Path)
	return nil
}

func newInstinctEvolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evolve",
		Short: "Re-score instinct confidence against the observations log",
		Long: `Score every stored instinct against the observations log and adjust its
confidence: instincts with matching observations climb, instincts without
evidence decay. Changed files are rewritten in place.`,
		RunE: runInstinctEvolve,
	}

	cmd.Flags().BoolVar(&evolveNoProgress, "no-progress", false, "Disable interactive progress output")

	return cmd
}

var evolveColumns = []tui.Column{
	{Header: "INSTINCT", Width: 32},
	{Header: "STATUS", Width: 8},
	{Header: "CONFIDENCE", Width: 14},
}

func runInstinctEvolve(cmd *cobra.Command, _ []string) error {
	store, err := newInstinctStore()
	if err != nil {
		return err
	}

	outWriter := cmd.OutOrStdout()
	mode := tui.DetectMode(outWriter, evolveNoProgress, outputJSON)

	var report instinct.EvolveReport
	var evolveErr error
	work := func(send func(tea.Msg)) {
		report, evolveErr = store.Evolve(func(inst instinct.Instinct, change *instinct.Evolution) {
			if send == nil {
				return
			}
			fields := map[string]string{"STATUS": "steady"}
			if change != nil {
				status := "raised"
				if change.New < change.Old {
					status = "lowered"
				}
				fields["STATUS"] = status
				fields["CONFIDENCE"] = fmt.Sprintf("%.2f → %.2f", change.Old, change.New)
			}
			send(tui.RowUpdateMsg{Key: inst.Filename, Fields: fields})
		})
		if evolveErr != nil && send != nil {
			send(tui.ErrorMsg{Err: evolveErr})
		}
	}

	if mode == tui.ModeTUI {
		instincts, err := store.List()
		if err != nil {
			return err
		}
		fmt.Fprintf(outWriter, "Instinct store: %s\n", store.Dir())
		model := buildEvolveProgressModel(instincts)
		if err := tui.RunWithWork(outWriter, model, work); err != nil {
			return err
		}
	} else {
		work(nil)
	}
	if evolveErr != nil {
		return evolveErr
	}

	if mode == tui.ModeJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if mode == tui.ModeTUI {
		printEvolveSummary(cmd, report)
	} else {
		writeEvolveChanges(cmd, report)
	}
	return nil
}

func buildEvolveProgressModel(instincts []instinct.Instinct) tui.ProgressModel {
	model := tui.NewProgressModel("evolve", evolveColumns)
	for _, inst := range instincts {
		model.AddRow(inst.Filename, []string{
			tui.TruncateWithEllipsis(inst.Name, 32),
			"pending",
			fmt.Sprintf("%.2f", inst.Confidence),
		})
	}
	return model
}

func writeEvolveChanges(cmd *cobra.Command, report instinct.EvolveReport) {
	if report.Observations == 0 {
		cmd.Println("No observations recorded; nothing to score against.")
		return
	}
	if report.Instincts == 0 {
		cmd.Println("No instincts recorded yet.")
		return
	}

	for _, change := range report.Changes {
		direction := "raised"
		if change.New < change.Old {
			direction = "lowered"
		}
		cmd.Printf("%s: %s %.2f → %.2f (%d matching observations)\n",
			change.Name, direction, change.Old, change.New, change.Hits)
	}
	printEvolveSummary(cmd, report)
}

func printEvolveSummary(cmd *cobra.Command, report instinct.EvolveReport) {
	cmd.Printf("Scored %d instincts against %d observations; %d changed.\n",
		report.Instincts, report.Observations, len(report.Changes))
}
