package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"homunculus/internal/toolchain"
	"homunculus/internal/tui"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [kind]",
		Short: "List known candidates and their install state",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runList,
	}
}

type kindListing struct {
	Kind       toolchain.Kind    `json:"kind"`
	Selected   string            `json:"selected"`
	Source     toolchain.Source  `json:"source"`
	Candidates []toolchain.Probe `json:"candidates"`
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	kinds, err := kindsFromArgs(args)
	if err != nil {
		return err
	}

	r, err := newResolver()
	if err != nil {
		return err
	}

	listings := make([]kindListing, 0, len(kinds))
	for _, kind := range kinds {
		res := r.Resolve(kind)
		listings = append(listings, kindListing{
			Kind:       kind,
			Selected:   res.Value,
			Source:     res.Source,
			Candidates: toolchain.ProbeAll(ctx, kind),
		})
	}

	if outputJSON {
		data, err := json.MarshalIndent(listings, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	writeListReport(cmd, listings)
	return nil
}

func writeListReport(cmd *cobra.Command, listings []kindListing) {
	bold := lipgloss.NewStyle().Bold(true)
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	red := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	faint := lipgloss.NewStyle().Faint(true)

	for i, l := range listings {
		if i > 0 {
			cmd.Println()
		}
		cmd.Println(bold.Render(kindLabel(l.Kind)+"s") + faint.Render(" (selected: "+l.Selected+" via "+string(l.Source)+")"))
		for _, p := range l.Candidates {
			marker := red.Render("✗")
			if p.Installed {
				marker = green.Render("✓")
			}
			line := fmt.Sprintf("%s %-10s %-10s", marker, p.ID, tui.NonEmptyOrDash(p.Version))
			if p.Path != "" {
				line += " " + faint.Render(p.Path)
			}
			if p.ID == l.Selected {
				line += " " + bold.Render("(selected)")
			}
			cmd.Println("  " + line)
		}
	}
}
