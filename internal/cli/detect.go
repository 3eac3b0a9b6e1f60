package cli

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"homunculus/internal/toolchain"
)

func newDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect [kind]",
		Short: "Resolve the effective toolchain and print the detection trace",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDetect,
	}
}

func runDetect(cmd *cobra.Command, args []string) error {
	kinds, err := kindsFromArgs(args)
	if err != nil {
		return err
	}

	r, err := newResolver()
	if err != nil {
		return err
	}

	results := make([]toolchain.Resolution, 0, len(kinds))
	for _, kind := range kinds {
		results = append(results, r.Resolve(kind))
	}

	if outputJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	writeDetectReport(cmd, results)
	return nil
}

func kindsFromArgs(args []string) ([]toolchain.Kind, error) {
	if len(args) == 0 {
		return toolchain.Kinds(), nil
	}
	kind, err := toolchain.ParseKind(args[0])
	if err != nil {
		return nil, err
	}
	return []toolchain.Kind{kind}, nil
}

func kindLabel(kind toolchain.Kind) string {
	switch kind {
	case toolchain.KindBuildSystem:
		return "Build system"
	case toolchain.KindCompiler:
		return "Compiler"
	}
	return string(kind)
}

func writeDetectReport(cmd *cobra.Command, results []toolchain.Resolution) {
	bold := lipgloss.NewStyle().Bold(true)
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	faint := lipgloss.NewStyle().Faint(true)

	for i, res := range results {
		if i > 0 {
			cmd.Println()
		}
		cmd.Println(bold.Render(kindLabel(res.Kind)+":") + " " + green.Render(res.Value) + faint.Render(" via "+string(res.Source)))
		for _, step := range res.Steps {
			marker := faint.Render("·")
			if step.Hit {
				marker = green.Render("✓")
			}
			cmd.Printf("  %s %-16s %s\n", marker, string(step.Source), faint.Render(step.Detail))
		}
	}
}
