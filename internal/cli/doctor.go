package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"homunculus/internal/config"
	"homunculus/internal/instinct"
	"homunculus/internal/paths"
	"homunculus/internal/toolchain"
	"homunculus/internal/tui"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check toolchain and store health",
		RunE:  runDoctor,
	}
}

type healthCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "warning", "error"
	Summary string `json:"summary"`
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	r, err := newResolver()
	if err != nil {
		return err
	}

	status := tui.NewStatusWriter(cmd.ErrOrStderr())
	defer status.Stop()

	var checks []healthCheck
	for _, kind := range toolchain.Kinds() {
		status.Update(fmt.Sprintf("Probing %ss...", strings.ToLower(kindLabel(kind))))
		checks = append(checks, checkKind(ctx, r, kind))
	}

	status.Update("Reading config documents...")
	checks = append(checks, checkConfigDoc("Project", r.ProjectPaths().ConfigFile))
	checks = append(checks, checkConfigDoc("Global", r.GlobalPaths().ConfigFile))

	status.Update("Reading instinct store...")
	checks = append(checks, checkInstincts(r.GlobalPaths()))

	status.Stop()
	return writeDoctorResult(cmd, r.ProjectPaths().Root, checks)
}

// checkKind resolves a kind and probes its candidates. The selection itself
// never fails, so the check degrades to a warning when the selected candidate
// is not actually installed.
func checkKind(ctx context.Context, r *toolchain.Resolver, kind toolchain.Kind) healthCheck {
	name := kindLabel(kind)
	res := r.Resolve(kind)
	probes := toolchain.ProbeAll(ctx, kind)

	var installed int
	var selected toolchain.Probe
	for _, p := range probes {
		if p.Installed {
			installed++
		}
		if p.ID == res.Value {
			selected = p
		}
	}

	tail := fmt.Sprintf("via %s, %d of %d installed", res.Source, installed, len(probes))
	if !selected.Installed {
		return healthCheck{
			Name:    name,
			Status:  "warning",
			Summary: fmt.Sprintf("%s %s, not on PATH", res.Value, tail),
		}
	}

	label := res.Value
	if selected.Version != "" {
		label += " " + selected.Version
	}
	return healthCheck{Name: name, Status: "ok", Summary: label + " " + tail}
}

// checkConfigDoc reports the parse state of one config document. A malformed
// document is a warning, not an error: detection skips it the same way.
func checkConfigDoc(name, path string) healthCheck {
	name += " config"

	exists, err := paths.FileExists(path)
	if err != nil {
		return healthCheck{Name: name, Status: "error", Summary: err.Error()}
	}
	if !exists {
		return healthCheck{Name: name, Status: "ok", Summary: "not present"}
	}

	doc, err := config.Load(path)
	if err != nil {
		return healthCheck{Name: name, Status: "warning", Summary: "unreadable, ignored during detection"}
	}

	var parts []string
	if doc.BuildSystem != "" {
		parts = append(parts, "buildSystem="+doc.BuildSystem)
	}
	if doc.Compiler != "" {
		parts = append(parts, "compiler="+doc.Compiler)
	}
	if len(parts) == 0 {
		return healthCheck{Name: name, Status: "ok", Summary: "no selections recorded"}
	}
	return healthCheck{Name: name, Status: "ok", Summary: joinComma(parts)}
}

func checkInstincts(gp paths.GlobalPaths) healthCheck {
	store := instinct.NewStore(gp, logger)

	instincts, err := store.List()
	if err != nil {
		return healthCheck{Name: "Instincts", Status: "error", Summary: err.Error()}
	}

	summary := fmt.Sprintf("%d instincts", len(instincts))
	stats, ok, err := store.Stats()
	if err != nil {
		return healthCheck{Name: "Instincts", Status: "warning", Summary: summary + "; observations log unreadable"}
	}
	if ok {
		summary = fmt.Sprintf("%s, %d observation entries", summary, stats.Entries)
	}
	return healthCheck{Name: "Instincts", Status: "ok", Summary: summary}
}

func writeDoctorResult(cmd *cobra.Command, projectRoot string, checks []healthCheck) error {
	if outputJSON {
		data, err := json.MarshalIndent(checks, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	bold := lipgloss.NewStyle().Bold(true).Inline(true)
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Inline(true)
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Inline(true)
	red := lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Inline(true)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, bold.Render("TOOLCHAIN HEALTH:")+" "+projectRoot)

	for _, c := range checks {
		var statusStr string
		switch c.Status {
		case "ok":
			statusStr = green.Render("OK")
		case "warning":
			statusStr = yellow.Render("WARN")
		case "error":
			statusStr = red.Render("ERROR")
		}
		fmt.Fprintf(out, "  %-16s %s    %s\n", c.Name+":", statusStr, c.Summary)
	}

	return nil
}

func joinComma(items []string) string {
	if len(items) == 0 {
		return ""
	}
	result := items[0]
	for _, item := range items[1:] {
		result += ", " + item
	}
	return result
}
