package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"homunculus/internal/toolchain"
)

var setGlobal bool

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <candidate>",
		Short: "Record a toolchain selection",
		Long: `Record a build system or compiler selection. The kind is inferred from
the candidate identifier, and aliases like clang++ canonicalize to their
candidate. Selections land in the project config unless --global is set.`,
		Args: cobra.ExactArgs(1),
		RunE: runSet,
	}

	cmd.Flags().BoolVar(&setGlobal, "global", false, "Write the user-level config instead of the project config")

	return cmd
}

func runSet(cmd *cobra.Command, args []string) error {
	scope := toolchain.ScopeProject
	if setGlobal {
		scope = toolchain.ScopeGlobal
	}
	return persistSelection(cmd, args[0], scope)
}

func persistSelection(cmd *cobra.Command, raw string, scope toolchain.Scope) error {
	kind, c, ok := toolchain.KindOf(raw)
	if !ok {
		return unknownCandidateError(raw)
	}

	r, err := newResolver()
	if err != nil {
		return err
	}
	if err := r.Persist(kind, raw, scope); err != nil {
		return err
	}

	path := r.ProjectPaths().ConfigFile
	if scope == toolchain.ScopeGlobal {
		path = r.GlobalPaths().ConfigFile
	}
	cmd.Printf("Recorded %s = %s in %s\n", kind, c.ID, path)
	return nil
}

func unknownCandidateError(raw string) error {
	var valid []string
	for _, kind := range toolchain.Kinds() {
		valid = append(valid, toolchain.IDs(kind)...)
	}
	return fmt.Errorf("unknown candidate %q (valid: %s)", raw, strings.Join(valid, ", "))
}
