package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"homunculus/internal/logx"
	"homunculus/internal/paths"
	"homunculus/internal/toolchain"
)

var (
	projectDir string
	outputJSON bool
	verbose    bool

	// Flag forms of the detect, list, and set commands, kept so existing
	// hook scripts can call the binary without a subcommand.
	rootDetect bool
	rootList   bool
	rootGlobal string

	logger    = zap.NewNop()
	logCloser io.Closer
)

// Execute runs the root cobra command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "homunculus",
		Short: "Toolchain resolver and instinct store CLI",
		RunE:  runRoot,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			gp, err := paths.ResolveGlobal()
			if err != nil {
				// No home directory; commands still work, just unlogged.
				return
			}
			logger, logCloser = logx.New(gp, logx.Options{Verbose: verbose})
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if logCloser != nil {
				logCloser.Close()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&projectDir, "project", "", "Path to project directory")
	cmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output machine-readable JSON")
	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log debug detail")

	cmd.Flags().BoolVar(&rootDetect, "detect", false, "Resolve the toolchain and print the detection trace")
	cmd.Flags().BoolVar(&rootList, "list", false, "List known candidates and their install state")
	cmd.Flags().StringVar(&rootGlobal, "global", "", "Persist a candidate to the user-level config")

	cmd.AddCommand(newDetectCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newLintCmd())

	instinctCmd := newInstinctCmd()
	cmd.AddCommand(instinctCmd)
	// instinct operates on the user-level store; the project flag doesn't apply.
	if f := instinctCmd.InheritedFlags().Lookup("project"); f != nil {
		f.Hidden = true
	}

	return cmd
}

func runRoot(cmd *cobra.Command, _ []string) error {
	switch {
	case rootGlobal != "":
		return persistSelection(cmd, rootGlobal, toolchain.ScopeGlobal)
	case rootDetect:
		return runDetect(cmd, nil)
	case rootList:
		return runList(cmd, nil)
	}
	return cmd.Help()
}

func newResolver() (*toolchain.Resolver, error) {
	return toolchain.New(toolchain.Options{ProjectDir: projectDir, Log: logger})
}
