package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"homunculus/internal/execx"
	"homunculus/internal/toolchain"
)

var runDryRun bool

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <configure|build|test|clean>",
		Short: "Run a build action with the resolved toolchain",
		Long: `Run a build action using whatever the detection chain resolves. The
command template comes from the resolved build system with the resolved
compiler substituted in, so the same invocation works across projects.`,
		Args: cobra.ExactArgs(1),
		RunE: runRun,
	}

	cmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Print the command without executing it")

	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	action, err := toolchain.ParseAction(args[0])
	if err != nil {
		return err
	}

	r, err := newResolver()
	if err != nil {
		return err
	}

	command, err := r.Command(toolchain.KindBuildSystem, action)
	if err != nil {
		return err
	}

	if runDryRun {
		cmd.Println(command)
		return nil
	}

	faint := lipgloss.NewStyle().Faint(true)
	fmt.Fprintln(cmd.ErrOrStderr(), faint.Render("$ "+command))

	runner := execx.CmdRunner{}
	res, err := runner.Shell(ctx, command, execx.RunOptions{
		Dir:    r.ProjectPaths().Root,
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	})
	if err != nil {
		if res.ExitCode > 0 {
			return fmt.Errorf("%s failed with exit code %d", action, res.ExitCode)
		}
		return fmt.Errorf("run %s: %w", action, err)
	}
	return nil
}
