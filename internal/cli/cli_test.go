package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newTestDirs points the package flags and the environment at temp
// directories so commands touch nothing real. Returns the project root and
// the global root.
func newTestDirs(t *testing.T) (string, string) {
	t.Helper()

	prevProject := projectDir
	prevJSON := outputJSON
	prevLogger := logger
	prevCloser := logCloser
	t.Cleanup(func() {
		projectDir = prevProject
		outputJSON = prevJSON
		logger = prevLogger
		logCloser = prevCloser
	})

	projectDir = t.TempDir()
	outputJSON = false
	logger = zap.NewNop()
	logCloser = nil

	global := t.TempDir()
	t.Setenv("HOMUNCULUS_HOME", global)
	t.Setenv("HOMUNCULUS_BUILD_SYSTEM", "")
	t.Setenv("HOMUNCULUS_COMPILER", "")

	return projectDir, global
}

// execute runs a command with captured output.
func execute(cmd *cobra.Command, args ...string) (string, string, error) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
