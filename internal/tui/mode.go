package tui

import (
	"io"
	"os"
	"runtime"
	"strings"
)

// OutputMode selects how a command renders its progress.
type OutputMode int

const (
	// ModeTUI drives a live bubbletea table.
	ModeTUI OutputMode = iota
	// ModePlain prints a static report once the work is done.
	ModePlain
	// ModeJSON emits machine-readable output only.
	ModeJSON
)

// DetectMode picks the output mode for a writer. Flags win over detection,
// and anything that is not an interactive terminal gets the plain report, so
// redirecting evolve output never captures escape sequences.
func DetectMode(out io.Writer, noProgress, jsonOutput bool) OutputMode {
	switch {
	case jsonOutput:
		return ModeJSON
	case noProgress, !isTerminal(out):
		return ModePlain
	}
	return ModeTUI
}

// isTerminal reports whether out is an interactive character device with a
// TERM that can handle cursor movement.
func isTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	info, err := file.Stat()
	if err != nil || info.Mode()&os.ModeCharDevice == 0 {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	term := os.Getenv("TERM")
	return term != "" && !strings.EqualFold(term, "dumb")
}
