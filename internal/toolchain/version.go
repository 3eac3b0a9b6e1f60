package toolchain

import (
	"context"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

const versionTimeout = 5 * time.Second

// readVersion runs the executable with its version switch and returns a short
// version string from the first output line. Versions are advisory, so any
// failure yields an empty string.
func readVersion(ctx context.Context, path string, args []string) string {
	if len(args) == 0 {
		return ""
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()

	output, err := exec.CommandContext(ctx, path, args...).Output()
	if err != nil {
		return ""
	}
	return shortVersion(firstLine(strings.TrimSpace(string(output))))
}

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return text[:idx]
	}
	return text
}

var versionPattern = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)+`)

// shortVersion extracts the first dotted numeric token from a version line,
// turning "cmake version 3.28.3" into "3.28.3". Lines without one pass
// through unchanged.
func shortVersion(line string) string {
	if m := versionPattern.FindString(line); m != "" {
		return m
	}
	return line
}
