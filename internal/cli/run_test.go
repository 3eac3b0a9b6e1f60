package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunCommandDryRun(t *testing.T) {
	project, _ := newTestDirs(t)

	if err := os.WriteFile(filepath.Join(project, "build.ninja"), []byte("rule cc\n"), 0o644); err != nil {
		t.Fatalf("write marker: %v", err)
	}

	stdout, _, err := execute(newRunCmd(), "build", "--dry-run")
	if err != nil {
		t.Fatalf("run command returned error: %v", err)
	}
	if got := strings.TrimSpace(stdout); got != "ninja" {
		t.Fatalf("got command %q, want ninja", got)
	}
}

func TestRunCommandSubstitutesCompiler(t *testing.T) {
	newTestDirs(t)
	t.Setenv("HOMUNCULUS_BUILD_SYSTEM", "cmake")
	t.Setenv("HOMUNCULUS_COMPILER", "clang")

	stdout, _, err := execute(newRunCmd(), "configure", "--dry-run")
	if err != nil {
		t.Fatalf("run command returned error: %v", err)
	}
	if !strings.Contains(stdout, "-DCMAKE_C_COMPILER=clang") {
		t.Fatalf("expected cc substitution, got %q", stdout)
	}
	if !strings.Contains(stdout, "-DCMAKE_CXX_COMPILER=clang++") {
		t.Fatalf("expected cxx substitution, got %q", stdout)
	}
}

func TestRunCommandUnknownAction(t *testing.T) {
	newTestDirs(t)

	_, _, err := execute(newRunCmd(), "deploy", "--dry-run")
	if err == nil {
		t.Fatal("expected error for unknown action")
	}
	if !strings.Contains(err.Error(), "unknown action") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCommandNoTemplateForAction(t *testing.T) {
	newTestDirs(t)
	t.Setenv("HOMUNCULUS_BUILD_SYSTEM", "ninja")

	_, _, err := execute(newRunCmd(), "configure", "--dry-run")
	if err == nil {
		t.Fatal("expected error for missing template")
	}
	if !strings.Contains(err.Error(), "defines no configure command") {
		t.Fatalf("unexpected error: %v", err)
	}
}
