package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"homunculus/internal/toolchain"
)

func TestListCommandShowsAllCandidates(t *testing.T) {
	project, _ := newTestDirs(t)

	if err := os.WriteFile(filepath.Join(project, "meson.build"), []byte("project('x')\n"), 0o644); err != nil {
		t.Fatalf("write marker: %v", err)
	}

	stdout, _, err := execute(newListCmd())
	if err != nil {
		t.Fatalf("list command returned error: %v", err)
	}

	if !strings.Contains(stdout, "Build systems") || !strings.Contains(stdout, "Compilers") {
		t.Fatalf("expected both kind sections, got %q", stdout)
	}
	for _, id := range []string{"cmake", "meson", "bazel", "autotools", "ninja", "make", "clang", "gcc", "msvc"} {
		if !strings.Contains(stdout, id) {
			t.Fatalf("expected candidate %s in listing, got %q", id, stdout)
		}
	}
	if !strings.Contains(stdout, "(selected)") {
		t.Fatalf("expected selection marker, got %q", stdout)
	}
	if !strings.Contains(stdout, "selected: meson via project-file") {
		t.Fatalf("expected meson selection header, got %q", stdout)
	}
}

func TestListCommandSingleKind(t *testing.T) {
	newTestDirs(t)

	stdout, _, err := execute(newListCmd(), "build")
	if err != nil {
		t.Fatalf("list command returned error: %v", err)
	}

	if !strings.Contains(stdout, "Build systems") {
		t.Fatalf("expected build systems section, got %q", stdout)
	}
	if strings.Contains(stdout, "Compilers") {
		t.Fatalf("expected only the requested kind, got %q", stdout)
	}
}

func TestListCommandJSONOutput(t *testing.T) {
	newTestDirs(t)
	outputJSON = true

	stdout, _, err := execute(newListCmd())
	if err != nil {
		t.Fatalf("list command returned error: %v", err)
	}

	var listings []kindListing
	if err := json.Unmarshal([]byte(stdout), &listings); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if len(listings) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(listings))
	}
	if listings[0].Kind != toolchain.KindBuildSystem || len(listings[0].Candidates) != 6 {
		t.Fatalf("unexpected build system listing: %+v", listings[0])
	}
	if listings[1].Kind != toolchain.KindCompiler || len(listings[1].Candidates) != 3 {
		t.Fatalf("unexpected compiler listing: %+v", listings[1])
	}
	if listings[0].Selected == "" {
		t.Fatal("expected a selected build system")
	}
}
