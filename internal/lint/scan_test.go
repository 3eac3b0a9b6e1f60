package lint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestScanFindsDebugLeftovers(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"web/app.js":  "function main() {\n  console.log('here');\n  debugger\n}\n",
		"tool/cli.py": "def run():\n    print(\"debug\")\n    breakpoint()\n",
		"pkg/x.go":    "package x\n\nfunc f() {\n\tfmt.Println(\"dbg\")\n}\n",
	})

	report, err := Scan(root, nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if report.Scanned != 3 {
		t.Errorf("scanned = %d, want 3", report.Scanned)
	}

	want := []Finding{
		{Path: "pkg/x.go", Line: 4, Rule: "fmt-print", Snippet: `fmt.Println("dbg")`},
		{Path: "tool/cli.py", Line: 2, Rule: "python-print", Snippet: `print("debug")`},
		{Path: "tool/cli.py", Line: 3, Rule: "breakpoint", Snippet: "breakpoint()"},
		{Path: "web/app.js", Line: 2, Rule: "console-log", Snippet: "console.log('here');"},
		{Path: "web/app.js", Line: 3, Rule: "debugger", Snippet: "debugger"},
	}
	if diff := cmp.Diff(want, report.Findings); diff != "" {
		t.Errorf("findings mismatch (-want +got):\n%s", diff)
	}
}

func TestScanSkipsVendoredTrees(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/ok.js":                   "let x = 1\n",
		"node_modules/lib.js":         "console.log('vendored')\n",
		"vendor/dep.go":               "fmt.Println(\"vendored\")\n",
		"build/out.js":                "debugger\n",
		"dist/bundle.js":              "debugger\n",
		".git/hooks/sample.py":        "print('hook')\n",
		".homunculus/cache.ts":        "console.log('meta')\n",
		"nested/node_modules/deep.js": "debugger\n",
	})

	report, err := Scan(root, nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(report.Findings) != 0 {
		t.Errorf("expected no findings from vendored trees, got %+v", report.Findings)
	}
	if report.Scanned != 1 {
		t.Errorf("scanned = %d, want only src/ok.js", report.Scanned)
	}
}

func TestScanIgnoresUncoveredExtensions(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"README.md": "print(not code)\n",
		"data.txt":  "console.log\n",
	})

	report, err := Scan(root, nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if report.Scanned != 0 || len(report.Findings) != 0 {
		t.Errorf("expected inert scan, got %+v", report)
	}
}

func TestScanDoesNotFlagSimilarNames(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"app.py": "def sprint(n):\n    return blueprint(n)\n",
		"x.go":   "package x\n\nfunc f() { fmt.Fprintf(w, \"ok\") }\n",
	})

	report, err := Scan(root, nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(report.Findings) != 0 {
		t.Errorf("expected no findings, got %+v", report.Findings)
	}
}

func TestScanEmptyTree(t *testing.T) {
	report, err := Scan(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if report.Scanned != 0 || len(report.Findings) != 0 {
		t.Errorf("expected empty report, got %+v", report)
	}
}
