package frontmatter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseTypedHeader(t *testing.T) {
	content := "---\n" +
		"name: prefer-table-tests\n" +
		"confidence: 0.7\n" +
		"category: testing\n" +
		"tool: go\n" +
		"---\n\n" +
		"When writing tests, prefer table-driven cases.\n"

	doc, err := Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if doc.Meta.Name != "prefer-table-tests" {
		t.Errorf("unexpected name: %q", doc.Meta.Name)
	}
	if got := doc.Meta.ConfidenceOr(0); got != 0.7 {
		t.Errorf("unexpected confidence: %v", got)
	}
	if doc.Meta.Category != "testing" {
		t.Errorf("unexpected category: %q", doc.Meta.Category)
	}
	if doc.Meta.Tool != "go" {
		t.Errorf("unexpected tool: %q", doc.Meta.Tool)
	}
	if doc.Body != "When writing tests, prefer table-driven cases." {
		t.Errorf("unexpected body: %q", doc.Body)
	}
}

func TestParsePreservesExtraFields(t *testing.T) {
	content := "---\n" +
		"name: check-exit-codes\n" +
		"confidence: 0.5\n" +
		"source: session-2024-11-02\n" +
		"---\n" +
		"Always check process exit codes.\n"

	doc, err := Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if doc.Meta.Extra["source"] != "session-2024-11-02" {
		t.Errorf("expected extra field preserved, got %v", doc.Meta.Extra)
	}
}

func TestParseNoFence(t *testing.T) {
	content := "Just a markdown note without any header.\n"

	doc, err := Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if doc.Meta.Name != "" || doc.Meta.Confidence != nil {
		t.Fatalf("expected empty metadata, got %+v", doc.Meta)
	}
	if doc.Body != content {
		t.Errorf("expected body to be full content, got %q", doc.Body)
	}
}

func TestParseUnterminatedFence(t *testing.T) {
	content := "---\nname: dangling\nno closing fence here\n"

	doc, err := Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if doc.Meta.Name != "" {
		t.Errorf("expected no metadata for unterminated fence, got %q", doc.Meta.Name)
	}
	if doc.Body != content {
		t.Errorf("expected body to be full content, got %q", doc.Body)
	}
}

func TestParseIgnoresDashesInsideBody(t *testing.T) {
	content := "---\n" +
		"name: horizontal-rules\n" +
		"---\n" +
		"Above the rule.\n\n---\n\nBelow the rule.\n"

	doc, err := Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if doc.Meta.Name != "horizontal-rules" {
		t.Fatalf("unexpected name: %q", doc.Meta.Name)
	}
	if !strings.Contains(doc.Body, "Below the rule.") {
		t.Errorf("expected body to keep trailing section, got %q", doc.Body)
	}
}

func TestParseMalformedYAML(t *testing.T) {
	content := "---\nname: [unbalanced\n---\nbody\n"

	if _, err := Parse([]byte(content)); err == nil {
		t.Fatal("expected parse error for malformed header")
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	var doc Document
	doc.Meta.Name = "avoid-global-state"
	doc.Meta.SetConfidence(0.62)
	doc.Meta.Category = "architecture"
	doc.Body = "Pass dependencies explicitly instead of reaching for globals."

	encoded, err := Serialize(doc)
	if err != nil {
		t.Fatalf("Serialize returned error: %v", err)
	}

	parsed, err := Parse(encoded)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if parsed.Meta.Name != doc.Meta.Name {
		t.Errorf("name changed across round trip: %q", parsed.Meta.Name)
	}
	if got := parsed.Meta.ConfidenceOr(0); got != 0.62 {
		t.Errorf("confidence changed across round trip: %v", got)
	}
	if parsed.Body != doc.Body {
		t.Errorf("body changed across round trip: %q", parsed.Body)
	}
}

func TestMetadataMap(t *testing.T) {
	meta := Metadata{
		Name:     "prefer-table-tests",
		Category: "testing",
		Extra:    map[string]any{"source": "session-42"},
	}
	meta.SetConfidence(0.7)

	got, err := meta.Map()
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if got["name"] != "prefer-table-tests" {
		t.Errorf("name = %v", got["name"])
	}
	if got["confidence"] != 0.7 {
		t.Errorf("confidence = %v (%T)", got["confidence"], got["confidence"])
	}
	if got["source"] != "session-42" {
		t.Errorf("extra field lost: %v", got)
	}
	if _, ok := got["last_evolved"]; ok {
		t.Error("empty fields should be omitted")
	}
}

func TestSerializeOmitsMissingConfidence(t *testing.T) {
	var doc Document
	doc.Meta.Name = "no-confidence-yet"
	doc.Body = "body"

	encoded, err := Serialize(doc)
	if err != nil {
		t.Fatalf("Serialize returned error: %v", err)
	}
	if strings.Contains(string(encoded), "confidence") {
		t.Errorf("expected confidence to be omitted, got:\n%s", encoded)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.md")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "instinct.md")
	content := "---\nname: from-disk\nconfidence: 0.4\n---\nbody text\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if doc.Meta.Name != "from-disk" {
		t.Errorf("unexpected name: %q", doc.Meta.Name)
	}
	if doc.Body != "body text" {
		t.Errorf("unexpected body: %q", doc.Body)
	}
}
