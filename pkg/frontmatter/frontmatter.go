package frontmatter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---"

// Metadata holds the typed header fields of an instinct document. Fields the
// schema does not name are preserved in Extra so a rewrite keeps them.
type Metadata struct {
	Name        string         `yaml:"name,omitempty"`
	Confidence  *float64       `yaml:"confidence,omitempty"`
	Category    string         `yaml:"category,omitempty"`
	Tool        string         `yaml:"tool,omitempty"`
	LastEvolved string         `yaml:"last_evolved,omitempty"`
	Extra       map[string]any `yaml:",inline"`
}

// ConfidenceOr returns the confidence value, or fallback when the header does
// not carry one.
func (m Metadata) ConfidenceOr(fallback float64) float64 {
	if m.Confidence == nil {
		return fallback
	}
	return *m.Confidence
}

// SetConfidence records a confidence value in the header.
func (m *Metadata) SetConfidence(value float64) {
	m.Confidence = &value
}

// Map returns the header as a plain key-value map, Extra fields included.
func (m Metadata) Map() (map[string]any, error) {
	raw, err := yaml.Marshal(&m)
	if err != nil {
		return nil, fmt.Errorf("marshal frontmatter: %w", err)
	}
	out := map[string]any{}
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("remarshal frontmatter: %w", err)
	}
	return out, nil
}

// Document pairs parsed header metadata with the markdown body.
type Document struct {
	Meta Metadata
	Body string
}

// Parse splits a fenced YAML header from the markdown body. Content without a
// leading fence parses as a document with empty metadata and the full content
// as body. An unterminated fence is treated the same way.
func Parse(content []byte) (Document, error) {
	text := string(content)

	rest, ok := trimFenceLine(text)
	if !ok {
		return Document{Body: text}, nil
	}

	header, body, ok := cutClosingFence(rest)
	if !ok {
		return Document{Body: text}, nil
	}

	var meta Metadata
	if err := yaml.Unmarshal([]byte(header), &meta); err != nil {
		return Document{}, fmt.Errorf("parse frontmatter: %w", err)
	}

	return Document{Meta: meta, Body: strings.TrimSpace(body)}, nil
}

// cutClosingFence splits text around the first fence that starts a line.
func cutClosingFence(text string) (header, body string, ok bool) {
	if after, found := trimFenceLine(text); found {
		return "", after, true
	}

	offset := 0
	for {
		idx := strings.Index(text[offset:], "\n"+fence)
		if idx < 0 {
			return "", "", false
		}
		start := offset + idx + 1
		if after, found := trimFenceLine(text[start:]); found {
			return text[:offset+idx], after, true
		}
		offset = start
	}
}

// trimFenceLine reports whether text begins with a fence on its own line and
// returns the content that follows it.
func trimFenceLine(text string) (string, bool) {
	if !strings.HasPrefix(text, fence) {
		return "", false
	}
	rest := text[len(fence):]
	switch {
	case rest == "":
		return "", true
	case strings.HasPrefix(rest, "\n"):
		return rest[1:], true
	case strings.HasPrefix(rest, "\r\n"):
		return rest[2:], true
	}
	return "", false
}

// Serialize renders the document back to fenced-header markdown.
func Serialize(doc Document) ([]byte, error) {
	header, err := yaml.Marshal(&doc.Meta)
	if err != nil {
		return nil, fmt.Errorf("marshal frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString(fence)
	b.WriteByte('\n')
	b.Write(header)
	b.WriteString(fence)
	b.WriteByte('\n')

	body := strings.TrimSpace(doc.Body)
	if body != "" {
		b.WriteByte('\n')
		b.WriteString(body)
		b.WriteByte('\n')
	}
	return []byte(b.String()), nil
}

// Load reads and parses a document from disk.
func Load(path string) (Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	doc, err := Parse(content)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return doc, nil
}
