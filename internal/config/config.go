package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// Document is the persisted toolchain selection for one scope. Empty fields
// mean the scope expresses no preference. Unknown fields in the file are
// ignored so future keys do not break older binaries.
type Document struct {
	BuildSystem string `json:"buildSystem,omitempty"`
	Compiler    string `json:"compiler,omitempty"`
}

// IsZero reports whether the document carries no selections.
func (d Document) IsZero() bool {
	return d.BuildSystem == "" && d.Compiler == ""
}

// Load reads a configuration document from disk. A missing file yields a zero
// document and no error. Unreadable or malformed content yields a zero
// document plus the error so callers can treat the scope as absent while
// still logging the cause.
func Load(path string) (Document, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Document{}, nil
		}
		return Document{}, fmt.Errorf("read config: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(contents, &doc); err != nil {
		return Document{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return doc, nil
}

// Save replaces the document at path atomically, creating parent directories
// as needed. The whole document is written in one rename so a reader never
// observes a partial update.
func Save(path string, doc Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	buf, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	buf = append(buf, '\n')

	if err := renameio.WriteFile(path, buf, 0o644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
