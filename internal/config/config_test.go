package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	doc, err := Load(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("Load returned error for missing file: %v", err)
	}
	if !doc.IsZero() {
		t.Fatalf("expected zero document, got %+v", doc)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".homunculus", "config.json")

	if err := Save(path, Document{BuildSystem: "cmake", Compiler: "clang"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.BuildSystem != "cmake" {
		t.Errorf("unexpected build system: %q", doc.BuildSystem)
	}
	if doc.Compiler != "clang" {
		t.Errorf("unexpected compiler: %q", doc.Compiler)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	doc, err := Load(path)
	if err == nil {
		t.Fatal("expected error for malformed document")
	}
	if !doc.IsZero() {
		t.Fatalf("expected zero document alongside error, got %+v", doc)
	}
}

func TestLoadIgnoresUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"buildSystem": "meson", "futureKey": {"nested": true}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.BuildSystem != "meson" {
		t.Errorf("unexpected build system: %q", doc.BuildSystem)
	}
}

func TestSaveReplacesWholeDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	if err := Save(path, Document{BuildSystem: "cmake", Compiler: "gcc"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := Save(path, Document{BuildSystem: "meson"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.BuildSystem != "meson" {
		t.Errorf("unexpected build system: %q", doc.BuildSystem)
	}
	if doc.Compiler != "" {
		t.Errorf("expected compiler cleared by whole-document replace, got %q", doc.Compiler)
	}
}

func TestSaveWriteError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	err := Save(filepath.Join(blocker, "config.json"), Document{BuildSystem: "make"})
	if err == nil {
		t.Fatal("expected write error")
	}

	var writeErr *WriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("expected *WriteError, got %T", err)
	}
	if writeErr.Path == "" {
		t.Error("expected error to carry the target path")
	}
}
