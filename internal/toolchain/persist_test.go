package toolchain

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"homunculus/internal/config"
)

func TestPersistThenResolveProjectScope(t *testing.T) {
	r, _, _ := newTestResolver(t)

	if err := r.Persist(KindBuildSystem, "CMake", ScopeProject); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	res := r.Resolve(KindBuildSystem)
	if res.Value != "cmake" {
		t.Errorf("expected persisted value to resolve, got %q", res.Value)
	}
	if res.Source != SourceProjectConfig {
		t.Errorf("expected source project-config, got %q", res.Source)
	}
}

func TestPersistGlobalScope(t *testing.T) {
	r, _, globalDir := newTestResolver(t)

	if err := r.Persist(KindCompiler, "clang++", ScopeGlobal); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	doc, err := config.Load(filepath.Join(globalDir, "config.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Compiler != "clang" {
		t.Errorf("expected canonical id clang in document, got %q", doc.Compiler)
	}

	res := r.Resolve(KindCompiler)
	if res.Value != "clang" || res.Source != SourceGlobalConfig {
		t.Errorf("expected clang from global-config, got %q from %q", res.Value, res.Source)
	}
}

func TestPersistPreservesOtherKind(t *testing.T) {
	r, projectDir, _ := newTestResolver(t)

	if err := r.Persist(KindBuildSystem, "meson", ScopeProject); err != nil {
		t.Fatalf("Persist build system: %v", err)
	}
	if err := r.Persist(KindCompiler, "gcc", ScopeProject); err != nil {
		t.Fatalf("Persist compiler: %v", err)
	}

	doc, err := config.Load(filepath.Join(projectDir, ".homunculus", "config.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.BuildSystem != "meson" || doc.Compiler != "gcc" {
		t.Errorf("expected both selections kept, got %+v", doc)
	}
}

func TestPersistUnknownCandidate(t *testing.T) {
	r, _, _ := newTestResolver(t)

	err := r.Persist(KindBuildSystem, "foocc", ScopeGlobal)
	if err == nil {
		t.Fatal("expected error for unknown candidate")
	}

	var unknown *UnknownCandidateError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected *UnknownCandidateError, got %T", err)
	}
	if len(unknown.Valid) == 0 {
		t.Error("expected error to list valid identifiers")
	}
	if unknown.Valid[0] != "cmake" {
		t.Errorf("expected identifiers in preference order, got %v", unknown.Valid)
	}
}

func TestPersistOverwritesMalformedDocument(t *testing.T) {
	r, projectDir, _ := newTestResolver(t)

	path := filepath.Join(projectDir, ".homunculus", "config.json")
	if err := r.ProjectPaths().EnsureMetaDir(); err != nil {
		t.Fatalf("EnsureMetaDir: %v", err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if err := r.Persist(KindBuildSystem, "ninja", ScopeProject); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	doc, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load after persist: %v", err)
	}
	if doc.BuildSystem != "ninja" {
		t.Errorf("expected ninja, got %q", doc.BuildSystem)
	}
}
