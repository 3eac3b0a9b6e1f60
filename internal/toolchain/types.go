package toolchain

import (
	"fmt"
	"strings"
)

// Kind selects which toolchain setting an operation works on.
type Kind string

const (
	KindBuildSystem Kind = "build-system"
	KindCompiler    Kind = "compiler"
)

// Kinds returns all setting kinds in display order.
func Kinds() []Kind {
	return []Kind{KindBuildSystem, KindCompiler}
}

// ParseKind validates a setting kind name. A couple of short spellings are
// accepted alongside the canonical forms.
func ParseKind(raw string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "build-system", "buildsystem", "build":
		return KindBuildSystem, nil
	case "compiler", "cc":
		return KindCompiler, nil
	}
	return "", fmt.Errorf("unknown setting kind %q (expected build-system or compiler)", raw)
}

// Source identifies where a resolved value came from.
type Source string

const (
	SourceEnvironment   Source = "environment"
	SourceProjectConfig Source = "project-config"
	SourceProjectFile   Source = "project-file"
	SourceGlobalConfig  Source = "global-config"
	SourceFallback      Source = "fallback"
	SourceDefault       Source = "default"
)

// Action names a build-system operation that can be rendered to a command.
type Action string

const (
	ActionConfigure Action = "configure"
	ActionBuild     Action = "build"
	ActionTest      Action = "test"
	ActionClean     Action = "clean"
)

// Candidate describes one selectable toolchain value. Descriptors are static
// catalog data; nothing mutates them after init.
type Candidate struct {
	ID      string
	Name    string
	Aliases []string

	// Markers are project files whose presence selects this candidate
	// during detection, checked in order.
	Markers []string

	// Executables prove the candidate is installed. Any one of them
	// resolving on PATH counts.
	Executables []string

	// VersionArgs is the argv suffix used to read a version line. Empty
	// means the candidate has no safe version switch.
	VersionArgs []string

	// CC and CXX hold the C and C++ driver invocations for compiler
	// candidates.
	CC  string
	CXX string

	// Commands maps actions to command templates for build-system
	// candidates. Templates may reference {cc} and {cxx}.
	Commands map[Action]string
}

// Step records one consulted source during a resolve pass.
type Step struct {
	Source Source `json:"source"`
	Detail string `json:"detail"`
	Hit    bool   `json:"hit"`
}

// Resolution is the outcome of a resolve pass. It is recomputed on every
// request and never stored.
type Resolution struct {
	Kind      Kind      `json:"kind"`
	Candidate Candidate `json:"-"`
	Value     string    `json:"value"`
	Source    Source    `json:"source"`
	Steps     []Step    `json:"steps,omitempty"`
}

// Probe reports a candidate's install state on PATH.
type Probe struct {
	Candidate Candidate `json:"-"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Path      string    `json:"path,omitempty"`
	Version   string    `json:"version,omitempty"`
	Installed bool      `json:"installed"`
}
