package toolchain

import (
	"runtime"
	"strings"
)

// Candidate sets are ordered by preference, not alphabetically. Generator
// systems outrank the artifacts they generate, so a project carrying both
// CMakeLists.txt and a generated Makefile detects as cmake.
var buildSystems = []Candidate{
	{
		ID:          "cmake",
		Name:        "CMake",
		Markers:     []string{"CMakeLists.txt"},
		Executables: []string{executableName("cmake")},
		VersionArgs: []string{"--version"},
		Commands: map[Action]string{
			ActionConfigure: "cmake -S . -B build -DCMAKE_C_COMPILER={cc} -DCMAKE_CXX_COMPILER={cxx}",
			ActionBuild:     "cmake --build build --parallel",
			ActionTest:      "ctest --test-dir build --output-on-failure",
			ActionClean:     "cmake --build build --target clean",
		},
	},
	{
		ID:          "meson",
		Name:        "Meson",
		Markers:     []string{"meson.build"},
		Executables: []string{executableName("meson")},
		VersionArgs: []string{"--version"},
		Commands: map[Action]string{
			ActionConfigure: "CC={cc} CXX={cxx} meson setup build",
			ActionBuild:     "meson compile -C build",
			ActionTest:      "meson test -C build",
			ActionClean:     "meson compile -C build --clean",
		},
	},
	{
		ID:          "bazel",
		Name:        "Bazel",
		Markers:     []string{"MODULE.bazel", "WORKSPACE", "WORKSPACE.bazel", "BUILD.bazel", "BUILD"},
		Executables: []string{executableName("bazel"), executableName("bazelisk")},
		VersionArgs: []string{"--version"},
		// Bazel has no separate configure step.
		Commands: map[Action]string{
			ActionBuild: "bazel build //...",
			ActionTest:  "bazel test //...",
			ActionClean: "bazel clean",
		},
	},
	{
		ID:          "autotools",
		Name:        "GNU Autotools",
		Aliases:     []string{"autoconf"},
		Markers:     []string{"configure.ac", "configure.in"},
		Executables: []string{executableName("autoconf")},
		VersionArgs: []string{"--version"},
		Commands: map[Action]string{
			ActionConfigure: "./configure CC={cc} CXX={cxx}",
			ActionBuild:     "make",
			ActionTest:      "make check",
			ActionClean:     "make clean",
		},
	},
	{
		ID:          "ninja",
		Name:        "Ninja",
		Markers:     []string{"build.ninja"},
		Executables: []string{executableName("ninja")},
		VersionArgs: []string{"--version"},
		Commands: map[Action]string{
			ActionBuild: "ninja",
			ActionTest:  "ninja test",
			ActionClean: "ninja -t clean",
		},
	},
	{
		ID:          "make",
		Name:        "Make",
		Aliases:     []string{"gmake"},
		Markers:     []string{"Makefile", "makefile", "GNUmakefile"},
		Executables: []string{executableName("make"), executableName("gmake")},
		VersionArgs: []string{"--version"},
		Commands: map[Action]string{
			ActionBuild: "make",
			ActionTest:  "make test",
			ActionClean: "make clean",
		},
	},
}

// Compilers carry no project markers; detection for them is executable
// presence only.
var compilers = []Candidate{
	{
		ID:          "clang",
		Name:        "Clang",
		Aliases:     []string{"clang++"},
		Executables: []string{executableName("clang")},
		VersionArgs: []string{"--version"},
		CC:          "clang",
		CXX:         "clang++",
	},
	{
		ID:          "gcc",
		Name:        "GCC",
		Aliases:     []string{"g++"},
		Executables: []string{executableName("gcc")},
		VersionArgs: []string{"--version"},
		CC:          "gcc",
		CXX:         "g++",
	},
	{
		ID:          "msvc",
		Name:        "MSVC",
		Aliases:     []string{"cl", "cl.exe"},
		Executables: []string{"cl.exe"},
		CC:          "cl",
		CXX:         "cl",
	},
}

var defaults = map[Kind]string{
	KindBuildSystem: "make",
	KindCompiler:    "gcc",
}

var envVars = map[Kind]string{
	KindBuildSystem: "HOMUNCULUS_BUILD_SYSTEM",
	KindCompiler:    "HOMUNCULUS_COMPILER",
}

func executableName(base string) string {
	if runtime.GOOS == "windows" {
		return base + ".exe"
	}
	return base
}

// Candidates returns the candidate set for a kind in preference order.
func Candidates(kind Kind) []Candidate {
	switch kind {
	case KindBuildSystem:
		return buildSystems
	case KindCompiler:
		return compilers
	}
	return nil
}

// Default returns the hardcoded terminal candidate for a kind.
func Default(kind Kind) Candidate {
	c, _ := Lookup(kind, defaults[kind])
	return c
}

// EnvVar returns the environment override variable for a kind.
func EnvVar(kind Kind) string {
	return envVars[kind]
}

// Lookup canonicalizes a raw value against the kind's candidate set. Matching
// is case-insensitive over IDs and aliases with surrounding whitespace
// ignored; the same rule applies to every source a value can arrive from.
func Lookup(kind Kind, raw string) (Candidate, bool) {
	needle := strings.ToLower(strings.TrimSpace(raw))
	if needle == "" {
		return Candidate{}, false
	}
	for _, c := range Candidates(kind) {
		if strings.ToLower(c.ID) == needle {
			return c, true
		}
		for _, alias := range c.Aliases {
			if strings.ToLower(alias) == needle {
				return c, true
			}
		}
	}
	return Candidate{}, false
}

// KindOf reports which kind a raw identifier belongs to. IDs and aliases are
// disjoint across kinds, so the first match wins.
func KindOf(raw string) (Kind, Candidate, bool) {
	for _, kind := range Kinds() {
		if c, ok := Lookup(kind, raw); ok {
			return kind, c, true
		}
	}
	return "", Candidate{}, false
}

// IDs returns the candidate identifiers for a kind in preference order.
func IDs(kind Kind) []string {
	cands := Candidates(kind)
	ids := make([]string, 0, len(cands))
	for _, c := range cands {
		ids = append(ids, c.ID)
	}
	return ids
}
