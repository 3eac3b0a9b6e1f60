package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	metaDirName      = ".homunculus"
	configFileName   = "config.json"
	logsDirName      = "logs"
	observationsName = "observations.jsonl"
)

// ProjectPaths captures canonical locations for a project checkout.
type ProjectPaths struct {
	Root       string
	MetaDir    string
	ConfigFile string
}

// Resolve determines the project root using the optional --project flag or the
// current working directory when the flag is empty.
func Resolve(projectFlag string) (ProjectPaths, error) {
	var (
		root string
		err  error
	)

	if projectFlag != "" {
		root, err = filepath.Abs(projectFlag)
	} else {
		root, err = os.Getwd()
	}
	if err != nil {
		return ProjectPaths{}, fmt.Errorf("resolve project root: %w", err)
	}

	return NewProject(root), nil
}

// NewProject builds the project path set rooted at the given directory.
func NewProject(root string) ProjectPaths {
	metaDir := filepath.Join(root, metaDirName)
	return ProjectPaths{
		Root:       root,
		MetaDir:    metaDir,
		ConfigFile: filepath.Join(metaDir, configFileName),
	}
}

// EnsureMetaDir creates the hidden metadata directory under the project root.
func (p ProjectPaths) EnsureMetaDir() error {
	if err := os.MkdirAll(p.MetaDir, 0o755); err != nil {
		return fmt.Errorf("create metadata dir: %w", err)
	}
	return nil
}

// GlobalPaths captures the per-user homunculus directory tree.
type GlobalPaths struct {
	Root             string
	ConfigFile       string
	LogsDir          string
	InstinctsDir     string
	ObservationsFile string
}

// ResolveGlobal determines the user-level directory (~/.homunculus), honoring
// the HOMUNCULUS_HOME override. The tree is computed only; nothing is created
// until a writer needs it.
func ResolveGlobal() (GlobalPaths, error) {
	if override, ok := os.LookupEnv("HOMUNCULUS_HOME"); ok && override != "" {
		abs, err := filepath.Abs(override)
		if err != nil {
			return GlobalPaths{}, fmt.Errorf("resolve HOMUNCULUS_HOME: %w", err)
		}
		return NewGlobal(abs), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return GlobalPaths{}, fmt.Errorf("detect user home: %w", err)
	}
	return NewGlobal(filepath.Join(home, metaDirName)), nil
}

// NewGlobal builds the global path set rooted at the given directory.
func NewGlobal(root string) GlobalPaths {
	return GlobalPaths{
		Root:             root,
		ConfigFile:       filepath.Join(root, configFileName),
		LogsDir:          filepath.Join(root, logsDirName),
		InstinctsDir:     filepath.Join(root, "instincts", "personal"),
		ObservationsFile: filepath.Join(root, observationsName),
	}
}

// EnsureLogsDir creates the global logs directory.
func (g GlobalPaths) EnsureLogsDir() error {
	if err := os.MkdirAll(g.LogsDir, 0o755); err != nil {
		return fmt.Errorf("create logs dir: %w", err)
	}
	return nil
}

// EnsureInstinctsDir creates the personal instincts directory.
func (g GlobalPaths) EnsureInstinctsDir() error {
	if err := os.MkdirAll(g.InstinctsDir, 0o755); err != nil {
		return fmt.Errorf("create instincts dir: %w", err)
	}
	return nil
}

// FileExists reports whether a path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// DirExists reports whether a path exists and is a directory.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}
