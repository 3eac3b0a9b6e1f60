// Package instinct manages the learned-instinct files that accumulate under
// the global data directory. Each instinct is a markdown file with a YAML
// header carrying at least a name and a confidence score; the observations
// log feeds confidence updates.
package instinct

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"homunculus/internal/paths"
	"homunculus/pkg/frontmatter"
)

const timestampLayout = "2006-01-02T15:04:05-0700"

// Store reads and writes instinct files and the observations log.
type Store struct {
	global paths.GlobalPaths
	log    *zap.Logger
}

func NewStore(gp paths.GlobalPaths, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{global: gp, log: log}
}

// Dir returns the directory instinct files live in.
func (s *Store) Dir() string {
	return s.global.InstinctsDir
}

// Instinct is one parsed instinct file. Name and Category fall back to the
// file stem and "general" when the header omits them; Confidence is clamped
// to [0, 1] and defaults to zero.
type Instinct struct {
	Filename   string
	Name       string
	Category   string
	Confidence float64
	Meta       frontmatter.Metadata
	Body       string
}

// List returns the instincts in filename order. A missing directory is an
// empty store, and files that fail to parse are skipped.
func (s *Store) List() ([]Instinct, error) {
	entries, err := os.ReadDir(s.global.InstinctsDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read instincts directory: %w", err)
	}

	var out []Instinct
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		doc, err := frontmatter.Load(filepath.Join(s.global.InstinctsDir, entry.Name()))
		if err != nil {
			s.log.Warn("skipping unparseable instinct", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		out = append(out, newInstinct(entry.Name(), doc))
	}
	return out, nil
}

func newInstinct(filename string, doc frontmatter.Document) Instinct {
	name := doc.Meta.Name
	if name == "" {
		name = strings.TrimSuffix(filename, ".md")
	}
	category := doc.Meta.Category
	if category == "" {
		category = "general"
	}
	return Instinct{
		Filename:   filename,
		Name:       name,
		Category:   category,
		Confidence: clamp01(doc.Meta.ConfidenceOr(0)),
		Meta:       doc.Meta,
		Body:       doc.Body,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ObservationStats summarizes the observations log for status output.
type ObservationStats struct {
	Entries int
	Bytes   int64
}

// Stats counts log lines and bytes. ok is false when no log exists yet.
func (s *Store) Stats() (ObservationStats, bool, error) {
	info, err := os.Stat(s.global.ObservationsFile)
	if errors.Is(err, os.ErrNotExist) {
		return ObservationStats{}, false, nil
	}
	if err != nil {
		return ObservationStats{}, false, fmt.Errorf("stat observations: %w", err)
	}

	file, err := os.Open(s.global.ObservationsFile)
	if err != nil {
		return ObservationStats{}, false, fmt.Errorf("open observations: %w", err)
	}
	defer file.Close()

	entries := 0
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		entries++
	}
	if err := scanner.Err(); err != nil {
		return ObservationStats{}, false, fmt.Errorf("scan observations: %w", err)
	}
	return ObservationStats{Entries: entries, Bytes: info.Size()}, true, nil
}

// loadObservations returns the JSON-decodable lines of the observations log.
// Blank and malformed lines are skipped so one bad append never wedges the
// evolve pipeline. A missing log yields an empty slice.
func (s *Store) loadObservations() ([]string, error) {
	file, err := os.Open(s.global.ObservationsFile)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open observations: %w", err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !json.Valid([]byte(line)) {
			s.log.Debug("skipping malformed observation line")
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan observations: %w", err)
	}
	return lines, nil
}
