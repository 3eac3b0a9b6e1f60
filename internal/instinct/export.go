package instinct

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/renameio/v2"
)

// ErrNoInstincts is returned by Export when the store is empty.
var ErrNoInstincts = errors.New("no instincts to export")

type exportEntry struct {
	Filename string         `json:"filename"`
	Metadata map[string]any `json:"metadata"`
	Body     string         `json:"body"`
}

type exportBundle struct {
	ExportedAt    string        `json:"exported_at"`
	InstinctCount int           `json:"instinct_count"`
	Instincts     []exportEntry `json:"instincts"`
}

// ExportResult reports where a bundle landed and how many instincts it holds.
type ExportResult struct {
	Count int    `json:"count"`
	Path  string `json:"path"`
}

// Export writes every instinct into a single portable JSON bundle at output.
func (s *Store) Export(output string) (ExportResult, error) {
	instincts, err := s.List()
	if err != nil {
		return ExportResult{}, err
	}
	if len(instincts) == 0 {
		return ExportResult{}, ErrNoInstincts
	}

	bundle := exportBundle{
		ExportedAt:    time.Now().Format(timestampLayout),
		InstinctCount: len(instincts),
	}
	for _, inst := range instincts {
		meta, err := inst.Meta.Map()
		if err != nil {
			return ExportResult{}, fmt.Errorf("encode %s: %w", inst.Filename, err)
		}
		bundle.Instincts = append(bundle.Instincts, exportEntry{
			Filename: inst.Filename,
			Metadata: meta,
			Body:     inst.Body,
		})
	}

	buf, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return ExportResult{}, fmt.Errorf("encode export: %w", err)
	}
	buf = append(buf, '\n')

	if err := renameio.WriteFile(output, buf, 0o644); err != nil {
		return ExportResult{}, fmt.Errorf("write export: %w", err)
	}
	return ExportResult{Count: len(instincts), Path: output}, nil
}
