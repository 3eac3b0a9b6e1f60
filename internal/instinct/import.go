package instinct

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"go.uber.org/zap"

	"homunculus/internal/paths"
	"homunculus/pkg/frontmatter"
)

// ImportResult describes what an import did. Name and Confidence report the
// header values the file will be read with, defaults applied.
type ImportResult struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	Dest       string  `json:"dest"`
	Skipped    bool    `json:"skipped"`
}

// Import copies an instinct file into the store byte for byte. A destination
// that already exists is left alone unless force is set; the result reports
// the skip instead of failing.
func (s *Store) Import(source string, force bool) (ImportResult, error) {
	content, err := os.ReadFile(source)
	if err != nil {
		return ImportResult{}, fmt.Errorf("read instinct: %w", err)
	}

	doc, err := frontmatter.Parse(content)
	if err != nil {
		s.log.Warn("importing instinct with unparseable header",
			zap.String("file", filepath.Base(source)), zap.Error(err))
		doc = frontmatter.Document{Body: string(content)}
	}

	name := doc.Meta.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	}

	result := ImportResult{
		Name:       name,
		Confidence: doc.Meta.ConfidenceOr(0.5),
		Dest:       filepath.Join(s.global.InstinctsDir, filepath.Base(source)),
	}

	exists, err := paths.FileExists(result.Dest)
	if err != nil {
		return ImportResult{}, fmt.Errorf("stat instinct: %w", err)
	}
	if exists && !force {
		result.Skipped = true
		return result, nil
	}

	if err := s.global.EnsureInstinctsDir(); err != nil {
		return ImportResult{}, err
	}
	if err := renameio.WriteFile(result.Dest, content, 0o644); err != nil {
		return ImportResult{}, fmt.Errorf("write instinct: %w", err)
	}
	return result, nil
}
