// Package lint scans a project tree for leftover debugging statements. It is
// a heuristic line scanner, not a parser; matches inside strings or comments
// are reported too.
package lint

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Finding is one flagged line. Path is relative to the scanned root and
// slash-separated.
type Finding struct {
	Path    string `json:"path"`
	Line    int    `json:"line"`
	Rule    string `json:"rule"`
	Snippet string `json:"snippet"`
}

// Report holds the results of one scan.
type Report struct {
	Root     string    `json:"root"`
	Scanned  int       `json:"scanned"`
	Findings []Finding `json:"findings"`
}

// Scan walks the tree under root and applies the rule table to every file
// whose extension it covers. Findings come back ordered by path, then line.
// Unreadable files are skipped so a permission hole never aborts the scan.
func Scan(root string, log *zap.Logger) (Report, error) {
	if log == nil {
		log = zap.NewNop()
	}

	report := Report{Root: root}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		rules, ok := rulesByExt[filepath.Ext(d.Name())]
		if !ok {
			return nil
		}
		report.Scanned++

		findings, err := scanFile(path, root, rules)
		if err != nil {
			log.Warn("skipping unreadable file", zap.String("path", path), zap.Error(err))
			return nil
		}
		report.Findings = append(report.Findings, findings...)
		return nil
	})
	if err != nil {
		return Report{}, fmt.Errorf("scan %s: %w", root, err)
	}

	sort.Slice(report.Findings, func(i, j int) bool {
		if report.Findings[i].Path != report.Findings[j].Path {
			return report.Findings[i].Path < report.Findings[j].Path
		}
		return report.Findings[i].Line < report.Findings[j].Line
	})
	return report, nil
}

func scanFile(path, root string, rules []Rule) ([]Finding, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}

	var findings []Finding
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		for _, rule := range rules {
			if rule.Pattern.MatchString(text) {
				findings = append(findings, Finding{
					Path:    filepath.ToSlash(rel),
					Line:    line,
					Rule:    rule.ID,
					Snippet: strings.TrimSpace(text),
				})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return findings, nil
}
