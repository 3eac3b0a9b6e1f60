package instinct

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/renameio/v2"

	"homunculus/pkg/frontmatter"
)

// Evolution records one confidence change made by Evolve.
type Evolution struct {
	Filename string  `json:"filename"`
	Name     string  `json:"name"`
	Old      float64 `json:"old"`
	New      float64 `json:"new"`
	Hits     int     `json:"hits"`
}

// EvolveReport summarizes an evolve pass. Changes holds only the instincts
// whose confidence actually moved.
type EvolveReport struct {
	Observations int         `json:"observations"`
	Instincts    int         `json:"instincts"`
	Changes      []Evolution `json:"changes,omitempty"`
}

// EvolveProgress receives each instinct as it is scored. change is nil when
// the confidence did not move.
type EvolveProgress func(inst Instinct, change *Evolution)

// Evolve re-scores every instinct against the observations log and rewrites
// the files whose confidence moved. Confidence climbs with the number of
// matching observations and decays slowly without evidence; each step is
// capped so no instinct jumps straight to certainty.
func (s *Store) Evolve(progress EvolveProgress) (EvolveReport, error) {
	observations, err := s.loadObservations()
	if err != nil {
		return EvolveReport{}, err
	}
	instincts, err := s.List()
	if err != nil {
		return EvolveReport{}, err
	}

	report := EvolveReport{Observations: len(observations), Instincts: len(instincts)}
	if len(observations) == 0 || len(instincts) == 0 {
		return report, nil
	}

	lowered := make([]string, len(observations))
	for i, obs := range observations {
		lowered[i] = strings.ToLower(obs)
	}

	now := time.Now().Format(timestampLayout)
	for _, inst := range instincts {
		hits := countRelevant(lowered, keywordsFor(inst))
		old := inst.Meta.ConfidenceOr(0.3)
		next := round2(nextConfidence(old, hits))
		if math.Abs(next-old) <= 0.001 {
			if progress != nil {
				progress(inst, nil)
			}
			continue
		}

		meta := inst.Meta
		meta.SetConfidence(next)
		meta.LastEvolved = now
		buf, err := frontmatter.Serialize(frontmatter.Document{Meta: meta, Body: inst.Body})
		if err != nil {
			return report, fmt.Errorf("serialize %s: %w", inst.Filename, err)
		}
		path := filepath.Join(s.global.InstinctsDir, inst.Filename)
		if err := renameio.WriteFile(path, buf, 0o644); err != nil {
			return report, fmt.Errorf("rewrite %s: %w", inst.Filename, err)
		}

		change := Evolution{
			Filename: inst.Filename,
			Name:     inst.Name,
			Old:      old,
			New:      next,
			Hits:     hits,
		}
		report.Changes = append(report.Changes, change)
		if progress != nil {
			progress(inst, &change)
		}
	}
	return report, nil
}

// nextConfidence maps observation hits to the next confidence value. No
// evidence decays toward 0.1; sparse evidence raises slowly toward 0.5 and
// heavier evidence toward 0.7 and 0.85.
func nextConfidence(old float64, hits int) float64 {
	switch {
	case hits == 0:
		return math.Max(0.1, old-0.05)
	case hits <= 3:
		return math.Min(0.5, old+0.05)
	case hits <= 6:
		return math.Min(0.7, old+0.1)
	default:
		return math.Min(0.85, old+0.15)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

var keywordSpacer = strings.NewReplacer("-", " ", "_", " ")

// keywordsFor derives the match terms for an instinct: its name with
// separators widened to spaces, plus the tool it watches when set.
func keywordsFor(inst Instinct) []string {
	kw := []string{keywordSpacer.Replace(strings.ToLower(inst.Name))}
	if inst.Meta.Tool != "" {
		kw = append(kw, strings.ToLower(inst.Meta.Tool))
	}
	return kw
}

func countRelevant(lowered []string, keywords []string) int {
	hits := 0
	for _, obs := range lowered {
		for _, kw := range keywords {
			if strings.Contains(obs, kw) {
				hits++
				break
			}
		}
	}
	return hits
}
