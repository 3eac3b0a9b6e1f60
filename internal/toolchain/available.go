package toolchain

import (
	"context"
	"iter"
	"os/exec"
)

// Available yields the installed candidates for a kind in preference order.
// The sequence is lazy and finite; each time it is ranged the PATH probes
// restart from the top, so it reflects the world at iteration time.
func (r *Resolver) Available(kind Kind) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		for _, c := range Candidates(kind) {
			if _, ok := findExecutable(c); !ok {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// ProbeAll probes every candidate of a kind, reading versions for the
// installed ones. Unlike Available it also reports the missing candidates,
// which the list and doctor surfaces need.
func ProbeAll(ctx context.Context, kind Kind) []Probe {
	cands := Candidates(kind)
	probes := make([]Probe, 0, len(cands))
	for _, c := range cands {
		p := Probe{Candidate: c, ID: c.ID, Name: c.Name}
		if path, ok := findExecutable(c); ok {
			p.Installed = true
			p.Path = path
			p.Version = readVersion(ctx, path, c.VersionArgs)
		}
		probes = append(probes, p)
	}
	return probes
}

// findExecutable returns the first of the candidate's executables present on
// PATH.
func findExecutable(c Candidate) (string, bool) {
	for _, name := range c.Executables {
		if path, err := exec.LookPath(name); err == nil {
			return path, true
		}
	}
	return "", false
}
