package toolchain

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"homunculus/internal/config"
	"homunculus/internal/paths"
)

// Options configures a Resolver. Zero values fall back to the working
// directory and the user-level homunculus directory.
type Options struct {
	ProjectDir string
	GlobalDir  string
	Log        *zap.Logger
}

// Resolver walks the source priority order to answer toolchain questions.
// Every path it touches is explicit so tests can point it at fixtures
// instead of the real home directory.
type Resolver struct {
	project paths.ProjectPaths
	global  paths.GlobalPaths
	log     *zap.Logger
}

// New builds a resolver from options.
func New(opts Options) (*Resolver, error) {
	project, err := paths.Resolve(opts.ProjectDir)
	if err != nil {
		return nil, err
	}

	var global paths.GlobalPaths
	if opts.GlobalDir != "" {
		global = paths.NewGlobal(opts.GlobalDir)
	} else {
		global, err = paths.ResolveGlobal()
		if err != nil {
			return nil, err
		}
	}

	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	return &Resolver{project: project, global: global, log: log}, nil
}

// ProjectPaths returns the project path set in use.
func (r *Resolver) ProjectPaths() paths.ProjectPaths { return r.project }

// GlobalPaths returns the global path set in use.
func (r *Resolver) GlobalPaths() paths.GlobalPaths { return r.global }

// Resolve determines the effective candidate for a kind. It always succeeds:
// the sources are consulted in one fixed priority order, first valid match
// wins, and the hardcoded default backs the chain. Nothing is cached; every
// call re-reads the environment, the documents, and the filesystem.
func (r *Resolver) Resolve(kind Kind) Resolution {
	res := Resolution{Kind: kind}

	probes := []func(Kind) (Candidate, Step, bool){
		r.fromEnvironment,
		r.fromProjectConfig,
		r.fromProjectFile,
		r.fromGlobalConfig,
		r.fromPathProbe,
	}

	for _, probe := range probes {
		c, step, ok := probe(kind)
		res.Steps = append(res.Steps, step)
		if ok {
			res.Candidate = c
			res.Value = c.ID
			res.Source = step.Source
			return res
		}
	}

	def := Default(kind)
	res.Steps = append(res.Steps, Step{Source: SourceDefault, Detail: "hardcoded default " + def.ID, Hit: true})
	res.Candidate = def
	res.Value = def.ID
	res.Source = SourceDefault
	return res
}

func (r *Resolver) fromEnvironment(kind Kind) (Candidate, Step, bool) {
	name := EnvVar(kind)
	step := Step{Source: SourceEnvironment}

	raw, ok := os.LookupEnv(name)
	if !ok || strings.TrimSpace(raw) == "" {
		step.Detail = name + " not set"
		return Candidate{}, step, false
	}

	c, ok := Lookup(kind, raw)
	if !ok {
		step.Detail = fmt.Sprintf("%s=%q is not a known %s, skipped", name, raw, kind)
		r.log.Debug("ignoring environment override",
			zap.String("var", name),
			zap.String("value", raw))
		return Candidate{}, step, false
	}

	step.Detail = name + "=" + c.ID
	step.Hit = true
	return c, step, true
}

func (r *Resolver) fromProjectConfig(kind Kind) (Candidate, Step, bool) {
	return r.fromConfig(kind, SourceProjectConfig, r.project.ConfigFile)
}

func (r *Resolver) fromGlobalConfig(kind Kind) (Candidate, Step, bool) {
	return r.fromConfig(kind, SourceGlobalConfig, r.global.ConfigFile)
}

func (r *Resolver) fromConfig(kind Kind, source Source, path string) (Candidate, Step, bool) {
	step := Step{Source: source}

	doc, err := config.Load(path)
	if err != nil {
		step.Detail = "unreadable document, skipped"
		r.log.Debug("skipping config document",
			zap.String("path", path),
			zap.Error(err))
		return Candidate{}, step, false
	}

	raw := docValue(doc, kind)
	if raw == "" {
		step.Detail = "no selection recorded"
		return Candidate{}, step, false
	}

	c, ok := Lookup(kind, raw)
	if !ok {
		step.Detail = fmt.Sprintf("unknown value %q, skipped", raw)
		r.log.Debug("ignoring unknown config value",
			zap.String("path", path),
			zap.String("value", raw))
		return Candidate{}, step, false
	}

	step.Detail = "selected " + c.ID
	step.Hit = true
	return c, step, true
}

func docValue(doc config.Document, kind Kind) string {
	switch kind {
	case KindBuildSystem:
		return doc.BuildSystem
	case KindCompiler:
		return doc.Compiler
	}
	return ""
}

func (r *Resolver) fromProjectFile(kind Kind) (Candidate, Step, bool) {
	step := Step{Source: SourceProjectFile}

	for _, c := range Candidates(kind) {
		for _, marker := range c.Markers {
			ok, err := paths.FileExists(filepath.Join(r.project.Root, marker))
			if err != nil {
				r.log.Debug("marker probe failed",
					zap.String("marker", marker),
					zap.Error(err))
				continue
			}
			if ok {
				step.Detail = marker + " found"
				step.Hit = true
				return c, step, true
			}
		}
	}

	step.Detail = "no marker files found"
	return Candidate{}, step, false
}

func (r *Resolver) fromPathProbe(kind Kind) (Candidate, Step, bool) {
	step := Step{Source: SourceFallback}

	for c := range r.Available(kind) {
		step.Detail = c.ID + " on PATH"
		step.Hit = true
		return c, step, true
	}

	step.Detail = "no candidates on PATH"
	return Candidate{}, step, false
}
