package toolchain

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"homunculus/internal/config"
)

// Scope selects which configuration document a persist writes to.
type Scope string

const (
	ScopeProject Scope = "project"
	ScopeGlobal  Scope = "global"
)

// UnknownCandidateError reports a value that canonicalizes to no candidate of
// the kind. It carries the valid identifiers so callers can list them.
type UnknownCandidateError struct {
	Kind  Kind
	Value string
	Valid []string
}

func (e *UnknownCandidateError) Error() string {
	return fmt.Sprintf("unknown %s %q (valid: %s)", e.Kind, e.Value, strings.Join(e.Valid, ", "))
}

// Persist records a selection in the project or global document. The value is
// canonicalized first, so aliases land as their candidate ID. The existing
// document is re-read so the other kind's entry survives, then the whole file
// is replaced atomically. A malformed existing document is treated as empty
// rather than blocking the write.
func (r *Resolver) Persist(kind Kind, value string, scope Scope) error {
	c, ok := Lookup(kind, value)
	if !ok {
		return &UnknownCandidateError{Kind: kind, Value: value, Valid: IDs(kind)}
	}

	path := r.project.ConfigFile
	if scope == ScopeGlobal {
		path = r.global.ConfigFile
	}

	doc, err := config.Load(path)
	if err != nil {
		r.log.Debug("replacing unreadable config document",
			zap.String("path", path),
			zap.Error(err))
		doc = config.Document{}
	}

	switch kind {
	case KindBuildSystem:
		doc.BuildSystem = c.ID
	case KindCompiler:
		doc.Compiler = c.ID
	}

	return config.Save(path, doc)
}
