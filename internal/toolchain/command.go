package toolchain

import (
	"fmt"
	"strings"
)

// NoCommandError reports that a resolved candidate defines no template for
// the requested action.
type NoCommandError struct {
	Candidate string
	Action    Action
}

func (e *NoCommandError) Error() string {
	return fmt.Sprintf("%s defines no %s command", e.Candidate, e.Action)
}

// ParseAction validates an action name.
func ParseAction(raw string) (Action, error) {
	action := Action(strings.ToLower(strings.TrimSpace(raw)))
	switch action {
	case ActionConfigure, ActionBuild, ActionTest, ActionClean:
		return action, nil
	}
	return "", fmt.Errorf("unknown action %q (expected configure, build, test, or clean)", raw)
}

// Command resolves the kind, then renders the literal command line for the
// requested action. Build-system templates may reference {cc} and {cxx},
// which are filled from the compiler resolution. The string is returned for
// the caller to run or display; nothing is executed here.
func (r *Resolver) Command(kind Kind, action Action) (string, error) {
	res := r.Resolve(kind)

	tmpl, ok := res.Candidate.Commands[action]
	if !ok {
		return "", &NoCommandError{Candidate: res.Candidate.ID, Action: action}
	}

	out := tmpl
	if strings.Contains(out, "{cc}") || strings.Contains(out, "{cxx}") {
		cc := r.Resolve(KindCompiler).Candidate
		out = strings.ReplaceAll(out, "{cc}", cc.CC)
		out = strings.ReplaceAll(out, "{cxx}", cc.CXX)
	}
	return out, nil
}
