package lint

import "regexp"

// Rule flags one pattern that should not land in committed code.
type Rule struct {
	ID      string
	Summary string
	Pattern *regexp.Regexp
}

var jsRules = []Rule{
	{
		ID:      "console-log",
		Summary: "console.log left in source",
		Pattern: regexp.MustCompile(`\bconsole\.log\s*\(`),
	},
	{
		ID:      "debugger",
		Summary: "debugger statement left in source",
		Pattern: regexp.MustCompile(`\bdebugger\b`),
	},
}

var goRules = []Rule{
	{
		ID:      "fmt-print",
		Summary: "fmt.Print debugging left in source",
		Pattern: regexp.MustCompile(`\bfmt\.Print(?:f|ln)?\s*\(`),
	},
}

var pyRules = []Rule{
	{
		ID:      "python-print",
		Summary: "print call left in source",
		Pattern: regexp.MustCompile(`\bprint\s*\(`),
	},
	{
		ID:      "breakpoint",
		Summary: "breakpoint call left in source",
		Pattern: regexp.MustCompile(`\bbreakpoint\s*\(`),
	},
}

// rulesByExt maps file extensions to the rules that apply to them.
var rulesByExt = map[string][]Rule{
	".js":  jsRules,
	".jsx": jsRules,
	".ts":  jsRules,
	".tsx": jsRules,
	".go":  goRules,
	".py":  pyRules,
}

// skipDirs holds directory names whose contents are generated or vendored
// and never worth scanning.
var skipDirs = map[string]bool{
	".git":         true,
	".homunculus":  true,
	"node_modules": true,
	"vendor":       true,
	"build":        true,
	"dist":         true,
}
