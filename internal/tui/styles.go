package tui

import "github.com/charmbracelet/lipgloss"

var (
	// TitleStyle marks the table title line.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// HeaderStyle marks the column header row.
	HeaderStyle = lipgloss.NewStyle().Bold(true)
)

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// statusStyles colors the STATUS column: green for settled good states, blue
// for in-flight ones, yellow for attention, red for failure, faint for rows
// nothing has touched.
var statusStyles = map[string]lipgloss.Style{
	"ok":       fg("2"),
	"raised":   fg("2"),
	"imported": fg("2"),
	"written":  fg("2"),

	"probing": fg("4"),
	"scoring": fg("4"),

	"missing": fg("3"),
	"lowered": fg("3"),
	"skipped": fg("3"),

	"error": fg("1"),

	"pending": lipgloss.NewStyle().Faint(true),
	"steady":  lipgloss.NewStyle().Faint(true),
}

// StatusStyle looks up the style for a status word. Unknown statuses render
// unstyled.
func StatusStyle(status string) lipgloss.Style {
	if s, ok := statusStyles[status]; ok {
		return s
	}
	return lipgloss.NewStyle()
}
