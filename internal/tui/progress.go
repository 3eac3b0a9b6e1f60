package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	frameInterval = 150 * time.Millisecond
	slideGap      = "   "
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// frameMsg advances the spinner and any sliding cells.
type frameMsg time.Time

// RowUpdateMsg patches one row's cells by column header. Key is the row key
// given to AddRow: an instinct filename or a candidate id.
type RowUpdateMsg struct {
	Key    string
	Fields map[string]string
}

// WorkDoneMsg signals that the background work finished.
type WorkDoneMsg struct{}

// ErrorMsg aborts the display and surfaces the error to the caller.
type ErrorMsg struct {
	Err error
}

// Column describes one column of a live table.
type Column struct {
	Header string
	Width  int
}

type progressRow struct {
	key   string
	cells []string
}

// ProgressModel renders a live table of keyed rows under bubbletea. Evolve
// feeds it one row per instinct; any fixed row set updated by key works the
// same way. The title doubles as the activity label in the footer.
type ProgressModel struct {
	title     string
	cols      []Column
	widths    []int
	statusIdx int

	rows  []progressRow
	index map[string]int

	frame    int
	finished bool
	failure  error
}

// NewProgressModel builds a model for the given columns. Widths are fixed up
// front; cell content is clipped or slid to fit, never the other way around.
func NewProgressModel(title string, cols []Column) ProgressModel {
	m := ProgressModel{
		title:     title,
		cols:      cols,
		widths:    make([]int, len(cols)),
		statusIdx: -1,
		index:     map[string]int{},
	}
	for i, c := range cols {
		m.widths[i] = max(len(c.Header), c.Width)
		if strings.EqualFold(c.Header, "STATUS") {
			m.statusIdx = i
		}
	}
	return m
}

// AddRow seeds a row. Rows are fixed once the program starts; later changes
// arrive as RowUpdateMsg patches.
func (m *ProgressModel) AddRow(key string, cells []string) {
	row := progressRow{key: key, cells: make([]string, len(m.cols))}
	copy(row.cells, cells)
	m.index[key] = len(m.rows)
	m.rows = append(m.rows, row)
}

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Init satisfies tea.Model.
func (m ProgressModel) Init() tea.Cmd {
	return nextFrame()
}

// Update satisfies tea.Model.
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.frame++
		if m.finished {
			return m, nil
		}
		return m, nextFrame()

	case RowUpdateMsg:
		m.patch(msg)
		return m, nil

	case WorkDoneMsg:
		m.finished = true
		return m, tea.Quit

	case ErrorMsg:
		m.failure = msg.Err
		m.finished = true
		return m, tea.Quit

	case tea.KeyMsg:
		if key := msg.String(); key == "ctrl+c" || key == "q" {
			m.finished = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *ProgressModel) patch(msg RowUpdateMsg) {
	idx, ok := m.index[msg.Key]
	if !ok {
		return
	}
	for i, col := range m.cols {
		if val, ok := msg.Fields[col.Header]; ok {
			m.rows[idx].cells[i] = val
		}
	}
}

// View satisfies tea.Model.
func (m ProgressModel) View() string {
	if m.finished && m.failure != nil {
		return fmt.Sprintf("Error: %v\n", m.failure)
	}

	var b strings.Builder
	if m.title != "" {
		b.WriteString(TitleStyle.Render(m.title))
		b.WriteString("\n\n")
	}
	m.writeHeader(&b)
	for _, row := range m.rows {
		m.writeRow(&b, row)
	}
	if !m.finished {
		done, total := m.completed()
		fmt.Fprintf(&b, "\n%s %d/%d\n", spinnerFrames[m.frame%len(spinnerFrames)], done, total)
	}
	return b.String()
}

func (m ProgressModel) writeHeader(b *strings.Builder) {
	cells := make([]string, len(m.cols))
	for i, col := range m.cols {
		cells[i] = HeaderStyle.Render(fmt.Sprintf("%-*s", m.widths[i], col.Header))
	}
	b.WriteString(strings.Join(cells, "  "))
	b.WriteByte('\n')
}

func (m ProgressModel) writeRow(b *strings.Builder, row progressRow) {
	cells := make([]string, len(m.cols))
	for i := range m.cols {
		val := row.cells[i]
		if !m.finished && len(strings.TrimSpace(val)) > m.widths[i] {
			val = slide(val, m.widths[i], m.frame)
		} else {
			val = TruncateWithEllipsis(val, m.widths[i])
		}
		cell := fmt.Sprintf("%-*s", m.widths[i], val)
		if i == m.statusIdx {
			cell = StatusStyle(val).Render(cell)
		}
		cells[i] = cell
	}
	b.WriteString(strings.Join(cells, "  "))
	b.WriteByte('\n')
}

// completed counts rows that have left the pending state.
func (m ProgressModel) completed() (done, total int) {
	total = len(m.rows)
	if m.statusIdx < 0 {
		return 0, total
	}
	for _, row := range m.rows {
		status := strings.TrimSpace(row.cells[m.statusIdx])
		if status != "" && status != "pending" {
			done++
		}
	}
	return done, total
}

// Done reports whether the model has finished, by completion or by error.
func (m ProgressModel) Done() bool { return m.finished }

// Err returns the error that aborted the display, if any.
func (m ProgressModel) Err() error { return m.failure }

// slide scrolls a window across text too wide for its cell, wrapping around
// with a short gap so the full value is readable over a few frames.
func slide(text string, width, frame int) string {
	text = strings.TrimSpace(text)
	if width <= 0 {
		return ""
	}
	if len(text) <= width {
		return text
	}
	loop := text + slideGap
	start := frame % len(loop)
	doubled := loop + loop
	return doubled[start : start+width]
}

// NonEmptyOrDash substitutes "-" for blank values in table cells.
func NonEmptyOrDash(value string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return "-"
}

// TruncateWithEllipsis clips value to max bytes, marking the cut with "...".
func TruncateWithEllipsis(value string, max int) string {
	value = strings.TrimSpace(value)
	switch {
	case max <= 0:
		return ""
	case len(value) <= max:
		return value
	case max <= 3:
		return value[:max]
	}
	return value[:max-3] + "..."
}
