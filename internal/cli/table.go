package cli

import (
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
)

// DefaultTermWidth is the fallback terminal width when detection fails.
const DefaultTermWidth = 100

// termWidth auto-detects stdout's width, falling back to DefaultTermWidth
// when stdout isn't a terminal.
func termWidth() int {
	fd := os.Stdout.Fd()
	if !term.IsTerminal(fd) {
		return DefaultTermWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return DefaultTermWidth
	}
	return w
}

// Table provides minimal table rendering — column widths sized to
// content, two-space padding — grounded on the teacher's
// internal/ui/table.go.
type Table struct {
	rows       [][]string
	colWidths  []int
	colPadding int
}

// NewTable creates a table with the given column count.
func NewTable(cols int) *Table {
	return &Table{colWidths: make([]int, cols), colPadding: 2}
}

// AddRow appends a row, tracking per-column max width.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.colWidths))
	for i := 0; i < len(t.colWidths) && i < len(cells); i++ {
		row[i] = cells[i]
		if len(cells[i]) > t.colWidths[i] {
			t.colWidths[i] = len(cells[i])
		}
	}
	t.rows = append(t.rows, row)
}

// String renders the table left-aligned, padding every column but the last
// to its column width.
func (t *Table) String() string {
	if len(t.rows) == 0 {
		return ""
	}
	padding := strings.Repeat(" ", t.colPadding)
	var sb strings.Builder
	for _, row := range t.rows {
		for i, cell := range row {
			if i > 0 {
				sb.WriteString(padding)
			}
			if i < len(row)-1 {
				sb.WriteString(cell)
				sb.WriteString(strings.Repeat(" ", t.colWidths[i]-len(cell)))
			} else {
				sb.WriteString(cell)
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
