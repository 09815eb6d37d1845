package render

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Table builds a box-drawn table for CLI output.
type Table struct {
	headers []string
	rows    [][]string
	widths  []int
}

// NewTable creates a table with headers.
func NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	return &Table{
		headers: headers,
		widths:  widths,
	}
}

// AddRow adds a row. Short rows are padded with empty cells, long rows are cut.
func (t *Table) AddRow(cells ...string) *Table {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
	for i, cell := range row {
		if n := utf8.RuneCountInString(cell); n > t.widths[i] {
			t.widths[i] = n
		}
	}
	return t
}

// Rows returns the number of data rows.
func (t *Table) Rows() int {
	return len(t.rows)
}

// String returns the formatted table
func (t *Table) String() string {
	var sb strings.Builder

	t.writeBorder(&sb, "┌", "┬", "┐")
	t.writeRow(&sb, t.headers)
	t.writeBorder(&sb, "├", "┼", "┤")
	for _, row := range t.rows {
		t.writeRow(&sb, row)
	}
	t.writeBorder(&sb, "└", "┴", "┘")

	return sb.String()
}

func (t *Table) writeRow(sb *strings.Builder, cells []string) {
	sb.WriteString("│")
	for i, cell := range cells {
		pad := t.widths[i] - utf8.RuneCountInString(cell)
		sb.WriteString(fmt.Sprintf(" %s%s ", cell, strings.Repeat(" ", pad)))
		sb.WriteString("│")
	}
	sb.WriteString("\n")
}

func (t *Table) writeBorder(sb *strings.Builder, left, middle, right string) {
	sb.WriteString(left)
	for i, w := range t.widths {
		sb.WriteString(strings.Repeat("─", w+2))
		if i < len(t.widths)-1 {
			sb.WriteString(middle)
		}
	}
	sb.WriteString(right)
	sb.WriteString("\n")
}
