// Package markdowntext detects markdown tables in plain text and renders
// them as aligned text grids, which keeps agent reports readable in
// terminals and log files.
package markdowntext

import (
	"fmt"
	"strings"
)

// DefaultMaxColumnWidth caps cell width before wrapping kicks in.
const DefaultMaxColumnWidth = 40

// Table is a markdown table found in a document.
type Table struct {
	// StartLine is the 1-based line number of the first table row.
	StartLine int
	// Rows holds the parsed cells, separator rows excluded.
	Rows [][]string
}

// DetectTables scans text line by line and collects consecutive runs of
// pipe-delimited rows. Separator rows (only pipes, dashes, colons and
// spaces) are dropped from the result.
func DetectTables(text string) []Table {
	lines := strings.Split(text, "\n")

	var tables []Table
	var current []string
	startLine := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		var rows [][]string
		for _, row := range current {
			if isSeparatorRow(row) {
				continue
			}
			rows = append(rows, ParseRow(row))
		}
		if len(rows) > 0 {
			tables = append(tables, Table{StartLine: startLine, Rows: rows})
		}
		current = nil
		startLine = 0
	}

	for i, line := range lines {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "|") && strings.HasSuffix(stripped, "|") && len(stripped) > 1 {
			if len(current) == 0 {
				startLine = i + 1
			}
			current = append(current, stripped)
			continue
		}
		flush()
	}
	flush()

	return tables
}

// ParseRow splits a pipe-delimited markdown row into trimmed cells.
func ParseRow(row string) []string {
	row = strings.TrimSpace(row)
	row = strings.TrimPrefix(row, "|")
	row = strings.TrimSuffix(row, "|")

	parts := strings.Split(row, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}

	return cells
}

// WrapText wraps a cell value at word boundaries to fit maxWidth columns.
// Words longer than maxWidth are split mid-word.
func WrapText(text string, maxWidth int) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "" && len(word) <= maxWidth:
			currentLine = word
		case currentLine != "" && len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			if currentLine != "" {
				lines = append(lines, currentLine)
			}
			for len(word) > maxWidth {
				lines = append(lines, word[:maxWidth])
				word = word[maxWidth:]
			}
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n")
}

// RenderTable formats parsed rows as an aligned text grid. The first row
// is treated as the header and underlined.
func RenderTable(t Table, maxColumnWidth int) string {
	if len(t.Rows) == 0 {
		return ""
	}
	if maxColumnWidth <= 0 {
		maxColumnWidth = DefaultMaxColumnWidth
	}

	cols := 0
	for _, row := range t.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}

	// Wrap every cell first, then size columns by the widest wrapped line.
	wrapped := make([][][]string, len(t.Rows))
	widths := make([]int, cols)
	for ri, row := range t.Rows {
		wrapped[ri] = make([][]string, cols)
		for ci := 0; ci < cols; ci++ {
			cell := ""
			if ci < len(row) {
				cell = row[ci]
			}
			cellLines := strings.Split(WrapText(cell, maxColumnWidth), "\n")
			wrapped[ri][ci] = cellLines
			for _, l := range cellLines {
				if len(l) > widths[ci] {
					widths[ci] = len(l)
				}
			}
		}
	}

	var b strings.Builder
	for ri, row := range wrapped {
		height := 1
		for _, cell := range row {
			if len(cell) > height {
				height = len(cell)
			}
		}

		for li := 0; li < height; li++ {
			for ci := 0; ci < cols; ci++ {
				val := ""
				if li < len(row[ci]) {
					val = row[ci][li]
				}
				b.WriteString("| ")
				b.WriteString(val)
				b.WriteString(strings.Repeat(" ", widths[ci]-len(val)))
				b.WriteString(" ")
			}
			b.WriteString("|\n")
		}

		if ri == 0 {
			for ci := 0; ci < cols; ci++ {
				b.WriteString("|")
				b.WriteString(strings.Repeat("-", widths[ci]+2))
			}
			b.WriteString("|\n")
		}
	}

	return b.String()
}

// RenderTables renders every table detected in text, each prefixed with a
// numbered heading carrying the source line number.
func RenderTables(text string, maxColumnWidth int) string {
	tables := DetectTables(text)
	if len(tables) == 0 {
		return ""
	}

	var b strings.Builder
	for i, t := range tables {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Table %d (Line %d)\n\n", i+1, t.StartLine)
		b.WriteString(RenderTable(t, maxColumnWidth))
	}

	return b.String()
}

func isSeparatorRow(row string) bool {
	for _, r := range row {
		switch r {
		case '|', '-', ':', ' ', '\t':
		default:
			return false
		}
	}
	return true
}
