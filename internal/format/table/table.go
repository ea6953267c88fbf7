// Package table aligns rows of cells into columns, either as padded text
// for the terminal status panel or as pixel offsets for the views.
package table

import "strings"

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Measure returns the display width of a cell.
type Measure func(string) int

// Runes measures a cell in terminal columns.
func Runes(text string) int {
	return len([]rune(text))
}

// Column is the placement of one column.
type Column struct {
	Offset int
	Width  int
}

// Columns computes column placements from the widest cell of each column,
// separated by gap.
func Columns(rows [][]string, measure Measure, gap int) []Column {
	if len(rows) == 0 {
		return nil
	}
	cols := make([]Column, len(rows[0]))
	for _, row := range rows {
		for c, cell := range row {
			if c >= len(cols) {
				break
			}
			if w := measure(cell); w > cols[c].Width {
				cols[c].Width = w
			}
		}
	}
	offset := 0
	for c := range cols {
		cols[c].Offset = offset
		offset += cols[c].Width + gap
	}
	return cols
}

// Place returns the starting position of every cell of row.
func Place(row []string, cols []Column, alignments []Alignment, measure Measure) []int {
	out := make([]int, len(row))
	for c, cell := range row {
		if c >= len(cols) {
			break
		}
		x := cols[c].Offset
		if c < len(alignments) && alignments[c] == AlignRight {
			x += cols[c].Width - measure(cell)
		}
		out[c] = x
	}
	return out
}

// Format returns the rows padded according to the widest entry in each column.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	cols := Columns(rows, Runes, 2)
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString("  ")
			}
			pad := cols[c].Width - Runes(cell)
			if c < len(alignments) && alignments[c] == AlignRight {
				b.WriteString(strings.Repeat(" ", pad))
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				if c < len(row)-1 {
					b.WriteString(strings.Repeat(" ", pad))
				}
			}
		}
		out[i] = b.String()
	}
	return out
}
