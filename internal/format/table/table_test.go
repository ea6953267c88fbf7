package table

import (
	"reflect"
	"testing"
)

func TestFormatAlignsColumns(t *testing.T) {
	rows := [][]string{
		{"Walden", "12 kB"},
		{"Moby Dick", "1.2 MB"},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignRight})
	want := []string{
		"Walden      12 kB",
		"Moby Dick  1.2 MB",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected rows:\n%q\n%q", got, want)
	}
	if Format(nil, nil) != nil {
		t.Fatalf("expected nil for no rows")
	}
}

func TestPlaceUsesMeasure(t *testing.T) {
	measure := func(s string) int { return 7 * len(s) }
	rows := [][]string{{"ab", "1"}, {"abcd", "123"}}
	cols := Columns(rows, measure, 10)
	if cols[0] != (Column{Offset: 0, Width: 28}) || cols[1] != (Column{Offset: 38, Width: 21}) {
		t.Fatalf("unexpected columns %+v", cols)
	}
	xs := Place(rows[0], cols, []Alignment{AlignLeft, AlignRight}, measure)
	if xs[0] != 0 || xs[1] != 38+14 {
		t.Fatalf("unexpected placement %v", xs)
	}
}
