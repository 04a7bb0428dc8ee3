package virtual

import (
	"sort"
	"strings"

	"github.com/mj1618/a11y-conform/internal/platform"
)

// document is an immutable snapshot of a text control's content. A new
// document is built whenever the control's value changes.
type document struct {
	chars  []string
	bounds [platform.NumTextUnits][]int
	rows   []int // row index of each position 0..len(chars)
	cols   []int // column index of each position 0..len(chars)
}

func newDocument(chars []string) *document {
	d := &document{
		chars:  chars,
		bounds: unitBoundaries(chars),
		rows:   make([]int, len(chars)+1),
		cols:   make([]int, len(chars)+1),
	}
	row, col := 0, 0
	for i, c := range chars {
		d.rows[i], d.cols[i] = row, col
		if lineBreaks[c] {
			row++
			col = 0
		} else {
			col++
		}
	}
	d.rows[len(chars)], d.cols[len(chars)] = row, col
	return d
}

func (d *document) len() int { return len(d.chars) }

func (d *document) text(start, end int) string {
	return strings.Join(d.chars[start:end], "")
}

// lineCount returns the number of laid-out rows.
func (d *document) lineCount() int {
	return d.rows[len(d.chars)] + 1
}

// step moves pos across count boundaries of b and returns the new position
// and the signed number of boundaries crossed. Counts saturate at the
// available boundaries, so math.MaxInt and math.MinInt are safe.
func step(b []int, pos, count int) (int, int) {
	switch {
	case count > 0:
		idx := sort.SearchInts(b, pos+1) // first boundary > pos
		avail := len(b) - idx
		if avail <= 0 {
			return pos, 0
		}
		moved := avail
		if count < avail {
			moved = count
		}
		return b[idx+moved-1], moved
	case count < 0:
		idx := sort.SearchInts(b, pos) - 1 // last boundary < pos
		avail := idx + 1
		if avail <= 0 {
			return pos, 0
		}
		moved := avail
		if count > -avail {
			moved = -count
		}
		return b[idx-moved+1], -moved
	}
	return pos, 0
}

// floor returns the largest boundary <= pos.
func floor(b []int, pos int) int {
	idx := sort.SearchInts(b, pos+1) - 1
	if idx < 0 {
		return b[0]
	}
	return b[idx]
}

// ceil returns the smallest boundary >= pos.
func ceil(b []int, pos int) int {
	idx := sort.SearchInts(b, pos)
	if idx >= len(b) {
		return b[len(b)-1]
	}
	return b[idx]
}

// next returns the smallest boundary > pos, or pos at the end.
func next(b []int, pos int) int {
	idx := sort.SearchInts(b, pos+1)
	if idx >= len(b) {
		return pos
	}
	return b[idx]
}

// attrRun overrides attribute values over [start, end).
type attrRun struct {
	start, end int
	values     map[platform.AttributeID]any
}

// attributeSet resolves per-position attribute values.
type attributeSet struct {
	defaults    map[platform.AttributeID]any
	unsupported map[platform.AttributeID]bool
	runs        []attrRun
}

func (a *attributeSet) valueAt(id platform.AttributeID, pos int) any {
	for i := len(a.runs) - 1; i >= 0; i-- {
		r := a.runs[i]
		if pos >= r.start && pos < r.end {
			if v, ok := r.values[id]; ok {
				return v
			}
		}
	}
	return a.defaults[id]
}
