package virtual

import (
	"github.com/mj1618/a11y-conform/internal/platform"
	"golang.org/x/image/font/basicfont"
)

// Text is laid out on a monospace grid using the metrics of the face the
// render package draws with, so rectangles line up with rendered glyphs.
var (
	cellWidth  = basicfont.Face7x13.Advance
	lineHeight = basicfont.Face7x13.Height
)

// charRect returns the cell occupied by the character at pos.
func (d *document) charRect(origin platform.Rect, pos int) platform.Rect {
	return platform.Rect{
		X:      origin.X + d.cols[pos]*cellWidth,
		Y:      origin.Y + d.rows[pos]*lineHeight,
		Width:  cellWidth,
		Height: lineHeight,
	}
}

// lineRects returns one rectangle per laid-out row intersecting [start, end).
// Line-break characters occupy no width.
func (d *document) lineRects(origin platform.Rect, start, end int) []platform.Rect {
	rects := []platform.Rect{}
	i := start
	for i < end {
		row := d.rows[i]
		first, last := -1, -1
		for i < end && d.rows[i] == row {
			if !lineBreaks[d.chars[i]] {
				if first < 0 {
					first = i
				}
				last = i
			}
			i++
		}
		if first < 0 {
			continue
		}
		r := d.charRect(origin, first)
		r.Width = (d.cols[last] - d.cols[first] + 1) * cellWidth
		rects = append(rects, r)
	}
	return rects
}

// positionAt maps a point inside origin to the nearest character position.
func (d *document) positionAt(origin platform.Rect, pt platform.Point) int {
	row := (pt.Y - origin.Y) / lineHeight
	col := (pt.X - origin.X + cellWidth/2) / cellWidth
	if row >= d.lineCount() {
		return d.len()
	}
	best := -1
	for pos := 0; pos <= d.len(); pos++ {
		if d.rows[pos] != row {
			if best >= 0 {
				break
			}
			continue
		}
		best = pos
		if d.cols[pos] >= col {
			break
		}
		if pos < d.len() && lineBreaks[d.chars[pos]] {
			break
		}
	}
	if best < 0 {
		return d.len()
	}
	return best
}

// visibleEnd returns the position after the last row that fits in height.
func (d *document) visibleEnd(height int) int {
	rows := height / lineHeight
	if rows < 1 {
		rows = 1
	}
	for pos := 0; pos < d.len(); pos++ {
		if d.rows[pos] >= rows {
			return pos
		}
	}
	return d.len()
}
