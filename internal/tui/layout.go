package tui

import "github.com/Makepad-fr/gallery/internal/gallery"

// Card geometry in terminal cells, border included.
const (
	cardWidth   = 26
	cardHeight  = 5
	cardGap     = 1
	headerLines = 2
	toastLines  = 3
	footerLines = toastLines + 1
)

type rect struct {
	X, Y, W, H int
}

func (r rect) contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (r rect) bounds() gallery.Bounds {
	return gallery.Bounds{Top: float64(r.Y), Bottom: float64(r.Y + r.H)}
}

// grid maps item indices to screen cells for the current window and scroll.
type grid struct {
	cols, rows int // rows visible
	firstRow   int
	count      int
}

func newGrid(width, height, count, firstRow int) grid {
	cols := (width + cardGap) / (cardWidth + cardGap)
	if cols < 1 {
		cols = 1
	}
	rows := (height - headerLines - footerLines) / cardHeight
	if rows < 1 {
		rows = 1
	}
	return grid{cols: cols, rows: rows, firstRow: firstRow, count: count}
}

func (g grid) rowOf(i int) int { return i / g.cols }

// rect returns the cell rectangle of item i, false when it is scrolled out.
func (g grid) rect(i int) (rect, bool) {
	if i < 0 || i >= g.count {
		return rect{}, false
	}
	row := g.rowOf(i) - g.firstRow
	if row < 0 || row >= g.rows {
		return rect{}, false
	}
	col := i % g.cols
	return rect{
		X: col * (cardWidth + cardGap),
		Y: headerLines + row*cardHeight,
		W: cardWidth,
		H: cardHeight,
	}, true
}

// hit returns the item under the cell, or -1.
func (g grid) hit(x, y int) int {
	if y < headerLines || x < 0 {
		return -1
	}
	row := (y - headerLines) / cardHeight
	if row >= g.rows {
		return -1
	}
	col := x / (cardWidth + cardGap)
	if col >= g.cols || x%(cardWidth+cardGap) >= cardWidth {
		return -1
	}
	i := (g.firstRow+row)*g.cols + col
	if i >= g.count {
		return -1
	}
	return i
}

// scrollTo returns the first visible row that keeps item i on screen.
func (g grid) scrollTo(i int) int {
	if g.count == 0 {
		return 0
	}
	row := g.rowOf(i)
	first := g.firstRow
	if row < first {
		first = row
	}
	if row >= first+g.rows {
		first = row - g.rows + 1
	}
	return first
}

// checkboxLine reports whether y is the card line holding the checkbox.
func checkboxLine(r rect, y int) bool { return y == r.Y+1 }
