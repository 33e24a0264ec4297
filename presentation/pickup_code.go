package presentation

import (
	"fmt"
	"strings"
)

const (
	GridSize   = 21
	finderSize = 7

	cellFill = "hsl(240, 10%, 10%)"
)

// Grid is a square of filled and empty cells, indexed [row][col].
type Grid [GridSize][GridSize]bool

// PickupCode derives a QR-like placeholder from a pickup PIN. The same PIN
// always yields the same grid. Non-digit characters add nothing to the seed.
func PickupCode(pin string) Grid {
	seed := 0
	for _, r := range pin {
		if r >= '0' && r <= '9' {
			seed += int(r - '0')
		}
	}

	var g Grid
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if r, c, ok := finderCell(row, col); ok {
				border := r == 0 || r == finderSize-1 || c == 0 || c == finderSize-1
				inner := r >= 2 && r <= 4 && c >= 2 && c <= 4
				g[row][col] = border || inner
				continue
			}
			g[row][col] = (row*13+col*7+seed)%3 != 0
		}
	}
	return g
}

// finderCell maps a cell inside one of the three corner blocks to its
// position within that block.
func finderCell(row, col int) (int, int, bool) {
	far := GridSize - finderSize
	top, bottom := row < finderSize, row >= far
	left, right := col < finderSize, col >= far

	switch {
	case top && left:
		return row, col, true
	case top && right:
		return row, col - far, true
	case bottom && left:
		return row - far, col, true
	}
	return 0, 0, false
}

// SVG renders the grid on a white square with cellSize pixels per cell.
func (g Grid) SVG(cellSize int) string {
	if cellSize <= 0 {
		cellSize = 8
	}
	size := GridSize * cellSize

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" aria-label="QR code for pickup verification">`, size, size, size, size)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="white"/>`, size, size)
	for row := range g {
		for col, filled := range g[row] {
			if !filled {
				continue
			}
			fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`, col*cellSize, row*cellSize, cellSize, cellSize, cellFill)
		}
	}
	b.WriteString(`</svg>`)
	return b.String()
}
