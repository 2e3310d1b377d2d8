package main

import (
	"math"
	"strconv"

	"tilegrid/internal/grid"
)

// project maps a box in layout units onto terminal cells. Every tile covers
// at least one cell.
func (m *model) project(b grid.Box) cellRect {
	cw, ch := m.config.Canvas.CellWidth, m.config.Canvas.CellHeight
	return cellRect{
		X: int(math.Floor(b.X / cw)),
		Y: int(math.Floor(b.Y / ch)),
		W: max(1, int(math.Ceil(b.W/cw))),
		H: max(1, int(math.Ceil(b.H/ch))),
	}
}

// layout returns the on-screen rectangle of a box, substituting the preview
// size while that box is being resized.
func (m *model) layout(b grid.Box) cellRect {
	r := m.project(b)
	if m.mode == ModeResize && b.TileID == m.gesture.tileID {
		r.W = max(1, m.gesture.cols)
		r.H = max(1, m.gesture.rows)
	}
	return r
}

// hitTest finds the topmost box under (x, y). It returns -1 when the
// pointer is over empty canvas.
func (m *model) hitTest(x, y int) (int, bool) {
	if y >= m.canvasHeight() {
		return -1, false
	}
	for i := len(m.scene.Boxes) - 1; i >= 0; i-- {
		r := m.layout(m.scene.Boxes[i])
		if r.contains(x, y) {
			return i, r.onHandle(x, y)
		}
	}
	return -1, false
}

func (m *model) canvasHeight() int {
	// Leave room for status line
	return max(1, m.height-1)
}

func (m *model) canvasWidth() int {
	return max(1, m.width)
}

// renderCanvas paints the scene into lines of exactly width runes.
func (m *model) renderCanvas(width, height int) []string {
	canvas := make([][]rune, height)
	for y := range canvas {
		canvas[y] = make([]rune, width)
		for x := range canvas[y] {
			canvas[y][x] = ' '
		}
	}

	for _, box := range m.scene.Boxes {
		active := m.hasSelection && box.TileID == m.selected
		if m.mode != ModeNormal && box.TileID == m.gesture.tileID {
			active = true
		}
		drawTile(canvas, m.layout(box), strconv.FormatInt(box.TileID, 10), active)
	}

	lines := make([]string, height)
	for y, row := range canvas {
		lines[y] = string(row)
	}
	return lines
}

func drawTile(canvas [][]rune, r cellRect, label string, active bool) {
	corner, horizontal, vertical := borderCorner, borderHorizontal, borderVertical
	if active {
		corner, horizontal, vertical = borderSelected, borderSelected, borderSelected
	}

	bottom, right := r.Y+r.H-1, r.X+r.W-1
	for y := max(r.Y, 0); y <= bottom && y < len(canvas); y++ {
		for x := max(r.X, 0); x <= right && x < len(canvas[y]); x++ {
			switch {
			case x == right && y == bottom:
				canvas[y][x] = resizeHandle
			case (y == r.Y || y == bottom) && (x == r.X || x == right):
				canvas[y][x] = corner
			case y == r.Y || y == bottom:
				canvas[y][x] = horizontal
			case x == r.X || x == right:
				canvas[y][x] = vertical
			default:
				canvas[y][x] = ' '
			}
		}
	}

	// Label on the first interior row, truncated to the interior width
	textY, textX := r.Y+1, r.X+1
	if textY >= bottom || textY < 0 || textY >= len(canvas) {
		return
	}
	for i, char := range []rune(label) {
		x := textX + i
		if x >= right {
			break
		}
		if x >= 0 && x < len(canvas[textY]) {
			canvas[textY][x] = char
		}
	}
}
