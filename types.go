package main

import (
	"time"

	"github.com/rs/zerolog"

	"tilegrid/internal/grid"
)

type model struct {
	width          int
	height         int
	store          *grid.Store
	adapter        *grid.Adapter
	scene          grid.Scene
	config         *Config
	log            zerolog.Logger
	mode           Mode
	gesture        gesture
	selected       int64
	hasSelection   bool
	help           bool
	errorMessage   string
	successMessage string
	now            func() time.Time
	writeClipboard func(string) error
}

// gesture is the host-side state of one mouse interaction. Drags track the
// last pointer cell so motion can be turned into deltas; resizes track the
// previewed size, which only reaches the store on release.
type gesture struct {
	tileID    int64
	lastX     int
	lastY     int
	anchorX   int
	anchorY   int
	startCols int
	startRows int
	cols      int
	rows      int
}

// cellRect is a box projected onto terminal cells.
type cellRect struct {
	X, Y, W, H int
}

func (r cellRect) contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// onHandle reports whether (x, y) is on the right or bottom border, where a
// press resizes instead of drags. The corner cell always resizes, even on a
// one-cell tile.
func (r cellRect) onHandle(x, y int) bool {
	right, bottom := r.X+r.W-1, r.Y+r.H-1
	if x == right && y == bottom {
		return true
	}
	return (r.W > 1 && x == right) || (r.H > 1 && y == bottom)
}
