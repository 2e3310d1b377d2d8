package grid

// TileUpdater is the part of Store the adapter drives.
type TileUpdater interface {
	Tile(id int64) (Tile, bool)
	UpdatePosition(id int64, x, y float64)
	UpdateSize(id int64, w, h float64)
}

// DragMoveEvent is one incremental pointer movement of a dragged tile.
type DragMoveEvent struct {
	TileID int64
	DX, DY float64
}

// ResizeEndEvent carries the size the host laid the tile out at when the
// resize gesture finished.
type ResizeEndEvent struct {
	TileID        int64
	Width, Height float64
}

type dragOffset struct {
	originX, originY float64
	dx, dy           float64
}

// Adapter turns host gestures into store updates. Drags sync the store on
// every move; resizes sync once, at the end of the gesture.
type Adapter struct {
	tiles TileUpdater
	drags map[int64]*dragOffset
}

func NewAdapter(tiles TileUpdater) *Adapter {
	return &Adapter{
		tiles: tiles,
		drags: make(map[int64]*dragOffset),
	}
}

// DragStart begins a drag gesture from the tile's current position.
func (a *Adapter) DragStart(id int64) {
	delete(a.drags, id)
	a.begin(id)
}

func (a *Adapter) begin(id int64) *dragOffset {
	t, ok := a.tiles.Tile(id)
	if !ok {
		return nil
	}
	d := &dragOffset{originX: t.X, originY: t.Y}
	a.drags[id] = d
	return d
}

// DragMove accumulates the delta and writes the resulting absolute position
// through to the store.
func (a *Adapter) DragMove(ev DragMoveEvent) {
	d, ok := a.drags[ev.TileID]
	if !ok {
		if d = a.begin(ev.TileID); d == nil {
			return
		}
	}
	d.dx += ev.DX
	d.dy += ev.DY
	a.tiles.UpdatePosition(ev.TileID, d.originX+d.dx, d.originY+d.dy)
}

func (a *Adapter) DragEnd(id int64) {
	delete(a.drags, id)
}

func (a *Adapter) ResizeEnd(ev ResizeEndEvent) {
	a.tiles.UpdateSize(ev.TileID, ev.Width, ev.Height)
}

// Offset reports the accumulated offset of an in-progress drag.
func (a *Adapter) Offset(id int64) (dx, dy float64, ok bool) {
	d, ok := a.drags[id]
	if !ok {
		return 0, 0, false
	}
	return d.dx, d.dy, true
}

// Dragging reports whether any drag gesture is open.
func (a *Adapter) Dragging() bool {
	return len(a.drags) > 0
}
