package grid

// Box is the visual element for one tile.
type Box struct {
	TileID     int64
	X, Y, W, H float64
}

// AddControl is the fixed control that adds a tile.
type AddControl struct {
	Label string
}

// Scene is everything a host needs to draw the canvas.
type Scene struct {
	Boxes []Box
	Add   AddControl
}

const AddLabel = "Add tile"

// Render projects tiles into a scene, one box per tile in collection order.
func Render(tiles []Tile) Scene {
	boxes := make([]Box, 0, len(tiles))
	for _, t := range tiles {
		boxes = append(boxes, Box{TileID: t.ID, X: t.X, Y: t.Y, W: t.W, H: t.H})
	}
	return Scene{
		Boxes: boxes,
		Add:   AddControl{Label: AddLabel},
	}
}
