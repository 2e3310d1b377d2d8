// Package grid holds the tile collection, the adapter that turns pointer
// gestures into tile updates, and the projection of tiles into a scene.
package grid

import (
	"encoding/json"
	"math"
)

const (
	// MinSize replaces a width or height that is not positive and finite.
	MinSize = 1.0

	DefaultWidth  = 100.0
	DefaultHeight = 100.0
)

// Tile is a rectangle on the canvas. X and Y locate its top-left corner.
type Tile struct {
	ID int64   `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	W  float64 `json:"w"`
	H  float64 `json:"h"`
}

func clampSize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return MinSize
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func encodeTiles(tiles []Tile) ([]byte, error) {
	if tiles == nil {
		tiles = []Tile{}
	}
	return json.Marshal(tiles)
}

func decodeTiles(data []byte) ([]Tile, error) {
	var tiles []Tile
	if err := json.Unmarshal(data, &tiles); err != nil {
		return nil, err
	}
	return tiles, nil
}
