package grid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender_Empty(t *testing.T) {
	scene := Render(nil)
	require.Empty(t, scene.Boxes)
	require.Equal(t, AddLabel, scene.Add.Label)
}

func TestRender_OneBoxPerTileInOrder(t *testing.T) {
	tiles := []Tile{
		{ID: 9, X: 1, Y: 2, W: 3, H: 4},
		{ID: 4, X: 10, Y: 20, W: 30, H: 40},
	}
	scene := Render(tiles)
	require.Equal(t, []Box{
		{TileID: 9, X: 1, Y: 2, W: 3, H: 4},
		{TileID: 4, X: 10, Y: 20, W: 30, H: 40},
	}, scene.Boxes)
}

func TestRender_Deterministic(t *testing.T) {
	tiles := []Tile{{ID: 1, W: 100, H: 100}}
	require.Equal(t, Render(tiles), Render(tiles))
}
