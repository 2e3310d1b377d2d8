package main

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"tilegrid/internal/grid"
)

// exportVisualTXT writes the canvas exactly as the terminal shows it, minus
// the status line.
func (m *model) exportVisualTXT(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	for _, line := range m.renderCanvas(m.canvasWidth(), m.canvasHeight()) {
		if _, err := fmt.Fprintln(file, line); err != nil {
			return err
		}
	}
	return nil
}

// exportPNG draws the layout at one pixel per layout unit, cropped to the
// tiles plus padding.
func exportPNG(filename string, tiles []grid.Tile) error {
	if len(tiles) == 0 {
		return fmt.Errorf("nothing to export")
	}

	minX, minY := tiles[0].X, tiles[0].Y
	maxX, maxY := tiles[0].X+tiles[0].W, tiles[0].Y+tiles[0].H
	for _, t := range tiles[1:] {
		minX = math.Min(minX, t.X)
		minY = math.Min(minY, t.Y)
		maxX = math.Max(maxX, t.X+t.W)
		maxY = math.Max(maxY, t.Y+t.H)
	}

	imageWidth := int(math.Ceil(maxX-minX)) + 2*exportPadding
	imageHeight := int(math.Ceil(maxY-minY)) + 2*exportPadding
	if imageWidth > maxExportPixels || imageHeight > maxExportPixels {
		return fmt.Errorf("layout too large to export: %dx%d", imageWidth, imageHeight)
	}

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(ttfFont, &truetype.Options{
		Size:    12,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	offsetX := exportPadding - minX
	offsetY := exportPadding - minY
	for _, t := range tiles {
		drawTilePNG(dc, t, offsetX, offsetY)
	}

	return dc.SavePNG(filename)
}

func drawTilePNG(dc *gg.Context, t grid.Tile, offsetX, offsetY float64) {
	x, y := t.X+offsetX, t.Y+offsetY

	dc.DrawRectangle(x, y, t.W, t.H)
	dc.SetRGBA255(0, 150, 255, 128)
	dc.FillPreserve()
	dc.SetRGBA255(0, 0, 0, 64)
	dc.SetLineWidth(1)
	dc.Stroke()

	dc.SetRGB(0, 0, 0)
	dc.DrawString(strconv.FormatInt(t.ID, 10), x+4, y+14)
}

func (m *model) exportFilename(ext string) (string, error) {
	return m.config.ExportPath(fmt.Sprintf("tilegrid-%d.%s", m.now().Unix(), ext))
}

func (m *model) exportPNG() {
	filename, err := m.exportFilename("png")
	if err == nil {
		err = exportPNG(filename, m.store.Tiles())
	}
	if err != nil {
		m.log.Warn().Err(err).Str("file", filename).Msg("png export")
		m.errorMessage = fmt.Sprintf("Export failed: %v", err)
		return
	}
	m.log.Info().Str("file", filename).Msg("png export")
	m.successMessage = "Exported " + filename
}

func (m *model) exportText() {
	filename, err := m.exportFilename("txt")
	if err == nil {
		err = m.exportVisualTXT(filename)
	}
	if err != nil {
		m.log.Warn().Err(err).Str("file", filename).Msg("text export")
		m.errorMessage = fmt.Sprintf("Export failed: %v", err)
		return
	}
	m.log.Info().Str("file", filename).Msg("text export")
	m.successMessage = "Exported " + filename
}
