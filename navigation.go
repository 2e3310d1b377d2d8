package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"tilegrid/internal/grid"
)

// handleNudge moves the selected tile by whole cells. Each key press is a
// complete drag gesture.
func (m *model) handleNudge(key string) (tea.Model, tea.Cmd) {
	if !m.hasSelection {
		return m, nil
	}
	speed := m.getMoveSpeed(key)
	dx, dy := 0, 0
	switch key {
	case "h", "left", "shift+left":
		dx = -speed
	case "l", "right", "shift+right":
		dx = speed
	case "k", "up", "shift+up":
		dy = -speed
	case "j", "down", "shift+down":
		dy = speed
	}
	m.adapter.DragStart(m.selected)
	m.adapter.DragMove(grid.DragMoveEvent{
		TileID: m.selected,
		DX:     float64(dx) * m.config.Canvas.CellWidth,
		DY:     float64(dy) * m.config.Canvas.CellHeight,
	})
	m.adapter.DragEnd(m.selected)
	return m, nil
}

// handleResizeKey grows or shrinks the selected tile by one cell, as one
// complete resize gesture.
func (m *model) handleResizeKey(key string) (tea.Model, tea.Cmd) {
	if !m.hasSelection {
		return m, nil
	}
	tile, ok := m.store.Tile(m.selected)
	if !ok {
		return m, nil
	}
	r := m.project(grid.Box{TileID: tile.ID, X: tile.X, Y: tile.Y, W: tile.W, H: tile.H})
	switch key {
	case "H":
		r.W--
	case "L":
		r.W++
	case "K":
		r.H--
	case "J":
		r.H++
	}
	m.adapter.ResizeEnd(grid.ResizeEndEvent{
		TileID: tile.ID,
		Width:  float64(r.W) * m.config.Canvas.CellWidth,
		Height: float64(r.H) * m.config.Canvas.CellHeight,
	})
	return m, nil
}

// cycleSelection selects the next (or previous) tile in drawing order.
func (m *model) cycleSelection(step int) {
	n := len(m.scene.Boxes)
	if n == 0 {
		m.hasSelection = false
		return
	}
	idx := -1
	if m.hasSelection {
		for i, box := range m.scene.Boxes {
			if box.TileID == m.selected {
				idx = i
				break
			}
		}
	}
	if idx < 0 {
		if step > 0 {
			idx = 0
		} else {
			idx = n - 1
		}
	} else {
		idx = ((idx+step)%n + n) % n
	}
	m.selected = m.scene.Boxes[idx].TileID
	m.hasSelection = true
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}
