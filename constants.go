package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeMove
	ModeResize
)

const (
	defaultCellWidth  = 10.0
	defaultCellHeight = 20.0

	// Exports larger than this in either dimension are refused.
	maxExportPixels = 8192
	exportPadding   = 10
)

const (
	borderCorner     = '+'
	borderHorizontal = '-'
	borderVertical   = '|'
	borderSelected   = '#'
	resizeHandle     = '/'
)
