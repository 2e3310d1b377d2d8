package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"tilegrid/internal/grid"
	"tilegrid/internal/storage"
)

var (
	buttonStyle  = lipgloss.NewStyle().Reverse(true).Bold(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	helpStyle    = lipgloss.NewStyle().Padding(1, 2)
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tilegrid: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, cfgErr := loadConfig()

	logger, logFile, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}
	if cfgErr != nil {
		logger.Warn().Err(cfgErr).Msg("config ignored, using defaults")
	}

	kv := openStorage(cfg.Storage, logger)
	if closer, ok := kv.(io.Closer); ok {
		defer closer.Close()
	}

	store := grid.NewStore(kv, grid.WithKey(cfg.Storage.Key), grid.WithLogger(logger))
	m := newModel(store, cfg, logger)
	store.Load()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		logger.Error().Err(err).Msg("program exited")
		return err
	}
	return nil
}

// openStorage falls back to memory so the canvas stays usable when the
// configured backend cannot be opened.
func openStorage(cfg StorageConfig, logger zerolog.Logger) storage.KV {
	kv, err := storage.Open(cfg.Backend, cfg.Path)
	if err != nil {
		logger.Warn().Err(err).Str("backend", cfg.Backend).Str("path", cfg.Path).
			Msg("storage unavailable, layout will not survive restart")
		return storage.NewMemory()
	}
	logger.Info().Str("backend", cfg.Backend).Str("path", cfg.Path).Msg("storage opened")
	return kv
}

func newModel(store *grid.Store, cfg *Config, logger zerolog.Logger) *model {
	m := &model{
		store:          store,
		adapter:        grid.NewAdapter(store),
		config:         cfg,
		log:            logger,
		mode:           ModeNormal,
		now:            time.Now,
		writeClipboard: writeSystemClipboard,
	}
	store.OnChange(m.redraw)
	m.redraw()
	return m
}

// redraw is the store's change callback: it re-projects the collection.
func (m *model) redraw() {
	m.scene = grid.Render(m.store.Tiles())
	if err := m.store.Err(); err != nil {
		m.errorMessage = fmt.Sprintf("Save failed: %v", err)
	}
	if m.hasSelection {
		if _, ok := m.store.Tile(m.selected); !ok {
			m.hasSelection = false
		}
	}
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *model) addTile() {
	tile := m.store.Add()
	m.selected = tile.ID
	m.hasSelection = true
	m.log.Debug().Int64("id", tile.ID).Msg("tile added")
}

func (m *model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		m.abandonGesture()
		m.clearMessages()
		if m.onAddButton(msg.X, msg.Y) {
			m.addTile()
			return m, nil
		}
		idx, handle := m.hitTest(msg.X, msg.Y)
		if idx < 0 {
			m.hasSelection = false
			return m, nil
		}
		box := m.scene.Boxes[idx]
		m.selected = box.TileID
		m.hasSelection = true
		if handle {
			r := m.project(box)
			m.mode = ModeResize
			m.gesture = gesture{
				tileID:    box.TileID,
				anchorX:   msg.X,
				anchorY:   msg.Y,
				startCols: r.W,
				startRows: r.H,
				cols:      r.W,
				rows:      r.H,
			}
			return m, nil
		}
		m.mode = ModeMove
		m.gesture = gesture{tileID: box.TileID, lastX: msg.X, lastY: msg.Y}
		m.adapter.DragStart(box.TileID)

	case tea.MouseActionMotion:
		switch m.mode {
		case ModeMove:
			dx, dy := msg.X-m.gesture.lastX, msg.Y-m.gesture.lastY
			if dx == 0 && dy == 0 {
				return m, nil
			}
			m.gesture.lastX, m.gesture.lastY = msg.X, msg.Y
			m.adapter.DragMove(grid.DragMoveEvent{
				TileID: m.gesture.tileID,
				DX:     float64(dx) * m.config.Canvas.CellWidth,
				DY:     float64(dy) * m.config.Canvas.CellHeight,
			})
		case ModeResize:
			m.gesture.cols = m.gesture.startCols + msg.X - m.gesture.anchorX
			m.gesture.rows = m.gesture.startRows + msg.Y - m.gesture.anchorY
		}

	case tea.MouseActionRelease:
		m.endGesture()
	}
	return m, nil
}

// endGesture finishes the open gesture. Resizes reach the store only here,
// with the size the preview was laid out at.
func (m *model) endGesture() {
	switch m.mode {
	case ModeMove:
		m.adapter.DragEnd(m.gesture.tileID)
	case ModeResize:
		m.adapter.ResizeEnd(grid.ResizeEndEvent{
			TileID: m.gesture.tileID,
			Width:  float64(m.gesture.cols) * m.config.Canvas.CellWidth,
			Height: float64(m.gesture.rows) * m.config.Canvas.CellHeight,
		})
	}
	m.mode = ModeNormal
	m.gesture = gesture{}
}

// abandonGesture drops a gesture whose release never arrived. The last
// synced state stays authoritative, so an unreleased resize is discarded.
func (m *model) abandonGesture() {
	if m.mode == ModeMove {
		m.adapter.DragEnd(m.gesture.tileID)
	}
	m.mode = ModeNormal
	m.gesture = gesture{}
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if m.help {
		switch key {
		case "q":
			return m, tea.Quit
		default:
			m.help = false
		}
		return m, nil
	}

	m.clearMessages()
	switch key {
	case "q":
		return m, tea.Quit
	case "?":
		m.help = true
	case "a":
		m.addTile()
	case "tab":
		m.cycleSelection(1)
	case "shift+tab":
		m.cycleSelection(-1)
	case "esc":
		m.hasSelection = false
	case "h", "j", "k", "l", "left", "right", "up", "down",
		"shift+left", "shift+right", "shift+up", "shift+down":
		return m.handleNudge(key)
	case "H", "J", "K", "L":
		return m.handleResizeKey(key)
	case "e":
		m.exportPNG()
	case "t":
		m.exportText()
	case "y":
		m.copyLayout()
	}
	return m, nil
}

func (m *model) addButtonText() string {
	return "[ " + m.scene.Add.Label + " ]"
}

func (m *model) onAddButton(x, y int) bool {
	return y == m.height-1 && x >= 0 && x < len(m.addButtonText())
}

func (m *model) View() string {
	if m.help {
		return m.helpView()
	}

	var b strings.Builder
	for _, line := range m.renderCanvas(m.canvasWidth(), m.canvasHeight()) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(m.statusLine())
	return b.String()
}

func (m *model) statusLine() string {
	parts := []string{
		buttonStyle.Render(m.addButtonText()),
		statusStyle.Render(fmt.Sprintf("%s | %d tiles", m.modeString(), len(m.scene.Boxes))),
	}
	if m.hasSelection {
		if tile, ok := m.store.Tile(m.selected); ok {
			parts = append(parts, statusStyle.Render(fmt.Sprintf("#%d %gx%g @ %g,%g", tile.ID, tile.W, tile.H, tile.X, tile.Y)))
		}
	}
	switch {
	case m.errorMessage != "":
		parts = append(parts, errorStyle.Render(m.errorMessage))
	case m.successMessage != "":
		parts = append(parts, successStyle.Render(m.successMessage))
	default:
		parts = append(parts, statusStyle.Render("? help"))
	}
	return strings.Join(parts, " ")
}

func (m *model) modeString() string {
	switch m.mode {
	case ModeMove:
		return "MOVE"
	case ModeResize:
		return "RESIZE"
	default:
		return "NORMAL"
	}
}

func (m *model) helpView() string {
	help := `tilegrid

Mouse
  drag a tile            move it
  drag right/bottom edge resize it
  click [ Add tile ]     add a tile at the origin

Keys
  a                      add tile
  tab / shift+tab        select next / previous tile
  arrows, h j k l        move selected tile one cell
  shift+arrows           move selected tile two cells
  H / L                  narrower / wider
  K / J                  shorter / taller
  e                      export PNG
  t                      export text
  y                      copy layout JSON
  esc                    clear selection
  q                      quit

Press any key to close.`
	return helpStyle.Render(help)
}
