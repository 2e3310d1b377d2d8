package grid

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"tilegrid/internal/storage"
)

// DefaultKey is the storage key the layout lives under.
const DefaultKey = "grid"

// Store owns the ordered tile collection and mirrors it into a KV after
// every mutation. It is not safe for concurrent use; callers drive it from
// a single event loop.
type Store struct {
	kv       storage.KV
	key      string
	log      zerolog.Logger
	now      func() time.Time
	tiles    []Tile
	lastID   int64
	onChange func()
	err      error
}

type Option func(*Store)

func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithClock replaces time.Now as the id source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(kv storage.KV, opts ...Option) *Store {
	s := &Store{
		kv:  kv,
		key: DefaultKey,
		log: zerolog.Nop(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnChange registers the callback run after every mutation. A later call
// replaces the earlier callback.
func (s *Store) OnChange(fn func()) {
	s.onChange = fn
}

// Load replaces the collection with the stored snapshot. Anything short of
// a parseable snapshot yields an empty collection.
func (s *Store) Load() {
	s.tiles = nil
	s.lastID = 0
	defer s.notify()

	data, err := s.kv.Get(s.key)
	if errors.Is(err, storage.ErrNotFound) {
		s.log.Debug().Str("key", s.key).Msg("no saved layout")
		return
	}
	if err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("read layout")
		return
	}

	tiles, err := decodeTiles(data)
	if err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Int("bytes", len(data)).Msg("discarding unparseable layout")
		return
	}

	seen := make(map[int64]bool, len(tiles))
	for _, t := range tiles {
		if seen[t.ID] {
			s.log.Warn().Int64("id", t.ID).Msg("dropping duplicate tile")
			continue
		}
		seen[t.ID] = true
		t.W = clampSize(t.W)
		t.H = clampSize(t.H)
		s.tiles = append(s.tiles, t)
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
	s.log.Info().Str("key", s.key).Int("tiles", len(s.tiles)).Msg("layout loaded")
}

// Add appends a tile with default geometry at the origin.
func (s *Store) Add() Tile {
	t := Tile{
		ID: s.nextID(),
		W:  DefaultWidth,
		H:  DefaultHeight,
	}
	s.tiles = append(s.tiles, t)
	s.commit()
	return t
}

// UpdatePosition moves the tile with the given id. Unknown ids and
// non-finite coordinates are ignored.
func (s *Store) UpdatePosition(id int64, x, y float64) {
	i := s.index(id)
	if i < 0 || !finite(x) || !finite(y) {
		return
	}
	s.tiles[i].X = x
	s.tiles[i].Y = y
	s.commit()
}

// UpdateSize resizes the tile with the given id. Non-positive sizes become
// MinSize.
// Unknown ids are ignored.
func (s *Store) UpdateSize(id int64, w, h float64) {
	i := s.index(id)
	if i < 0 {
		return
	}
	s.tiles[i].W = clampSize(w)
	s.tiles[i].H = clampSize(h)
	s.commit()
}

// Persist writes the full collection under the store's key.
func (s *Store) Persist() error {
	data, err := s.Snapshot()
	if err != nil {
		return s.fail(fmt.Errorf("encode layout: %w", err))
	}
	if err := s.kv.Set(s.key, data); err != nil {
		return s.fail(fmt.Errorf("write layout: %w", err))
	}
	s.err = nil
	return nil
}

// Snapshot returns the serialized collection exactly as Persist writes it.
func (s *Store) Snapshot() ([]byte, error) {
	return encodeTiles(s.tiles)
}

// Err returns the failure of the most recent Persist, if any.
func (s *Store) Err() error {
	return s.err
}

// Tiles returns a copy of the collection in insertion order.
func (s *Store) Tiles() []Tile {
	return append([]Tile(nil), s.tiles...)
}

func (s *Store) Tile(id int64) (Tile, bool) {
	i := s.index(id)
	if i < 0 {
		return Tile{}, false
	}
	return s.tiles[i], true
}

func (s *Store) Len() int {
	return len(s.tiles)
}

func (s *Store) index(id int64) int {
	for i := range s.tiles {
		if s.tiles[i].ID == id {
			return i
		}
	}
	return -1
}

// nextID uses the wall clock in milliseconds, bumped past every id seen so
// far so that adds within one millisecond stay distinct.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) commit() {
	// Persist already logged and recorded any failure.
	_ = s.Persist()
	s.notify()
}

func (s *Store) fail(err error) error {
	s.log.Error().Err(err).Str("key", s.key).Msg("persist layout")
	s.err = err
	return err
}

func (s *Store) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}
