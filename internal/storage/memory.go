package storage

// Memory is a map-backed KV. Values are copied on the way in and out so
// callers cannot alias stored bytes.
type Memory struct {
	values map[string][]byte
	writes int
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, error) {
	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Set(key string, value []byte) error {
	m.values[key] = append([]byte(nil), value...)
	m.writes++
	return nil
}

// Writes reports how many Set calls succeeded.
func (m *Memory) Writes() int {
	return m.writes
}
