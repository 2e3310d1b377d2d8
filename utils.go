package main

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// copyLayout puts the persisted JSON snapshot on the system clipboard.
func (m *model) copyLayout() {
	data, err := m.store.Snapshot()
	if err != nil {
		m.errorMessage = fmt.Sprintf("Copy failed: %v", err)
		return
	}
	if err := m.writeClipboard(string(data)); err != nil {
		m.log.Warn().Err(err).Msg("clipboard write")
		m.errorMessage = fmt.Sprintf("Copy failed: %v", err)
		return
	}
	m.successMessage = fmt.Sprintf("Copied %d tiles", m.store.Len())
}

func writeSystemClipboard(text string) error {
	return clipboard.WriteAll(text)
}

func (m *model) clearMessages() {
	m.errorMessage = ""
	m.successMessage = ""
}
