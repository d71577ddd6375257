package model

import (
	"sync/atomic"
)

// LiveModel tracks whether the live (DVR) view is enabled. The zero value is
// disabled and usable. Concurrency-safe via atomic Bool because UI callbacks
// and presenter ticks may race.
type LiveModel struct{ enabled atomic.Bool }

// Enabled reports whether the live view is currently enabled.
func (m *LiveModel) Enabled() bool {
	if m == nil {
		return false
	}
	return m.enabled.Load()
}

// SetEnabled stores the enabled flag.
func (m *LiveModel) SetEnabled(b bool) {
	if m == nil {
		return
	}
	if m.enabled.Load() == b { // no change
		return
	}
	m.enabled.Store(b)
}
