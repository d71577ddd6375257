package main

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/tracklens/tracklens/domain/timeline"
)

// frameStore is a bounded in-memory frame archive. Oldest frames are evicted
// once the bound is reached, which keeps a long-running simulator from
// growing without limit.
type frameStore struct {
	mu     sync.Mutex
	max    int
	order  []string // frame IDs, capture order
	frames map[string]storedFrame
}

type storedFrame struct {
	meta timeline.Frame
	user string
	png  []byte
}

func newFrameStore(max int) *frameStore {
	if max <= 0 {
		max = 5000
	}
	return &frameStore{max: max, frames: make(map[string]storedFrame)}
}

// Add records one captured frame and returns its minted ID.
func (s *frameStore) Add(user, capturedAt string, monitor int, png []byte) string {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames[id] = storedFrame{
		meta: timeline.Frame{ID: id, CapturedAt: capturedAt, MonitorIndex: monitor},
		user: user,
		png:  png,
	}
	s.order = append(s.order, id)
	for len(s.order) > s.max {
		evicted := s.order[0]
		s.order = s.order[1:]
		delete(s.frames, evicted)
	}
	return id
}

// List returns frame metadata for one user/day, oldest first or newest first.
// limit <= 0 means no limit.
func (s *frameStore) List(user, date string, limit int, desc bool) []timeline.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []timeline.Frame
	for _, id := range s.order {
		f := s.frames[id]
		if f.user != user || !strings.HasPrefix(f.meta.CapturedAt, date) {
			continue
		}
		out = append(out, f.meta)
	}
	if desc {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Image returns the PNG bytes for one frame ID.
func (s *frameStore) Image(id string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.frames[id]
	if !ok {
		return nil, false
	}
	return f.png, true
}
