package timeline

import "time"

// Frame is one still image captured from one monitor at one instant.
// Frames are produced by the external capture agent and are immutable here.
type Frame struct {
	ID           string `json:"id"`
	CapturedAt   string `json:"captured_at"`
	MonitorIndex int    `json:"monitor_index"`
}

// slotKeyLen is the prefix of an ISO-like timestamp that identifies a slot
// (YYYY-MM-DDTHH:MM:SS, second granularity).
const slotKeyLen = 19

// Key returns the frame's truncated-to-second grouping key.
func (f Frame) Key() string {
	if len(f.CapturedAt) < slotKeyLen {
		return f.CapturedAt
	}
	return f.CapturedAt[:slotKeyLen]
}

// Slot groups every frame that shares the same truncated-to-second timestamp.
// Items are ordered by monitor index ascending and a slot is never empty.
type Slot struct {
	// Time is the truncation key, used for ordering and slot identity
	// within one load.
	Time string
	// DisplayTime is the untruncated timestamp of the first frame,
	// intended for human display.
	DisplayTime string
	Items       []Frame
}

// slotTimeLayout parses the truncated Time key.
const slotTimeLayout = "2006-01-02T15:04:05"

// Timestamp parses the slot's Time key. The boolean is false when the key is
// not a well-formed truncated timestamp.
func (s Slot) Timestamp() (time.Time, bool) {
	t, err := time.Parse(slotTimeLayout, s.Time)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FrameIDs returns the slot's frame IDs in monitor order.
func (s Slot) FrameIDs() []string {
	ids := make([]string, len(s.Items))
	for i, f := range s.Items {
		ids[i] = f.ID
	}
	return ids
}
