package timeline

import (
	"strconv"
	"strings"
)

// Default filter bounds: the whole day, i.e. no filtering.
const (
	DefaultFilterStart = "00:00"
	DefaultFilterEnd   = "23:59"
)

// FilterByTimeOfDay keeps the slots whose minute-of-day falls inside the
// inclusive [start, end] window. Bounds are "HH:MM" 24-hour strings; empty
// bounds fall back to the whole-day defaults and malformed parts parse as 0.
// A start later than end denotes a window wrapping past midnight (22:00-02:00
// keeps late evening and early morning). Order is preserved and an empty
// result is not an error.
func FilterByTimeOfDay(slots []Slot, start, end string) []Slot {
	if start == "" {
		start = DefaultFilterStart
	}
	if end == "" {
		end = DefaultFilterEnd
	}
	startMin := parseMinuteOfDay(start)
	endMin := parseMinuteOfDay(end)

	out := make([]Slot, 0, len(slots))
	for _, s := range slots {
		m := slotMinuteOfDay(s)
		if startMin <= endMin {
			if m >= startMin && m <= endMin {
				out = append(out, s)
			}
		} else if m >= startMin || m <= endMin {
			out = append(out, s)
		}
	}
	return out
}

// parseMinuteOfDay converts "HH:MM" to minutes since midnight. Missing or
// unparseable parts contribute 0.
func parseMinuteOfDay(hhmm string) int {
	hh, mm, _ := strings.Cut(hhmm, ":")
	h, err := strconv.Atoi(hh)
	if err != nil {
		h = 0
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		m = 0
	}
	return h*60 + m
}

// slotMinuteOfDay extracts the HH:MM portion of the slot key
// (characters 11-16 of YYYY-MM-DDTHH:MM:SS).
func slotMinuteOfDay(s Slot) int {
	if len(s.Time) < 16 {
		return 0
	}
	return parseMinuteOfDay(s.Time[11:16])
}
