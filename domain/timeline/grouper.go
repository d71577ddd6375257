package timeline

import "sort"

// GroupIntoSlots buckets frames by truncated-to-second timestamp and returns
// one slot per distinct second in chronological order. Input order does not
// matter; within a slot, frames are sorted by monitor index ascending. The
// function is pure and an empty input yields an empty (nil) result.
func GroupIntoSlots(frames []Frame) []Slot {
	if len(frames) == 0 {
		return nil
	}

	buckets := make(map[string][]Frame)
	for _, f := range frames {
		key := f.Key()
		buckets[key] = append(buckets[key], f)
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	// Lexicographic order is chronological for ISO-like timestamps.
	sort.Strings(keys)

	slots := make([]Slot, 0, len(keys))
	for _, key := range keys {
		items := buckets[key]
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].MonitorIndex < items[j].MonitorIndex
		})
		slots = append(slots, Slot{
			Time:        key,
			DisplayTime: items[0].CapturedAt,
			Items:       items,
		})
	}
	return slots
}
