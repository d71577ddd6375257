package timeline

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func slotAt(key string) Slot {
	return Slot{Time: key, DisplayTime: key + ".000Z", Items: []Frame{{ID: key, CapturedAt: key + ".000Z"}}}
}

func TestFilterByTimeOfDay_Boundaries(t *testing.T) {
	slots := []Slot{
		slotAt("2024-01-01T00:00:30"), // minute 0
		slotAt("2024-01-01T10:00:00"), // minute 600
		slotAt("2024-01-01T23:59:59"), // minute 1439
	}

	kept := FilterByTimeOfDay(slots, "09:00", "11:00")
	require.Len(t, kept, 1)
	require.Equal(t, "2024-01-01T10:00:00", kept[0].Time)

	// Wrapping window keeps both edges of the day but not midday.
	kept = FilterByTimeOfDay(slots, "22:00", "02:00")
	require.Len(t, kept, 2)
	require.Equal(t, "2024-01-01T00:00:30", kept[0].Time)
	require.Equal(t, "2024-01-01T23:59:59", kept[1].Time)
}

func TestFilterByTimeOfDay_InclusiveBounds(t *testing.T) {
	slots := []Slot{
		slotAt("2024-01-01T09:00:00"),
		slotAt("2024-01-01T11:00:59"),
	}
	kept := FilterByTimeOfDay(slots, "09:00", "11:00")
	require.Len(t, kept, 2)
}

func TestFilterByTimeOfDay_Defaults(t *testing.T) {
	slots := []Slot{
		slotAt("2024-01-01T00:00:00"),
		slotAt("2024-01-01T12:34:56"),
		slotAt("2024-01-01T23:59:00"),
	}
	require.Equal(t, slots, FilterByTimeOfDay(slots, "", ""))
}

func TestFilterByTimeOfDay_PreservesOrder(t *testing.T) {
	slots := []Slot{
		slotAt("2024-01-01T23:00:00"),
		slotAt("2024-01-02T01:00:00"),
		slotAt("2024-01-02T23:30:00"),
	}
	for _, window := range [][2]string{
		{"00:00", "23:59"},
		{"22:00", "02:00"},
		{"23:00", "23:59"},
	} {
		kept := FilterByTimeOfDay(slots, window[0], window[1])
		// Order-preserving subsequence of the input.
		j := 0
		for _, s := range kept {
			for j < len(slots) && slots[j].Time != s.Time {
				j++
			}
			require.Less(t, j, len(slots), "filtered output reordered for window %v", window)
			j++
		}
	}
}

func TestFilterByTimeOfDay_MalformedBoundsParseAsZero(t *testing.T) {
	slots := []Slot{slotAt("2024-01-01T00:00:10")}
	// "xx:yy" parses as 00:00, so only midnight survives.
	require.Len(t, FilterByTimeOfDay(slots, "xx:yy", "xx:yy"), 1)
	require.Empty(t, FilterByTimeOfDay([]Slot{slotAt("2024-01-01T05:00:00")}, "xx", "xx"))
}

func TestFilterByTimeOfDay_EmptyResultNotError(t *testing.T) {
	slots := []Slot{slotAt("2024-01-01T12:00:00")}
	require.Empty(t, FilterByTimeOfDay(slots, "01:00", "02:00"))
}
