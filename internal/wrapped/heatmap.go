package wrapped

import "time"

// hourSlot maps a time to its weekday*24+hour heatmap index, Monday = 0.
func hourSlot(t time.Time) int {
	weekday := (int(t.Weekday()) + 6) % 7
	return weekday*24 + t.Hour()
}

// ComputeHeatmap attributes each session's entire message count to the hour
// slot of its start time. This is a deliberate simplification: messages are
// not spread across the session's span. Empty input yields all zeros.
func ComputeHeatmap(sessions []SessionRecord) []int {
	hm := make([]int, HeatmapSlots)
	for _, s := range sessions {
		if s.Start.IsZero() {
			continue
		}
		hm[hourSlot(s.Start)] += s.Messages
	}
	return hm
}
