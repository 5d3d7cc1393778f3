package wrapped

import (
	"sort"
	"time"
)

// maxActiveGap caps a single gap between consecutive messages. Sessions left
// idle overnight count at most this much per gap, so only continuous
// engagement inflates "active" time.
const maxActiveGap = 30 * time.Minute

// ActiveDuration sums the gaps between consecutive message timestamps,
// capping each individual gap at maxActiveGap. Fewer than two timestamps
// yield zero.
//
// Every duration-derived statistic in this package (session records, trait
// scores, fingerprints) goes through this one function; callers must never
// substitute a raw end-start span.
func ActiveDuration(timestamps []time.Time) time.Duration {
	if len(timestamps) < 2 {
		return 0
	}

	times := make([]time.Time, 0, len(timestamps))
	for _, ts := range timestamps {
		if !ts.IsZero() {
			times = append(times, ts)
		}
	}
	if len(times) < 2 {
		return 0
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	total := time.Duration(0)
	for i := 1; i < len(times); i++ {
		gap := times[i].Sub(times[i-1])
		if gap > maxActiveGap {
			gap = maxActiveGap
		}
		total += gap
	}
	return total
}

// ActiveMinutes is ActiveDuration rounded down to whole minutes.
func ActiveMinutes(timestamps []time.Time) int {
	return int(ActiveDuration(timestamps) / time.Minute)
}
