package wrapped

import "sort"

// MilestoneThresholds are the cumulative message counts that fire a
// milestone event, each at most once, on the first day the running total
// reaches it.
var MilestoneThresholds = []int{100, 500, 1000, 2000, 5000, 10000}

const (
	minStreakDays = 5
	minGapDays    = 7
)

// ComputeTimeline detects the year's notable events from per-day message
// totals (day of year 1..366) and each ranked project's first active day
// (wire index -> day). Events come back ordered by day, then type code, and
// capped at MaxTimelineEvts: when over the cap, higher-priority types (lower
// codes) are kept first and the survivors re-sorted by day. The peak-day
// event is therefore the last to ever be dropped.
func ComputeTimeline(dailyMessages map[int]int, projectFirstDays map[int]int) []TimelineEvent {
	days := make([]int, 0, len(dailyMessages))
	for day, n := range dailyMessages {
		if n > 0 {
			days = append(days, day)
		}
	}
	sort.Ints(days)

	var events []TimelineEvent

	if len(days) > 0 {
		peakDay, peakMsgs := 0, 0
		for _, day := range days {
			if n := dailyMessages[day]; n > peakMsgs {
				peakDay, peakMsgs = day, n
			}
		}
		events = append(events, TimelineEvent{Day: peakDay, Type: EventPeakDay, Value: peakMsgs, Project: -1})
	}

	events = append(events, milestoneEvents(days, dailyMessages)...)
	events = append(events, streakEvents(days)...)
	events = append(events, gapEvents(days)...)

	for idx, day := range projectFirstDays {
		events = append(events, TimelineEvent{Day: day, Type: EventNewProject, Value: -1, Project: idx})
	}

	if len(events) > MaxTimelineEvts {
		// Keep the highest-priority events, then restore day order.
		sort.Slice(events, func(i, j int) bool {
			if events[i].Type != events[j].Type {
				return events[i].Type < events[j].Type
			}
			return events[i].Day < events[j].Day
		})
		events = events[:MaxTimelineEvts]
	}

	sort.Slice(events, func(i, j int) bool {
		if events[i].Day != events[j].Day {
			return events[i].Day < events[j].Day
		}
		return events[i].Type < events[j].Type
	})
	return events
}

func milestoneEvents(days []int, dailyMessages map[int]int) []TimelineEvent {
	var events []TimelineEvent
	cumulative := 0
	next := 0
	for _, day := range days {
		cumulative += dailyMessages[day]
		for next < len(MilestoneThresholds) && cumulative >= MilestoneThresholds[next] {
			events = append(events, TimelineEvent{
				Day:     day,
				Type:    EventMilestone,
				Value:   MilestoneThresholds[next],
				Project: -1,
			})
			next++
		}
	}
	return events
}

// streakEvents emits a start/end pair per run of at least minStreakDays
// consecutive active days. The end event carries the run length.
func streakEvents(days []int) []TimelineEvent {
	var events []TimelineEvent
	for i := 0; i < len(days); {
		j := i
		for j+1 < len(days) && days[j+1] == days[j]+1 {
			j++
		}
		if length := j - i + 1; length >= minStreakDays {
			events = append(events,
				TimelineEvent{Day: days[i], Type: EventStreakStart, Value: -1, Project: -1},
				TimelineEvent{Day: days[j], Type: EventStreakEnd, Value: length, Project: -1},
			)
		}
		i = j + 1
	}
	return events
}

// gapEvents emits a start/end pair per inactivity span of at least
// minGapDays between two active days. The end event carries the span length.
func gapEvents(days []int) []TimelineEvent {
	var events []TimelineEvent
	for i := 1; i < len(days); i++ {
		gap := days[i] - days[i-1] - 1
		if gap >= minGapDays {
			events = append(events,
				TimelineEvent{Day: days[i-1] + 1, Type: EventGapStart, Value: -1, Project: -1},
				TimelineEvent{Day: days[i] - 1, Type: EventGapEnd, Value: gap, Project: -1},
			)
		}
	}
	return events
}
