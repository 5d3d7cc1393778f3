package wrapped

import (
	"math"
	"sort"
)

// BuildInput is everything one generation run feeds the story builder.
// Sessions and projects are expected to be pre-filtered to the target year.
type BuildInput struct {
	Year           int
	Name           string
	Sessions       []SessionRecord
	Projects       []ProjectRecord
	MessageLengths []int // user-message lengths in characters
	UniqueTools    int   // 0 means unknown
	Tokens         TokenStats
	Loader         SessionLoader

	// Prev carries the previous year's totals when the scan saw them;
	// nil leaves the year-over-year field absent.
	Prev *YearTotals
}

// YearTotals is the minimal prior-year aggregate needed for deltas.
type YearTotals struct {
	Sessions int
	Messages int
	Hours    int
}

// Build assembles a complete V3 story from one year's records. Pure except
// for the session re-reads done by the fingerprint step, which degrade to a
// fallback signature on failure.
func Build(in BuildInput) *Story {
	s := NewStory(in.Year)
	s.Name = in.Name

	totalMinutes := 0
	activeDays := map[int]bool{}
	dailyMessages := map[int]int{}
	for _, sess := range in.Sessions {
		s.MessageCount += sess.Messages
		totalMinutes += sess.ActiveMinutes
		if sess.Start.IsZero() {
			continue
		}
		day := sess.Start.YearDay()
		activeDays[day] = true
		dailyMessages[day] += sess.Messages

		month := int(sess.Start.Month()) - 1
		s.MonthlyMessages[month] += sess.Messages
		s.MonthlySessions[month]++
		s.MonthlyHours[month] += sess.ActiveMinutes
	}
	for i := range s.MonthlyHours {
		s.MonthlyHours[i] /= 60
	}

	s.ProjectCount = len(in.Projects)
	s.SessionCount = len(in.Sessions)
	s.TotalHours = totalMinutes / 60
	s.ActiveDays = len(activeDays)

	s.Heatmap = ComputeHeatmap(in.Sessions)
	s.DurationDist = DurationDistribution(in.Sessions)
	s.RatioDist = RatioDistribution(in.Projects)
	s.LengthDist = LengthDistribution(in.MessageLengths)
	s.Traits = ComputeTraits(in.Sessions, in.Projects, in.UniqueTools)

	ranked, index := rankProjects(in.Projects)
	s.Projects = ranked
	s.Cooccur = ComputeCooccurrence(in.Sessions, index)

	firstDays := map[int]int{}
	for _, p := range in.Projects {
		if idx, ok := index[p.Name]; ok && p.FirstDay > 0 {
			firstDays[idx] = p.FirstDay
		}
	}
	s.Timeline = ComputeTimeline(dailyMessages, firstDays)
	s.Fingerprints = ComputeFingerprints(in.Sessions, index, in.Loader)

	longest := 0
	for _, sess := range in.Sessions {
		if sess.ActiveMinutes > longest {
			longest = sess.ActiveMinutes
		}
	}
	s.LongestTenths = int(math.Round(float64(longest) / 6)) // minutes -> tenths of hours

	s.Streaks = computeStreaks(activeDays)

	if in.Tokens.Models == nil {
		in.Tokens.Models = map[string]ModelTokens{}
	}
	s.Tokens = in.Tokens

	if in.Prev != nil {
		s.YoY = &YearDeltas{
			SessionsPct: percentDelta(s.SessionCount, in.Prev.Sessions),
			MessagesPct: percentDelta(s.MessageCount, in.Prev.Messages),
			HoursPct:    percentDelta(s.TotalHours, in.Prev.Hours),
		}
	}
	return s
}

// rankProjects orders by message count descending (name ascending on ties),
// caps at MaxProjects, and returns the name -> wire index map the
// co-occurrence, timeline and fingerprint computers share.
func rankProjects(projects []ProjectRecord) ([]ProjectEntry, map[string]int) {
	sorted := make([]ProjectRecord, len(projects))
	copy(sorted, projects)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Messages != sorted[j].Messages {
			return sorted[i].Messages > sorted[j].Messages
		}
		return sorted[i].Name < sorted[j].Name
	})
	if len(sorted) > MaxProjects {
		sorted = sorted[:MaxProjects]
	}

	entries := make([]ProjectEntry, 0, len(sorted))
	index := make(map[string]int, len(sorted))
	for i, p := range sorted {
		entries = append(entries, ProjectEntry{
			Name:       p.Name,
			Messages:   p.Messages,
			Sessions:   p.Sessions,
			Hours:      p.Hours,
			ActiveDays: p.ActiveDays,
			AgentPct:   quantizeScore(p.AgentRatio()),
		})
		index[p.Name] = i
	}
	return entries, index
}

// computeStreaks summarizes runs of consecutive active days. A streak is a
// run of at least two days; Current is the length of the latest run.
func computeStreaks(activeDays map[int]bool) StreakStats {
	days := make([]int, 0, len(activeDays))
	for day := range activeDays {
		days = append(days, day)
	}
	sort.Ints(days)
	if len(days) == 0 {
		return StreakStats{}
	}

	var st StreakStats
	streakSum := 0
	for i := 0; i < len(days); {
		j := i
		for j+1 < len(days) && days[j+1] == days[j]+1 {
			j++
		}
		length := j - i + 1
		if length > st.Longest {
			st.Longest = length
		}
		if length >= 2 {
			st.Count++
			streakSum += length
		}
		st.Current = length
		i = j + 1
	}
	if st.Count > 0 {
		st.Average = int(math.Round(float64(streakSum) / float64(st.Count)))
	}
	return st
}

func percentDelta(current, previous int) int {
	if previous == 0 {
		return 0
	}
	return int(math.Round(float64(current-previous) / float64(previous) * 100))
}
