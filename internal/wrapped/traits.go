package wrapped

import (
	"math"
	"sort"
)

// ComputeTraits scores the ten behavioral dimensions. Raw scores live in
// [0,1] and are quantized to 0-100 through quantizeScore at the very end,
// uniformly. Insufficient data yields the neutral 0.5 (=> 50) unless a
// trait documents otherwise. uniqueTools of 0 means "unknown", not "none".
func ComputeTraits(sessions []SessionRecord, projects []ProjectRecord, uniqueTools int) map[string]int {
	raw := map[string]float64{
		"dg": delegationScore(sessions),
		"dp": depthScore(sessions),
		"fc": focusScore(projects),
		"cc": circadianScore(sessions),
		"wk": weekendScore(sessions),
		"bs": burstScore(sessions),
		"cs": switchingScore(sessions),
		"vb": verbosityScore(sessions),
		"td": toolDiversityScore(uniqueTools),
		"in": intensityScore(sessions),
	}

	out := make(map[string]int, len(raw))
	for code, score := range raw {
		out[code] = quantizeScore(score)
	}
	return out
}

func delegationScore(sessions []SessionRecord) float64 {
	if len(sessions) == 0 {
		return 0.5
	}
	agent := 0
	for _, s := range sessions {
		if s.IsAgent {
			agent++
		}
	}
	return float64(agent) / float64(len(sessions))
}

func depthScore(sessions []SessionRecord) float64 {
	if len(sessions) == 0 {
		return 0.5
	}
	minutes := make([]float64, 0, len(sessions))
	for _, s := range sessions {
		minutes = append(minutes, float64(s.ActiveMinutes))
	}
	return clamp01(median(minutes) / 240)
}

// focusScore is the Herfindahl-Hirschman index of message share across
// projects: 1 means all messages in one project.
func focusScore(projects []ProjectRecord) float64 {
	total := 0
	for _, p := range projects {
		total += p.Messages
	}
	if total == 0 {
		return 0.5
	}
	hhi := 0.0
	for _, p := range projects {
		share := float64(p.Messages) / float64(total)
		hhi += share * share
	}
	return clamp01(hhi)
}

func circadianScore(sessions []SessionRecord) float64 {
	hours := make([]float64, 0, len(sessions))
	for _, s := range sessions {
		if s.Start.IsZero() {
			continue
		}
		hours = append(hours, float64(s.Start.Hour())+float64(s.Start.Minute())/60)
	}
	if len(hours) < 2 {
		return 0.5
	}
	return math.Max(0, 1-variance(hours)/36)
}

// weekendScore relates weekend message share to a 40%-of-total reference
// point. No messages means 0, not the neutral default.
func weekendScore(sessions []SessionRecord) float64 {
	total, weekend := 0, 0
	for _, s := range sessions {
		total += s.Messages
		if s.Start.IsZero() {
			continue
		}
		if wd := s.Start.Weekday(); wd == 0 || wd == 6 {
			weekend += s.Messages
		}
	}
	if total == 0 {
		return 0
	}
	share := float64(weekend) / float64(total)
	return clamp01(share / 0.4)
}

func burstScore(sessions []SessionRecord) float64 {
	daily := map[string]int{}
	for _, s := range sessions {
		if s.Start.IsZero() {
			continue
		}
		daily[s.Start.Format("2006-01-02")] += s.Messages
	}
	if len(daily) < 2 {
		return 0.5
	}
	counts := make([]float64, 0, len(daily))
	for _, n := range daily {
		counts = append(counts, float64(n))
	}
	m := mean(counts)
	if m == 0 {
		return 0.5
	}
	cv := math.Sqrt(variance(counts)) / m
	return clamp01(cv)
}

func switchingScore(sessions []SessionRecord) float64 {
	perDay := map[string]map[string]bool{}
	for _, s := range sessions {
		if s.Start.IsZero() || s.Project == "" {
			continue
		}
		day := s.Start.Format("2006-01-02")
		if perDay[day] == nil {
			perDay[day] = map[string]bool{}
		}
		perDay[day][s.Project] = true
	}
	if len(perDay) == 0 {
		return 0
	}
	sum := 0
	for _, projects := range perDay {
		sum += len(projects)
	}
	avg := float64(sum) / float64(len(perDay))
	return clamp01((avg - 1) / 3)
}

// fallbackMessageRate stands in for the median messages-per-hour when no
// session has a measurable duration.
const fallbackMessageRate = 15.0

func medianMessageRate(sessions []SessionRecord) float64 {
	rates := make([]float64, 0, len(sessions))
	for _, s := range sessions {
		if s.ActiveMinutes <= 0 {
			continue
		}
		rates = append(rates, float64(s.Messages)/(float64(s.ActiveMinutes)/60))
	}
	if len(rates) == 0 {
		return fallbackMessageRate
	}
	return median(rates)
}

// verbosityScore is the inverse of pace: slower message rates read as longer,
// more deliberate messages.
func verbosityScore(sessions []SessionRecord) float64 {
	return math.Max(0, 1-medianMessageRate(sessions)/30)
}

func intensityScore(sessions []SessionRecord) float64 {
	return clamp01(medianMessageRate(sessions) / 20)
}

func toolDiversityScore(uniqueTools int) float64 {
	if uniqueTools == 0 {
		return 0.5
	}
	return clamp01(float64(uniqueTools-1) / 9)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func variance(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return sum / float64(len(values))
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
