package wrapped

// Histogram bucket boundaries. Each distribution has len(boundaries)+1
// buckets; the last bucket catches everything at or above the final boundary.
var (
	// DurationBoundaries are session lengths in minutes.
	DurationBoundaries = []float64{15, 30, 60, 120, 240, 480, 720, 1440, 2880}
	// RatioBoundaries split the agent-session ratio into tenths.
	RatioBoundaries = []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9}
	// LengthBoundaries are message lengths in characters.
	LengthBoundaries = []float64{50, 100, 200, 500, 1000, 2000, 5000}
)

// ComputeDistribution buckets values against a strictly ascending boundary
// list, returning len(boundaries)+1 counts. A value equal to a boundary goes
// to the bucket above it (bisect_right semantics); the web decoder's test
// vectors depend on this exact tie-break.
func ComputeDistribution(values, boundaries []float64) []int {
	counts := make([]int, len(boundaries)+1)
	for _, v := range values {
		idx := len(boundaries)
		for i, b := range boundaries {
			if v < b {
				idx = i
				break
			}
		}
		counts[idx]++
	}
	return counts
}

// DurationDistribution buckets gap-capped session minutes.
func DurationDistribution(sessions []SessionRecord) []int {
	values := make([]float64, 0, len(sessions))
	for _, s := range sessions {
		values = append(values, float64(s.ActiveMinutes))
	}
	return ComputeDistribution(values, DurationBoundaries)
}

// RatioDistribution buckets per-project agent-session ratios.
func RatioDistribution(projects []ProjectRecord) []int {
	values := make([]float64, 0, len(projects))
	for _, p := range projects {
		values = append(values, p.AgentRatio())
	}
	return ComputeDistribution(values, RatioBoundaries)
}

// LengthDistribution buckets message lengths in characters.
func LengthDistribution(lengths []int) []int {
	values := make([]float64, 0, len(lengths))
	for _, n := range lengths {
		values = append(values, float64(n))
	}
	return ComputeDistribution(values, LengthBoundaries)
}
