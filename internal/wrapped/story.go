package wrapped

// FormatVersion is the wire format this package encodes and decodes.
// Payloads carrying any other version are rejected.
const FormatVersion = 3

const (
	// HeatmapSlots is weekday*24+hour, Monday = weekday 0.
	HeatmapSlots = 7 * 24

	MaxProjects     = 12
	MaxCooccurEdges = 20
	MaxTimelineEvts = 25
	MaxFingerprints = 20
	MaxModels       = 8
)

// TraitCodes is the wire order of the ten behavioral trait scores. The
// positional traits array in the payload follows this order exactly; a web
// decoder ships the same table.
var TraitCodes = []string{
	"dg", // agent delegation
	"dp", // session depth preference
	"fc", // focus concentration
	"cc", // circadian consistency
	"wk", // weekend ratio
	"bs", // burst vs steady
	"cs", // context switching
	"vb", // message verbosity
	"td", // tool diversity
	"in", // response intensity
}

// Story is one year of analytics for one user, V3 schema. It is built once
// per generation, encoded to a URL-safe string, and reconstructed by Decode
// (possibly by an independent implementation, much later).
type Story struct {
	Version int
	Year    int
	Name    string

	ProjectCount int
	SessionCount int
	MessageCount int
	TotalHours   int
	ActiveDays   int

	// Heatmap has exactly 168 slots. After a decode the values are on the
	// quantized 0-15 scale; before an encode they are raw message counts.
	Heatmap []int

	MonthlyMessages []int // 12
	MonthlyHours    []int // 12
	MonthlySessions []int // 12

	DurationDist []int // 10
	RatioDist    []int // 10
	LengthDist   []int // 8

	// Traits maps the ten codes in TraitCodes to integer scores 0-100.
	Traits map[string]int

	Projects     []ProjectEntry
	Cooccur      []CooccurEdge
	Timeline     []TimelineEvent
	Fingerprints []Fingerprint

	// LongestTenths is the longest session in hours, carried as tenths so
	// one decimal survives the wire.
	LongestTenths int

	Streaks StreakStats
	Tokens  TokenStats
	YoY     *YearDeltas
}

// ProjectEntry is the compact per-project record. On the wire it is a
// 6-element array in this field order.
type ProjectEntry struct {
	Name       string
	Messages   int
	Sessions   int
	Hours      int
	ActiveDays int
	AgentPct   int // agent-session ratio quantized to 0-100
}

// CooccurEdge counts same-day activity between two projects. Lo and Hi index
// the story's project list, Lo < Hi always.
type CooccurEdge struct {
	Lo    int
	Hi    int
	Count int
}

// Timeline event type codes. Lower code = higher retention priority.
const (
	EventPeakDay     = 0
	EventMilestone   = 1
	EventStreakStart = 2
	EventStreakEnd   = 3
	EventGapStart    = 4
	EventGapEnd      = 5
	EventNewProject  = 6
)

// TimelineEvent is a 4-field record. Value and Project use -1 as the
// "not applicable" sentinel; decoders must treat exactly -1 as absent.
type TimelineEvent struct {
	Day     int // day of year, 1-366
	Type    int
	Value   int
	Project int
}

// Fingerprint is the 14-element per-session signature: six context fields
// followed by the eight 0-100 behavioral values.
type Fingerprint struct {
	Project   int // story project index, -1 if unranked
	Day       int // day of year
	Minutes   int // gap-capped active minutes
	Messages  int
	AgentFlag int // 1 if agent session
	StartHour int // 0-23

	Quarters    [4]int // message density per session quarter, max = 100
	ToolDensity int
	ErrSignal   int
	EditRatio   int
	LongRatio   int
}

type StreakStats struct {
	Count   int // number of streaks (>= 2 consecutive active days)
	Longest int
	Current int
	Average int
}

// TokenStats aggregates token usage, plus a per-model breakdown capped at
// MaxModels entries on the wire.
type TokenStats struct {
	Input         int
	Output        int
	CacheRead     int
	CacheCreation int
	Models        map[string]ModelTokens
}

type ModelTokens struct {
	Input  int
	Output int
}

// YearDeltas holds percent changes against the previous year. Absent (nil)
// when no prior-year data was available at build time.
type YearDeltas struct {
	SessionsPct int
	MessagesPct int
	HoursPct    int
}

// DefaultTraits is the hard-coded table a decoder applies when the traits
// field arrives empty: every trait at the neutral midpoint.
func DefaultTraits() map[string]int {
	m := make(map[string]int, len(TraitCodes))
	for _, c := range TraitCodes {
		m[c] = 50
	}
	return m
}

func emptyTokenStats() TokenStats {
	return TokenStats{Models: map[string]ModelTokens{}}
}

// NewStory returns a story with version set and every fixed-length array
// zero-filled to its documented cardinality.
func NewStory(year int) *Story {
	return &Story{
		Version:         FormatVersion,
		Year:            year,
		Heatmap:         make([]int, HeatmapSlots),
		MonthlyMessages: make([]int, 12),
		MonthlyHours:    make([]int, 12),
		MonthlySessions: make([]int, 12),
		DurationDist:    make([]int, len(DurationBoundaries)+1),
		RatioDist:       make([]int, len(RatioBoundaries)+1),
		LengthDist:      make([]int, len(LengthBoundaries)+1),
		Traits:          DefaultTraits(),
		Tokens:          emptyTokenStats(),
	}
}
