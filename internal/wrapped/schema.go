package wrapped

import "sort"

// The wire schema is positional: every record is a fixed-order msgpack
// array, never a keyed map. Field order here IS the format — any change
// requires a version bump. The as_array structs below are the single source
// of truth for that order.

type wirePayload struct {
	_msgpack struct{} `msgpack:",as_array"`

	Version     int
	Year        int
	Name        string
	Projects    int
	Sessions    int
	Messages    int
	Hours       int
	ActiveDays  int
	HeatmapRLE  int   // 1 when Heatmap holds RLE pairs, 0 when raw slots
	Heatmap     []int // quantized 0-15; raw 168 slots or flat RLE pairs
	MonthlyMsgs []int // 12
	MonthlyHrs  []int // 12
	MonthlySess []int // 12
	DurDist     []int // 10
	RatioDist   []int // 10
	LenDist     []int // 8
	Traits      []int // 10 in TraitCodes order, or empty
	ProjectList []wireProject
	Cooccur     [][3]int
	Timeline    [][4]int
	Fingerprint [][14]int
	Longest     int   // tenths of hours
	Streaks     []int // 4 or empty
	Tokens      *wireTokens
	YoY         *wireYoY
}

type wireProject struct {
	_msgpack struct{} `msgpack:",as_array"`

	Name       string
	Messages   int
	Sessions   int
	Hours      int
	ActiveDays int
	AgentPct   int
}

type wireTokens struct {
	_msgpack struct{} `msgpack:",as_array"`

	Input         int
	Output        int
	CacheRead     int
	CacheCreation int
	Models        []wireModel
}

type wireModel struct {
	_msgpack struct{} `msgpack:",as_array"`

	Name   string
	Input  int
	Output int
}

type wireYoY struct {
	_msgpack struct{} `msgpack:",as_array"`

	SessionsPct int
	MessagesPct int
	HoursPct    int
}

// fixedLen returns a copy padded or truncated to exactly n entries. Fixed
// arrays never vary in length on the wire, even when empty upstream.
func fixedLen(values []int, n int) []int {
	out := make([]int, n)
	copy(out, values)
	return out
}

// assemble packs a story into the positional wire shape, applying the
// heatmap quantization and the conditional RLE step.
func assemble(s *Story) wirePayload {
	quantized := QuantizeHeatmap(fixedLen(s.Heatmap, HeatmapSlots))
	hmData, rleUsed := rleIfSmaller(quantized)
	rleFlag := 0
	if rleUsed {
		rleFlag = 1
	}

	w := wirePayload{
		Version:     s.Version,
		Year:        s.Year,
		Name:        s.Name,
		Projects:    s.ProjectCount,
		Sessions:    s.SessionCount,
		Messages:    s.MessageCount,
		Hours:       s.TotalHours,
		ActiveDays:  s.ActiveDays,
		HeatmapRLE:  rleFlag,
		Heatmap:     hmData,
		MonthlyMsgs: fixedLen(s.MonthlyMessages, 12),
		MonthlyHrs:  fixedLen(s.MonthlyHours, 12),
		MonthlySess: fixedLen(s.MonthlySessions, 12),
		DurDist:     fixedLen(s.DurationDist, len(DurationBoundaries)+1),
		RatioDist:   fixedLen(s.RatioDist, len(RatioBoundaries)+1),
		LenDist:     fixedLen(s.LengthDist, len(LengthBoundaries)+1),
		Traits:      packTraits(s.Traits),
		Longest:     s.LongestTenths,
		Streaks:     []int{s.Streaks.Count, s.Streaks.Longest, s.Streaks.Current, s.Streaks.Average},
	}

	for i, p := range s.Projects {
		if i >= MaxProjects {
			break
		}
		w.ProjectList = append(w.ProjectList, wireProject{
			Name:       p.Name,
			Messages:   p.Messages,
			Sessions:   p.Sessions,
			Hours:      p.Hours,
			ActiveDays: p.ActiveDays,
			AgentPct:   p.AgentPct,
		})
	}
	for i, e := range s.Cooccur {
		if i >= MaxCooccurEdges {
			break
		}
		w.Cooccur = append(w.Cooccur, [3]int{e.Lo, e.Hi, e.Count})
	}
	for i, ev := range s.Timeline {
		if i >= MaxTimelineEvts {
			break
		}
		w.Timeline = append(w.Timeline, [4]int{ev.Day, ev.Type, ev.Value, ev.Project})
	}
	for i, fp := range s.Fingerprints {
		if i >= MaxFingerprints {
			break
		}
		w.Fingerprint = append(w.Fingerprint, [14]int{
			fp.Project, fp.Day, fp.Minutes, fp.Messages, fp.AgentFlag, fp.StartHour,
			fp.Quarters[0], fp.Quarters[1], fp.Quarters[2], fp.Quarters[3],
			fp.ToolDensity, fp.ErrSignal, fp.EditRatio, fp.LongRatio,
		})
	}

	w.Tokens = packTokens(s.Tokens)
	if s.YoY != nil {
		w.YoY = &wireYoY{
			SessionsPct: s.YoY.SessionsPct,
			MessagesPct: s.YoY.MessagesPct,
			HoursPct:    s.YoY.HoursPct,
		}
	}
	return w
}

// packTraits flattens the trait map into TraitCodes order. An empty map
// stays empty on the wire; the decoder re-applies the default table.
func packTraits(traits map[string]int) []int {
	if len(traits) == 0 {
		return []int{}
	}
	out := make([]int, len(TraitCodes))
	for i, code := range TraitCodes {
		if score, ok := traits[code]; ok {
			out[i] = score
		} else {
			out[i] = 50
		}
	}
	return out
}

// packTokens returns nil for an all-zero stat block so the wire stays small;
// the decoder reconstructs the zero struct from nil.
func packTokens(t TokenStats) *wireTokens {
	if t.Input == 0 && t.Output == 0 && t.CacheRead == 0 && t.CacheCreation == 0 && len(t.Models) == 0 {
		return nil
	}
	w := &wireTokens{
		Input:         t.Input,
		Output:        t.Output,
		CacheRead:     t.CacheRead,
		CacheCreation: t.CacheCreation,
	}
	names := make([]string, 0, len(t.Models))
	for name := range t.Models {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := t.Models[names[i]], t.Models[names[j]]
		if a.Input+a.Output != b.Input+b.Output {
			return a.Input+a.Output > b.Input+b.Output
		}
		return names[i] < names[j]
	})
	for i, name := range names {
		if i >= MaxModels {
			break
		}
		m := t.Models[name]
		w.Models = append(w.Models, wireModel{Name: name, Input: m.Input, Output: m.Output})
	}
	return w
}

// reconstruct rebuilds the typed story from a wire payload, expanding the
// heatmap RLE and filling the documented defaults for ambiguous empties
// (trait map, streak array, token stats).
func reconstruct(w wirePayload) *Story {
	s := &Story{
		Version:         w.Version,
		Year:            w.Year,
		Name:            w.Name,
		ProjectCount:    w.Projects,
		SessionCount:    w.Sessions,
		MessageCount:    w.Messages,
		TotalHours:      w.Hours,
		ActiveDays:      w.ActiveDays,
		MonthlyMessages: fixedLen(w.MonthlyMsgs, 12),
		MonthlyHours:    fixedLen(w.MonthlyHrs, 12),
		MonthlySessions: fixedLen(w.MonthlySess, 12),
		DurationDist:    fixedLen(w.DurDist, len(DurationBoundaries)+1),
		RatioDist:       fixedLen(w.RatioDist, len(RatioBoundaries)+1),
		LengthDist:      fixedLen(w.LenDist, len(LengthBoundaries)+1),
		LongestTenths:   w.Longest,
	}

	hm := w.Heatmap
	if w.HeatmapRLE == 1 {
		hm = RLEDecode(hm)
	}
	s.Heatmap = fixedLen(hm, HeatmapSlots)

	if len(w.Traits) == len(TraitCodes) {
		s.Traits = make(map[string]int, len(TraitCodes))
		for i, code := range TraitCodes {
			s.Traits[code] = w.Traits[i]
		}
	} else {
		s.Traits = DefaultTraits()
	}

	for _, p := range w.ProjectList {
		s.Projects = append(s.Projects, ProjectEntry{
			Name:       p.Name,
			Messages:   p.Messages,
			Sessions:   p.Sessions,
			Hours:      p.Hours,
			ActiveDays: p.ActiveDays,
			AgentPct:   p.AgentPct,
		})
	}
	for _, e := range w.Cooccur {
		s.Cooccur = append(s.Cooccur, CooccurEdge{Lo: e[0], Hi: e[1], Count: e[2]})
	}
	for _, ev := range w.Timeline {
		s.Timeline = append(s.Timeline, TimelineEvent{Day: ev[0], Type: ev[1], Value: ev[2], Project: ev[3]})
	}
	for _, fp := range w.Fingerprint {
		s.Fingerprints = append(s.Fingerprints, Fingerprint{
			Project:     fp[0],
			Day:         fp[1],
			Minutes:     fp[2],
			Messages:    fp[3],
			AgentFlag:   fp[4],
			StartHour:   fp[5],
			Quarters:    [4]int{fp[6], fp[7], fp[8], fp[9]},
			ToolDensity: fp[10],
			ErrSignal:   fp[11],
			EditRatio:   fp[12],
			LongRatio:   fp[13],
		})
	}

	if len(w.Streaks) == 4 {
		s.Streaks = StreakStats{
			Count:   w.Streaks[0],
			Longest: w.Streaks[1],
			Current: w.Streaks[2],
			Average: w.Streaks[3],
		}
	}

	s.Tokens = emptyTokenStats()
	if w.Tokens != nil {
		s.Tokens.Input = w.Tokens.Input
		s.Tokens.Output = w.Tokens.Output
		s.Tokens.CacheRead = w.Tokens.CacheRead
		s.Tokens.CacheCreation = w.Tokens.CacheCreation
		for _, m := range w.Tokens.Models {
			s.Tokens.Models[m.Name] = ModelTokens{Input: m.Input, Output: m.Output}
		}
	}

	if w.YoY != nil {
		s.YoY = &YearDeltas{
			SessionsPct: w.YoY.SessionsPct,
			MessagesPct: w.YoY.MessagesPct,
			HoursPct:    w.YoY.HoursPct,
		}
	}
	return s
}
