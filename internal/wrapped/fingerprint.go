package wrapped

import (
	"sort"
	"strings"
)

// errorKeywords drive the error/retry signal: a message counts once if its
// content contains any of these, case-insensitively.
var errorKeywords = []string{"error", "failed", "retry", "fix", "bug", "issue", "problem"}

const longMessageChars = 500

// fallbackSignature is substituted when a session file cannot be re-read at
// encode time. Fixed nonzero values so downstream consumers can still render
// something plausible instead of a dead row.
var fallbackSignature = [8]int{100, 75, 50, 25, 40, 10, 30, 20}

// ComputeSignature derives the eight behavioral values for one session, each
// quantized to 0-100. Sessions with fewer than two messages yield all zeros.
func ComputeSignature(detail *SessionDetail) [8]int {
	var sig [8]int
	if detail == nil || len(detail.Messages) < 2 {
		return sig
	}

	msgs := detail.Messages
	n := len(msgs)

	// Message density per quarter of the session, by message index,
	// normalized so the densest quarter is always 100.
	var quarters [4]int
	for i := range msgs {
		q := i * 4 / n
		if q > 3 {
			q = 3
		}
		quarters[q]++
	}
	maxQ := 0
	for _, c := range quarters {
		if c > maxQ {
			maxQ = c
		}
	}
	for i, c := range quarters {
		sig[i] = quantizeScore(float64(c) / float64(maxQ))
	}

	totalTools, editTools := 0, 0
	errHits, longMsgs := 0, 0
	for _, m := range msgs {
		totalTools += len(m.Tools)
		for _, tool := range m.Tools {
			name := strings.ToLower(tool)
			if strings.Contains(name, "edit") || strings.Contains(name, "write") {
				editTools++
			}
		}
		content := strings.ToLower(m.Content)
		for _, kw := range errorKeywords {
			if strings.Contains(content, kw) {
				errHits++
				break
			}
		}
		if len(m.Content) > longMessageChars {
			longMsgs++
		}
	}

	sig[4] = quantizeScore(clamp01(float64(totalTools) / (float64(n) * 2)))
	sig[5] = quantizeScore(float64(errHits) / float64(n))
	if totalTools > 0 {
		sig[6] = quantizeScore(float64(editTools) / float64(totalTools))
	}
	sig[7] = quantizeScore(float64(longMsgs) / float64(n))
	return sig
}

// sortSessionsByMessages orders busiest first, breaking ties by start time
// then id so the wire order is deterministic.
func sortSessionsByMessages(sessions []SessionRecord) {
	sort.SliceStable(sessions, func(i, j int) bool {
		if sessions[i].Messages != sessions[j].Messages {
			return sessions[i].Messages > sessions[j].Messages
		}
		if !sessions[i].Start.Equal(sessions[j].Start) {
			return sessions[i].Start.Before(sessions[j].Start)
		}
		return sessions[i].ID < sessions[j].ID
	})
}

// ComputeFingerprints builds the capped fingerprint list for the busiest
// sessions (by message count). Each fingerprint re-reads the session through
// the loader; a failed read degrades to fallbackSignature rather than
// failing the generation. projectIndex maps project names to wire indexes;
// unranked projects get -1.
func ComputeFingerprints(sessions []SessionRecord, projectIndex map[string]int, loader SessionLoader) []Fingerprint {
	ranked := make([]SessionRecord, len(sessions))
	copy(ranked, sessions)
	sortSessionsByMessages(ranked)
	if len(ranked) > MaxFingerprints {
		ranked = ranked[:MaxFingerprints]
	}

	fps := make([]Fingerprint, 0, len(ranked))
	for _, s := range ranked {
		sig := fallbackSignature
		if loader != nil {
			if detail, err := loader.LoadSession(s.ID); err == nil {
				sig = ComputeSignature(detail)
			}
		}

		idx := -1
		if i, ok := projectIndex[s.Project]; ok {
			idx = i
		}
		fp := Fingerprint{
			Project:  idx,
			Minutes:  s.ActiveMinutes,
			Messages: s.Messages,
		}
		if !s.Start.IsZero() {
			fp.Day = s.Start.YearDay()
			fp.StartHour = s.Start.Hour()
		}
		if s.IsAgent {
			fp.AgentFlag = 1
		}
		fp.Quarters = [4]int{sig[0], sig[1], sig[2], sig[3]}
		fp.ToolDensity = sig[4]
		fp.ErrSignal = sig[5]
		fp.EditRatio = sig[6]
		fp.LongRatio = sig[7]
		fps = append(fps, fp)
	}
	return fps
}
