package wrapped

import (
	"testing"
	"time"
)

func sessionAt(t time.Time, messages, minutes int, agent bool, project string) SessionRecord {
	return SessionRecord{
		Start:         t,
		End:           t.Add(time.Duration(minutes) * time.Minute),
		ActiveMinutes: minutes,
		Messages:      messages,
		IsAgent:       agent,
		Project:       project,
	}
}

func TestComputeTraitsBounds(t *testing.T) {
	base := time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC)
	sessions := []SessionRecord{
		sessionAt(base, 30, 90, false, "alpha"),
		sessionAt(base.AddDate(0, 0, 1), 5, 20, true, "beta"),
		sessionAt(base.AddDate(0, 0, 2), 200, 600, false, "alpha"),
	}
	projects := []ProjectRecord{
		{Name: "alpha", Messages: 230, Sessions: 2},
		{Name: "beta", Messages: 5, Sessions: 1, AgentSessions: 1},
	}

	for _, tools := range []int{0, 1, 5, 50} {
		traits := ComputeTraits(sessions, projects, tools)
		if len(traits) != len(TraitCodes) {
			t.Fatalf("got %d traits, want %d", len(traits), len(TraitCodes))
		}
		for code, score := range traits {
			if score < 0 || score > 100 {
				t.Fatalf("trait %s = %d, out of [0,100]", code, score)
			}
		}
	}
}

func TestDelegationScore(t *testing.T) {
	base := time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC)

	allAgent := []SessionRecord{
		sessionAt(base, 5, 10, true, "p"),
		sessionAt(base, 5, 10, true, "p"),
	}
	if got := ComputeTraits(allAgent, nil, 1)["dg"]; got != 100 {
		t.Fatalf("all-agent delegation = %d, want 100", got)
	}

	noAgent := []SessionRecord{
		sessionAt(base, 5, 10, false, "p"),
	}
	if got := ComputeTraits(noAgent, nil, 1)["dg"]; got != 0 {
		t.Fatalf("zero-agent delegation = %d, want 0", got)
	}
}

func TestTraitsInsufficientDataDefaults(t *testing.T) {
	traits := ComputeTraits(nil, nil, 0)

	for _, code := range []string{"dg", "dp", "fc", "cc", "bs", "td"} {
		if traits[code] != 50 {
			t.Fatalf("trait %s with no data = %d, want neutral 50", code, traits[code])
		}
	}
	if traits["wk"] != 0 {
		t.Fatalf("weekend trait with no messages = %d, want 0", traits["wk"])
	}
	if traits["cs"] != 0 {
		t.Fatalf("switching trait with no day data = %d, want 0", traits["cs"])
	}
	// With no measurable rates the fallback median of 15/h applies.
	if traits["vb"] != 50 {
		t.Fatalf("verbosity fallback = %d, want 50", traits["vb"])
	}
	if traits["in"] != 75 {
		t.Fatalf("intensity fallback = %d, want 75", traits["in"])
	}
}

func TestToolDiversityScore(t *testing.T) {
	tests := []struct {
		tools int
		want  int
	}{
		{0, 50}, // unknown, not "none"
		{1, 0},
		{5, 44},
		{10, 100},
		{25, 100},
	}
	for _, tc := range tests {
		if got := ComputeTraits(nil, nil, tc.tools)["td"]; got != tc.want {
			t.Fatalf("tool diversity with %d tools = %d, want %d", tc.tools, got, tc.want)
		}
	}
}

func TestDepthScoreUsesMedianMinutes(t *testing.T) {
	base := time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC)
	sessions := []SessionRecord{
		sessionAt(base, 10, 240, false, "p"),
		sessionAt(base, 10, 240, false, "p"),
		sessionAt(base, 10, 240, false, "p"),
	}
	if got := ComputeTraits(sessions, nil, 1)["dp"]; got != 100 {
		t.Fatalf("depth at 240m median = %d, want 100", got)
	}
}

func TestCircadianScoreConsistentStarts(t *testing.T) {
	base := time.Date(2025, 2, 3, 22, 0, 0, 0, time.UTC)
	sessions := []SessionRecord{
		sessionAt(base, 10, 30, false, "p"),
		sessionAt(base.AddDate(0, 0, 1), 10, 30, false, "p"),
		sessionAt(base.AddDate(0, 0, 2), 10, 30, false, "p"),
	}
	if got := ComputeTraits(sessions, nil, 1)["cc"]; got != 100 {
		t.Fatalf("circadian with identical start hours = %d, want 100", got)
	}
}

func TestFocusScoreSingleProject(t *testing.T) {
	projects := []ProjectRecord{{Name: "only", Messages: 500, Sessions: 3}}
	if got := ComputeTraits(nil, projects, 1)["fc"]; got != 100 {
		t.Fatalf("focus with one project = %d, want 100", got)
	}
}
