package session

import (
	"testing"
	"time"
)

func rec(id string, start time.Time, messages, minutes int, agent bool, project string) Record {
	return Record{
		ID:            id,
		FilePath:      "/tmp/" + id + ".jsonl",
		Project:       project,
		IsAgent:       agent,
		Start:         start,
		End:           start.Add(time.Duration(minutes) * time.Minute),
		ActiveMinutes: minutes,
		Messages:      messages,
		UserMessages:  messages / 2,
	}
}

func TestAggregateFiltersByYear(t *testing.T) {
	records := []Record{
		rec("a", time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC), 20, 60, false, "alpha"),
		rec("b", time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC), 40, 120, false, "alpha"),
		rec("c", time.Date(2023, 6, 1, 9, 0, 0, 0, time.UTC), 10, 30, false, "alpha"),
	}

	data := Aggregate(records, 2025)
	if len(data.Sessions) != 1 || data.Sessions[0].ID != "a" {
		t.Fatalf("sessions = %v, want only a", data.Sessions)
	}
	if data.Prev == nil {
		t.Fatalf("expected prior-year totals")
	}
	if data.Prev.Sessions != 1 || data.Prev.Messages != 40 || data.Prev.Hours != 2 {
		t.Fatalf("prev = %+v", data.Prev)
	}
}

func TestAggregateProjectRollup(t *testing.T) {
	day1 := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 2, 2, 9, 0, 0, 0, time.UTC)
	records := []Record{
		rec("a", day1, 20, 60, false, "alpha"),
		rec("b", day1.Add(3*time.Hour), 10, 30, true, "alpha"),
		rec("c", day2, 5, 15, false, "alpha"),
	}

	data := Aggregate(records, 2025)
	if len(data.Projects) != 1 {
		t.Fatalf("projects = %v, want 1", data.Projects)
	}
	p := data.Projects[0]
	if p.Name != "alpha" || p.Messages != 35 || p.Sessions != 3 || p.AgentSessions != 1 {
		t.Fatalf("project rollup = %+v", p)
	}
	if p.ActiveDays != 2 {
		t.Fatalf("active days = %d, want 2", p.ActiveDays)
	}
	if p.FirstDay != day1.YearDay() || p.LastDay != day2.YearDay() {
		t.Fatalf("first/last day = %d/%d", p.FirstDay, p.LastDay)
	}
	if p.Sessions != p.AgentSessions+2 {
		t.Fatalf("session split broken: %+v", p)
	}
}

func TestAggregateTokenTotals(t *testing.T) {
	r := rec("a", time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC), 4, 10, false, "alpha")
	r.Usage = map[string]TokenUsage{
		"opus":   {Input: 100, Output: 50},
		"sonnet": {Input: 30, Output: 20, CacheRead: 5},
	}

	data := Aggregate([]Record{r}, 2025)
	if data.Tokens.Input != 130 || data.Tokens.Output != 70 || data.Tokens.CacheRead != 5 {
		t.Fatalf("token totals = %+v", data.Tokens)
	}
	if data.Tokens.Models["opus"].Input != 100 {
		t.Fatalf("per-model breakdown = %+v", data.Tokens.Models)
	}
}

func TestAggregateUniqueTools(t *testing.T) {
	r1 := rec("a", time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC), 4, 10, false, "alpha")
	r1.Tools = map[string]int{"Read": 2, "Edit": 1}
	r2 := rec("b", time.Date(2025, 2, 2, 9, 0, 0, 0, time.UTC), 4, 10, false, "alpha")
	r2.Tools = map[string]int{"Read": 1, "Bash": 4}

	data := Aggregate([]Record{r1, r2}, 2025)
	if data.UniqueTools != 3 {
		t.Fatalf("unique tools = %d, want 3", data.UniqueTools)
	}
}

func TestLoaderUnknownSession(t *testing.T) {
	loader := NewLoader(nil)
	if _, err := loader.LoadSession("ghost"); err == nil {
		t.Fatalf("expected error for unknown session")
	}
}
