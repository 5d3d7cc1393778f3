package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const sampleSession = `{"type":"summary","summary":"Fix the flaky importer"}
{"type":"user","timestamp":"2025-03-10T09:00:00.000Z","cwd":"/home/jai/code/importer","message":{"role":"user","content":"why does the importer fail?"}}
{"type":"assistant","timestamp":"2025-03-10T09:00:30.000Z","message":{"role":"assistant","model":"claude-sonnet","content":[{"type":"text","text":"Let me look."},{"type":"tool_use","name":"Read"}],"usage":{"input_tokens":120,"output_tokens":80,"cache_read_input_tokens":40,"cache_creation_input_tokens":10}}}
not json at all
{"type":"user","timestamp":"2025-03-10T09:05:00.000Z","message":{"role":"user","content":"try again with retries"}}
{"type":"assistant","timestamp":"2025-03-10T09:06:00.000Z","message":{"role":"assistant","model":"claude-sonnet","content":[{"type":"tool_use","name":"Edit"},{"type":"tool_use","name":"Bash"}],"usage":{"input_tokens":200,"output_tokens":150}}}
`

func writeSessionFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := writeSessionFile(t, dir, "abc123.jsonl", sampleSession)

	rec, err := ParseFile(path)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if rec.ID != "abc123" {
		t.Fatalf("id = %q, want abc123", rec.ID)
	}
	if rec.Title != "Fix the flaky importer" {
		t.Fatalf("title = %q", rec.Title)
	}
	if rec.Project != "importer" || rec.ProjectPath != "/home/jai/code/importer" {
		t.Fatalf("project = %q path = %q", rec.Project, rec.ProjectPath)
	}
	if rec.Messages != 4 || rec.UserMessages != 2 {
		t.Fatalf("messages = %d user = %d, want 4/2", rec.Messages, rec.UserMessages)
	}
	if rec.IsAgent {
		t.Fatalf("unexpected agent flag")
	}

	// Gaps: 30s + 270s + 60s, all under the cap.
	if rec.ActiveMinutes != 6 {
		t.Fatalf("active minutes = %d, want 6", rec.ActiveMinutes)
	}

	if rec.Tools["Read"] != 1 || rec.Tools["Edit"] != 1 || rec.Tools["Bash"] != 1 {
		t.Fatalf("tools = %v", rec.Tools)
	}
	usage := rec.Usage["claude-sonnet"]
	if usage.Input != 320 || usage.Output != 230 || usage.CacheRead != 40 || usage.CacheCreation != 10 {
		t.Fatalf("usage = %+v", usage)
	}

	wantStart := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	if !rec.Start.Equal(wantStart) {
		t.Fatalf("start = %v, want %v", rec.Start, wantStart)
	}
}

func TestParseFileAgentPrefix(t *testing.T) {
	dir := t.TempDir()
	path := writeSessionFile(t, dir, "agent-xyz.jsonl",
		`{"type":"user","timestamp":"2025-03-10T09:00:00.000Z","message":{"role":"user","content":"hi"}}`+"\n")

	rec, err := ParseFile(path)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !rec.IsAgent {
		t.Fatalf("agent- prefixed file must set the agent flag")
	}
}

func TestParseFileSidechainSetsAgent(t *testing.T) {
	dir := t.TempDir()
	path := writeSessionFile(t, dir, "s.jsonl",
		`{"type":"user","timestamp":"2025-03-10T09:00:00.000Z","isSidechain":true,"message":{"role":"user","content":"hi"}}`+"\n")

	rec, err := ParseFile(path)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !rec.IsAgent {
		t.Fatalf("sidechain line must set the agent flag")
	}
}

func TestParseFileProjectFromDirName(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "-home-jai-code-myproj")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := writeSessionFile(t, dir, "s.jsonl",
		`{"type":"user","timestamp":"2025-03-10T09:00:00.000Z","message":{"role":"user","content":"hi"}}`+"\n")

	rec, err := ParseFile(path)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if rec.Project != "myproj" {
		t.Fatalf("project = %q, want myproj (decoded from dir name)", rec.Project)
	}
}

func TestParseDetail(t *testing.T) {
	dir := t.TempDir()
	path := writeSessionFile(t, dir, "abc.jsonl", sampleSession)

	detail, err := ParseDetail(path)
	if err != nil {
		t.Fatalf("parse detail: %v", err)
	}
	if len(detail.Messages) != 4 {
		t.Fatalf("got %d messages, want 4", len(detail.Messages))
	}
	first := detail.Messages[0]
	if first.Role != "user" || first.Content != "why does the importer fail?" {
		t.Fatalf("first message = %+v", first)
	}
	second := detail.Messages[1]
	if second.Content != "Let me look." {
		t.Fatalf("flattened content = %q", second.Content)
	}
	if len(second.Tools) != 1 || second.Tools[0] != "Read" {
		t.Fatalf("tools = %v", second.Tools)
	}
}

func TestParseFileMissing(t *testing.T) {
	if _, err := ParseFile(filepath.Join(t.TempDir(), "nope.jsonl")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestParseFileEstimatesMissingUsage(t *testing.T) {
	// 30 ascii chars: bytes/3 = 10, runes/2 = 15, estimate takes the max.
	const noUsage = `{"type":"assistant","timestamp":"2025-03-10T09:00:00.000Z","message":{"role":"assistant","model":"claude-haiku","content":"123456789012345678901234567890"}}`

	dir := t.TempDir()
	path := writeSessionFile(t, dir, "est.jsonl", noUsage+"\n")

	rec, err := ParseFile(path)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	usage := rec.Usage["claude-haiku"]
	if usage.Output != 15 {
		t.Fatalf("estimated output = %d, want 15", usage.Output)
	}
	if usage.Input != 0 {
		t.Fatalf("estimated input = %d, want 0", usage.Input)
	}
}

func TestEstimateTokens(t *testing.T) {
	if got := estimateTokens(""); got != 0 {
		t.Fatalf("empty = %d", got)
	}
	// 300 ascii chars: bytes/3 = 100, runes/2 = 150, runes bound wins.
	long := strings.Repeat("abcdefghij", 30)
	if got := estimateTokens(long); got != 150 {
		t.Fatalf("ascii estimate = %d, want 150", got)
	}
}
