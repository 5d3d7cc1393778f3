package session

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"claude-wrapped/internal/wrapped"
)

// jsonLine is one line of a session JSONL file. Only the fields the
// analytics need are decoded; everything else is ignored.
type jsonLine struct {
	Type        string `json:"type"`
	Timestamp   string `json:"timestamp"`
	Cwd         string `json:"cwd"`
	Summary     string `json:"summary"`
	IsSidechain bool   `json:"isSidechain"`
	Message     struct {
		Role    string          `json:"role"`
		Model   string          `json:"model"`
		Content json.RawMessage `json:"content"`
		Usage   struct {
			InputTokens         int `json:"input_tokens"`
			OutputTokens        int `json:"output_tokens"`
			CacheReadTokens     int `json:"cache_read_input_tokens"`
			CacheCreationTokens int `json:"cache_creation_input_tokens"`
		} `json:"usage"`
	} `json:"message"`
}

// contentBlock is one entry of a structured message content array.
type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
	Name string `json:"name"` // tool name on tool_use blocks
}

const maxLineBytes = 1024 * 1024

// ParseFile reads one session JSONL file into a Record. Unparseable lines
// are skipped; a file that yields no messages still returns a valid (empty)
// record. Timestamps run through the shared gap-capped duration helper.
func ParseFile(path string) (Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return Record{}, err
	}
	defer f.Close()

	base := filepath.Base(path)
	rec := Record{
		ID:       strings.TrimSuffix(base, ".jsonl"),
		FilePath: path,
		IsAgent:  strings.HasPrefix(base, "agent-"),
		Tools:    map[string]int{},
		Usage:    map[string]TokenUsage{},
	}

	var stamps []time.Time

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, maxLineBytes), maxLineBytes)
	for scanner.Scan() {
		var line jsonLine
		if json.Unmarshal(scanner.Bytes(), &line) != nil {
			continue
		}
		if ts := parseTimestamp(line.Timestamp); !ts.IsZero() {
			stamps = append(stamps, ts)
			if rec.Start.IsZero() || ts.Before(rec.Start) {
				rec.Start = ts
			}
			if ts.After(rec.End) {
				rec.End = ts
			}
		}
		if line.IsSidechain {
			rec.IsAgent = true
		}
		if rec.ProjectPath == "" && line.Cwd != "" {
			rec.ProjectPath = line.Cwd
			rec.Project = filepath.Base(line.Cwd)
		}

		switch line.Type {
		case "user":
			rec.Messages++
			rec.UserMessages++
			text, _ := flattenContent(line.Message.Content)
			rec.UserLengths = append(rec.UserLengths, len(text))
		case "assistant":
			rec.Messages++
			text, tools := flattenContent(line.Message.Content)
			for _, name := range tools {
				rec.Tools[name]++
			}
			u := line.Message.Usage
			if u.InputTokens == 0 && u.OutputTokens == 0 && u.CacheReadTokens == 0 && u.CacheCreationTokens == 0 {
				// Old transcripts lack the usage block. Estimate output
				// tokens from the text so yearly totals stay comparable.
				u.OutputTokens = estimateTokens(text)
			}
			if model := line.Message.Model; model != "" {
				rec.Usage[model] = rec.Usage[model].add(TokenUsage{
					Input:         u.InputTokens,
					Output:        u.OutputTokens,
					CacheRead:     u.CacheReadTokens,
					CacheCreation: u.CacheCreationTokens,
				})
			}
		case "summary":
			if line.Summary != "" && rec.Title == "" {
				rec.Title = line.Summary
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return Record{}, err
	}

	if rec.Project == "" {
		rec.Project = projectNameFromDir(filepath.Dir(path))
	}
	rec.ActiveMinutes = wrapped.ActiveMinutes(stamps)
	return rec, nil
}

// ParseDetail re-reads a session file into the full ordered message list the
// fingerprint computer consumes.
func ParseDetail(path string) (*wrapped.SessionDetail, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	detail := &wrapped.SessionDetail{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, maxLineBytes), maxLineBytes)
	for scanner.Scan() {
		var line jsonLine
		if json.Unmarshal(scanner.Bytes(), &line) != nil {
			continue
		}
		if line.Type != "user" && line.Type != "assistant" {
			continue
		}
		text, tools := flattenContent(line.Message.Content)
		detail.Messages = append(detail.Messages, wrapped.MessageRecord{
			Role:      line.Type,
			Content:   text,
			Timestamp: parseTimestamp(line.Timestamp),
			Tools:     tools,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return detail, nil
}

// flattenContent handles both content shapes: a plain string, or an array of
// typed blocks whose text parts are concatenated and whose tool_use blocks
// contribute tool names.
func flattenContent(raw json.RawMessage) (string, []string) {
	if len(raw) == 0 {
		return "", nil
	}
	var text string
	if json.Unmarshal(raw, &text) == nil {
		return text, nil
	}

	var blocks []contentBlock
	if json.Unmarshal(raw, &blocks) != nil {
		return "", nil
	}
	var parts []string
	var tools []string
	for _, b := range blocks {
		switch b.Type {
		case "text":
			if b.Text != "" {
				parts = append(parts, b.Text)
			}
		case "tool_use":
			if b.Name != "" {
				tools = append(tools, b.Name)
			}
		}
	}
	return strings.Join(parts, "\n"), tools
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return ts
}

// projectNameFromDir decodes the sanitized project directory name, e.g.
// "-Users-jai-code-myproj" -> "myproj". Best effort only; cwd wins when a
// session line carries one.
func projectNameFromDir(dir string) string {
	name := strings.TrimPrefix(filepath.Base(dir), "-")
	if idx := strings.LastIndex(name, "-"); idx >= 0 && idx < len(name)-1 {
		return name[idx+1:]
	}
	return name
}
