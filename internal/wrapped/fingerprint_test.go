package wrapped

import (
	"errors"
	"strings"
	"testing"
	"time"
)

type stubLoader struct {
	details map[string]*SessionDetail
	err     error
}

func (l *stubLoader) LoadSession(id string) (*SessionDetail, error) {
	if l.err != nil {
		return nil, l.err
	}
	d, ok := l.details[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return d, nil
}

func messagesAt(n int, content string, tools ...string) []MessageRecord {
	base := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	msgs := make([]MessageRecord, n)
	for i := range msgs {
		msgs[i] = MessageRecord{
			Role:      "user",
			Content:   content,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}
		if i == 0 {
			msgs[i].Tools = tools
		}
	}
	return msgs
}

func TestComputeSignatureTooFewMessages(t *testing.T) {
	sig := ComputeSignature(&SessionDetail{Messages: messagesAt(1, "hi")})
	if sig != [8]int{} {
		t.Fatalf("signature for 1 message = %v, want all zeros", sig)
	}
	if got := ComputeSignature(nil); got != [8]int{} {
		t.Fatalf("signature for nil detail = %v, want all zeros", got)
	}
}

func TestComputeSignatureQuarters(t *testing.T) {
	// 8 messages spread evenly: every quarter holds 2, so all four are 100.
	sig := ComputeSignature(&SessionDetail{Messages: messagesAt(8, "hello")})
	for i := 0; i < 4; i++ {
		if sig[i] != 100 {
			t.Fatalf("quarter %d = %d, want 100 for even spread", i, sig[i])
		}
	}
}

func TestComputeSignatureDensestQuarterIsAlways100(t *testing.T) {
	base := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	msgs := make([]MessageRecord, 10)
	for i := range msgs {
		msgs[i] = MessageRecord{Role: "user", Content: "m", Timestamp: base}
	}
	sig := ComputeSignature(&SessionDetail{Messages: msgs})

	max := 0
	for i := 0; i < 4; i++ {
		if sig[i] > max {
			max = sig[i]
		}
	}
	if max != 100 {
		t.Fatalf("densest quarter = %d, want 100", max)
	}
}

func TestComputeSignatureErrorKeywords(t *testing.T) {
	msgs := []MessageRecord{
		{Role: "user", Content: "the build FAILED again"},
		{Role: "assistant", Content: "all good here"},
	}
	sig := ComputeSignature(&SessionDetail{Messages: msgs})
	if sig[5] != 50 {
		t.Fatalf("error signal = %d, want 50 for 1 of 2 messages", sig[5])
	}
}

func TestComputeSignatureToolRatios(t *testing.T) {
	msgs := []MessageRecord{
		{Role: "assistant", Content: "a", Tools: []string{"Edit", "Bash"}},
		{Role: "assistant", Content: "b", Tools: []string{"Write", "Read"}},
	}
	sig := ComputeSignature(&SessionDetail{Messages: msgs})

	// 4 tools / (2 messages * 2) = 1.0 tool density.
	if sig[4] != 100 {
		t.Fatalf("tool density = %d, want 100", sig[4])
	}
	// Edit + Write are 2 of 4 tools.
	if sig[6] != 50 {
		t.Fatalf("edit ratio = %d, want 50", sig[6])
	}
}

func TestComputeSignatureLongMessages(t *testing.T) {
	long := strings.Repeat("x", 600)
	msgs := []MessageRecord{
		{Role: "user", Content: long},
		{Role: "user", Content: "short"},
	}
	sig := ComputeSignature(&SessionDetail{Messages: msgs})
	if sig[7] != 50 {
		t.Fatalf("long-message ratio = %d, want 50", sig[7])
	}
}

func TestComputeFingerprintsFallbackOnLoadFailure(t *testing.T) {
	start := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	sessions := []SessionRecord{
		{ID: "s1", Start: start, Messages: 40, ActiveMinutes: 60, Project: "alpha"},
	}
	loader := &stubLoader{err: errors.New("file vanished")}

	fps := ComputeFingerprints(sessions, map[string]int{"alpha": 0}, loader)
	if len(fps) != 1 {
		t.Fatalf("got %d fingerprints, want 1", len(fps))
	}
	fp := fps[0]
	if fp.Quarters != [4]int{fallbackSignature[0], fallbackSignature[1], fallbackSignature[2], fallbackSignature[3]} {
		t.Fatalf("quarters = %v, want fallback values", fp.Quarters)
	}
	if fp.ToolDensity == 0 && fp.ErrSignal == 0 {
		t.Fatalf("fallback fingerprint must be nonzero")
	}
	if fp.Project != 0 || fp.Messages != 40 || fp.Minutes != 60 {
		t.Fatalf("context fields wrong: %+v", fp)
	}
}

func TestComputeFingerprintsCapAndRanking(t *testing.T) {
	start := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	var sessions []SessionRecord
	for i := 0; i < 30; i++ {
		sessions = append(sessions, SessionRecord{
			ID:       string(rune('a' + i)),
			Start:    start.AddDate(0, 0, i),
			Messages: i,
		})
	}

	fps := ComputeFingerprints(sessions, nil, &stubLoader{err: errors.New("no files")})
	if len(fps) != MaxFingerprints {
		t.Fatalf("got %d fingerprints, want cap %d", len(fps), MaxFingerprints)
	}
	// Busiest session first.
	if fps[0].Messages != 29 {
		t.Fatalf("first fingerprint has %d messages, want 29", fps[0].Messages)
	}
	// Unranked projects carry the -1 sentinel.
	if fps[0].Project != -1 {
		t.Fatalf("project index = %d, want -1", fps[0].Project)
	}
}
