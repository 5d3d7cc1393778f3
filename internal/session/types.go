package session

import "time"

// Record is the derived, aggregate-ready view of one session file. Full
// message lists are not retained here; fingerprinting re-reads the file
// through the Loader when it needs them.
type Record struct {
	ID          string    `json:"id"`
	FilePath    string    `json:"file_path"`
	Project     string    `json:"project"`
	ProjectPath string    `json:"project_path"`
	Title       string    `json:"title,omitempty"`
	IsAgent     bool      `json:"is_agent"`

	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	ActiveMinutes int       `json:"active_minutes"`

	Messages     int   `json:"messages"`
	UserMessages int   `json:"user_messages"`
	UserLengths  []int `json:"user_lengths,omitempty"`

	Tools map[string]int        `json:"tools,omitempty"`
	Usage map[string]TokenUsage `json:"usage,omitempty"`
}

// TokenUsage is the per-model token tally pulled from assistant messages.
type TokenUsage struct {
	Input         int `json:"input"`
	Output        int `json:"output"`
	CacheRead     int `json:"cache_read"`
	CacheCreation int `json:"cache_creation"`
}

func (u TokenUsage) add(other TokenUsage) TokenUsage {
	u.Input += other.Input
	u.Output += other.Output
	u.CacheRead += other.CacheRead
	u.CacheCreation += other.CacheCreation
	return u
}
