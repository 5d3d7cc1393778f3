package wrapped

import "time"

// SessionRecord is the upstream shape this package consumes. It is derived
// once per session file during aggregation and never mutated here.
type SessionRecord struct {
	ID            string
	Start         time.Time
	End           time.Time
	ActiveMinutes int // gap-capped, see ActiveDuration
	Messages      int
	UserMessages  int
	IsAgent       bool
	Title         string
	Project       string // project name, may be empty
	ProjectPath   string
}

// ProjectRecord is the upstream per-project rollup.
type ProjectRecord struct {
	Name          string
	Path          string
	Messages      int
	Sessions      int
	AgentSessions int
	Hours         int
	ActiveDays    int
	FirstDay      int // day of year
	LastDay       int
}

// AgentRatio is AgentSessions over Sessions, 0 when the project has no
// sessions.
func (p ProjectRecord) AgentRatio() float64 {
	if p.Sessions == 0 {
		return 0
	}
	return float64(p.AgentSessions) / float64(p.Sessions)
}

// SessionDetail is the full message list for one session, loaded lazily for
// fingerprinting only.
type SessionDetail struct {
	Messages []MessageRecord
}

// MessageRecord is one role/content/timestamp record with the names of any
// tools invoked from it.
type MessageRecord struct {
	Role      string
	Content   string
	Timestamp time.Time
	Tools     []string
}

// SessionLoader fetches the full session for a session id. Load failures are
// recovered by the caller with a fallback fingerprint, never propagated.
type SessionLoader interface {
	LoadSession(id string) (*SessionDetail, error)
}
