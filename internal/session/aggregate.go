package session

import (
	"claude-wrapped/internal/wrapped"
)

// YearData is everything the story builder needs for one target year,
// derived from a full scan.
type YearData struct {
	Sessions       []wrapped.SessionRecord
	Projects       []wrapped.ProjectRecord
	MessageLengths []int
	UniqueTools    int
	Tokens         wrapped.TokenStats
	Prev           *wrapped.YearTotals
	Loader         *Loader
}

// Aggregate filters records to the target year and rolls them up. Records
// without a usable start time are dropped; records from the prior year feed
// the year-over-year totals.
func Aggregate(records []Record, year int) *YearData {
	data := &YearData{
		Tokens: wrapped.TokenStats{Models: map[string]wrapped.ModelTokens{}},
		Loader: NewLoader(records),
	}

	type projectAgg struct {
		rec  wrapped.ProjectRecord
		days map[int]bool
		mins int
	}
	projects := map[string]*projectAgg{}
	tools := map[string]bool{}
	var prev wrapped.YearTotals
	prevMinutes := 0
	sawPrev := false

	for _, rec := range records {
		if rec.Start.IsZero() {
			continue
		}
		switch rec.Start.Year() {
		case year - 1:
			sawPrev = true
			prev.Sessions++
			prev.Messages += rec.Messages
			prevMinutes += rec.ActiveMinutes
			continue
		case year:
		default:
			continue
		}

		data.Sessions = append(data.Sessions, wrapped.SessionRecord{
			ID:            rec.ID,
			Start:         rec.Start,
			End:           rec.End,
			ActiveMinutes: rec.ActiveMinutes,
			Messages:      rec.Messages,
			UserMessages:  rec.UserMessages,
			IsAgent:       rec.IsAgent,
			Title:         rec.Title,
			Project:       rec.Project,
			ProjectPath:   rec.ProjectPath,
		})
		data.MessageLengths = append(data.MessageLengths, rec.UserLengths...)

		for name := range rec.Tools {
			tools[name] = true
		}
		for model, u := range rec.Usage {
			data.Tokens.Input += u.Input
			data.Tokens.Output += u.Output
			data.Tokens.CacheRead += u.CacheRead
			data.Tokens.CacheCreation += u.CacheCreation
			m := data.Tokens.Models[model]
			m.Input += u.Input
			m.Output += u.Output
			data.Tokens.Models[model] = m
		}

		if rec.Project == "" {
			continue
		}
		agg, ok := projects[rec.Project]
		if !ok {
			agg = &projectAgg{
				rec:  wrapped.ProjectRecord{Name: rec.Project, Path: rec.ProjectPath},
				days: map[int]bool{},
			}
			projects[rec.Project] = agg
		}
		agg.rec.Messages += rec.Messages
		agg.rec.Sessions++
		if rec.IsAgent {
			agg.rec.AgentSessions++
		}
		agg.mins += rec.ActiveMinutes
		day := rec.Start.YearDay()
		agg.days[day] = true
		if agg.rec.FirstDay == 0 || day < agg.rec.FirstDay {
			agg.rec.FirstDay = day
		}
		if day > agg.rec.LastDay {
			agg.rec.LastDay = day
		}
	}

	for _, agg := range projects {
		agg.rec.Hours = agg.mins / 60
		agg.rec.ActiveDays = len(agg.days)
		data.Projects = append(data.Projects, agg.rec)
	}

	data.UniqueTools = len(tools)
	if sawPrev {
		prev.Hours = prevMinutes / 60
		data.Prev = &prev
	}
	return data
}

// BuildInput adapts the aggregate into the core builder's input shape.
func (d *YearData) BuildInput(year int, name string) wrapped.BuildInput {
	return wrapped.BuildInput{
		Year:           year,
		Name:           name,
		Sessions:       d.Sessions,
		Projects:       d.Projects,
		MessageLengths: d.MessageLengths,
		UniqueTools:    d.UniqueTools,
		Tokens:         d.Tokens,
		Loader:         d.Loader,
		Prev:           d.Prev,
	}
}

// Loader resolves a session id back to its file and re-parses the full
// message list. Used only by fingerprinting; failures surface as errors the
// core recovers from with its fallback signature.
type Loader struct {
	paths map[string]string
}

func NewLoader(records []Record) *Loader {
	paths := make(map[string]string, len(records))
	for _, rec := range records {
		paths[rec.ID] = rec.FilePath
	}
	return &Loader{paths: paths}
}

func (l *Loader) LoadSession(id string) (*wrapped.SessionDetail, error) {
	path, ok := l.paths[id]
	if !ok {
		return nil, &UnknownSessionError{ID: id}
	}
	return ParseDetail(path)
}

type UnknownSessionError struct {
	ID string
}

func (e *UnknownSessionError) Error() string {
	return "session: no file known for session " + e.ID
}
