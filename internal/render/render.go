package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"claude-wrapped/internal/wrapped"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#7a3e9d", Dark: "#c792ea"})
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#2a6f4e", Dark: "#7ee0b0"})
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#aaaaaa"})
	valueStyle   = lipgloss.NewStyle().Bold(true)
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#3465a4", Dark: "#8aadf4"})
	faintStyle   = lipgloss.NewStyle().Faint(true)
	sectionStyle = lipgloss.NewStyle().MarginTop(1)
)

const barWidth = 24

// traitLabels maps the wire codes to human names for display only; the
// codes themselves are the stable identifiers.
var traitLabels = map[string]string{
	"dg": "Agent delegation",
	"dp": "Session depth",
	"fc": "Focus",
	"cc": "Circadian consistency",
	"wk": "Weekend ratio",
	"bs": "Burst vs steady",
	"cs": "Context switching",
	"vb": "Verbosity",
	"td": "Tool diversity",
	"in": "Intensity",
}

// Story renders a decoded story as a styled multi-section summary.
func Story(s *wrapped.Story) string {
	var b strings.Builder

	title := fmt.Sprintf("Claude Wrapped %d", s.Year)
	if s.Name != "" {
		title += " — " + s.Name
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(Overview(s))
	b.WriteString(sectionStyle.Render(Projects(s)))
	b.WriteString(sectionStyle.Render(Heatmap(s)))
	b.WriteString(sectionStyle.Render(Traits(s)))
	if len(s.Timeline) > 0 {
		b.WriteString(sectionStyle.Render(Timeline(s)))
	}
	return b.String()
}

// Overview renders the headline totals block.
func Overview(s *wrapped.Story) string {
	rows := []struct {
		label string
		value string
	}{
		{"Sessions", fmt.Sprintf("%d", s.SessionCount)},
		{"Messages", fmt.Sprintf("%d", s.MessageCount)},
		{"Projects", fmt.Sprintf("%d", s.ProjectCount)},
		{"Active hours", fmt.Sprintf("%d", s.TotalHours)},
		{"Active days", fmt.Sprintf("%d", s.ActiveDays)},
		{"Longest session", fmt.Sprintf("%.1fh", float64(s.LongestTenths)/10)},
		{"Longest streak", fmt.Sprintf("%d days", s.Streaks.Longest)},
	}
	if s.Tokens.Input+s.Tokens.Output > 0 {
		rows = append(rows, struct {
			label string
			value string
		}{"Tokens in/out", fmt.Sprintf("%d / %d", s.Tokens.Input, s.Tokens.Output)})
	}

	var b strings.Builder
	for _, row := range rows {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-18s", row.label)))
		b.WriteString(valueStyle.Render(row.value))
		b.WriteString("\n")
	}
	if s.YoY != nil {
		b.WriteString(faintStyle.Render(fmt.Sprintf("vs last year: sessions %+d%%, messages %+d%%, hours %+d%%",
			s.YoY.SessionsPct, s.YoY.MessagesPct, s.YoY.HoursPct)))
		b.WriteString("\n")
	}
	return b.String()
}

// Projects renders the ranked project list with message bars.
func Projects(s *wrapped.Story) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Top projects"))
	b.WriteString("\n")
	if len(s.Projects) == 0 {
		b.WriteString(faintStyle.Render("no project activity"))
		b.WriteString("\n")
		return b.String()
	}

	maxMsgs := s.Projects[0].Messages
	for _, p := range s.Projects {
		if p.Messages > maxMsgs {
			maxMsgs = p.Messages
		}
	}
	for _, p := range s.Projects {
		name := truncate.StringWithTail(p.Name, 20, "…")
		b.WriteString(fmt.Sprintf("%-21s %s %s\n",
			name,
			barStyle.Render(bar(p.Messages, maxMsgs)),
			labelStyle.Render(fmt.Sprintf("%d msgs, %dh", p.Messages, p.Hours))))
	}
	return b.String()
}

// Heatmap draws the 7x24 grid with one shade character per quantized slot.
func Heatmap(s *wrapped.Story) string {
	shades := []rune{' ', '░', '░', '░', '▒', '▒', '▒', '▒', '▓', '▓', '▓', '▓', '█', '█', '█', '█'}
	days := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

	// Stories hold raw counts before an encode and 0-15 values after a
	// decode; normalizing here puts both on the same display scale.
	hm := wrapped.QuantizeHeatmap(s.Heatmap)

	var b strings.Builder
	b.WriteString(headerStyle.Render("Hour-of-week activity"))
	b.WriteString("\n")
	b.WriteString(faintStyle.Render("    0           6           12          18        23"))
	b.WriteString("\n")
	for d := 0; d < 7; d++ {
		b.WriteString(labelStyle.Render(days[d] + " "))
		var row strings.Builder
		for h := 0; h < 24; h++ {
			v := hm[d*24+h]
			row.WriteRune(shades[v])
			row.WriteRune(shades[v])
		}
		b.WriteString(barStyle.Render(row.String()))
		b.WriteString("\n")
	}
	return b.String()
}

// Traits renders the ten trait scores as labeled bars.
func Traits(s *wrapped.Story) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Traits"))
	b.WriteString("\n")
	for _, code := range wrapped.TraitCodes {
		score := s.Traits[code]
		b.WriteString(fmt.Sprintf("%-22s %s %s\n",
			traitLabels[code],
			barStyle.Render(bar(score, 100)),
			labelStyle.Render(fmt.Sprintf("%d", score))))
	}
	return b.String()
}

// Timeline renders the year's events in day order.
func Timeline(s *wrapped.Story) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Timeline"))
	b.WriteString("\n")
	for _, ev := range s.Timeline {
		b.WriteString(labelStyle.Render(fmt.Sprintf("day %3d  ", ev.Day)))
		b.WriteString(eventText(s, ev))
		b.WriteString("\n")
	}
	return b.String()
}

func eventText(s *wrapped.Story, ev wrapped.TimelineEvent) string {
	projectName := func(idx int) string {
		if idx >= 0 && idx < len(s.Projects) {
			return s.Projects[idx].Name
		}
		return "a project"
	}
	switch ev.Type {
	case wrapped.EventPeakDay:
		return fmt.Sprintf("peak day: %d messages", ev.Value)
	case wrapped.EventMilestone:
		return fmt.Sprintf("crossed %d total messages", ev.Value)
	case wrapped.EventStreakStart:
		return "streak started"
	case wrapped.EventStreakEnd:
		return fmt.Sprintf("streak ended after %d days", ev.Value)
	case wrapped.EventGapStart:
		return "went quiet"
	case wrapped.EventGapEnd:
		return fmt.Sprintf("back after %d days away", ev.Value)
	case wrapped.EventNewProject:
		return "first session in " + projectName(ev.Project)
	default:
		return fmt.Sprintf("event type %d", ev.Type)
	}
}

func bar(value, max int) string {
	if max <= 0 {
		max = 1
	}
	filled := value * barWidth / max
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("─", barWidth-filled)
}

// ShareURL appends the encoded payload as the d query parameter.
func ShareURL(baseURL, encoded string) string {
	sep := "?"
	if strings.Contains(baseURL, "?") {
		sep = "&"
	}
	return baseURL + sep + "d=" + encoded
}
