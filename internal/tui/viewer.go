package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"claude-wrapped/internal/render"
	"claude-wrapped/internal/wrapped"
)

type section int

const (
	sectionOverview section = iota
	sectionProjects
	sectionHeatmap
	sectionTraits
	sectionTimeline
)

var sectionTitles = []string{"Overview", "Projects", "Heatmap", "Traits", "Timeline"}

type keyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Up      key.Binding
	Down    key.Binding
	Quit    key.Binding
	Numbers key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("→/tab", "next section"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("←", "previous section"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Numbers: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5"),
			key.WithHelp("1-5", "jump to section"),
		),
	}
}

// Viewer pages through one story's sections.
type Viewer struct {
	story *wrapped.Story
	theme Theme
	keys  keyMap

	section section
	vp      viewport.Model

	width  int
	height int
	ready  bool
}

func NewViewer(story *wrapped.Story) *Viewer {
	return &Viewer{
		story: story,
		theme: NewTheme(),
		keys:  newKeyMap(),
	}
}

func (v *Viewer) Init() tea.Cmd {
	return nil
}

func (v *Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		chrome := 4 // top bar, tabs, footer, pane border
		if !v.ready {
			v.vp = viewport.New(msg.Width-4, msg.Height-chrome)
			v.ready = true
		} else {
			v.vp.Width = msg.Width - 4
			v.vp.Height = msg.Height - chrome
		}
		v.vp.SetContent(v.sectionContent())
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit
		case key.Matches(msg, v.keys.Next):
			v.setSection((v.section + 1) % section(len(sectionTitles)))
			return v, nil
		case key.Matches(msg, v.keys.Prev):
			v.setSection((v.section + section(len(sectionTitles)) - 1) % section(len(sectionTitles)))
			return v, nil
		case key.Matches(msg, v.keys.Numbers):
			idx := int(msg.String()[0] - '1')
			if idx >= 0 && idx < len(sectionTitles) {
				v.setSection(section(idx))
			}
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	return v, cmd
}

func (v *Viewer) setSection(s section) {
	v.section = s
	v.vp.SetContent(v.sectionContent())
	v.vp.GotoTop()
}

func (v *Viewer) sectionContent() string {
	switch v.section {
	case sectionProjects:
		return render.Projects(v.story)
	case sectionHeatmap:
		return render.Heatmap(v.story)
	case sectionTraits:
		return render.Traits(v.story)
	case sectionTimeline:
		if len(v.story.Timeline) == 0 {
			return "no timeline events this year"
		}
		return render.Timeline(v.story)
	default:
		return render.Overview(v.story)
	}
}

func (v *Viewer) View() string {
	if !v.ready {
		return "loading…"
	}

	title := v.theme.TopBarTitle.Render(fmt.Sprintf("Claude Wrapped %d", v.story.Year))
	if v.story.Name != "" {
		title += v.theme.TopBar.Render(" · " + v.story.Name)
	}

	var tabs []string
	for i, name := range sectionTitles {
		label := fmt.Sprintf("%d %s", i+1, name)
		if section(i) == v.section {
			tabs = append(tabs, v.theme.TabActive.Render(label))
		} else {
			tabs = append(tabs, v.theme.Tab.Render(label))
		}
	}
	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	pane := v.theme.Pane.Width(v.width - 2).Render(v.vp.View())
	footer := v.theme.Footer.Render("←/→ sections · ↑/↓ scroll · q quit")

	return strings.Join([]string{title, tabBar, pane, footer}, "\n")
}

// Run shows the viewer full screen and blocks until the user quits.
func Run(story *wrapped.Story) error {
	p := tea.NewProgram(NewViewer(story), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
