package projects

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/timelex/timelex-cli/internal/format"
	"github.com/timelex/timelex-cli/internal/models"
	"github.com/timelex/timelex-cli/internal/report"
)

type AddProjectMsg struct{}

type EditProjectMsg struct {
	Project models.Project
}

type DeleteProjectMsg struct {
	ID string
}

type Item struct {
	Project models.Project
	Metrics report.ProjectMetrics
	Client  string
}

func (i Item) Title() string {
	title := i.Project.Name
	if i.Metrics.Overdue {
		title += " ⚠ overdue"
	}
	return title
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%.0f%% | %s logged", i.Metrics.Progress, format.Duration(i.Metrics.LoggedTime))
	if i.Client != "" {
		desc += " | " + i.Client
	}
	if i.Project.Deadline != "" {
		desc += " | due " + i.Project.Deadline
	}
	return desc
}

func (i Item) FilterValue() string { return i.Project.Name }

type KeyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Projects"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	return Model{list: l, keys: keys}
}

// SetProjects rebuilds the items with per-project metrics derived from the
// given tasks.
func (m *Model) SetProjects(projects []models.Project, tasks []models.Task, clients []models.Client, now time.Time) {
	names := make(map[string]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.Name
	}
	items := make([]list.Item, len(projects))
	for i, p := range projects {
		items[i] = Item{
			Project: p,
			Metrics: report.MetricsFor(p, tasks, now),
			Client:  names[p.ClientID],
		}
	}
	m.list.SetItems(items)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddProjectMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return EditProjectMsg{Project: i.Project} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteProjectMsg{ID: i.Project.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No projects yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
