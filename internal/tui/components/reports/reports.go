package reports

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/timelex/timelex-cli/internal/format"
	"github.com/timelex/timelex-cli/internal/models"
	"github.com/timelex/timelex-cli/internal/report"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(1, 0, 0, 0)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	insightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
)

// RequestInsightMsg asks the parent to fetch an AI summary of the data.
type RequestInsightMsg struct{}

type KeyMap struct {
	Insight key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Insight: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "smart insight"),
		),
	}
}

type Model struct {
	stats     []report.ProjectStat
	earnings  map[string]float64
	totalTime int64
	daily     []report.DailySummary
	insight   string
	loading   bool
	keys      KeyMap
	width     int
	height    int
}

func New() Model {
	return Model{keys: DefaultKeyMap()}
}

func (m *Model) SetData(tasks []models.Task, projects []models.Project, clients []models.Client) {
	m.stats = report.ProjectStats(tasks, projects, clients)
	m.earnings = report.EarningsByCurrency(m.stats)
	m.totalTime = report.TotalTime(m.stats)
	m.daily = report.DailySummaries(tasks, projects, clients)
}

// SetInsight installs the fetched text and clears the loading marker.
func (m *Model) SetInsight(text string) {
	m.insight = text
	m.loading = false
}

func (m *Model) SetLoading() {
	m.loading = true
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Insight) && !m.loading {
			return m, func() tea.Msg { return RequestInsightMsg{} }
		}
	}
	return m, nil
}

func (m Model) View() string {
	if len(m.stats) == 0 {
		return "\n  No tracked time yet.\n  Reports appear once tasks exist."
	}

	var b strings.Builder

	b.WriteString(headerStyle.Render("Time per project"))
	b.WriteString("\n")
	for _, s := range m.stats {
		b.WriteString(rowStyle.Render(fmt.Sprintf("  %-24s %s  %s",
			s.Name, format.Duration(s.Time), format.Currency(s.Earnings, s.Currency))))
		b.WriteString("\n")
	}

	b.WriteString(headerStyle.Render("Earnings by currency"))
	b.WriteString("\n")
	codes := make([]string, 0, len(m.earnings))
	for code := range m.earnings {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		b.WriteString(rowStyle.Render(fmt.Sprintf("  %-6s %s", code, format.Currency(m.earnings[code], code))))
		b.WriteString("\n")
	}

	b.WriteString(headerStyle.Render("Recent days"))
	b.WriteString("\n")
	daily := m.daily
	if len(daily) > 7 {
		daily = daily[:7]
	}
	for _, d := range daily {
		b.WriteString(rowStyle.Render(fmt.Sprintf("  %s  %s", d.Day, format.Duration(d.Time))))
		b.WriteString("\n")
	}

	b.WriteString(mutedStyle.Render(fmt.Sprintf("\nTotal tracked: %s", format.Duration(m.totalTime))))
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(mutedStyle.Render("\nGenerating smart insights..."))
	case m.insight != "":
		b.WriteString("\n")
		b.WriteString(insightStyle.Render(m.insight))
	default:
		b.WriteString(mutedStyle.Render("\nPress 'i' for smart insights."))
	}

	return b.String()
}
