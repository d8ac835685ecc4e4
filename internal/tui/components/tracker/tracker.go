package tracker

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/timelex/timelex-cli/internal/format"
	"github.com/timelex/timelex-cli/internal/models"
)

var (
	clockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(1, 0).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Width(20).
			Align(lipgloss.Center)

	descriptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Bold(true).
				Padding(0, 1)

	idleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(0, 1)
)

// StopMsg asks the parent to stop the running timer and persist the task.
type StopMsg struct{}

// DiscardMsg asks the parent to drop the interval without saving.
type DiscardMsg struct{}

type Model struct {
	timer   models.ActiveTimer
	elapsed time.Duration
	width   int
	height  int
}

func New() Model {
	return Model{}
}

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg.(type) {
	case TickMsg:
		return m, tick()
	}
	return m, nil
}

// SetTimer refreshes the displayed state. The parent calls this on every
// tick so the clock advances while the timer is running.
func (m *Model) SetTimer(timer models.ActiveTimer, elapsed time.Duration) {
	m.timer = timer
	m.elapsed = elapsed
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) View() string {
	if !m.timer.Running {
		return idleStyle.Render("Timer idle. Press 's' to start tracking.")
	}

	description := m.timer.Description
	if description == "" {
		description = "Unnamed Task"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		clockStyle.Render(format.Duration(m.elapsed.Milliseconds())),
		descriptionStyle.Render(description),
		idleStyle.Render("[s] stop and save   [x] discard"),
	)
}
