package settings

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/timelex/timelex-cli/internal/config"
	"github.com/timelex/timelex-cli/internal/models"
)

type EditAIMsg struct{}

type ToggleDarkModeMsg struct{}

type LogoutMsg struct{}

type Model struct {
	prefs   config.Preferences
	session models.UserSession
	width   int
	height  int
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(20)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			MarginTop(1).
			MarginBottom(1)
)

func New(prefs config.Preferences, width, height int) Model {
	return Model{prefs: prefs, width: width, height: height}
}

func (m *Model) SetPreferences(prefs config.Preferences) {
	m.prefs = prefs
}

func (m *Model) SetSession(session models.UserSession) {
	m.session = session
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "e":
			return m, func() tea.Msg { return EditAIMsg{} }
		case "m":
			return m, func() tea.Msg { return ToggleDarkModeMsg{} }
		case "L":
			return m, func() tea.Msg { return LogoutMsg{} }
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	var sections []string

	sessionTitle := titleStyle.Render("Session")
	sessionContent := lipgloss.JoinVertical(
		lipgloss.Left,
		fmt.Sprintf("%s %s", labelStyle.Render("Signed in as:"), valueStyle.Render(m.session.Name)),
		fmt.Sprintf("%s %s", labelStyle.Render("Role:"), valueStyle.Render(string(m.session.Role))),
	)
	sections = append(sections, sectionStyle.Render(sessionTitle+"\n"+sessionContent))

	aiTitle := titleStyle.Render("AI Insights")
	provider := "Gemini (default)"
	if m.prefs.AI.UseCustom {
		provider = "Custom endpoint"
	}
	keyState := "not set"
	if m.prefs.AI.APIKey != "" {
		keyState = "configured"
	}
	aiContent := lipgloss.JoinVertical(
		lipgloss.Left,
		fmt.Sprintf("%s %s", labelStyle.Render("Provider:"), valueStyle.Render(provider)),
		fmt.Sprintf("%s %s", labelStyle.Render("Endpoint:"), valueStyle.Render(m.prefs.AI.Endpoint)),
		fmt.Sprintf("%s %s", labelStyle.Render("Model:"), valueStyle.Render(m.prefs.AI.Model)),
		fmt.Sprintf("%s %s", labelStyle.Render("API Key:"), valueStyle.Render(keyState)),
	)
	sections = append(sections, sectionStyle.Render(aiTitle+"\n"+aiContent))

	displayTitle := titleStyle.Render("Display")
	displayContent := fmt.Sprintf("%s %s", labelStyle.Render("Dark mode:"), valueStyle.Render(fmt.Sprintf("%t", m.prefs.DarkMode)))
	sections = append(sections, sectionStyle.Render(displayTitle+"\n"+displayContent))

	helpText := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true).
		MarginTop(2).
		Render("'e' edit AI settings | 'm' toggle dark mode | 'L' log out")

	sections = append(sections, helpText)

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Left,
		lipgloss.Top,
		lipgloss.NewStyle().Padding(2, 4).Render(content),
	)
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
