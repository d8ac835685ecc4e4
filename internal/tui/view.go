package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/timelex/timelex-cli/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case constants.StateLogin:
		return m.viewLogin()
	case constants.StateStartTimer, constants.StateNewTask, constants.StateNewProject,
		constants.StateNewClient, constants.StateEditClient, constants.StateEditAI:
		return docStyle.Render(m.form.View())
	case constants.StateConfirmDelete:
		return m.viewConfirmDelete()
	}

	var content string
	switch m.state {
	case constants.StateTasks:
		content = lipgloss.JoinVertical(lipgloss.Left,
			m.tracker.View(),
			docStyle.Render(m.taskList.View()),
		)
	case constants.StateProjects:
		content = docStyle.Render(m.projectList.View())
	case constants.StateClients:
		content = docStyle.Render(m.clientList.View())
	case constants.StateReports:
		content = docStyle.Render(m.reportsModel.View())
	case constants.StateSettings:
		content = m.settingsModel.View()
	}

	var status string
	if m.status != "" {
		status = statusStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		status,
		content,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	tabTitles := []string{"Tasks", "Projects", "Clients", "Reports", "Settings"}
	states := []constants.SessionState{
		constants.StateTasks,
		constants.StateProjects,
		constants.StateClients,
		constants.StateReports,
		constants.StateSettings,
	}
	for i, title := range tabTitles {
		if m.state == states[i] {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewLogin() string {
	var parts []string
	parts = append(parts, "Sign in to Timelex")
	if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}
	if m.formError != "" {
		parts = append(parts, errorStyle.Render(m.formError))
	}
	parts = append(parts, m.form.View())

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) viewConfirmDelete() string {
	subject := "this task"
	switch m.deleteKind {
	case "project":
		subject = "this project"
	case "client":
		subject = "this client and its portal login"
	}

	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Are you sure you want to delete "+subject+"?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
