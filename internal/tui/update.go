package tui

import (
	"context"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/timelex/timelex-cli/internal/constants"
	"github.com/timelex/timelex-cli/internal/logger"
	"github.com/timelex/timelex-cli/internal/models"
	"github.com/timelex/timelex-cli/internal/tui/components/clients"
	"github.com/timelex/timelex-cli/internal/tui/components/projects"
	"github.com/timelex/timelex-cli/internal/tui/components/reports"
	"github.com/timelex/timelex-cli/internal/tui/components/settings"
	"github.com/timelex/timelex-cli/internal/tui/components/tasklist"
	"github.com/timelex/timelex-cli/internal/tui/components/tracker"
)

type loggedInMsg struct {
	err error
}

type refreshedMsg struct {
	err error
}

// mutationMsg reports a completed server mutation; the store is already
// reconciled when it arrives.
type mutationMsg struct {
	err error
}

type insightMsg struct {
	text string
}

func (m Model) loginCmd(email, password string) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		return loggedInMsg{err: store.Login(context.Background(), email, password)}
	}
}

func (m Model) refreshCmd() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		return refreshedMsg{err: store.Refresh(context.Background())}
	}
}

func (m Model) insightCmd() tea.Cmd {
	svc := m.insights
	cfg := m.preferences.AI
	tasks := m.store.VisibleTasks()
	projectsList := m.store.VisibleProjects()
	clientsList := m.store.VisibleClients()
	return func() tea.Msg {
		return insightMsg{text: svc.GetSmartInsights(context.Background(), tasks, projectsList, clientsList, cfg)}
	}
}

func mutate(f func() error) tea.Cmd {
	return func() tea.Msg {
		return mutationMsg{err: f()}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		contentHeight := msg.Height - 8
		m.taskList.SetSize(msg.Width-4, contentHeight)
		m.projectList.SetSize(msg.Width-4, contentHeight)
		m.clientList.SetSize(msg.Width-4, contentHeight)
		m.reportsModel.SetSize(msg.Width-4, contentHeight)
		m.settingsModel.SetSize(msg.Width-4, contentHeight)
		m.tracker.SetSize(msg.Width-4, contentHeight)
		return m, nil

	case tracker.TickMsg:
		var cmd tea.Cmd
		m.tracker, cmd = m.tracker.Update(msg)
		m.tracker.SetTimer(m.store.Timer(), m.store.Elapsed())
		return m, cmd

	case loggedInMsg:
		if msg.err != nil {
			m.formError = msg.err.Error()
			m.loginForm = &LoginFormModel{Email: m.loginForm.Email}
			m.form = newLoginForm(m.loginForm)
			return m, nil
		}
		m.formError = ""
		m.state = constants.StateTasks
		return m, m.refreshCmd()

	case refreshedMsg:
		if msg.err != nil {
			if m.store.Session() == nil {
				// 401 tore the session down; back to the login screen.
				m.loginForm = &LoginFormModel{}
				m.form = newLoginForm(m.loginForm)
				m.state = constants.StateLogin
				m.status = "Session expired, please sign in again."
				return m, nil
			}
			m.status = "Refresh failed: " + msg.err.Error()
			return m, nil
		}
		m.status = ""
		m.syncComponents()
		return m, nil

	case mutationMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		} else {
			m.status = ""
		}
		m.syncComponents()
		return m, nil

	case insightMsg:
		m.reportsModel.SetInsight(msg.text)
		return m, nil
	}

	switch m.state {
	case constants.StateLogin:
		return m.updateLogin(msg)
	case constants.StateStartTimer:
		return m.updateTimerForm(msg)
	case constants.StateNewTask:
		return m.updateTaskForm(msg)
	case constants.StateNewProject:
		return m.updateProjectForm(msg)
	case constants.StateNewClient, constants.StateEditClient:
		return m.updateClientForm(msg)
	case constants.StateEditAI:
		return m.updateAIForm(msg)
	case constants.StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	// Component-emitted messages.
	switch msg := msg.(type) {
	case tasklist.AddTaskMsg:
		m.editingTask = nil
		m.taskForm = &TaskFormModel{Priority: models.PriorityMedium, Date: time.Now().Format(constants.DateFormat)}
		m.form = newTaskForm(m.taskForm, m.store.VisibleProjects())
		m.previousState = m.state
		m.state = constants.StateNewTask
		return m, m.form.Init()

	case tasklist.EditTaskMsg:
		task := msg.Task
		m.editingTask = &task
		m.taskForm = &TaskFormModel{
			Description: task.Description,
			ProjectID:   task.ProjectID,
			Duration:    strconv.FormatInt(task.Duration/60000, 10),
			Date:        task.Date,
			Priority:    task.Priority,
			Completed:   task.IsCompleted,
			Comment:     task.Comment,
			DueDate:     task.DueDate,
		}
		m.form = newTaskForm(m.taskForm, m.store.VisibleProjects())
		m.previousState = m.state
		m.state = constants.StateNewTask
		return m, m.form.Init()

	case tasklist.DeleteTaskMsg:
		m.deleteKind, m.deleteID = "task", msg.ID
		m.previousState = m.state
		m.state = constants.StateConfirmDelete
		return m, nil

	case tasklist.ToggleCompleteMsg:
		task := msg.Task
		completed := !task.IsCompleted
		store := m.store
		return m, mutate(func() error {
			_, err := store.UpdateTask(context.Background(), task.ID, models.TaskPatch{IsCompleted: &completed})
			return err
		})

	case tasklist.PlayTaskMsg:
		store := m.store
		id := msg.ID
		return m, mutate(func() error {
			return store.ResumeTask(context.Background(), id)
		})

	case projects.AddProjectMsg:
		m.editingProject = nil
		m.projectForm = &ProjectFormModel{}
		m.form = newProjectForm(m.projectForm, m.store.VisibleClients())
		m.previousState = m.state
		m.state = constants.StateNewProject
		return m, m.form.Init()

	case projects.EditProjectMsg:
		project := msg.Project
		m.editingProject = &project
		m.projectForm = &ProjectFormModel{
			Name:     project.Name,
			Color:    project.Color,
			ClientID: project.ClientID,
			Deadline: project.Deadline,
		}
		if project.EstimatedDuration > 0 {
			m.projectForm.EstimatedHours = strconv.FormatFloat(float64(project.EstimatedDuration)/3600000, 'f', -1, 64)
		}
		m.form = newProjectForm(m.projectForm, m.store.VisibleClients())
		m.previousState = m.state
		m.state = constants.StateNewProject
		return m, m.form.Init()

	case projects.DeleteProjectMsg:
		m.deleteKind, m.deleteID = "project", msg.ID
		m.previousState = m.state
		m.state = constants.StateConfirmDelete
		return m, nil

	case clients.AddClientMsg:
		m.editingClient = nil
		m.clientForm = &ClientFormModel{Currency: "USD"}
		m.form = newClientForm(m.clientForm, true)
		m.previousState = m.state
		m.state = constants.StateNewClient
		return m, m.form.Init()

	case clients.EditClientMsg:
		client := msg.Client
		m.editingClient = &client
		m.clientForm = &ClientFormModel{
			Name:       client.Name,
			HourlyRate: strconv.FormatFloat(client.HourlyRate, 'f', 2, 64),
			Currency:   client.Currency,
		}
		m.form = newClientForm(m.clientForm, false)
		m.previousState = m.state
		m.state = constants.StateEditClient
		return m, m.form.Init()

	case clients.DeleteClientMsg:
		m.deleteKind, m.deleteID = "client", msg.ID
		m.previousState = m.state
		m.state = constants.StateConfirmDelete
		return m, nil

	case reports.RequestInsightMsg:
		m.reportsModel.SetLoading()
		return m, m.insightCmd()

	case settings.EditAIMsg:
		m.aiForm = &AIFormModel{
			UseCustom: m.preferences.AI.UseCustom,
			Endpoint:  m.preferences.AI.Endpoint,
			APIKey:    m.preferences.AI.APIKey,
			Model:     m.preferences.AI.Model,
		}
		m.form = newAIForm(m.aiForm)
		m.previousState = m.state
		m.state = constants.StateEditAI
		return m, m.form.Init()

	case settings.ToggleDarkModeMsg:
		m.preferences.DarkMode = !m.preferences.DarkMode
		if err := m.prefs.Save(m.preferences); err != nil {
			logger.Error("Failed to save preferences", "error", err)
			m.status = "Could not save preferences: " + err.Error()
		}
		m.syncComponents()
		return m, nil

	case settings.LogoutMsg:
		m.store.Logout()
		m.loginForm = &LoginFormModel{}
		m.form = newLoginForm(m.loginForm)
		m.state = constants.StateLogin
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = nextTab(m.state, 1)
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = nextTab(m.state, -1)
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			return m, m.refreshCmd()
		case key.Matches(msg, m.keys.Timer) && m.state == constants.StateTasks:
			if m.store.Tracking() {
				store := m.store
				return m, mutate(func() error {
					_, err := store.StopTracking(context.Background())
					return err
				})
			}
			m.timerForm = &TimerFormModel{Priority: models.PriorityMedium}
			m.form = newTimerForm(m.timerForm, m.store.VisibleProjects())
			m.previousState = m.state
			m.state = constants.StateStartTimer
			return m, m.form.Init()
		case msg.String() == "x" && m.state == constants.StateTasks && m.store.Tracking():
			m.store.ClearTimer()
			m.tracker.SetTimer(m.store.Timer(), 0)
			return m, nil
		}
	}

	// Route everything else to the active tab's component.
	var cmd tea.Cmd
	switch m.state {
	case constants.StateTasks:
		m.taskList, cmd = m.taskList.Update(msg)
	case constants.StateProjects:
		m.projectList, cmd = m.projectList.Update(msg)
	case constants.StateClients:
		m.clientList, cmd = m.clientList.Update(msg)
	case constants.StateReports:
		m.reportsModel, cmd = m.reportsModel.Update(msg)
	case constants.StateSettings:
		m.settingsModel, cmd = m.settingsModel.Update(msg)
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func nextTab(s constants.SessionState, delta int) constants.SessionState {
	tabs := []constants.SessionState{
		constants.StateTasks,
		constants.StateProjects,
		constants.StateClients,
		constants.StateReports,
		constants.StateSettings,
	}
	for i, t := range tabs {
		if t == s {
			return tabs[(i+delta+len(tabs))%len(tabs)]
		}
	}
	return s
}

func (m Model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.loginCmd(m.loginForm.Email, m.loginForm.Password)
	}
	return m, cmd
}

func (m Model) updateTimerForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.store.StartTracking(m.timerForm.Description, m.timerForm.ProjectID, m.timerForm.Priority, ""); err != nil {
			m.status = err.Error()
		}
		m.state = m.previousState
		return m, nil
	case huh.StateAborted:
		m.state = m.previousState
		return m, nil
	}
	return m, cmd
}

func (m Model) updateTaskForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		durationMin, _ := strconv.ParseInt(orZero(m.taskForm.Duration), 10, 64)
		durationMS := durationMin * 60000
		store := m.store

		if m.editingTask != nil {
			id := m.editingTask.ID
			patch := models.TaskPatch{
				Description: &m.taskForm.Description,
				Duration:    &durationMS,
				Priority:    &m.taskForm.Priority,
				Date:        &m.taskForm.Date,
				IsCompleted: &m.taskForm.Completed,
			}
			m.state = m.previousState
			return m, mutate(func() error {
				_, err := store.UpdateTask(context.Background(), id, patch)
				return err
			})
		}

		draft := models.TaskDraft{
			Description: m.taskForm.Description,
			ProjectID:   m.taskForm.ProjectID,
			Duration:    durationMS,
			Date:        m.taskForm.Date,
			IsCompleted: m.taskForm.Completed,
			Priority:    m.taskForm.Priority,
			Recurrence:  models.RecurrenceNone,
			Comment:     m.taskForm.Comment,
			DueDate:     m.taskForm.DueDate,
		}
		m.state = m.previousState
		return m, mutate(func() error {
			_, err := store.CreateTask(context.Background(), draft)
			return err
		})
	case huh.StateAborted:
		m.state = m.previousState
		return m, nil
	}
	return m, cmd
}

func (m Model) updateProjectForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		var estimate int64
		if hours, err := strconv.ParseFloat(orZero(m.projectForm.EstimatedHours), 64); err == nil {
			estimate = int64(hours * 3600000)
		}
		store := m.store

		if m.editingProject != nil {
			id := m.editingProject.ID
			patch := models.ProjectPatch{
				Name:              &m.projectForm.Name,
				Color:             &m.projectForm.Color,
				ClientID:          &m.projectForm.ClientID,
				Deadline:          &m.projectForm.Deadline,
				EstimatedDuration: &estimate,
			}
			m.state = m.previousState
			return m, mutate(func() error {
				_, err := store.UpdateProject(context.Background(), id, patch)
				return err
			})
		}

		draft := models.ProjectDraft{
			Name:              m.projectForm.Name,
			Color:             m.projectForm.Color,
			ClientID:          m.projectForm.ClientID,
			Deadline:          m.projectForm.Deadline,
			EstimatedDuration: estimate,
		}
		m.state = m.previousState
		return m, mutate(func() error {
			_, err := store.CreateProject(context.Background(), draft)
			return err
		})
	case huh.StateAborted:
		m.state = m.previousState
		return m, nil
	}
	return m, cmd
}

func (m Model) updateClientForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		rate, _ := strconv.ParseFloat(m.clientForm.HourlyRate, 64)
		store := m.store

		if m.editingClient != nil {
			id := m.editingClient.ID
			patch := models.ClientPatch{
				Name:       &m.clientForm.Name,
				HourlyRate: &rate,
				Currency:   &m.clientForm.Currency,
			}
			m.state = m.previousState
			return m, mutate(func() error {
				_, err := store.UpdateClient(context.Background(), id, patch)
				return err
			})
		}

		draft := models.ClientDraft{
			Name:       m.clientForm.Name,
			HourlyRate: rate,
			Currency:   m.clientForm.Currency,
			Email:      m.clientForm.Email,
			Password:   m.clientForm.Password,
		}
		m.state = m.previousState
		return m, mutate(func() error {
			_, err := store.CreateClient(context.Background(), draft)
			return err
		})
	case huh.StateAborted:
		m.state = m.previousState
		return m, nil
	}
	return m, cmd
}

func (m Model) updateAIForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.preferences.AI = models.AIConfig{
			UseCustom: m.aiForm.UseCustom,
			Endpoint:  m.aiForm.Endpoint,
			APIKey:    m.aiForm.APIKey,
			Model:     m.aiForm.Model,
		}
		if err := m.prefs.Save(m.preferences); err != nil {
			logger.Error("Failed to save preferences", "error", err)
			m.status = "Could not save preferences: " + err.Error()
		}
		m.syncComponents()
		m.state = m.previousState
		return m, nil
	case huh.StateAborted:
		m.state = m.previousState
		return m, nil
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y":
		kind, id := m.deleteKind, m.deleteID
		store := m.store
		m.deleteKind, m.deleteID = "", ""
		m.state = m.previousState
		return m, mutate(func() error {
			switch kind {
			case "project":
				return store.DeleteProject(context.Background(), id)
			case "client":
				return store.DeleteClient(context.Background(), id)
			default:
				return store.DeleteTask(context.Background(), id)
			}
		})
	case "n", "esc":
		m.deleteKind, m.deleteID = "", ""
		m.state = m.previousState
		return m, nil
	}
	return m, nil
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
