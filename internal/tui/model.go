package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/timelex/timelex-cli/internal/config"
	"github.com/timelex/timelex-cli/internal/constants"
	"github.com/timelex/timelex-cli/internal/insight"
	"github.com/timelex/timelex-cli/internal/models"
	"github.com/timelex/timelex-cli/internal/state"
	"github.com/timelex/timelex-cli/internal/tui/components/clients"
	"github.com/timelex/timelex-cli/internal/tui/components/projects"
	"github.com/timelex/timelex-cli/internal/tui/components/reports"
	"github.com/timelex/timelex-cli/internal/tui/components/settings"
	"github.com/timelex/timelex-cli/internal/tui/components/tasklist"
	"github.com/timelex/timelex-cli/internal/tui/components/tracker"
)

type LoginFormModel struct {
	Email    string
	Password string
}

type TimerFormModel struct {
	Description string
	ProjectID   string
	Priority    models.Priority
}

type TaskFormModel struct {
	Description string
	ProjectID   string
	Duration    string
	Date        string
	Priority    models.Priority
	Completed   bool
	Comment     string
	DueDate     string
}

type ProjectFormModel struct {
	Name           string
	Color          string
	ClientID       string
	Deadline       string
	EstimatedHours string
}

type ClientFormModel struct {
	Name       string
	HourlyRate string
	Currency   string
	Email      string
	Password   string
}

type AIFormModel struct {
	UseCustom bool
	Endpoint  string
	APIKey    string
	Model     string
}

type Model struct {
	store       *state.Store
	insights    *insight.Service
	prefs       *config.Store
	preferences config.Preferences

	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model

	tracker       tracker.Model
	taskList      tasklist.Model
	projectList   projects.Model
	clientList    clients.Model
	reportsModel  reports.Model
	settingsModel settings.Model

	form        *huh.Form
	loginForm   *LoginFormModel
	timerForm   *TimerFormModel
	taskForm    *TaskFormModel
	projectForm *ProjectFormModel
	clientForm  *ClientFormModel
	aiForm      *AIFormModel

	editingTask    *models.Task
	editingProject *models.Project
	editingClient  *models.Client

	// Pending confirm-delete target: one of task, project, client.
	deleteKind string
	deleteID   string

	status    string
	formError string
	quitting  bool
	width     int
	height    int
}

func NewModel(store *state.Store, insights *insight.Service, prefs *config.Store, preferences config.Preferences) Model {
	m := Model{
		store:         store,
		insights:      insights,
		prefs:         prefs,
		preferences:   preferences,
		state:         constants.StateLogin,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		tracker:       tracker.New(),
		taskList:      tasklist.New(0, 0),
		projectList:   projects.New(0, 0),
		clientList:    clients.New(0, 0),
		reportsModel:  reports.New(),
		settingsModel: settings.New(preferences, 0, 0),
	}

	if store.Restore() {
		m.state = constants.StateTasks
	} else {
		m.loginForm = &LoginFormModel{}
		m.form = newLoginForm(m.loginForm)
	}

	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateTasks:
		keys = append(keys, m.keys.Timer, m.keys.Add, m.keys.Edit, m.keys.Delete)
	case constants.StateProjects, constants.StateClients:
		keys = append(keys, m.keys.Add, m.keys.Edit, m.keys.Delete)
	}
	keys = append(keys, m.keys.Refresh)
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case constants.StateTasks:
		actions = []key.Binding{m.keys.Timer, m.keys.Add, m.keys.Edit, m.keys.Delete}
	case constants.StateProjects, constants.StateClients:
		actions = []key.Binding{m.keys.Add, m.keys.Edit, m.keys.Delete}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tracker.Init()}
	if m.state != constants.StateLogin {
		cmds = append(cmds, m.refreshCmd())
	}
	return tea.Batch(cmds...)
}

// syncComponents pushes the store's current visible collections into every
// view component. Called after any refresh or mutation.
func (m *Model) syncComponents() {
	tasks := m.store.VisibleTasks()
	projectsList := m.store.VisibleProjects()
	clientsList := m.store.VisibleClients()

	m.taskList.SetTasks(tasks, projectsList)
	m.projectList.SetProjects(projectsList, tasks, clientsList, time.Now())
	m.clientList.SetClients(clientsList, projectsList)
	m.reportsModel.SetData(tasks, projectsList, clientsList)
	m.settingsModel.SetPreferences(m.preferences)
	if session := m.store.Session(); session != nil {
		m.settingsModel.SetSession(*session)
	}
}
