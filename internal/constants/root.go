package constants

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName           = "timelex"
	Version           = "v0.3.0"
	DefaultKeyringKey = "api-token"

	// DefaultAPIPort is the fixed port the Timelex backend listens on
	DefaultAPIPort = 8000

	// APIPrefix is prepended to every endpoint path
	APIPrefix = "/api"

	// Config file location relative to the user config dir
	ConfigDirName  = "timelex"
	ConfigFileName = "config.json"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"
)

// Session States
const (
	StateLogin SessionState = iota
	StateTasks
	StateProjects
	StateClients
	StateReports
	StateSettings
	StateNewTask
	StateStartTimer
	StateNewProject
	StateNewClient
	StateEditClient
	StateConfirmDelete
	StateEditAI
)
