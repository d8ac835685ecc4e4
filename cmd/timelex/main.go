package main

import (
	"github.com/alecthomas/kong"

	"github.com/timelex/timelex-cli/internal/api"
	"github.com/timelex/timelex-cli/internal/auth"
	"github.com/timelex/timelex-cli/internal/cli"
	"github.com/timelex/timelex-cli/internal/cli/clients"
	"github.com/timelex/timelex-cli/internal/cli/projects"
	"github.com/timelex/timelex-cli/internal/cli/reports"
	"github.com/timelex/timelex-cli/internal/cli/session"
	"github.com/timelex/timelex-cli/internal/cli/system"
	"github.com/timelex/timelex-cli/internal/cli/tasks"
	"github.com/timelex/timelex-cli/internal/config"
	"github.com/timelex/timelex-cli/internal/constants"
	"github.com/timelex/timelex-cli/internal/data"
	"github.com/timelex/timelex-cli/internal/errors"
	"github.com/timelex/timelex-cli/internal/insight"
	"github.com/timelex/timelex-cli/internal/logger"
	"github.com/timelex/timelex-cli/internal/state"
)

var CLI struct {
	Version kong.VersionFlag
	Host    string `help:"Timelex backend host." default:"localhost"`
	Debug   bool   `help:"Enable debug logging."`

	Login          session.LoginCmd          `cmd:"" help:"Sign in and store the session token."`
	Logout         session.LogoutCmd         `cmd:"" help:"Sign out and discard the stored token."`
	Whoami         session.WhoamiCmd         `cmd:"" help:"Show the active session."`
	ResetPassword  session.ResetPasswordCmd  `cmd:"" name:"reset-password" help:"Request a password reset email."`
	ChangePassword session.ChangePasswordCmd `cmd:"" name:"change-password" help:"Change the account password."`
	Tui            system.TuiCmd             `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Doctor         system.DoctorCmd          `cmd:"" help:"Run health checks and diagnostics."`
	Task           struct {
		List     tasks.TaskListCmd     `cmd:"" help:"List tasks." default:"1"`
		Add      tasks.TaskAddCmd      `cmd:"" help:"Add a task."`
		Complete tasks.TaskCompleteCmd `cmd:"" help:"Mark tasks complete (or reopen them)."`
		Delete   tasks.TaskDeleteCmd   `cmd:"" help:"Delete tasks."`
	} `cmd:"" help:"Manage tasks."`
	Project struct {
		List   projects.ProjectListCmd   `cmd:"" help:"List projects with progress." default:"1"`
		Add    projects.ProjectAddCmd    `cmd:"" help:"Add a project."`
		Delete projects.ProjectDeleteCmd `cmd:"" help:"Delete a project."`
	} `cmd:"" help:"Manage projects."`
	Client struct {
		List   clients.ClientListCmd   `cmd:"" help:"List clients." default:"1"`
		Add    clients.ClientAddCmd    `cmd:"" help:"Add a client."`
		Delete clients.ClientDeleteCmd `cmd:"" help:"Delete a client."`
	} `cmd:"" help:"Manage clients."`
	Report  reports.ReportCmd  `cmd:"" help:"Show time and earnings reports."`
	Insight reports.InsightCmd `cmd:"" help:"Generate an AI summary of your data."`
	Config  struct {
		Show     system.ConfigShowCmd     `cmd:"" help:"Show local preferences." default:"1"`
		AI       system.ConfigAICmd       `cmd:"" help:"Configure the AI insight provider."`
		DarkMode system.ConfigDarkModeCmd `cmd:"" name:"dark-mode" help:"Toggle dark mode."`
	} `cmd:"" help:"Manage local preferences."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Time tracking and invoicing client for the Timelex backend"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	configPath, err := config.DefaultPath()
	if err != nil {
		errors.Fatal(err)
	}
	prefsStore := config.NewStore(configPath)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: prefsStore.Dir()}); err != nil {
		errors.Fatal(err)
	}

	preferences, err := prefsStore.Load()
	if err != nil {
		errors.Fatal(err)
	}

	authSvc := auth.NewService(nil)
	client := api.New(CLI.Host, constants.DefaultAPIPort, authSvc.Token)
	authSvc.SetClient(client)
	dataSvc := data.NewService(client)

	appCtx := &cli.Context{
		Store:       state.NewStore(authSvc, dataSvc),
		Auth:        authSvc,
		Data:        dataSvc,
		Insights:    insight.NewService(),
		Prefs:       prefsStore,
		Preferences: preferences,
	}

	if err := ctx.Run(appCtx); err != nil {
		errors.Fatal(err)
	}
}
