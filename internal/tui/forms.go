package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/timelex/timelex-cli/internal/constants"
	"github.com/timelex/timelex-cli/internal/models"
)

func newLoginForm(fm *LoginFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&fm.Email).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("email cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&fm.Password),
		),
	).WithTheme(huh.ThemeDracula())
}

func projectOptions(projects []models.Project) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(projects)+1)
	opts = append(opts, huh.NewOption("(none)", ""))
	for _, p := range projects {
		opts = append(opts, huh.NewOption(p.Name, p.ID))
	}
	return opts
}

func priorityOptions() []huh.Option[models.Priority] {
	return []huh.Option[models.Priority]{
		huh.NewOption("Low", models.PriorityLow),
		huh.NewOption("Medium", models.PriorityMedium),
		huh.NewOption("High", models.PriorityHigh),
	}
}

func newTimerForm(fm *TimerFormModel, projects []models.Project) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What are you working on?").
				Value(&fm.Description),
			huh.NewSelect[string]().
				Title("Project").
				Options(projectOptions(projects)...).
				Value(&fm.ProjectID),
			huh.NewSelect[models.Priority]().
				Title("Priority").
				Options(priorityOptions()...).
				Value(&fm.Priority),
		),
	).WithTheme(huh.ThemeDracula())
}

func newTaskForm(fm *TaskFormModel, projects []models.Project) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Description").
				Value(&fm.Description).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("description cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Project").
				Options(projectOptions(projects)...).
				Value(&fm.ProjectID),
			huh.NewInput().
				Title("Duration (minutes)").
				Value(&fm.Duration).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					i, err := strconv.Atoi(s)
					if err != nil {
						return err
					}
					if i < 0 {
						return fmt.Errorf("duration cannot be negative")
					}
					return nil
				}),
			huh.NewInput().
				Title("Date (YYYY-MM-DD)").
				Value(&fm.Date).
				Validate(validateOptionalDate),
			huh.NewSelect[models.Priority]().
				Title("Priority").
				Options(priorityOptions()...).
				Value(&fm.Priority),
			huh.NewConfirm().
				Title("Completed").
				Value(&fm.Completed),
			huh.NewInput().
				Title("Comment").
				Value(&fm.Comment),
			huh.NewInput().
				Title("Due date (YYYY-MM-DD)").
				Value(&fm.DueDate).
				Validate(validateOptionalDate),
		),
	).WithTheme(huh.ThemeDracula())
}

func newProjectForm(fm *ProjectFormModel, clients []models.Client) *huh.Form {
	clientOpts := make([]huh.Option[string], 0, len(clients)+1)
	clientOpts = append(clientOpts, huh.NewOption("(none)", ""))
	for _, c := range clients {
		clientOpts = append(clientOpts, huh.NewOption(c.Name, c.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Color (hex)").
				Value(&fm.Color),
			huh.NewSelect[string]().
				Title("Client").
				Options(clientOpts...).
				Value(&fm.ClientID),
			huh.NewInput().
				Title("Deadline (YYYY-MM-DD)").
				Value(&fm.Deadline).
				Validate(validateOptionalDate),
			huh.NewInput().
				Title("Estimated hours").
				Value(&fm.EstimatedHours).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					f, err := strconv.ParseFloat(s, 64)
					if err != nil {
						return err
					}
					if f < 0 {
						return fmt.Errorf("estimate cannot be negative")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

func newClientForm(fm *ClientFormModel, creating bool) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Name").
			Value(&fm.Name).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("name cannot be empty")
				}
				return nil
			}),
		huh.NewInput().
			Title("Hourly rate").
			Value(&fm.HourlyRate).
			Validate(func(s string) error {
				f, err := strconv.ParseFloat(s, 64)
				if err != nil {
					return fmt.Errorf("rate must be a number")
				}
				if f < 0 {
					return fmt.Errorf("rate cannot be negative")
				}
				return nil
			}),
		huh.NewSelect[string]().
			Title("Currency").
			Options(
				huh.NewOption("USD", "USD"),
				huh.NewOption("EUR", "EUR"),
				huh.NewOption("GBP", "GBP"),
				huh.NewOption("INR", "INR"),
				huh.NewOption("JPY", "JPY"),
				huh.NewOption("AUD", "AUD"),
				huh.NewOption("CAD", "CAD"),
			).
			Value(&fm.Currency),
	}

	// Portal credentials only exist at creation time.
	if creating {
		fields = append(fields,
			huh.NewInput().
				Title("Portal email").
				Value(&fm.Email),
			huh.NewInput().
				Title("Portal password").
				EchoMode(huh.EchoModePassword).
				Value(&fm.Password),
		)
	}

	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeDracula())
}

func newAIForm(fm *AIFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Use custom OpenAI-compatible endpoint").
				Value(&fm.UseCustom),
			huh.NewInput().
				Title("Endpoint URL").
				Description("Ignored when using the default Gemini provider").
				Value(&fm.Endpoint),
			huh.NewInput().
				Title("API key").
				EchoMode(huh.EchoModePassword).
				Value(&fm.APIKey),
			huh.NewInput().
				Title("Model").
				Value(&fm.Model),
		),
	).WithTheme(huh.ThemeDracula())
}

func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := time.Parse(constants.DateFormat, s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}
