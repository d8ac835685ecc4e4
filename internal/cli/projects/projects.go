package projects

import (
	"context"
	"fmt"
	"time"

	"github.com/timelex/timelex-cli/internal/cli"
	"github.com/timelex/timelex-cli/internal/constants"
	"github.com/timelex/timelex-cli/internal/format"
	"github.com/timelex/timelex-cli/internal/models"
	"github.com/timelex/timelex-cli/internal/report"
)

type ProjectListCmd struct {
	ShowIDs bool `help:"Show project IDs." name:"show-ids"`
}

func (c *ProjectListCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadData(context.Background()); err != nil {
		return err
	}

	projects := ctx.Store.VisibleProjects()
	if len(projects) == 0 {
		fmt.Println("No projects found")
		return nil
	}

	tasks := ctx.Store.VisibleTasks()
	clientNames := make(map[string]string)
	for _, client := range ctx.Store.VisibleClients() {
		clientNames[client.ID] = client.Name
	}

	now := time.Now()
	fmt.Println("Projects:")
	for _, p := range projects {
		metrics := report.MetricsFor(p, tasks, now)
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", p.ID)
		}
		line := fmt.Sprintf("  %s%s - %.0f%%, %s logged", p.Name, idStr, metrics.Progress, format.Duration(metrics.LoggedTime))
		if name := clientNames[p.ClientID]; name != "" {
			line += ", " + name
		}
		if p.Deadline != "" {
			line += ", due " + p.Deadline
		}
		if metrics.Overdue {
			line += " [OVERDUE]"
		}
		fmt.Println(line)
	}
	return nil
}

type ProjectAddCmd struct {
	Name           string  `arg:"" help:"Project name."`
	Color          string  `help:"Display color (hex)." default:"#6366f1"`
	Client         string  `short:"C" help:"Owning client ID."`
	Deadline       string  `help:"Deadline (YYYY-MM-DD)."`
	EstimatedHours float64 `help:"Estimated effort in hours." name:"estimated-hours"`
}

func (c *ProjectAddCmd) Validate() error {
	if c.Deadline != "" {
		if _, err := time.Parse(constants.DateFormat, c.Deadline); err != nil {
			return fmt.Errorf("invalid deadline, use YYYY-MM-DD")
		}
	}
	if c.EstimatedHours < 0 {
		return fmt.Errorf("estimate cannot be negative")
	}
	return nil
}

func (c *ProjectAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireSession(); err != nil {
		return err
	}

	project, err := ctx.Store.CreateProject(context.Background(), models.ProjectDraft{
		Name:              c.Name,
		Color:             c.Color,
		ClientID:          c.Client,
		Deadline:          c.Deadline,
		EstimatedDuration: int64(c.EstimatedHours * 3600000),
	})
	if err != nil {
		return fmt.Errorf("failed to add project: %w", err)
	}

	fmt.Printf("Added project: %s (ID: %s)\n", project.Name, project.ID)
	return nil
}

type ProjectDeleteCmd struct {
	ID string `arg:"" help:"Project ID to delete."`
}

func (c *ProjectDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireSession(); err != nil {
		return err
	}

	if err := ctx.Store.DeleteProject(context.Background(), c.ID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	fmt.Printf("Deleted project %s\n", c.ID)
	return nil
}
