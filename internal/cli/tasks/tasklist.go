package tasks

import (
	"context"
	"fmt"

	"github.com/timelex/timelex-cli/internal/cli"
	"github.com/timelex/timelex-cli/internal/format"
	"github.com/timelex/timelex-cli/internal/state"
)

type TaskListCmd struct {
	Filter  string `short:"f" help:"Case-insensitive search over descriptions."`
	Sort    string `help:"Sort key (date|priority)." enum:"date,priority" default:"date"`
	Order   string `help:"Sort order (asc|desc)." enum:"asc,desc" default:"desc"`
	ShowIDs bool   `help:"Show task IDs." name:"show-ids"`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadData(context.Background()); err != nil {
		return err
	}

	tasks := state.FilterTasks(ctx.Store.VisibleTasks(), c.Filter)
	tasks = state.SortTasks(tasks, state.SortBy(c.Sort), state.SortOrder(c.Order))
	if len(tasks) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	names := make(map[string]string)
	for _, p := range ctx.Store.VisibleProjects() {
		names[p.ID] = p.Name
	}

	fmt.Println("Tasks:")
	for _, task := range tasks {
		status := " "
		if task.IsCompleted {
			status = "x"
		}
		project := names[task.ProjectID]
		if project == "" {
			project = "Unknown"
		}
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", task.ID)
		}
		fmt.Printf("  [%s] %s%s - %s (%s, %s, %s)\n",
			status, task.Description, idStr, format.Duration(task.Duration), project, task.Date, task.Priority)
	}

	return nil
}
