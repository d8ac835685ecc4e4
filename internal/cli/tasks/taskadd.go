package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/timelex/timelex-cli/internal/cli"
	"github.com/timelex/timelex-cli/internal/constants"
	"github.com/timelex/timelex-cli/internal/models"
)

type TaskAddCmd struct {
	Description string `arg:"" help:"Task description."`
	Project     string `short:"P" help:"Project ID."`
	Duration    int64  `short:"d" help:"Duration in minutes." default:"0"`
	Date        string `help:"Date (YYYY-MM-DD). Defaults to today."`
	Priority    string `short:"p" help:"Priority (low|medium|high)." enum:"low,medium,high" default:"medium"`
	Completed   bool   `short:"c" help:"Mark the task completed."`
	Comment     string `help:"Free-form note."`
	DueDate     string `help:"Due date (YYYY-MM-DD)." name:"due-date"`
}

func (c *TaskAddCmd) Validate() error {
	if c.Duration < 0 {
		return fmt.Errorf("duration cannot be negative")
	}
	if c.Date != "" {
		if _, err := time.Parse(constants.DateFormat, c.Date); err != nil {
			return fmt.Errorf("invalid date, use YYYY-MM-DD")
		}
	}
	if c.DueDate != "" {
		if _, err := time.Parse(constants.DateFormat, c.DueDate); err != nil {
			return fmt.Errorf("invalid due date, use YYYY-MM-DD")
		}
	}
	return nil
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireSession(); err != nil {
		return err
	}

	date := c.Date
	if date == "" {
		date = time.Now().Format(constants.DateFormat)
	}

	task, err := ctx.Store.CreateTask(context.Background(), models.TaskDraft{
		Description: c.Description,
		ProjectID:   c.Project,
		Duration:    c.Duration * 60000,
		Date:        date,
		IsCompleted: c.Completed,
		Priority:    models.Priority(c.Priority),
		Recurrence:  models.RecurrenceNone,
		Comment:     c.Comment,
		DueDate:     c.DueDate,
	})
	if err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}

	fmt.Printf("Added task: %s (ID: %s)\n", task.Description, task.ID)
	return nil
}
