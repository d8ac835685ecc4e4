package tasks

import (
	"context"
	"fmt"

	"github.com/timelex/timelex-cli/internal/cli"
)

type TaskCompleteCmd struct {
	IDs    []string `arg:"" help:"Task IDs to update."`
	Reopen bool     `help:"Mark incomplete instead of complete."`
}

func (c *TaskCompleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadData(context.Background()); err != nil {
		return err
	}

	ctx.Store.BulkCompleteTasks(context.Background(), c.IDs, !c.Reopen)

	verb := "Completed"
	if c.Reopen {
		verb = "Reopened"
	}
	fmt.Printf("%s %d task(s)\n", verb, len(c.IDs))
	return nil
}
