package tasks

import (
	"context"
	"fmt"

	"github.com/timelex/timelex-cli/internal/cli"
)

type TaskDeleteCmd struct {
	IDs []string `arg:"" help:"Task IDs to delete."`
}

func (c *TaskDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireSession(); err != nil {
		return err
	}

	failed := ctx.Store.BulkDeleteTasks(context.Background(), c.IDs)
	for id, err := range failed {
		fmt.Printf("Could not delete %s: %v\n", id, err)
	}

	deleted := len(c.IDs) - len(failed)
	fmt.Printf("Deleted %d task(s)\n", deleted)
	if len(failed) > 0 {
		return fmt.Errorf("%d task(s) could not be deleted", len(failed))
	}
	return nil
}
