package clients

import (
	"context"
	"fmt"

	"github.com/timelex/timelex-cli/internal/cli"
	"github.com/timelex/timelex-cli/internal/format"
	"github.com/timelex/timelex-cli/internal/models"
)

type ClientListCmd struct {
	ShowIDs bool `help:"Show client IDs." name:"show-ids"`
}

func (c *ClientListCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadData(context.Background()); err != nil {
		return err
	}

	clients := ctx.Store.VisibleClients()
	if len(clients) == 0 {
		fmt.Println("No clients found")
		return nil
	}

	counts := make(map[string]int)
	for _, p := range ctx.Store.VisibleProjects() {
		counts[p.ClientID]++
	}

	fmt.Println("Clients:")
	for _, client := range clients {
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", client.ID)
		}
		fmt.Printf("  %s%s - %s/hr, %d project(s)\n",
			client.Name, idStr, format.Currency(client.HourlyRate, client.Currency), counts[client.ID])
	}
	return nil
}

type ClientAddCmd struct {
	Name       string  `arg:"" help:"Client name."`
	HourlyRate float64 `short:"r" help:"Hourly rate." required:"" name:"hourly-rate"`
	Currency   string  `help:"Billing currency." enum:"USD,EUR,GBP,INR,JPY,AUD,CAD" default:"USD"`
	Email      string  `help:"Portal login email for the client."`
	Password   string  `help:"Portal login password for the client."`
}

func (c *ClientAddCmd) Validate() error {
	if c.HourlyRate < 0 {
		return fmt.Errorf("hourly rate cannot be negative")
	}
	if (c.Email == "") != (c.Password == "") {
		return fmt.Errorf("portal email and password must be provided together")
	}
	return nil
}

func (c *ClientAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireSession(); err != nil {
		return err
	}

	client, err := ctx.Store.CreateClient(context.Background(), models.ClientDraft{
		Name:       c.Name,
		HourlyRate: c.HourlyRate,
		Currency:   c.Currency,
		Email:      c.Email,
		Password:   c.Password,
	})
	if err != nil {
		return fmt.Errorf("failed to add client: %w", err)
	}

	fmt.Printf("Added client: %s (ID: %s)\n", client.Name, client.ID)
	return nil
}

type ClientDeleteCmd struct {
	ID string `arg:"" help:"Client ID to delete."`
}

func (c *ClientDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireSession(); err != nil {
		return err
	}

	if err := ctx.Store.DeleteClient(context.Background(), c.ID); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	fmt.Printf("Deleted client %s\n", c.ID)
	return nil
}
