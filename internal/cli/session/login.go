package session

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/timelex/timelex-cli/internal/cli"
)

type LoginCmd struct {
	Email    string `arg:"" optional:"" help:"Account email."`
	Password string `short:"p" help:"Account password. Prompted when omitted."`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	var fields []huh.Field
	if c.Email == "" {
		fields = append(fields, huh.NewInput().Title("Email").Value(&c.Email))
	}
	if c.Password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&c.Password))
	}
	if len(fields) > 0 {
		if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
			return err
		}
	}

	if err := ctx.Store.Login(context.Background(), c.Email, c.Password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	session := ctx.Store.Session()
	fmt.Printf("Signed in as %s (%s)\n", session.Name, session.Role)
	return nil
}
