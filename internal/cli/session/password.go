package session

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/timelex/timelex-cli/internal/cli"
)

type ResetPasswordCmd struct {
	Email string `arg:"" help:"Account email to send the reset link to."`
}

func (c *ResetPasswordCmd) Run(ctx *cli.Context) error {
	if err := ctx.Auth.ResetPassword(context.Background(), c.Email); err != nil {
		return fmt.Errorf("reset request failed: %w", err)
	}
	fmt.Printf("Reset instructions sent to %s\n", c.Email)
	return nil
}

type ChangePasswordCmd struct{}

func (c *ChangePasswordCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireSession(); err != nil {
		return err
	}

	var oldPassword, newPassword, confirm string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Current password").
				EchoMode(huh.EchoModePassword).
				Value(&oldPassword),
			huh.NewInput().
				Title("New password").
				EchoMode(huh.EchoModePassword).
				Value(&newPassword),
			huh.NewInput().
				Title("Confirm new password").
				EchoMode(huh.EchoModePassword).
				Value(&confirm).
				Validate(func(s string) error {
					if s != newPassword {
						return fmt.Errorf("passwords do not match")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	if err := ctx.Auth.ChangePassword(context.Background(), oldPassword, newPassword); err != nil {
		return fmt.Errorf("password change failed: %w", err)
	}
	fmt.Println("Password updated.")
	return nil
}
