package session

import (
	"fmt"

	"github.com/timelex/timelex-cli/internal/cli"
)

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	ctx.Store.Logout()
	fmt.Println("Signed out.")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireSession(); err != nil {
		return err
	}
	session := ctx.Store.Session()
	fmt.Printf("%s (%s)\n", session.Name, session.Role)
	return nil
}
