package cli

import (
	"context"
	"fmt"

	"github.com/timelex/timelex-cli/internal/auth"
	"github.com/timelex/timelex-cli/internal/config"
	"github.com/timelex/timelex-cli/internal/data"
	"github.com/timelex/timelex-cli/internal/insight"
	"github.com/timelex/timelex-cli/internal/state"
)

// Context carries the wired services into every command's Run method.
type Context struct {
	Store       *state.Store
	Auth        *auth.Service
	Data        *data.Service
	Insights    *insight.Service
	Prefs       *config.Store
	Preferences config.Preferences
}

// RequireSession restores the stored session or fails the command. Most
// commands need this; `login` and `tui` handle sessions themselves.
func (c *Context) RequireSession() error {
	if c.Store.Session() != nil {
		return nil
	}
	if !c.Store.Restore() {
		return fmt.Errorf("not logged in, run `timelex login` first")
	}
	return nil
}

// LoadData restores the session and pulls all collections from the server.
func (c *Context) LoadData(ctx context.Context) error {
	if err := c.RequireSession(); err != nil {
		return err
	}
	if err := c.Store.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}
	return nil
}
