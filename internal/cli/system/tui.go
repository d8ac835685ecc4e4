package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/timelex/timelex-cli/internal/cli"
	"github.com/timelex/timelex-cli/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	model := tui.NewModel(ctx.Store, ctx.Insights, ctx.Prefs, ctx.Preferences)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
