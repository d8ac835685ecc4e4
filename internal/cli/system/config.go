package system

import (
	"fmt"

	"github.com/timelex/timelex-cli/internal/cli"
)

type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(ctx *cli.Context) error {
	prefs := ctx.Preferences
	provider := "gemini"
	if prefs.AI.UseCustom {
		provider = "custom"
	}
	keyState := "not set"
	if prefs.AI.APIKey != "" {
		keyState = "configured"
	}

	fmt.Println("AI insights:")
	fmt.Printf("  provider:  %s\n", provider)
	fmt.Printf("  endpoint:  %s\n", prefs.AI.Endpoint)
	fmt.Printf("  model:     %s\n", prefs.AI.Model)
	fmt.Printf("  api key:   %s\n", keyState)
	fmt.Println("Display:")
	fmt.Printf("  dark mode: %t\n", prefs.DarkMode)
	return nil
}

type ConfigAICmd struct {
	UseCustom bool   `help:"Route insights through a custom OpenAI-compatible endpoint." negatable:""`
	Endpoint  string `help:"Custom endpoint base URL."`
	APIKey    string `help:"API key for the insight provider." name:"api-key"`
	Model     string `help:"Model name for the custom endpoint."`
}

func (c *ConfigAICmd) Run(ctx *cli.Context) error {
	prefs := ctx.Preferences
	prefs.AI.UseCustom = c.UseCustom
	if c.Endpoint != "" {
		prefs.AI.Endpoint = c.Endpoint
	}
	if c.APIKey != "" {
		prefs.AI.APIKey = c.APIKey
	}
	if c.Model != "" {
		prefs.AI.Model = c.Model
	}

	if err := ctx.Prefs.Save(prefs); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Println("AI settings saved.")
	return nil
}

type ConfigDarkModeCmd struct {
	Enabled bool `arg:"" help:"true or false."`
}

func (c *ConfigDarkModeCmd) Run(ctx *cli.Context) error {
	prefs := ctx.Preferences
	prefs.DarkMode = c.Enabled
	if err := ctx.Prefs.Save(prefs); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Printf("Dark mode: %t\n", prefs.DarkMode)
	return nil
}
