package system

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/timelex/timelex-cli/internal/auth"
	"github.com/timelex/timelex-cli/internal/cli"
	"github.com/timelex/timelex-cli/internal/config"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	loggedIn := false

	// Check 1: stored credential present
	if _, err := auth.LoadToken(); err != nil {
		if errors.Is(err, auth.ErrNoToken) {
			fmt.Printf("⚠ Stored session: none (run `timelex login`)\n")
		} else {
			fmt.Printf("❌ Keyring access: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	} else {
		fmt.Printf("✓ Stored session: OK\n")
		loggedIn = true
	}

	// Check 2: API reachable (only meaningful with a session)
	if loggedIn {
		reqCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		ctx.Store.Restore()
		if err := ctx.Store.Refresh(reqCtx); err != nil {
			fmt.Printf("❌ API reachable: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ API reachable: OK\n")
		}
	} else {
		fmt.Printf("⊘ API reachable: SKIPPED (no stored session)\n")
	}

	// Check 3: config file readable
	if path, err := config.DefaultPath(); err != nil {
		fmt.Printf("❌ Config path: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else if _, err := config.NewStore(path).Load(); err != nil {
		fmt.Printf("❌ Config file: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Config file: OK\n")
	}

	// Check 4: AI insight configuration (warning only)
	if ctx.Preferences.AI.UseCustom && ctx.Preferences.AI.Endpoint == "" {
		fmt.Printf("⚠ AI insights: custom provider selected but no endpoint configured\n")
	} else {
		fmt.Printf("✓ AI insights: OK\n")
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}
