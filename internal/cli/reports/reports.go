package reports

import (
	"context"
	"fmt"
	"sort"

	"github.com/timelex/timelex-cli/internal/cli"
	"github.com/timelex/timelex-cli/internal/format"
	"github.com/timelex/timelex-cli/internal/report"
)

type ReportCmd struct {
	Daily bool `help:"Include the per-day breakdown."`
	Days  int  `help:"Number of recent days to show with --daily." default:"7"`
}

func (c *ReportCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadData(context.Background()); err != nil {
		return err
	}

	tasks := ctx.Store.VisibleTasks()
	projects := ctx.Store.VisibleProjects()
	clients := ctx.Store.VisibleClients()

	stats := report.ProjectStats(tasks, projects, clients)
	if len(stats) == 0 {
		fmt.Println("No tracked time yet")
		return nil
	}

	fmt.Println("Time per project:")
	for _, s := range stats {
		fmt.Printf("  %-24s %s  %s\n", s.Name, format.Duration(s.Time), format.Currency(s.Earnings, s.Currency))
	}

	fmt.Println("\nEarnings by currency:")
	earnings := report.EarningsByCurrency(stats)
	codes := make([]string, 0, len(earnings))
	for code := range earnings {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		fmt.Printf("  %-6s %s\n", code, format.Currency(earnings[code], code))
	}

	if c.Daily {
		fmt.Println("\nRecent days:")
		daily := report.DailySummaries(tasks, projects, clients)
		if len(daily) > c.Days {
			daily = daily[:c.Days]
		}
		for _, d := range daily {
			fmt.Printf("  %s  %s\n", d.Day, format.Duration(d.Time))
		}
	}

	fmt.Printf("\nTotal tracked: %s\n", format.Duration(report.TotalTime(stats)))
	return nil
}

type InsightCmd struct{}

func (c *InsightCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadData(context.Background()); err != nil {
		return err
	}

	text := ctx.Insights.GetSmartInsights(
		context.Background(),
		ctx.Store.VisibleTasks(),
		ctx.Store.VisibleProjects(),
		ctx.Store.VisibleClients(),
		ctx.Preferences.AI,
	)
	fmt.Println(text)
	return nil
}
