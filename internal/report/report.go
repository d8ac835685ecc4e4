// Package report computes the derived read-only numbers behind the reports
// and projects views. Everything here is a pure projection over the current
// collections; nothing is persisted and results are recomputed on demand.
package report

import (
	"sort"
	"time"

	"github.com/timelex/timelex-cli/internal/constants"
	"github.com/timelex/timelex-cli/internal/models"
)

const msPerHour = 1000 * 60 * 60

// ProjectStat is the per-project rollup shown in the reports view.
type ProjectStat struct {
	ProjectID string
	Name      string
	Color     string
	Time      int64 // accumulated ms across the project's tasks
	Earnings  float64
	Currency  string
}

// ProjectStats groups tasks by project and accumulates time and earnings
// using the owning client's hourly rate. Projects appear in order of their
// first task. Tasks referencing an unknown project still accumulate under
// a placeholder entry so no time silently disappears.
func ProjectStats(tasks []models.Task, projects []models.Project, clients []models.Client) []ProjectStat {
	projectByID := make(map[string]models.Project, len(projects))
	for _, p := range projects {
		projectByID[p.ID] = p
	}
	clientByID := make(map[string]models.Client, len(clients))
	for _, c := range clients {
		clientByID[c.ID] = c
	}

	var order []string
	stats := make(map[string]*ProjectStat)
	for _, t := range tasks {
		st, ok := stats[t.ProjectID]
		if !ok {
			name := "Unknown"
			color := ""
			currency := "USD"
			var rateCurrency string
			if p, found := projectByID[t.ProjectID]; found {
				name = p.Name
				color = p.Color
				if c, found := clientByID[p.ClientID]; found {
					rateCurrency = c.Currency
				}
			}
			if rateCurrency != "" {
				currency = rateCurrency
			}
			st = &ProjectStat{ProjectID: t.ProjectID, Name: name, Color: color, Currency: currency}
			stats[t.ProjectID] = st
			order = append(order, t.ProjectID)
		}

		st.Time += t.Duration
		if p, found := projectByID[t.ProjectID]; found {
			if c, found := clientByID[p.ClientID]; found {
				st.Earnings += float64(t.Duration) / msPerHour * c.HourlyRate
			}
		}
	}

	out := make([]ProjectStat, 0, len(order))
	for _, id := range order {
		out = append(out, *stats[id])
	}
	return out
}

// EarningsByCurrency totals project earnings per currency code. There is no
// cross-currency conversion.
func EarningsByCurrency(stats []ProjectStat) map[string]float64 {
	totals := make(map[string]float64)
	for _, st := range stats {
		totals[st.Currency] += st.Earnings
	}
	return totals
}

// TotalTime sums accumulated time across all project stats.
func TotalTime(stats []ProjectStat) int64 {
	var total int64
	for _, st := range stats {
		total += st.Time
	}
	return total
}

// ProjectMetrics is the derived per-project status shown on project cards.
type ProjectMetrics struct {
	Progress   float64 // completed / total tasks, in percent
	Overdue    bool
	LoggedTime int64
}

// MetricsFor computes progress, overdue flag, and logged time for one
// project. Progress is 0 when the project has no tasks; a project is
// overdue when its deadline has passed and progress is below 100%.
func MetricsFor(project models.Project, tasks []models.Task, now time.Time) ProjectMetrics {
	var total, completed int
	var logged int64
	for _, t := range tasks {
		if t.ProjectID != project.ID {
			continue
		}
		total++
		if t.IsCompleted {
			completed++
		}
		logged += t.Duration
	}

	var progress float64
	if total > 0 {
		progress = float64(completed) / float64(total) * 100
	}

	overdue := false
	if project.Deadline != "" {
		if deadline, err := time.Parse(constants.DateFormat, project.Deadline); err == nil {
			overdue = deadline.Before(now) && progress < 100
		}
	}

	return ProjectMetrics{Progress: progress, Overdue: overdue, LoggedTime: logged}
}

// DailySummary is one day's total tracked time and earnings.
type DailySummary struct {
	Day      string // YYYY-MM-DD
	Time     int64
	Earnings float64
}

// DailySummaries groups tasks by calendar date, most recent day first.
// Earnings use each task's owning client rate, mixed currencies summed
// as-is; the per-currency split lives in EarningsByCurrency.
func DailySummaries(tasks []models.Task, projects []models.Project, clients []models.Client) []DailySummary {
	projectByID := make(map[string]models.Project, len(projects))
	for _, p := range projects {
		projectByID[p.ID] = p
	}
	clientByID := make(map[string]models.Client, len(clients))
	for _, c := range clients {
		clientByID[c.ID] = c
	}

	byDay := make(map[string]*DailySummary)
	for _, t := range tasks {
		day := t.Date
		s, ok := byDay[day]
		if !ok {
			s = &DailySummary{Day: day}
			byDay[day] = s
		}
		s.Time += t.Duration
		if p, found := projectByID[t.ProjectID]; found {
			if c, found := clientByID[p.ClientID]; found {
				s.Earnings += float64(t.Duration) / msPerHour * c.HourlyRate
			}
		}
	}

	out := make([]DailySummary, 0, len(byDay))
	for _, s := range byDay {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day > out[j].Day })
	return out
}
