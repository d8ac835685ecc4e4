package state

import (
	"sort"
	"strings"

	"github.com/timelex/timelex-cli/internal/models"
)

type SortBy string

const (
	SortByDate     SortBy = "date"
	SortByPriority SortBy = "priority"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// FilterTasks returns the subset of tasks whose description contains the
// query, case-insensitively. An empty query returns the input unfiltered.
func FilterTasks(tasks []models.Task, query string) []models.Task {
	if query == "" {
		return tasks
	}
	needle := strings.ToLower(query)
	var out []models.Task
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Description), needle) {
			out = append(out, t)
		}
	}
	return out
}

// SortTasks returns a sorted copy. The sort is stable, so ties preserve
// the collection's prior relative order. Dates compare lexically, which is
// chronological for YYYY-MM-DD strings; priorities weigh high > medium >
// low.
func SortTasks(tasks []models.Task, by SortBy, order SortOrder) []models.Task {
	out := append([]models.Task(nil), tasks...)
	less := func(a, b models.Task) bool {
		switch by {
		case SortByPriority:
			return a.Priority.Weight() < b.Priority.Weight()
		default:
			return a.Date < b.Date
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if order == SortDesc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}
