package models

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Weight returns the sort weight of a priority (high sorts above medium
// above low). Unknown values weigh zero.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

// Task is a loggable unit of work owned by a Project. Duration is the
// authoritative accumulated time in milliseconds; it is written once when
// tracking stops, never incrementally.
type Task struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	ProjectID   string     `json:"projectId"`
	Duration    int64      `json:"duration"`
	Date        string     `json:"date"` // YYYY-MM-DD
	IsCompleted bool       `json:"isCompleted"`
	Priority    Priority   `json:"priority"`
	Recurrence  Recurrence `json:"recurrence"`
	Comment     string     `json:"comment,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	DueDate     string     `json:"dueDate,omitempty"`
}

// TaskDraft carries the fields the server accepts when creating a task.
// The server is the id authority, so drafts have no id.
type TaskDraft struct {
	Description string
	ProjectID   string
	Duration    int64
	Date        string
	IsCompleted bool
	Priority    Priority
	Recurrence  Recurrence
	Comment     string
	ImageURL    string
	DueDate     string
}

// TaskPatch is a sparse update; nil fields are left untouched server-side.
type TaskPatch struct {
	Description *string
	IsCompleted *bool
	Duration    *int64
	Priority    *Priority
	Date        *string
}
