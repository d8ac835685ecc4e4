package models

import "time"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// UserSession is the authenticated identity gating data visibility.
// ClientID is set only for client-role sessions.
type UserSession struct {
	Role     Role
	ClientID string
	Name     string
}

// ActiveTimer is the single in-progress, not-yet-persisted tracking session.
// It becomes a Task when stopped. StartTime is a wall-clock instant; the
// displayed elapsed time is recomputed from it every tick and the staged
// fields are never mutated while running.
type ActiveTimer struct {
	Description string
	ProjectID   string
	Priority    Priority
	Date        string
	Running     bool
	StartTime   time.Time
}

// Elapsed returns the duration tracked so far relative to now. Zero while
// not running.
func (t ActiveTimer) Elapsed(now time.Time) time.Duration {
	if !t.Running {
		return 0
	}
	return now.Sub(t.StartTime)
}
