package state

import (
	"context"
	"errors"
	"time"

	"github.com/timelex/timelex-cli/internal/logger"
	"github.com/timelex/timelex-cli/internal/models"
)

// ErrTimerRunning is returned when starting a timer while one is active.
var ErrTimerRunning = errors.New("a timer is already running")

// ErrTimerIdle is returned when stopping without an active timer.
var ErrTimerIdle = errors.New("no timer is running")

// Timer returns a copy of the active timer state.
func (s *Store) Timer() models.ActiveTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer
}

// Tracking reports whether a timer is currently running.
func (s *Store) Tracking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer.Running
}

// Elapsed returns the running timer's elapsed time; zero while idle.
func (s *Store) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer.Elapsed(s.now())
}

// StartTracking stages the given fields and enters the tracking state.
// Exactly one timer may run at a time.
func (s *Store) StartTracking(description, projectID string, priority models.Priority, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer.Running {
		return ErrTimerRunning
	}
	if date == "" {
		date = s.now().Format("2006-01-02")
	}
	s.timer = models.ActiveTimer{
		Description: description,
		ProjectID:   projectID,
		Priority:    priority,
		Date:        date,
		Running:     true,
		StartTime:   s.now(),
	}
	return nil
}

// StopTracking leaves the tracking state and persists the interval as a
// new task. The local timer always returns to idle: when the create
// request fails the captured elapsed time is lost, not queued or retried.
func (s *Store) StopTracking(ctx context.Context) (models.Task, error) {
	s.mu.Lock()
	if !s.timer.Running {
		s.mu.Unlock()
		return models.Task{}, ErrTimerIdle
	}
	timer := s.timer
	elapsed := timer.Elapsed(s.now())
	s.timer = models.ActiveTimer{}
	s.mu.Unlock()

	description := timer.Description
	if description == "" {
		description = "Unnamed Task"
	}
	draft := models.TaskDraft{
		Description: description,
		ProjectID:   timer.ProjectID,
		Duration:    elapsed.Milliseconds(),
		Date:        timer.Date,
		IsCompleted: false,
		Priority:    timer.Priority,
		Recurrence:  models.RecurrenceNone,
	}

	task, err := s.data.CreateTask(ctx, draft)
	if err != nil {
		logger.Error("Failed to save tracked task, interval lost", "error", err)
		return models.Task{}, err
	}

	s.mu.Lock()
	s.tasks = append([]models.Task{task}, s.tasks...)
	s.mu.Unlock()
	return task, nil
}

// ResumeTask copies a historical task's fields into the tracker and starts
// it with the task's accumulated duration already on the clock. The
// historical record is preserved; a currently running timer is stopped
// (and persisted) first.
func (s *Store) ResumeTask(ctx context.Context, taskID string) error {
	s.mu.Lock()
	var found *models.Task
	for i := range s.tasks {
		if s.tasks[i].ID == taskID {
			found = &s.tasks[i]
			break
		}
	}
	if found == nil {
		s.mu.Unlock()
		return errors.New("task not found: " + taskID)
	}
	task := *found
	running := s.timer.Running
	s.mu.Unlock()

	if running {
		if _, err := s.StopTracking(ctx); err != nil {
			// The previous interval is already lost; keep going so the
			// resume the user asked for still happens.
			logger.Warn("Stop before resume failed", "error", err)
		}
	}

	s.mu.Lock()
	s.timer = models.ActiveTimer{
		Description: task.Description,
		ProjectID:   task.ProjectID,
		Priority:    task.Priority,
		Date:        task.Date,
		Running:     true,
		StartTime:   s.now().Add(-time.Duration(task.Duration) * time.Millisecond),
	}
	s.mu.Unlock()
	return nil
}

// ClearTimer discards the in-progress interval and staged fields without
// creating a task.
func (s *Store) ClearTimer() {
	s.mu.Lock()
	s.timer = models.ActiveTimer{}
	s.mu.Unlock()
}
