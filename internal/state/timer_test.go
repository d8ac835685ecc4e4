package state

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/timelex/timelex-cli/internal/models"
)

// fakeClock lets tests advance the store's notion of time deterministically.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
}

func withClock(s *Store, c *fakeClock) { s.now = c.Now }

func TestStartStopCreatesExactlyOneTask(t *testing.T) {
	data := &fakeData{}
	s, _ := adminStore(data)
	clock := newFakeClock()
	withClock(s, clock)

	if err := s.StartTracking("Design review", "p1", models.PriorityHigh, "2026-03-14"); err != nil {
		t.Fatalf("StartTracking() error = %v", err)
	}
	if !s.Tracking() {
		t.Fatal("not tracking after StartTracking")
	}

	clock.Advance(35*time.Minute + 16*time.Second)

	task, err := s.StopTracking(context.Background())
	if err != nil {
		t.Fatalf("StopTracking() error = %v", err)
	}
	if got, want := task.Duration, (35*time.Minute + 16*time.Second).Milliseconds(); got != want {
		t.Errorf("duration = %d ms, want %d", got, want)
	}
	if task.Description != "Design review" || task.ProjectID != "p1" {
		t.Errorf("staged fields not carried into task: %+v", task)
	}
	if task.IsCompleted {
		t.Error("tracked task must start incomplete")
	}
	if task.Recurrence != models.RecurrenceNone {
		t.Errorf("recurrence = %q, want none", task.Recurrence)
	}

	if s.Tracking() {
		t.Error("still tracking after stop")
	}
	if timer := s.Timer(); timer.Description != "" {
		t.Error("staged description survives stop")
	}
	if tasks := s.VisibleTasks(); len(tasks) != 1 || tasks[0].ID != task.ID {
		t.Errorf("exactly one new task expected, got %+v", tasks)
	}
}

func TestStartWhileTrackingIsRejected(t *testing.T) {
	s, _ := adminStore(&fakeData{})
	s.StartTracking("first", "p1", models.PriorityLow, "")
	if err := s.StartTracking("second", "p2", models.PriorityLow, ""); !errors.Is(err, ErrTimerRunning) {
		t.Errorf("StartTracking() error = %v, want ErrTimerRunning", err)
	}
	if got := s.Timer().Description; got != "first" {
		t.Errorf("staged description = %q, rejected start must not overwrite", got)
	}
}

func TestStopWhileIdleIsRejected(t *testing.T) {
	s, _ := adminStore(&fakeData{})
	if _, err := s.StopTracking(context.Background()); !errors.Is(err, ErrTimerIdle) {
		t.Errorf("StopTracking() error = %v, want ErrTimerIdle", err)
	}
}

func TestStopEmptyDescriptionDefaults(t *testing.T) {
	data := &fakeData{}
	s, _ := adminStore(data)
	clock := newFakeClock()
	withClock(s, clock)

	s.StartTracking("", "p1", models.PriorityMedium, "2026-03-14")
	clock.Advance(time.Minute)
	task, err := s.StopTracking(context.Background())
	if err != nil {
		t.Fatalf("StopTracking() error = %v", err)
	}
	if task.Description != "Unnamed Task" {
		t.Errorf("description = %q, want Unnamed Task", task.Description)
	}
}

func TestStopFailureStillGoesIdle(t *testing.T) {
	data := &fakeData{
		createTask: func(models.TaskDraft) (models.Task, error) {
			return models.Task{}, errors.New("unreachable")
		},
	}
	s, _ := adminStore(data)
	clock := newFakeClock()
	withClock(s, clock)

	s.StartTracking("doomed", "p1", models.PriorityLow, "")
	clock.Advance(10 * time.Second)

	if _, err := s.StopTracking(context.Background()); err == nil {
		t.Fatal("StopTracking() error = nil, want create failure")
	}
	if s.Tracking() {
		t.Error("timer still running after failed stop; interval must be dropped, not queued")
	}
	if len(s.VisibleTasks()) != 0 {
		t.Error("failed create must not add a local task")
	}
}

func TestResumeCopiesFieldsAndPreservesOriginal(t *testing.T) {
	original := models.Task{
		ID:          "t1",
		Description: "Ad campaign",
		ProjectID:   "p2",
		Duration:    (90 * time.Minute).Milliseconds(),
		Date:        "2026-03-10",
		Priority:    models.PriorityHigh,
	}
	data := &fakeData{tasks: []models.Task{original}}
	s, _ := adminStore(data)
	clock := newFakeClock()
	withClock(s, clock)
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	if err := s.ResumeTask(context.Background(), "t1"); err != nil {
		t.Fatalf("ResumeTask() error = %v", err)
	}

	timer := s.Timer()
	if timer.Description != original.Description || timer.ProjectID != original.ProjectID ||
		timer.Priority != original.Priority || timer.Date != original.Date {
		t.Errorf("resume did not copy task fields: %+v", timer)
	}
	// The clock starts with the accumulated duration already elapsed.
	if got := s.Elapsed(); got != 90*time.Minute {
		t.Errorf("Elapsed() = %v right after resume, want 90m", got)
	}

	clock.Advance(5 * time.Minute)
	if got := s.Elapsed(); got != 95*time.Minute {
		t.Errorf("Elapsed() = %v, want 95m", got)
	}

	tasks := s.VisibleTasks()
	if len(tasks) != 1 || tasks[0] != original {
		t.Errorf("original task must be preserved untouched, got %+v", tasks)
	}
}

func TestResumeWhileTrackingStopsFirst(t *testing.T) {
	data := &fakeData{tasks: []models.Task{{ID: "t1", Description: "old", ProjectID: "p1"}}}
	s, _ := adminStore(data)
	clock := newFakeClock()
	withClock(s, clock)
	s.Refresh(context.Background())

	s.StartTracking("in flight", "p2", models.PriorityMedium, "2026-03-14")
	clock.Advance(2 * time.Minute)

	if err := s.ResumeTask(context.Background(), "t1"); err != nil {
		t.Fatalf("ResumeTask() error = %v", err)
	}

	// The in-flight interval was persisted before the resume took over.
	var saved bool
	for _, task := range s.VisibleTasks() {
		if task.Description == "in flight" && task.Duration == (2*time.Minute).Milliseconds() {
			saved = true
		}
	}
	if !saved {
		t.Error("running timer was not persisted before resume")
	}
	if got := s.Timer().Description; got != "old" {
		t.Errorf("tracker description = %q after resume, want old", got)
	}
}

func TestResumeUnknownTask(t *testing.T) {
	s, _ := adminStore(&fakeData{})
	if err := s.ResumeTask(context.Background(), "nope"); err == nil {
		t.Error("ResumeTask() error = nil for unknown id")
	}
	if s.Tracking() {
		t.Error("failed resume must not start the timer")
	}
}

func TestClearTimerDiscardsInterval(t *testing.T) {
	data := &fakeData{}
	s, _ := adminStore(data)
	clock := newFakeClock()
	withClock(s, clock)

	s.StartTracking("scratch", "p1", models.PriorityLow, "")
	clock.Advance(time.Hour)
	s.ClearTimer()

	if s.Tracking() {
		t.Error("timer still running after clear")
	}
	if len(s.VisibleTasks()) != 0 {
		t.Error("clear must not persist a task")
	}
	if timer := s.Timer(); timer.Description != "" || !timer.StartTime.IsZero() {
		t.Errorf("staged fields survive clear: %+v", timer)
	}
}

func TestStartDefaultsDateToToday(t *testing.T) {
	s, _ := adminStore(&fakeData{})
	clock := newFakeClock()
	withClock(s, clock)

	s.StartTracking("dated", "p1", models.PriorityLow, "")
	if got := s.Timer().Date; got != "2026-03-14" {
		t.Errorf("staged date = %q, want today", got)
	}
}
