package state

import (
	"context"
	"errors"
	"testing"

	"github.com/timelex/timelex-cli/internal/models"
)

func TestCreateTaskPrepends(t *testing.T) {
	data := &fakeData{tasks: []models.Task{{ID: "t1"}}}
	s, _ := adminStore(data)
	s.Refresh(context.Background())

	created, err := s.CreateTask(context.Background(), models.TaskDraft{Description: "new work"})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}

	tasks := s.VisibleTasks()
	if len(tasks) != 2 {
		t.Fatalf("%d tasks, want 2", len(tasks))
	}
	if tasks[0].ID != created.ID {
		t.Error("new task must be prepended, not appended")
	}
}

func TestCreateTaskFailureLeavesStateUnchanged(t *testing.T) {
	data := &fakeData{
		tasks: []models.Task{{ID: "t1"}},
		createTask: func(models.TaskDraft) (models.Task, error) {
			return models.Task{}, errors.New("rejected")
		},
	}
	s, _ := adminStore(data)
	s.Refresh(context.Background())

	if _, err := s.CreateTask(context.Background(), models.TaskDraft{}); err == nil {
		t.Fatal("CreateTask() error = nil, want rejection")
	}
	if len(s.VisibleTasks()) != 1 {
		t.Error("failed create must not touch the local collection")
	}
}

func TestUpdateTaskReplacesMatchingRecord(t *testing.T) {
	data := &fakeData{tasks: []models.Task{
		{ID: "t1", Description: "before"},
		{ID: "t2", Description: "other"},
	}}
	s, _ := adminStore(data)
	s.Refresh(context.Background())

	after := "after"
	if _, err := s.UpdateTask(context.Background(), "t1", models.TaskPatch{Description: &after}); err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}

	tasks := s.VisibleTasks()
	if tasks[0].Description != "after" {
		t.Errorf("t1 description = %q, want after", tasks[0].Description)
	}
	if tasks[1].Description != "other" {
		t.Error("unrelated record modified")
	}
}

func TestDeleteTaskRemovesOnlyConfirmed(t *testing.T) {
	data := &fakeData{tasks: []models.Task{{ID: "t1"}, {ID: "t2"}}}
	s, _ := adminStore(data)
	s.Refresh(context.Background())

	if err := s.DeleteTask(context.Background(), "t1"); err != nil {
		t.Fatalf("DeleteTask() error = %v", err)
	}
	if tasks := s.VisibleTasks(); len(tasks) != 1 || tasks[0].ID != "t2" {
		t.Errorf("tasks after delete = %+v, want only t2", tasks)
	}

	data.deleteTask = func(string) error { return errors.New("denied") }
	if err := s.DeleteTask(context.Background(), "t2"); err == nil {
		t.Fatal("DeleteTask() error = nil, want denial")
	}
	if len(s.VisibleTasks()) != 1 {
		t.Error("failed delete must keep the local record")
	}
}

func TestBulkCompleteMarksExactlyGivenIDs(t *testing.T) {
	data := &fakeData{tasks: []models.Task{{ID: "t1"}, {ID: "t2"}, {ID: "t3"}}}
	s, _ := adminStore(data)
	s.Refresh(context.Background())

	s.BulkCompleteTasks(context.Background(), []string{"t1", "t3"}, true)

	for _, task := range s.VisibleTasks() {
		want := task.ID != "t2"
		if task.IsCompleted != want {
			t.Errorf("task %s completed = %v, want %v", task.ID, task.IsCompleted, want)
		}
	}
}

func TestBulkCompletePartialFailureKeepsFailedLocal(t *testing.T) {
	data := &fakeData{tasks: []models.Task{{ID: "t1"}, {ID: "t2"}}}
	s, _ := adminStore(data)
	s.Refresh(context.Background())

	data.updateTask = func(id string, patch models.TaskPatch) (models.Task, error) {
		if id == "t2" {
			return models.Task{}, errors.New("conflict")
		}
		return models.Task{ID: id, IsCompleted: *patch.IsCompleted}, nil
	}

	s.BulkCompleteTasks(context.Background(), []string{"t1", "t2"}, true)

	tasks := s.VisibleTasks()
	if !tasks[0].IsCompleted {
		t.Error("t1 should be completed")
	}
	if tasks[1].IsCompleted {
		t.Error("t2 failed server-side and must keep its local state")
	}
}

func TestBulkDeleteReportsPerIDFailures(t *testing.T) {
	data := &fakeData{tasks: []models.Task{{ID: "t1"}, {ID: "t2"}, {ID: "t3"}}}
	s, _ := adminStore(data)
	s.Refresh(context.Background())

	data.deleteTask = func(id string) error {
		if id == "t2" {
			return errors.New("locked")
		}
		return nil
	}

	failed := s.BulkDeleteTasks(context.Background(), []string{"t1", "t2", "t3"})
	if len(failed) != 1 || failed["t2"] == nil {
		t.Errorf("failed = %v, want exactly t2", failed)
	}
	if tasks := s.VisibleTasks(); len(tasks) != 1 || tasks[0].ID != "t2" {
		t.Errorf("tasks after bulk delete = %+v, want only t2 surviving", tasks)
	}
}

func TestProjectAndClientMutations(t *testing.T) {
	data := &fakeData{
		projects: []models.Project{{ID: "p1", Name: "Old"}},
		clients:  []models.Client{{ID: "c1", Name: "Acme"}},
	}
	s, _ := adminStore(data)
	s.Refresh(context.Background())

	if _, err := s.CreateProject(context.Background(), models.ProjectDraft{Name: "Site"}); err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}
	if projects := s.VisibleProjects(); len(projects) != 2 || projects[1].Name != "Site" {
		t.Errorf("projects = %+v, want Site appended", projects)
	}

	name := "New"
	if _, err := s.UpdateProject(context.Background(), "p1", models.ProjectPatch{Name: &name}); err != nil {
		t.Fatalf("UpdateProject() error = %v", err)
	}
	if s.VisibleProjects()[0].Name != "New" {
		t.Error("project rename not applied locally")
	}

	if err := s.DeleteProject(context.Background(), "p1"); err != nil {
		t.Fatalf("DeleteProject() error = %v", err)
	}
	if len(s.VisibleProjects()) != 1 {
		t.Error("deleted project still present")
	}

	if _, err := s.CreateClient(context.Background(), models.ClientDraft{Name: "Globex"}); err != nil {
		t.Fatalf("CreateClient() error = %v", err)
	}
	if err := s.DeleteClient(context.Background(), "c1"); err != nil {
		t.Fatalf("DeleteClient() error = %v", err)
	}
	clients := s.VisibleClients()
	if len(clients) != 1 || clients[0].Name != "Globex" {
		t.Errorf("clients = %+v, want only Globex", clients)
	}
}
