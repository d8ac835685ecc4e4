// Package data is the CRUD boundary for tasks, projects, and clients. It
// translates between the backend's wire representation and the in-memory
// view model; callers never construct endpoint paths or payloads.
package data

import (
	"context"
	"fmt"

	"github.com/timelex/timelex-cli/internal/api"
	"github.com/timelex/timelex-cli/internal/models"
)

type Service struct {
	api *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{api: client}
}

// Tasks

func (s *Service) FetchTasks(ctx context.Context) ([]models.Task, error) {
	var wire []wireTask
	if err := s.api.Get(ctx, "/tasks/", &wire); err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	tasks := make([]models.Task, len(wire))
	for i, w := range wire {
		tasks[i] = taskFromWire(w)
	}
	return tasks, nil
}

func (s *Service) CreateTask(ctx context.Context, draft models.TaskDraft) (models.Task, error) {
	var w wireTask
	if err := s.api.Post(ctx, "/tasks/", taskDraftToWire(draft), &w); err != nil {
		return models.Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	return taskFromWire(w), nil
}

func (s *Service) UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (models.Task, error) {
	var w wireTask
	if err := s.api.Patch(ctx, "/tasks/"+id+"/", taskPatchToWire(patch), &w); err != nil {
		return models.Task{}, fmt.Errorf("failed to update task %s: %w", id, err)
	}
	return taskFromWire(w), nil
}

func (s *Service) DeleteTask(ctx context.Context, id string) error {
	if err := s.api.Delete(ctx, "/tasks/"+id+"/"); err != nil {
		return fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	return nil
}

// Projects

func (s *Service) FetchProjects(ctx context.Context) ([]models.Project, error) {
	var wire []wireProject
	if err := s.api.Get(ctx, "/projects/", &wire); err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}
	projects := make([]models.Project, len(wire))
	for i, w := range wire {
		projects[i] = projectFromWire(w)
	}
	return projects, nil
}

func (s *Service) CreateProject(ctx context.Context, draft models.ProjectDraft) (models.Project, error) {
	var w wireProject
	if err := s.api.Post(ctx, "/projects/", projectDraftToWire(draft), &w); err != nil {
		return models.Project{}, fmt.Errorf("failed to create project: %w", err)
	}
	return projectFromWire(w), nil
}

func (s *Service) UpdateProject(ctx context.Context, id string, patch models.ProjectPatch) (models.Project, error) {
	var w wireProject
	if err := s.api.Patch(ctx, "/projects/"+id+"/", projectPatchToWire(patch), &w); err != nil {
		return models.Project{}, fmt.Errorf("failed to update project %s: %w", id, err)
	}
	return projectFromWire(w), nil
}

func (s *Service) DeleteProject(ctx context.Context, id string) error {
	if err := s.api.Delete(ctx, "/projects/"+id+"/"); err != nil {
		return fmt.Errorf("failed to delete project %s: %w", id, err)
	}
	return nil
}

// Clients

func (s *Service) FetchClients(ctx context.Context) ([]models.Client, error) {
	var wire []wireClient
	if err := s.api.Get(ctx, "/clients/", &wire); err != nil {
		return nil, fmt.Errorf("failed to fetch clients: %w", err)
	}
	clients := make([]models.Client, len(wire))
	for i, w := range wire {
		clients[i] = clientFromWire(w)
	}
	return clients, nil
}

func (s *Service) CreateClient(ctx context.Context, draft models.ClientDraft) (models.Client, error) {
	var w wireClient
	if err := s.api.Post(ctx, "/clients/", clientDraftToWire(draft), &w); err != nil {
		return models.Client{}, fmt.Errorf("failed to create client: %w", err)
	}
	return clientFromWire(w), nil
}

func (s *Service) UpdateClient(ctx context.Context, id string, patch models.ClientPatch) (models.Client, error) {
	var w wireClient
	if err := s.api.Patch(ctx, "/clients/"+id+"/", clientPatchToWire(patch), &w); err != nil {
		return models.Client{}, fmt.Errorf("failed to update client %s: %w", id, err)
	}
	return clientFromWire(w), nil
}

// DeleteClient may be rejected by the backend when dependent projects
// exist; the rejection is surfaced as-is, never resolved locally.
func (s *Service) DeleteClient(ctx context.Context, id string) error {
	if err := s.api.Delete(ctx, "/clients/"+id+"/"); err != nil {
		return fmt.Errorf("failed to delete client %s: %w", id, err)
	}
	return nil
}
