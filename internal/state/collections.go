package state

import (
	"context"

	"github.com/timelex/timelex-cli/internal/logger"
	"github.com/timelex/timelex-cli/internal/models"
)

// Collection mutations follow one contract: the server confirms first, and
// only then is local state reconciled. On failure the collections are left
// exactly as they were.

// CreateTask submits a draft and prepends the server-confirmed record.
func (s *Store) CreateTask(ctx context.Context, draft models.TaskDraft) (models.Task, error) {
	task, err := s.data.CreateTask(ctx, draft)
	if err != nil {
		return models.Task{}, err
	}
	s.mu.Lock()
	s.tasks = append([]models.Task{task}, s.tasks...)
	s.mu.Unlock()
	return task, nil
}

// UpdateTask applies a sparse patch and replaces the matching local record
// with the server-confirmed one.
func (s *Store) UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (models.Task, error) {
	task, err := s.data.UpdateTask(ctx, id, patch)
	if err != nil {
		return models.Task{}, err
	}
	s.mu.Lock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i] = task
			break
		}
	}
	s.mu.Unlock()
	return task, nil
}

// DeleteTask removes the record locally once the server confirms.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	if err := s.data.DeleteTask(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	s.tasks = removeByID(s.tasks, id, func(t models.Task) string { return t.ID })
	s.mu.Unlock()
	return nil
}

// BulkDeleteTasks fans out independent deletes. There is no atomicity:
// some ids may succeed while others fail, and nothing is rolled back. The
// returned map carries one error per failed id.
func (s *Store) BulkDeleteTasks(ctx context.Context, ids []string) map[string]error {
	failed := make(map[string]error)
	for _, id := range ids {
		if err := s.DeleteTask(ctx, id); err != nil {
			failed[id] = err
		}
	}
	return failed
}

// BulkCompleteTasks fans out independent completion updates. Failures are
// logged and swallowed; ids that fail server-side keep their local state.
func (s *Store) BulkCompleteTasks(ctx context.Context, ids []string, complete bool) {
	for _, id := range ids {
		if _, err := s.UpdateTask(ctx, id, models.TaskPatch{IsCompleted: &complete}); err != nil {
			logger.Debug("Bulk complete failed for task", "id", id, "error", err)
		}
	}
}

// CreateProject submits a draft and appends the server-confirmed record.
func (s *Store) CreateProject(ctx context.Context, draft models.ProjectDraft) (models.Project, error) {
	project, err := s.data.CreateProject(ctx, draft)
	if err != nil {
		return models.Project{}, err
	}
	s.mu.Lock()
	s.projects = append(s.projects, project)
	s.mu.Unlock()
	return project, nil
}

func (s *Store) UpdateProject(ctx context.Context, id string, patch models.ProjectPatch) (models.Project, error) {
	project, err := s.data.UpdateProject(ctx, id, patch)
	if err != nil {
		return models.Project{}, err
	}
	s.mu.Lock()
	for i := range s.projects {
		if s.projects[i].ID == id {
			s.projects[i] = project
			break
		}
	}
	s.mu.Unlock()
	return project, nil
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	if err := s.data.DeleteProject(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	s.projects = removeByID(s.projects, id, func(p models.Project) string { return p.ID })
	s.mu.Unlock()
	return nil
}

// CreateClient submits a draft and appends the server-confirmed record.
func (s *Store) CreateClient(ctx context.Context, draft models.ClientDraft) (models.Client, error) {
	client, err := s.data.CreateClient(ctx, draft)
	if err != nil {
		return models.Client{}, err
	}
	s.mu.Lock()
	s.clients = append(s.clients, client)
	s.mu.Unlock()
	return client, nil
}

func (s *Store) UpdateClient(ctx context.Context, id string, patch models.ClientPatch) (models.Client, error) {
	client, err := s.data.UpdateClient(ctx, id, patch)
	if err != nil {
		return models.Client{}, err
	}
	s.mu.Lock()
	for i := range s.clients {
		if s.clients[i].ID == id {
			s.clients[i] = client
			break
		}
	}
	s.mu.Unlock()
	return client, nil
}

// DeleteClient removes the record locally once the server confirms. A
// backend rejection (dependent projects) is returned untouched for the
// view layer to display.
func (s *Store) DeleteClient(ctx context.Context, id string) error {
	if err := s.data.DeleteClient(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	s.clients = removeByID(s.clients, id, func(c models.Client) string { return c.ID })
	s.mu.Unlock()
	return nil
}

func removeByID[T any](items []T, id string, idOf func(T) string) []T {
	out := items[:0]
	for _, item := range items {
		if idOf(item) != id {
			out = append(out, item)
		}
	}
	return out
}
