package state

import (
	"context"
	"errors"
	"testing"

	"github.com/timelex/timelex-cli/internal/api"
	"github.com/timelex/timelex-cli/internal/models"
)

type fakeAuth struct {
	session    models.UserSession
	loginErr   error
	restorable bool
	loggedOut  bool
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (models.UserSession, error) {
	if f.loginErr != nil {
		return models.UserSession{}, f.loginErr
	}
	return f.session, nil
}

func (f *fakeAuth) RestoreSession() (models.UserSession, bool) {
	return f.session, f.restorable
}

func (f *fakeAuth) Logout() { f.loggedOut = true }

// fakeData defaults every operation to success; tests override the
// function fields they care about.
type fakeData struct {
	tasks    []models.Task
	projects []models.Project
	clients  []models.Client

	fetchTasksErr    error
	fetchProjectsErr error
	fetchClientsErr  error
	onFetchClients   func()

	createTask func(models.TaskDraft) (models.Task, error)
	updateTask func(string, models.TaskPatch) (models.Task, error)
	deleteTask func(string) error

	nextID int
}

func (f *fakeData) FetchTasks(ctx context.Context) ([]models.Task, error) {
	if f.fetchTasksErr != nil {
		return nil, f.fetchTasksErr
	}
	return f.tasks, nil
}

func (f *fakeData) FetchProjects(ctx context.Context) ([]models.Project, error) {
	if f.fetchProjectsErr != nil {
		return nil, f.fetchProjectsErr
	}
	return f.projects, nil
}

func (f *fakeData) FetchClients(ctx context.Context) ([]models.Client, error) {
	if f.onFetchClients != nil {
		f.onFetchClients()
	}
	if f.fetchClientsErr != nil {
		return nil, f.fetchClientsErr
	}
	return f.clients, nil
}

func (f *fakeData) CreateTask(ctx context.Context, draft models.TaskDraft) (models.Task, error) {
	if f.createTask != nil {
		return f.createTask(draft)
	}
	f.nextID++
	return models.Task{
		ID:          "srv-" + string(rune('0'+f.nextID)),
		Description: draft.Description,
		ProjectID:   draft.ProjectID,
		Duration:    draft.Duration,
		Date:        draft.Date,
		IsCompleted: draft.IsCompleted,
		Priority:    draft.Priority,
		Recurrence:  draft.Recurrence,
	}, nil
}

func (f *fakeData) UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (models.Task, error) {
	if f.updateTask != nil {
		return f.updateTask(id, patch)
	}
	for _, t := range f.tasks {
		if t.ID == id {
			if patch.IsCompleted != nil {
				t.IsCompleted = *patch.IsCompleted
			}
			if patch.Priority != nil {
				t.Priority = *patch.Priority
			}
			if patch.Date != nil {
				t.Date = *patch.Date
			}
			if patch.Description != nil {
				t.Description = *patch.Description
			}
			if patch.Duration != nil {
				t.Duration = *patch.Duration
			}
			return t, nil
		}
	}
	return models.Task{}, errors.New("task not found")
}

func (f *fakeData) DeleteTask(ctx context.Context, id string) error {
	if f.deleteTask != nil {
		return f.deleteTask(id)
	}
	return nil
}

func (f *fakeData) CreateProject(ctx context.Context, draft models.ProjectDraft) (models.Project, error) {
	return models.Project{ID: "p-new", Name: draft.Name, Color: draft.Color, ClientID: draft.ClientID}, nil
}

func (f *fakeData) UpdateProject(ctx context.Context, id string, patch models.ProjectPatch) (models.Project, error) {
	p := models.Project{ID: id}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	return p, nil
}

func (f *fakeData) DeleteProject(ctx context.Context, id string) error { return nil }

func (f *fakeData) CreateClient(ctx context.Context, draft models.ClientDraft) (models.Client, error) {
	return models.Client{ID: "c-new", Name: draft.Name, HourlyRate: draft.HourlyRate, Currency: draft.Currency}, nil
}

func (f *fakeData) UpdateClient(ctx context.Context, id string, patch models.ClientPatch) (models.Client, error) {
	c := models.Client{ID: id}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	return c, nil
}

func (f *fakeData) DeleteClient(ctx context.Context, id string) error { return nil }

func adminStore(data *fakeData) (*Store, *fakeAuth) {
	auth := &fakeAuth{session: models.UserSession{Role: models.RoleAdmin, Name: "Admin"}}
	s := NewStore(auth, data)
	s.Login(context.Background(), "a@b.c", "pw")
	return s, auth
}

func TestRefreshPopulatesAllCollections(t *testing.T) {
	data := &fakeData{
		tasks:    []models.Task{{ID: "t1", ProjectID: "p1"}},
		projects: []models.Project{{ID: "p1", ClientID: "c1"}},
		clients:  []models.Client{{ID: "c1"}},
	}
	s, _ := adminStore(data)

	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if len(s.VisibleTasks()) != 1 || len(s.VisibleProjects()) != 1 || len(s.VisibleClients()) != 1 {
		t.Error("collections not populated after refresh")
	}
}

func TestRefreshPartialFailureAbortsAllThree(t *testing.T) {
	data := &fakeData{
		tasks:           []models.Task{{ID: "t1"}},
		projects:        []models.Project{{ID: "p1"}},
		fetchClientsErr: errors.New("boom"),
	}
	s, _ := adminStore(data)

	if err := s.Refresh(context.Background()); err == nil {
		t.Fatal("Refresh() error = nil, want fetch failure")
	}
	if len(s.VisibleTasks()) != 0 || len(s.VisibleProjects()) != 0 {
		t.Error("partial failure must not populate any collection")
	}
}

func TestRefresh401TearsDownSession(t *testing.T) {
	data := &fakeData{fetchTasksErr: api.ErrUnauthorized}
	s, auth := adminStore(data)

	err := s.Refresh(context.Background())
	if !errors.Is(err, api.ErrUnauthorized) {
		t.Fatalf("Refresh() error = %v, want ErrUnauthorized", err)
	}
	if s.Session() != nil {
		t.Error("session still present after 401")
	}
	if !auth.loggedOut {
		t.Error("auth service Logout() not called on 401")
	}
}

func TestRefreshRequiresSession(t *testing.T) {
	s := NewStore(&fakeAuth{}, &fakeData{})
	if err := s.Refresh(context.Background()); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("Refresh() error = %v, want ErrNotLoggedIn", err)
	}
}

func TestRefreshSupersededByLogoutIsDiscarded(t *testing.T) {
	data := &fakeData{tasks: []models.Task{{ID: "t1"}}}
	s, _ := adminStore(data)

	// The logout lands while the fetches are in flight; the late response
	// must not repopulate the emptied collections.
	data.onFetchClients = func() {
		s.Logout()
		s.Restore()
	}

	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if len(s.VisibleTasks()) != 0 {
		t.Error("stale refresh response clobbered post-logout state")
	}
}

func clientStore(data *fakeData, clientID string) *Store {
	auth := &fakeAuth{session: models.UserSession{Role: models.RoleClient, ClientID: clientID, Name: "TechCorp"}}
	s := NewStore(auth, data)
	s.Login(context.Background(), "tc@example.com", "pw")
	return s
}

func scopedFixture() *fakeData {
	return &fakeData{
		clients: []models.Client{
			{ID: "c1", Name: "Default Client"},
			{ID: "c2", Name: "TechCorp"},
		},
		projects: []models.Project{
			{ID: "p1", ClientID: "c1"},
			{ID: "p2", ClientID: "c2"},
			{ID: "p3", ClientID: "c2"},
		},
		tasks: []models.Task{
			{ID: "t1", ProjectID: "p1"},
			{ID: "t2", ProjectID: "p2"},
			{ID: "t3", ProjectID: "p3"},
			{ID: "t4", ProjectID: "ghost"},
		},
	}
}

func TestClientRoleSeesOnlyOwnScope(t *testing.T) {
	s := clientStore(scopedFixture(), "c2")
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	projects := s.VisibleProjects()
	if len(projects) != 2 {
		t.Fatalf("client sees %d projects, want 2", len(projects))
	}
	for _, p := range projects {
		if p.ClientID != "c2" {
			t.Errorf("client sees foreign project %+v", p)
		}
	}

	tasks := s.VisibleTasks()
	if len(tasks) != 2 {
		t.Fatalf("client sees %d tasks, want 2", len(tasks))
	}
	for _, task := range tasks {
		if task.ProjectID != "p2" && task.ProjectID != "p3" {
			t.Errorf("client sees foreign task %+v", task)
		}
	}

	clients := s.VisibleClients()
	if len(clients) != 1 || clients[0].ID != "c2" {
		t.Errorf("client sees %+v, want only its own record", clients)
	}
}

func TestAdminSeesEverything(t *testing.T) {
	s, _ := adminStore(scopedFixture())
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if len(s.VisibleTasks()) != 4 || len(s.VisibleProjects()) != 3 || len(s.VisibleClients()) != 2 {
		t.Error("admin scope must be unfiltered")
	}
}

func TestLogoutDropsStateAndTimer(t *testing.T) {
	s, auth := adminStore(scopedFixture())
	s.Refresh(context.Background())
	s.StartTracking("work", "p1", models.PriorityMedium, "2026-01-01")

	s.Logout()
	if s.Session() != nil {
		t.Error("session survives logout")
	}
	if s.Tracking() {
		t.Error("active timer survives logout")
	}
	if len(s.VisibleTasks()) != 0 {
		t.Error("collections survive logout")
	}
	if !auth.loggedOut {
		t.Error("auth service not told to log out")
	}
}
