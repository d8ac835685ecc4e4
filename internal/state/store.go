// Package state holds the application state container: session, the three
// collections, and the active timer. Views read scoped projections and
// route every mutation through here; the container reconciles server
// responses into local state and never mutates collections on failure.
package state

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/timelex/timelex-cli/internal/api"
	"github.com/timelex/timelex-cli/internal/logger"
	"github.com/timelex/timelex-cli/internal/models"
)

// ErrNotLoggedIn is returned by operations that require a session.
var ErrNotLoggedIn = errors.New("not logged in")

// AuthService is the session boundary the container drives.
type AuthService interface {
	Login(ctx context.Context, email, password string) (models.UserSession, error)
	RestoreSession() (models.UserSession, bool)
	Logout()
}

// DataService is the CRUD boundary the container reconciles against.
type DataService interface {
	FetchTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, draft models.TaskDraft) (models.Task, error)
	UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (models.Task, error)
	DeleteTask(ctx context.Context, id string) error

	FetchProjects(ctx context.Context) ([]models.Project, error)
	CreateProject(ctx context.Context, draft models.ProjectDraft) (models.Project, error)
	UpdateProject(ctx context.Context, id string, patch models.ProjectPatch) (models.Project, error)
	DeleteProject(ctx context.Context, id string) error

	FetchClients(ctx context.Context) ([]models.Client, error)
	CreateClient(ctx context.Context, draft models.ClientDraft) (models.Client, error)
	UpdateClient(ctx context.Context, id string, patch models.ClientPatch) (models.Client, error)
	DeleteClient(ctx context.Context, id string) error
}

type Store struct {
	mu   sync.Mutex
	auth AuthService
	data DataService

	session  *models.UserSession
	tasks    []models.Task
	projects []models.Project
	clients  []models.Client
	timer    models.ActiveTimer

	// generation tags each refresh cycle; a response from a superseded
	// cycle is discarded instead of clobbering newer state.
	generation uint64

	now func() time.Time
}

func NewStore(authSvc AuthService, dataSvc DataService) *Store {
	return &Store{
		auth: authSvc,
		data: dataSvc,
		now:  time.Now,
	}
}

// Session returns a copy of the current session, or nil when logged out.
func (s *Store) Session() *models.UserSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	copied := *s.session
	return &copied
}

// Login authenticates and installs the resulting session.
func (s *Store) Login(ctx context.Context, email, password string) error {
	session, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.session = &session
	s.mu.Unlock()
	return nil
}

// Restore rebuilds a session from a persisted token, if one exists.
func (s *Store) Restore() bool {
	session, ok := s.auth.RestoreSession()
	if !ok {
		return false
	}
	s.mu.Lock()
	s.session = &session
	s.mu.Unlock()
	return true
}

// Logout tears down the session and drops all local state, including any
// in-progress timer. In-flight refreshes are invalidated by the generation
// bump.
func (s *Store) Logout() {
	s.auth.Logout()
	s.mu.Lock()
	s.session = nil
	s.tasks = nil
	s.projects = nil
	s.clients = nil
	s.timer = models.ActiveTimer{}
	s.generation++
	s.mu.Unlock()
}

// Refresh fetches tasks, projects, and clients concurrently and installs
// all three together. A failure in any fetch aborts the cycle and leaves
// the previous (possibly stale) collections intact; a 401 additionally
// tears the session down.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return ErrNotLoggedIn
	}
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	var (
		tasks    []models.Task
		projects []models.Project
		clients  []models.Client
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tasks, err = s.data.FetchTasks(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		projects, err = s.data.FetchProjects(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		clients, err = s.data.FetchClients(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Error("Data refresh failed", "error", err)
		if errors.Is(err, api.ErrUnauthorized) {
			s.Logout()
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		// A newer cycle (or a logout) superseded this response.
		logger.Debug("Discarding stale refresh response", "generation", gen)
		return nil
	}
	s.tasks = tasks
	s.projects = projects
	s.clients = clients
	return nil
}

// visibleProjectsLocked applies client-role scoping. Callers hold s.mu.
func (s *Store) visibleProjectsLocked() []models.Project {
	if s.session == nil || s.session.Role != models.RoleClient {
		return append([]models.Project(nil), s.projects...)
	}
	var out []models.Project
	for _, p := range s.projects {
		if p.ClientID == s.session.ClientID {
			out = append(out, p)
		}
	}
	return out
}

// VisibleProjects returns the projects the session may see: every project
// for admins, only the session's own client's projects otherwise.
func (s *Store) VisibleProjects() []models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visibleProjectsLocked()
}

// VisibleTasks returns the tasks whose project is visible to the session.
func (s *Store) VisibleTasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil || s.session.Role != models.RoleClient {
		return append([]models.Task(nil), s.tasks...)
	}
	visible := make(map[string]bool)
	for _, p := range s.visibleProjectsLocked() {
		visible[p.ID] = true
	}
	var out []models.Task
	for _, t := range s.tasks {
		if visible[t.ProjectID] {
			out = append(out, t)
		}
	}
	return out
}

// VisibleClients returns every client for admins and only the session's
// own record for client-role sessions.
func (s *Store) VisibleClients() []models.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil || s.session.Role != models.RoleClient {
		return append([]models.Client(nil), s.clients...)
	}
	var out []models.Client
	for _, c := range s.clients {
		if c.ID == s.session.ClientID {
			out = append(out, c)
		}
	}
	return out
}
