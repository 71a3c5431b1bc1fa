// Package memory implements storage.Storage with plain in-process maps.
// Nothing survives a restart; the production deployment swaps in the sqlite
// backend (or a hosted document database) for durability.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"dayflow/internal/models"
	"dayflow/internal/storage"
)

// Store keeps every collection in a map keyed by generated identifier. A
// single mutex serializes mutations so the store is safe to share across
// HTTP handlers; list operations return records in insertion order.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	users    map[string]models.User
	projects map[string]models.Project
	tasks    map[string]models.Task
	events   map[string]models.Event

	userOrder    []string
	projectOrder []string
	taskOrder    []string
	eventOrder   []string
}

// New returns an empty store.
func New() *Store {
	return &Store{
		now:      time.Now,
		users:    make(map[string]models.User),
		projects: make(map[string]models.Project),
		tasks:    make(map[string]models.Task),
		events:   make(map[string]models.Event),
	}
}

// NewSeeded returns a store preloaded with the demo data set.
func NewSeeded() *Store {
	s := New()
	s.seed()
	return s
}

// CreateUser stores a new user under a fresh identifier. Duplicate
// usernames or emails are not rejected here; enforcement, if any, belongs to
// the sign-up flow.
func (s *Store) CreateUser(_ context.Context, u models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.ID = uuid.NewString()
	u.CreatedAt = s.now()
	s.users[u.ID] = u
	s.userOrder = append(s.userOrder, u.ID)
	return u, nil
}

// GetUser fetches a user by id.
func (s *Store) GetUser(_ context.Context, id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return u, nil
}

// GetUserByUsername scans for the first user with the given username.
func (s *Store) GetUserByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.userOrder {
		if s.users[id].Username == username {
			return s.users[id], nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

// GetUserByEmail scans for the first user with the given email.
func (s *Store) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.userOrder {
		if s.users[id].Email == email {
			return s.users[id], nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

// CreateProject stores a new project, defaulting the color when none is
// given.
func (s *Store) CreateProject(_ context.Context, p models.Project) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = uuid.NewString()
	p.Name = strings.TrimSpace(p.Name)
	if p.Color == "" {
		p.Color = models.DefaultProjectColor
	}
	p.CreatedAt = s.now()
	s.projects[p.ID] = p
	s.projectOrder = append(s.projectOrder, p.ID)
	return p, nil
}

// ListProjects returns all projects in insertion order.
func (s *Store) ListProjects(_ context.Context) ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	projects := make([]models.Project, 0, len(s.projectOrder))
	for _, id := range s.projectOrder {
		projects = append(projects, s.projects[id])
	}
	return projects, nil
}

// GetProject fetches a project by id.
func (s *Store) GetProject(_ context.Context, id string) (models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return models.Project{}, storage.ErrNotFound
	}
	return p, nil
}

// CreateTask stores a new task and returns it with the owning project
// resolved. An unknown status falls back to pending.
func (s *Store) CreateTask(_ context.Context, t models.Task) (models.TaskWithProject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = uuid.NewString()
	t.Title = strings.TrimSpace(t.Title)
	if _, ok := models.ValidTaskStatuses[t.Status]; !ok {
		t.Status = models.StatusPending
	}
	now := s.now()
	t.CreatedAt = now
	t.UpdatedAt = now
	s.tasks[t.ID] = t
	s.taskOrder = append(s.taskOrder, t.ID)
	return s.resolveLocked(t), nil
}

// ListTasks returns every task with its project resolved at call time. The
// join is recomputed on each call so a changed project is visible through
// every task that references it.
func (s *Store) ListTasks(_ context.Context) ([]models.TaskWithProject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]models.TaskWithProject, 0, len(s.taskOrder))
	for _, id := range s.taskOrder {
		tasks = append(tasks, s.resolveLocked(s.tasks[id]))
	}
	return tasks, nil
}

// GetTask fetches a single task with its project resolved.
func (s *Store) GetTask(_ context.Context, id string) (models.TaskWithProject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return models.TaskWithProject{}, storage.ErrNotFound
	}
	return s.resolveLocked(t), nil
}

// ListTasksByStatus filters tasks by exact status match.
func (s *Store) ListTasksByStatus(_ context.Context, status string) ([]models.TaskWithProject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]models.TaskWithProject, 0)
	for _, id := range s.taskOrder {
		if t := s.tasks[id]; t.Status == status {
			tasks = append(tasks, s.resolveLocked(t))
		}
	}
	return tasks, nil
}

// ListTasksByProject filters tasks by exact project reference.
func (s *Store) ListTasksByProject(_ context.Context, projectID string) ([]models.TaskWithProject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]models.TaskWithProject, 0)
	for _, id := range s.taskOrder {
		if t := s.tasks[id]; t.ProjectID == projectID {
			tasks = append(tasks, s.resolveLocked(t))
		}
	}
	return tasks, nil
}

// UpdateTask merges the given fields over the stored task and refreshes the
// update timestamp. An unknown status in the update is ignored.
func (s *Store) UpdateTask(_ context.Context, id string, upd models.TaskUpdate) (models.TaskWithProject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return models.TaskWithProject{}, storage.ErrNotFound
	}

	if upd.Title != nil && strings.TrimSpace(*upd.Title) != "" {
		t.Title = strings.TrimSpace(*upd.Title)
	}
	if upd.Description != nil {
		t.Description = *upd.Description
	}
	if upd.Status != nil {
		if _, valid := models.ValidTaskStatuses[*upd.Status]; valid {
			t.Status = *upd.Status
		}
	}
	if upd.ProjectID != nil {
		t.ProjectID = *upd.ProjectID
	}
	if upd.TaskNumber != nil {
		t.TaskNumber = *upd.TaskNumber
	}
	t.UpdatedAt = s.now()

	s.tasks[id] = t
	return s.resolveLocked(t), nil
}

// DeleteTask removes a task and reports whether a record existed.
func (s *Store) DeleteTask(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return false, nil
	}
	delete(s.tasks, id)
	s.taskOrder = removeID(s.taskOrder, id)
	return true, nil
}

// CreateEvent stores a new calendar event.
func (s *Store) CreateEvent(_ context.Context, e models.Event) (models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = uuid.NewString()
	e.Title = strings.TrimSpace(e.Title)
	e.CreatedAt = s.now()
	s.events[e.ID] = e
	s.eventOrder = append(s.eventOrder, e.ID)
	return e, nil
}

// ListEvents returns all events in insertion order.
func (s *Store) ListEvents(_ context.Context) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]models.Event, 0, len(s.eventOrder))
	for _, id := range s.eventOrder {
		events = append(events, s.events[id])
	}
	return events, nil
}

// ListEventsByDate filters events by exact date-string equality.
func (s *Store) ListEventsByDate(_ context.Context, date string) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]models.Event, 0)
	for _, id := range s.eventOrder {
		if e := s.events[id]; e.Date == date {
			events = append(events, e)
		}
	}
	return events, nil
}

// DeleteEvent removes an event and reports whether a record existed.
func (s *Store) DeleteEvent(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return false, nil
	}
	delete(s.events, id)
	s.eventOrder = removeID(s.eventOrder, id)
	return true, nil
}

// resolveLocked joins a task with the current state of its project. A
// missing or dangling reference leaves Project nil. Callers must hold at
// least the read lock.
func (s *Store) resolveLocked(t models.Task) models.TaskWithProject {
	out := models.TaskWithProject{Task: t}
	if t.ProjectID == "" {
		return out
	}
	if p, ok := s.projects[t.ProjectID]; ok {
		out.Project = &p
	}
	return out
}

func removeID(order []string, id string) []string {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
