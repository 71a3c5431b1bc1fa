// Package storage defines the persistence contract shared by the in-memory
// and sqlite backends.
package storage

import (
	"context"
	"errors"

	"dayflow/internal/models"
)

// ErrNotFound signals that no record exists for the requested identifier.
// Absence is a normal outcome, not a fault: callers check it with errors.Is
// and decide policy (usually a 404) themselves.
var ErrNotFound = errors.New("not found")

// Storage is the full data-access surface of the application. Create
// operations assign the identifier and timestamps and return the stored
// record. Task reads always resolve the owning project at call time.
// Deletes report whether a record was removed; their error is reserved for
// driver failures.
type Storage interface {
	CreateUser(ctx context.Context, u models.User) (models.User, error)
	GetUser(ctx context.Context, id string) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)

	CreateProject(ctx context.Context, p models.Project) (models.Project, error)
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id string) (models.Project, error)

	CreateTask(ctx context.Context, t models.Task) (models.TaskWithProject, error)
	ListTasks(ctx context.Context) ([]models.TaskWithProject, error)
	GetTask(ctx context.Context, id string) (models.TaskWithProject, error)
	ListTasksByStatus(ctx context.Context, status string) ([]models.TaskWithProject, error)
	ListTasksByProject(ctx context.Context, projectID string) ([]models.TaskWithProject, error)
	UpdateTask(ctx context.Context, id string, upd models.TaskUpdate) (models.TaskWithProject, error)
	DeleteTask(ctx context.Context, id string) (bool, error)

	CreateEvent(ctx context.Context, e models.Event) (models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	ListEventsByDate(ctx context.Context, date string) ([]models.Event, error)
	DeleteEvent(ctx context.Context, id string) (bool, error)
}
