// Package sqlite implements storage.Storage on a local SQLite file for
// deployments that want data to outlive the process.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"dayflow/internal/models"
	"dayflow/internal/storage"
)

// Store wraps access to the SQLite database and exposes the same contract
// as the in-memory store. Task reads join the owning project at query time
// so project edits are visible through every referencing task immediately.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// Open initializes a new SQLite store and runs the required migrations.
func Open(dbPath string, logger *slog.Logger) (*Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("empty database path")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if err := ensureDir(dbPath); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000", dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	conn.SetMaxOpenConns(1)
	conn.SetConnMaxLifetime(0)

	s := &Store{db: conn, logger: logger, now: time.Now}
	if err := s.migrate(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return s, nil
}

// Close releases the database resources.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func ensureDir(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// migrate creates the schema. tasks.project_id carries no foreign key on
// purpose: a task may reference a project that no longer exists, and the
// reference then resolves to nothing on read.
func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id TEXT PRIMARY KEY,
            username TEXT NOT NULL,
            email TEXT NOT NULL,
            name TEXT NOT NULL,
            avatar TEXT NOT NULL DEFAULT '',
            created_at DATETIME NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS projects (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            color TEXT NOT NULL DEFAULT 'blue',
            created_at DATETIME NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS tasks (
            id TEXT PRIMARY KEY,
            title TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL DEFAULT 'pending',
            project_id TEXT NOT NULL DEFAULT '',
            task_number TEXT NOT NULL DEFAULT '',
            created_at DATETIME NOT NULL,
            updated_at DATETIME NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS events (
            id TEXT PRIMARY KEY,
            title TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            scheduled_time TEXT NOT NULL DEFAULT '',
            date TEXT NOT NULL,
            icon TEXT NOT NULL DEFAULT '',
            created_at DATETIME NOT NULL
        );`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id);`,
		`CREATE INDEX IF NOT EXISTS idx_events_date ON events(date);`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// CreateUser persists a new user under a fresh identifier.
func (s *Store) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	u.ID = uuid.NewString()
	u.CreatedAt = s.now()

	_, err := s.db.ExecContext(ctx, `INSERT INTO users(id, username, email, name, avatar, created_at) VALUES(?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.Name, u.Avatar, u.CreatedAt)
	if err != nil {
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// GetUser fetches a single user by id.
func (s *Store) GetUser(ctx context.Context, id string) (models.User, error) {
	return s.userWhere(ctx, `id = ?`, id)
}

// GetUserByUsername returns the first user with the given username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	return s.userWhere(ctx, `username = ?`, username)
}

// GetUserByEmail returns the first user with the given email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	return s.userWhere(ctx, `email = ?`, email)
}

func (s *Store) userWhere(ctx context.Context, cond string, arg any) (models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `SELECT id, username, email, name, avatar, created_at FROM users WHERE `+cond+` ORDER BY created_at ASC, id LIMIT 1`, arg).
		Scan(&u.ID, &u.Username, &u.Email, &u.Name, &u.Avatar, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, storage.ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// CreateProject persists a new project with optional color.
func (s *Store) CreateProject(ctx context.Context, p models.Project) (models.Project, error) {
	p.ID = uuid.NewString()
	p.Name = strings.TrimSpace(p.Name)
	if p.Color == "" {
		p.Color = models.DefaultProjectColor
	}
	p.CreatedAt = s.now()

	_, err := s.db.ExecContext(ctx, `INSERT INTO projects(id, name, color, created_at) VALUES(?, ?, ?, ?)`,
		p.ID, p.Name, p.Color, p.CreatedAt)
	if err != nil {
		return models.Project{}, fmt.Errorf("insert project: %w", err)
	}
	return p, nil
}

// ListProjects retrieves all projects ordered by creation date.
func (s *Store) ListProjects(ctx context.Context) ([]models.Project, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, color, created_at FROM projects ORDER BY created_at ASC, id`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]models.Project, 0)
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Color, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// GetProject fetches a single project by id.
func (s *Store) GetProject(ctx context.Context, id string) (models.Project, error) {
	var p models.Project
	err := s.db.QueryRowContext(ctx, `SELECT id, name, color, created_at FROM projects WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.Color, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Project{}, storage.ErrNotFound
	}
	if err != nil {
		return models.Project{}, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

const taskSelect = `SELECT t.id, t.title, t.description, t.status, t.project_id, t.task_number, t.created_at, t.updated_at,
        p.id, p.name, p.color, p.created_at
        FROM tasks t LEFT JOIN projects p ON p.id = t.project_id`

// CreateTask inserts a new task and returns it with the project resolved.
func (s *Store) CreateTask(ctx context.Context, t models.Task) (models.TaskWithProject, error) {
	t.ID = uuid.NewString()
	t.Title = strings.TrimSpace(t.Title)
	if _, ok := models.ValidTaskStatuses[t.Status]; !ok {
		t.Status = models.StatusPending
	}
	now := s.now()
	t.CreatedAt = now
	t.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `INSERT INTO tasks(id, title, description, status, project_id, task_number, created_at, updated_at) VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, t.Status, t.ProjectID, t.TaskNumber, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return models.TaskWithProject{}, fmt.Errorf("insert task: %w", err)
	}
	return s.GetTask(ctx, t.ID)
}

// ListTasks returns every task joined with its current project.
func (s *Store) ListTasks(ctx context.Context) ([]models.TaskWithProject, error) {
	return s.tasksWhere(ctx, ``, nil)
}

// ListTasksByStatus filters tasks by exact status match.
func (s *Store) ListTasksByStatus(ctx context.Context, status string) ([]models.TaskWithProject, error) {
	return s.tasksWhere(ctx, `WHERE t.status = ?`, []any{status})
}

// ListTasksByProject filters tasks by exact project reference.
func (s *Store) ListTasksByProject(ctx context.Context, projectID string) ([]models.TaskWithProject, error) {
	return s.tasksWhere(ctx, `WHERE t.project_id = ?`, []any{projectID})
}

func (s *Store) tasksWhere(ctx context.Context, cond string, args []any) ([]models.TaskWithProject, error) {
	query := taskSelect
	if cond != "" {
		query += " " + cond
	}
	query += ` ORDER BY t.created_at ASC, t.id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]models.TaskWithProject, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// GetTask retrieves a task by id with its project resolved.
func (s *Store) GetTask(ctx context.Context, id string) (models.TaskWithProject, error) {
	row := s.db.QueryRowContext(ctx, taskSelect+` WHERE t.id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.TaskWithProject{}, storage.ErrNotFound
	}
	if err != nil {
		return models.TaskWithProject{}, err
	}
	return t, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (models.TaskWithProject, error) {
	var t models.TaskWithProject
	var pid, pname, pcolor sql.NullString
	var pcreated sql.NullTime

	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.ProjectID, &t.TaskNumber, &t.CreatedAt, &t.UpdatedAt,
		&pid, &pname, &pcolor, &pcreated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.TaskWithProject{}, err
		}
		return models.TaskWithProject{}, fmt.Errorf("scan task: %w", err)
	}
	if pid.Valid {
		t.Project = &models.Project{
			ID:        pid.String,
			Name:      pname.String,
			Color:     pcolor.String,
			CreatedAt: pcreated.Time,
		}
	}
	return t, nil
}

// UpdateTask merges the given fields over the stored task and refreshes the
// update timestamp.
func (s *Store) UpdateTask(ctx context.Context, id string, upd models.TaskUpdate) (models.TaskWithProject, error) {
	current, err := s.GetTask(ctx, id)
	if err != nil {
		return models.TaskWithProject{}, err
	}

	t := current.Task
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

	_, err = s.db.ExecContext(ctx, `UPDATE tasks SET title = ?, description = ?, status = ?, project_id = ?, task_number = ?, updated_at = ? WHERE id = ?`,
		t.Title, t.Description, t.Status, t.ProjectID, t.TaskNumber, t.UpdatedAt, id)
	if err != nil {
		return models.TaskWithProject{}, fmt.Errorf("update task: %w", err)
	}
	return s.GetTask(ctx, id)
}

// DeleteTask removes a task by id and reports whether a row was removed.
func (s *Store) DeleteTask(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// CreateEvent persists a new calendar event.
func (s *Store) CreateEvent(ctx context.Context, e models.Event) (models.Event, error) {
	e.ID = uuid.NewString()
	e.Title = strings.TrimSpace(e.Title)
	e.CreatedAt = s.now()

	_, err := s.db.ExecContext(ctx, `INSERT INTO events(id, title, description, scheduled_time, date, icon, created_at) VALUES(?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Title, e.Description, e.ScheduledTime, e.Date, e.Icon, e.CreatedAt)
	if err != nil {
		return models.Event{}, fmt.Errorf("insert event: %w", err)
	}
	return e, nil
}

// ListEvents retrieves all events ordered by creation date.
func (s *Store) ListEvents(ctx context.Context) ([]models.Event, error) {
	return s.eventsWhere(ctx, ``, nil)
}

// ListEventsByDate filters events by exact date-string equality.
func (s *Store) ListEventsByDate(ctx context.Context, date string) ([]models.Event, error) {
	return s.eventsWhere(ctx, `WHERE date = ?`, []any{date})
}

func (s *Store) eventsWhere(ctx context.Context, cond string, args []any) ([]models.Event, error) {
	query := `SELECT id, title, description, scheduled_time, date, icon, created_at FROM events`
	if cond != "" {
		query += " " + cond
	}
	query += ` ORDER BY created_at ASC, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := make([]models.Event, 0)
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.ScheduledTime, &e.Date, &e.Icon, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// DeleteEvent removes an event by id and reports whether a row was removed.
func (s *Store) DeleteEvent(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
