package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dayflow/internal/models"
	"dayflow/internal/storage"
)

// fixedClock returns strictly increasing timestamps so update ordering is
// observable even when calls land in the same wall-clock instant.
func fixedClock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func newTestStore() *Store {
	s := New()
	s.now = fixedClock(time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC))
	return s
}

func strPtr(v string) *string { return &v }

func TestCreateUser_AssignsIDAndTimestamp(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	u, err := s.CreateUser(ctx, models.User{Username: "mide", Email: "manager@gmail.com", Name: "Mide"})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	got, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u, got)
}

func TestGetUser_ByUsernameAndEmail(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	first, err := s.CreateUser(ctx, models.User{Username: "mide", Email: "manager@gmail.com", Name: "Mide"})
	require.NoError(t, err)
	// Duplicates are permitted at this layer; lookups return the first match.
	_, err = s.CreateUser(ctx, models.User{Username: "mide", Email: "other@gmail.com", Name: "Other"})
	require.NoError(t, err)

	byName, err := s.GetUserByUsername(ctx, "mide")
	require.NoError(t, err)
	assert.Equal(t, first.ID, byName.ID)

	byEmail, err := s.GetUserByEmail(ctx, "manager@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, byEmail.ID)

	_, err = s.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetUser_NotFound(t *testing.T) {
	s := newTestStore()

	_, err := s.GetUser(context.Background(), "never-issued")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCreateProject_DefaultsColor(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	p, err := s.CreateProject(ctx, models.Project{Name: "  Website Redesign  "})
	require.NoError(t, err)
	assert.Equal(t, "Website Redesign", p.Name)
	assert.Equal(t, models.DefaultProjectColor, p.Color)
}

func TestListProjects_InsertionOrder(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	names := []string{"Alpha", "Beta", "Gamma"}
	for _, n := range names {
		_, err := s.CreateProject(ctx, models.Project{Name: n, Color: "red"})
		require.NoError(t, err)
	}

	projects, err := s.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 3)
	for i, n := range names {
		assert.Equal(t, n, projects[i].Name)
	}
}

func TestCreateTask_ResolvesProject(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	p, err := s.CreateProject(ctx, models.Project{Name: "A", Color: "blue"})
	require.NoError(t, err)

	created, err := s.CreateTask(ctx, models.Task{Title: "User Research", ProjectID: p.ID, Status: models.StatusPending})
	require.NoError(t, err)
	require.NotNil(t, created.Project)
	assert.Equal(t, p, *created.Project)

	got, err := s.GetTask(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Project)
	assert.Equal(t, "A", got.Project.Name)
}

func TestCreateTask_DanglingReferenceResolvesToNil(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	created, err := s.CreateTask(ctx, models.Task{Title: "Orphan", ProjectID: "no-such-project"})
	require.NoError(t, err)
	assert.Nil(t, created.Project)
	assert.Equal(t, "no-such-project", created.ProjectID)

	got, err := s.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Project)
}

func TestCreateTask_InvalidStatusFallsBackToPending(t *testing.T) {
	s := newTestStore()

	created, err := s.CreateTask(context.Background(), models.Task{Title: "X", Status: "bogus"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, created.Status)
}

func TestListTasksByStatus_ExactSubset(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	statuses := []string{
		models.StatusCompleted,
		models.StatusPending,
		models.StatusInProgress,
		models.StatusPending,
	}
	for i, st := range statuses {
		_, err := s.CreateTask(ctx, models.Task{Title: "Task", Status: st, TaskNumber: "Task #" + string(rune('1'+i))})
		require.NoError(t, err)
	}

	completed, err := s.ListTasksByStatus(ctx, models.StatusCompleted)
	require.NoError(t, err)
	require.Len(t, completed, 1)

	pending, err := s.ListTasksByStatus(ctx, models.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	for _, task := range pending {
		assert.Equal(t, models.StatusPending, task.Status)
	}
}

func TestListTasksByProject(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	p1, err := s.CreateProject(ctx, models.Project{Name: "P1", Color: "blue"})
	require.NoError(t, err)
	p2, err := s.CreateProject(ctx, models.Project{Name: "P2", Color: "green"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := s.CreateTask(ctx, models.Task{Title: "in p1", ProjectID: p1.ID})
		require.NoError(t, err)
	}
	_, err = s.CreateTask(ctx, models.Task{Title: "in p2", ProjectID: p2.ID})
	require.NoError(t, err)

	tasks, err := s.ListTasksByProject(ctx, p1.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	for _, task := range tasks {
		assert.Equal(t, p1.ID, task.ProjectID)
		require.NotNil(t, task.Project)
		assert.Equal(t, "P1", task.Project.Name)
	}
}

func TestUpdateTask_MergesFieldsAndBumpsTimestamp(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	created, err := s.CreateTask(ctx, models.Task{Title: "Old", Description: "keep me", Status: models.StatusPending})
	require.NoError(t, err)

	updated, err := s.UpdateTask(ctx, created.ID, models.TaskUpdate{
		Title:  strPtr("X"),
		Status: strPtr(models.StatusCompleted),
	})
	require.NoError(t, err)
	assert.Equal(t, "X", updated.Title)
	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.Equal(t, "keep me", updated.Description)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	got, err := s.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "X", got.Title)
}

func TestUpdateTask_EmptyUpdateBumpsOnlyTimestamp(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	created, err := s.CreateTask(ctx, models.Task{Title: "T", Description: "d", Status: models.StatusPending})
	require.NoError(t, err)

	updated, err := s.UpdateTask(ctx, created.ID, models.TaskUpdate{})
	require.NoError(t, err)
	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, created.Status, updated.Status)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestUpdateTask_IgnoresInvalidStatus(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	created, err := s.CreateTask(ctx, models.Task{Title: "T", Status: models.StatusInProgress})
	require.NoError(t, err)

	updated, err := s.UpdateTask(ctx, created.ID, models.TaskUpdate{Status: strPtr("bogus")})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, updated.Status)
}

func TestUpdateTask_NotFound(t *testing.T) {
	s := newTestStore()

	_, err := s.UpdateTask(context.Background(), "missing", models.TaskUpdate{Title: strPtr("X")})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteTask_ReportsRemoval(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	created, err := s.CreateTask(ctx, models.Task{Title: "Doomed"})
	require.NoError(t, err)

	deleted, err := s.DeleteTask(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = s.GetTask(ctx, created.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	deleted, err = s.DeleteTask(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestIdentifiers_NeverReused(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		created, err := s.CreateTask(ctx, models.Task{Title: "T"})
		require.NoError(t, err)
		_, dup := seen[created.ID]
		require.False(t, dup, "identifier reused: %s", created.ID)
		seen[created.ID] = struct{}{}

		_, err = s.DeleteTask(ctx, created.ID)
		require.NoError(t, err)
	}
}

func TestListEventsByDate_ExactStringMatch(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	_, err := s.CreateEvent(ctx, models.Event{Title: "On the day", ScheduledTime: "15:00", Date: "2025-01-21"})
	require.NoError(t, err)
	_, err = s.CreateEvent(ctx, models.Event{Title: "Day after", ScheduledTime: "09:00", Date: "2025-01-22"})
	require.NoError(t, err)

	events, err := s.ListEventsByDate(ctx, "2025-01-21")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "On the day", events[0].Title)

	empty, err := s.ListEventsByDate(ctx, "2025-01-23")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDeleteEvent_ReportsRemoval(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	e, err := s.CreateEvent(ctx, models.Event{Title: "E", ScheduledTime: "10:00", Date: "2025-02-01"})
	require.NoError(t, err)

	deleted, err := s.DeleteEvent(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.DeleteEvent(ctx, e.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestSeed_DemoDataSet(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()

	projects, err := s.ListProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 4)

	tasks, err := s.ListTasks(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 6)

	day1, err := s.ListEventsByDate(ctx, "2025-01-21")
	require.NoError(t, err)
	assert.Len(t, day1, 3)

	day2, err := s.ListEventsByDate(ctx, "2025-01-22")
	require.NoError(t, err)
	assert.Len(t, day2, 1)

	user, err := s.GetUserByUsername(ctx, "mide")
	require.NoError(t, err)
	assert.Equal(t, "manager@gmail.com", user.Email)

	// Every seeded task that references a project resolves it on read.
	for _, task := range tasks {
		require.NotEmpty(t, task.ProjectID)
		require.NotNil(t, task.Project, "task %s should resolve its project", task.Title)
	}
}
