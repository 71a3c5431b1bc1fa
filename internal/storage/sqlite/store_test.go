package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dayflow/internal/models"
	"dayflow/internal/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "dayflow.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func strPtr(v string) *string { return &v }

func TestOpen_CreatesDatabaseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "dayflow.db")

	s, err := Open(path, nil)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err, "database file was not created")
}

func TestOpen_EmptyPathRejected(t *testing.T) {
	_, err := Open("", nil)
	assert.Error(t, err)
}

func TestData_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dayflow.db")
	ctx := context.Background()

	s1, err := Open(path, nil)
	require.NoError(t, err)
	p, err := s1.CreateProject(ctx, models.Project{Name: "Persistent", Color: "green"})
	require.NoError(t, err)
	task, err := s1.CreateTask(ctx, models.Task{Title: "Still here", ProjectID: p.ID})
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path, nil)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Still here", got.Title)
	require.NotNil(t, got.Project)
	assert.Equal(t, "Persistent", got.Project.Name)
}

func TestUsers_CreateAndLookups(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	u, err := s.CreateUser(ctx, models.User{Username: "mide", Email: "manager@gmail.com", Name: "Mide"})
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)

	byID, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "mide", byID.Username)

	byName, err := s.GetUserByUsername(ctx, "mide")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)

	byEmail, err := s.GetUserByEmail(ctx, "manager@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	_, err = s.GetUser(ctx, "never-issued")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestTasks_ProjectJoinAndDanglingReference(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p, err := s.CreateProject(ctx, models.Project{Name: "A", Color: "blue"})
	require.NoError(t, err)

	linked, err := s.CreateTask(ctx, models.Task{Title: "Linked", ProjectID: p.ID})
	require.NoError(t, err)
	require.NotNil(t, linked.Project)
	assert.Equal(t, "A", linked.Project.Name)

	orphan, err := s.CreateTask(ctx, models.Task{Title: "Orphan", ProjectID: "no-such-id"})
	require.NoError(t, err)
	assert.Nil(t, orphan.Project)

	all, err := s.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestTasks_FilterByStatusAndProject(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p, err := s.CreateProject(ctx, models.Project{Name: "P", Color: "red"})
	require.NoError(t, err)

	_, err = s.CreateTask(ctx, models.Task{Title: "a", Status: models.StatusCompleted, ProjectID: p.ID})
	require.NoError(t, err)
	_, err = s.CreateTask(ctx, models.Task{Title: "b", Status: models.StatusPending, ProjectID: p.ID})
	require.NoError(t, err)
	_, err = s.CreateTask(ctx, models.Task{Title: "c", Status: models.StatusPending})
	require.NoError(t, err)

	pending, err := s.ListTasksByStatus(ctx, models.StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	inProject, err := s.ListTasksByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, inProject, 2)
}

func TestUpdateTask_MergeAndNotFound(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created, err := s.CreateTask(ctx, models.Task{Title: "Old", Description: "keep", Status: models.StatusPending})
	require.NoError(t, err)

	updated, err := s.UpdateTask(ctx, created.ID, models.TaskUpdate{
		Title:  strPtr("New"),
		Status: strPtr(models.StatusInProgress),
	})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "keep", updated.Description)
	assert.Equal(t, models.StatusInProgress, updated.Status)

	_, err = s.UpdateTask(ctx, "missing", models.TaskUpdate{Title: strPtr("X")})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteTask_ReportsRemoval(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created, err := s.CreateTask(ctx, models.Task{Title: "Doomed"})
	require.NoError(t, err)

	deleted, err := s.DeleteTask(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.DeleteTask(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestEvents_DateFilterAndDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	e1, err := s.CreateEvent(ctx, models.Event{Title: "Review", ScheduledTime: "15:00", Date: "2025-01-21"})
	require.NoError(t, err)
	_, err = s.CreateEvent(ctx, models.Event{Title: "Class", ScheduledTime: "22:00", Date: "2025-01-22"})
	require.NoError(t, err)

	onDay, err := s.ListEventsByDate(ctx, "2025-01-21")
	require.NoError(t, err)
	require.Len(t, onDay, 1)
	assert.Equal(t, "Review", onDay[0].Title)

	deleted, err := s.DeleteEvent(ctx, e1.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	onDay, err = s.ListEventsByDate(ctx, "2025-01-21")
	require.NoError(t, err)
	assert.Empty(t, onDay)
}
