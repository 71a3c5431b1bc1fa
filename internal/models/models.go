package models

import "time"

// User is the account record behind the signed-in principal. Users are
// created once at bootstrap (or on sign-up) and never updated here.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Project groups tasks under a name and a color tag used by the UI.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

// Task is a single to-do item. ProjectID is a weak reference: deleting or
// never creating the project leaves the task untouched and the reference
// simply resolves to nothing on read.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	ProjectID   string    `json:"projectId,omitempty"`
	TaskNumber  string    `json:"taskNumber,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TaskWithProject is the read-side view of a task: the project is resolved
// from ProjectID at query time, never cached, so it always reflects the
// current project record. Project is nil when the reference is empty or
// dangling.
type TaskWithProject struct {
	Task
	Project *Project `json:"project,omitempty"`
}

// TaskUpdate carries a partial update for a task. Nil fields are left
// unchanged.
type TaskUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	ProjectID   *string `json:"projectId"`
	TaskNumber  *string `json:"taskNumber"`
}

// Event is a calendar entry. Date is an opaque YYYY-MM-DD key compared by
// string equality only; there are no range queries and no timezone handling.
type Event struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	ScheduledTime string    `json:"scheduledTime"`
	Date          string    `json:"date"`
	Icon          string    `json:"icon,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Task statuses. Any status may move to any other; there is no transition
// graph.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// ValidTaskStatuses enumerates the statuses the store accepts.
var ValidTaskStatuses = map[string]struct{}{
	StatusPending:    {},
	StatusInProgress: {},
	StatusCompleted:  {},
}

// ProjectColors is the palette of color tags the UI understands.
var ProjectColors = []string{"blue", "green", "red", "yellow", "purple", "orange"}

// DefaultProjectColor is applied when a project is created without a color.
const DefaultProjectColor = "blue"
