package memory

import (
	"context"

	"dayflow/internal/models"
)

// seed loads the demo data set: one user, four projects, six tasks spread
// across the projects with mixed statuses, and four events on two dates.
// The records exist to make the UI demonstrable and are not part of the
// storage contract.
func (s *Store) seed() {
	ctx := context.Background()

	s.CreateUser(ctx, models.User{
		Username: "mide",
		Email:    "manager@gmail.com",
		Name:     "Mide",
		Avatar:   "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=100&h=100",
	})

	projects := []models.Project{
		{Name: "User Experience Design", Color: "blue"},
		{Name: "Design Systems", Color: "green"},
		{Name: "Icon Pack Update", Color: "red"},
		{Name: "Website Redesign", Color: "green"},
	}
	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		created, _ := s.CreateProject(ctx, p)
		ids = append(ids, created.ID)
	}

	tasks := []models.Task{
		{
			Title:       "User Research",
			Description: "Gathering resourceful information from and for products and trying to deduce and look out for user problems needing solution.",
			Status:      models.StatusCompleted,
			ProjectID:   ids[0],
			TaskNumber:  "Task #1",
		},
		{
			Title:       "Conduct User Interviews",
			Description: "Using the necessary information gathered to conduct user interviews with users to get or deduce the user problems.",
			Status:      models.StatusPending,
			ProjectID:   ids[0],
			TaskNumber:  "Task #2",
		},
		{
			Title:       "Drawing Wireframes",
			Description: "Connecting information architecture to visual design, creating blueprints to establish structure and flow of possible design solutions.",
			Status:      models.StatusInProgress,
			ProjectID:   ids[0],
			TaskNumber:  "Task #3",
		},
		{
			Title:       "Information Architecture",
			Description: "Using the necessary information gathered to conduct user interviews with users to get or deduce the user problems.",
			Status:      models.StatusPending,
			ProjectID:   ids[2],
			TaskNumber:  "Task #4",
		},
		{
			Title:       "Creating High Fidelity Design",
			Description: "Using the necessary information gathered to conduct user interviews with users to get or deduce the user problems.",
			Status:      models.StatusPending,
			ProjectID:   ids[2],
			TaskNumber:  "Task #5",
		},
		{
			Title:       "Documenting Design Process",
			Description: "Using the necessary information gathered to conduct user interviews with users to get or deduce the user problems.",
			Status:      models.StatusInProgress,
			ProjectID:   ids[0],
			TaskNumber:  "Task #6",
		},
	}
	for _, t := range tasks {
		s.CreateTask(ctx, t)
	}

	events := []models.Event{
		{Title: "Portfolio Review", ScheduledTime: "15:00", Date: "2025-01-21", Icon: "briefcase"},
		{Title: "Meeting with friends", ScheduledTime: "20:00", Date: "2025-01-21", Icon: "users"},
		{Title: "Druids Alpha Class", ScheduledTime: "22:00", Date: "2025-01-21", Icon: "graduation-cap"},
		{Title: "Illustration Design", ScheduledTime: "00:00", Date: "2025-01-22", Icon: "paint-brush"},
	}
	for _, e := range events {
		s.CreateEvent(ctx, e)
	}
}
