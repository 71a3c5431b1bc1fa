package server

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
)

// Collections that can be watched through the subscription endpoint.
const (
	collectionProjects = "projects"
	collectionTasks    = "tasks"
	collectionEvents   = "events"
)

// handleSubscribe streams a collection over Server-Sent Events, mirroring
// the hosted document database's subscription model: the client receives
// the full current result set on connect and again after every mutation of
// that collection, newest records first.
func (s *Server) handleSubscribe(c *gin.Context) {
	collection := c.Param("collection")
	switch collection {
	case collectionProjects, collectionTasks, collectionEvents:
	default:
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("unknown collection %q", collection))
		return
	}

	changes, cancel := s.hub.subscribe(collection)
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	ctx := c.Request.Context()
	send := func() bool {
		payload, err := s.snapshot(ctx, collection)
		if err != nil {
			s.logger.Error("snapshot failed", "collection", collection, "error", err)
			return false
		}
		c.SSEvent(collection, payload)
		c.Writer.Flush()
		return true
	}

	if !send() {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-changes:
			if !send() {
				return
			}
		}
	}
}

// snapshot reads the current result set for a collection, ordered by
// descending creation time as the subscription contract requires.
func (s *Server) snapshot(ctx context.Context, collection string) (any, error) {
	switch collection {
	case collectionProjects:
		projects, err := s.store.ListProjects(ctx)
		if err != nil {
			return nil, err
		}
		sort.SliceStable(projects, func(i, j int) bool {
			return projects[i].CreatedAt.After(projects[j].CreatedAt)
		})
		return projects, nil
	case collectionTasks:
		tasks, err := s.store.ListTasks(ctx)
		if err != nil {
			return nil, err
		}
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		})
		return tasks, nil
	case collectionEvents:
		events, err := s.store.ListEvents(ctx)
		if err != nil {
			return nil, err
		}
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].CreatedAt.After(events[j].CreatedAt)
		})
		return events, nil
	}
	return nil, fmt.Errorf("unknown collection %q", collection)
}
