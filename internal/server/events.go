package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dayflow/internal/models"
)

type eventRequest struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description"`
	ScheduledTime string `json:"scheduledTime" binding:"required"`
	Date          string `json:"date" binding:"required"`
	Icon          string `json:"icon"`
}

// handleListEvents returns all events, or only those on an exact date when
// the date query parameter is present.
func (s *Server) handleListEvents(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		events []models.Event
		err    error
	)
	if date := c.Query("date"); date != "" {
		events, err = s.store.ListEventsByDate(ctx, date)
	} else {
		events, err = s.store.ListEvents(ctx)
	}
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"events": events})
}

// handleCreateEvent adds a calendar entry.
func (s *Server) handleCreateEvent(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	event, err := s.store.CreateEvent(c.Request.Context(), models.Event{
		Title:         req.Title,
		Description:   req.Description,
		ScheduledTime: req.ScheduledTime,
		Date:          req.Date,
		Icon:          req.Icon,
	})
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	s.hub.notify(collectionEvents)
	respondSuccess(c, http.StatusCreated, gin.H{"event": event})
}

// handleDeleteEvent removes an event, reporting whether one existed.
func (s *Server) handleDeleteEvent(c *gin.Context) {
	deleted, err := s.store.DeleteEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	if deleted {
		s.hub.notify(collectionEvents)
	}
	respondSuccess(c, http.StatusOK, gin.H{"deleted": deleted})
}
