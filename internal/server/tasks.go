package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"dayflow/internal/models"
)

type createTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
	ProjectID   string `json:"projectId"`
	TaskNumber  string `json:"taskNumber"`
}

// handleListTasks returns all tasks, optionally filtered by status or
// project via query parameters. Every task carries its project resolved at
// request time.
func (s *Server) handleListTasks(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		tasks []models.TaskWithProject
		err   error
	)
	switch {
	case c.Query("status") != "":
		status := c.Query("status")
		if _, ok := models.ValidTaskStatuses[status]; !ok {
			s.respondError(c, http.StatusBadRequest, fmt.Errorf("unknown status %q", status))
			return
		}
		tasks, err = s.store.ListTasksByStatus(ctx, status)
	case c.Query("project") != "":
		tasks, err = s.store.ListTasksByProject(ctx, c.Query("project"))
	default:
		tasks, err = s.store.ListTasks(ctx)
	}
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"tasks": tasks})
}

// handleGetTask fetches a single task with its project resolved.
func (s *Server) handleGetTask(c *gin.Context) {
	task, err := s.store.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"task": task})
}

// handleCreateTask inserts a new task.
func (s *Server) handleCreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Status != "" {
		if _, ok := models.ValidTaskStatuses[req.Status]; !ok {
			s.respondError(c, http.StatusBadRequest, fmt.Errorf("unknown status %q", req.Status))
			return
		}
	}

	task, err := s.store.CreateTask(c.Request.Context(), models.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		ProjectID:   req.ProjectID,
		TaskNumber:  req.TaskNumber,
	})
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	s.hub.notify(collectionTasks)
	respondSuccess(c, http.StatusCreated, gin.H{"task": task})
}

// handleUpdateTask applies a partial update; absent fields are untouched.
func (s *Server) handleUpdateTask(c *gin.Context) {
	var upd models.TaskUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if upd.Status != nil {
		if _, ok := models.ValidTaskStatuses[*upd.Status]; !ok {
			s.respondError(c, http.StatusBadRequest, fmt.Errorf("unknown status %q", *upd.Status))
			return
		}
	}

	task, err := s.store.UpdateTask(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	s.hub.notify(collectionTasks)
	respondSuccess(c, http.StatusOK, gin.H{"task": task})
}

// handleDeleteTask removes a task. Deleting an id that does not exist is a
// normal outcome reported through the deleted flag.
func (s *Server) handleDeleteTask(c *gin.Context) {
	deleted, err := s.store.DeleteTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	if deleted {
		s.hub.notify(collectionTasks)
	}
	respondSuccess(c, http.StatusOK, gin.H{"deleted": deleted})
}
