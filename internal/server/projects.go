package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dayflow/internal/models"
)

type projectRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

// handleListProjects returns all available projects.
func (s *Server) handleListProjects(c *gin.Context) {
	projects, err := s.store.ListProjects(c.Request.Context())
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"projects": projects})
}

// handleCreateProject creates a new project entity.
func (s *Server) handleCreateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	project, err := s.store.CreateProject(c.Request.Context(), models.Project{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	s.hub.notify(collectionProjects)
	respondSuccess(c, http.StatusCreated, gin.H{"project": project})
}

// handleGetProject fetches a single project.
func (s *Server) handleGetProject(c *gin.Context) {
	project, err := s.store.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"project": project})
}

// handleListProjectTasks fetches the tasks referencing a project.
func (s *Server) handleListProjectTasks(c *gin.Context) {
	tasks, err := s.store.ListTasksByProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"tasks": tasks})
}
