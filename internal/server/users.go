package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"dayflow/internal/models"
)

type userRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Avatar   string `json:"avatar"`
}

// handleCreateUser registers a new user record. Uniqueness of usernames and
// emails is the sign-up flow's concern, not enforced here.
func (s *Server) handleCreateUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	user, err := s.store.CreateUser(c.Request.Context(), models.User{
		Username: req.Username,
		Email:    req.Email,
		Name:     req.Name,
		Avatar:   req.Avatar,
	})
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"user": user})
}

// handleGetUser fetches a user by id.
func (s *Server) handleGetUser(c *gin.Context) {
	user, err := s.store.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"user": user})
}

// handleLookupUser resolves a user by username or email query parameter.
func (s *Server) handleLookupUser(c *gin.Context) {
	var (
		user models.User
		err  error
	)
	switch {
	case c.Query("username") != "":
		user, err = s.store.GetUserByUsername(c.Request.Context(), c.Query("username"))
	case c.Query("email") != "":
		user, err = s.store.GetUserByEmail(c.Request.Context(), c.Query("email"))
	default:
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("username or email query parameter is required"))
		return
	}
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"user": user})
}
