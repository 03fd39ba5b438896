package handlers

import (
	"net/http"

	"stagepass/internal/models"

	"github.com/gin-gonic/gin"
)

// Users handlers

// RegisterUser - POST /api/users
func (h *Handlers) RegisterUser(c *gin.Context) {
	var req models.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.services.Users.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login - POST /api/users/login
// Returns the user identity the client sends back in the X-User-Id header.
func (h *Handlers) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.services.Users.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err, "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	})
}
