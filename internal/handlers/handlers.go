package handlers

import (
	"log/slog"
	"net/http"

	"stagepass/internal/cache"
	"stagepass/internal/errors"
	"stagepass/internal/service"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	services    *service.Services
	cacheClient *cache.Client
}

func NewHandlers(services *service.Services, cacheClient *cache.Client) *Handlers {
	return &Handlers{
		services:    services,
		cacheClient: cacheClient,
	}
}

// handleServiceError maps the service error taxonomy onto HTTP statuses.
// Callers can tell "does not exist" (404) from "exists but not permitted
// now" (400) from "conflicts with existing state" (409).
func (h *Handlers) handleServiceError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.IsPrecondition(err), errors.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case err == errors.ErrInvalidCredentials:
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		slog.Error(logMsg, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": logMsg})
	}
}
