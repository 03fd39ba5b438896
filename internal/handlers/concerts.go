package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"stagepass/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Concerts handlers

// CreateConcert - POST /api/concerts (admin)
func (h *Handlers) CreateConcert(c *gin.Context) {
	var req models.CreateConcertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	concert, err := h.services.Concerts.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err, "Failed to create concert")
		return
	}

	c.JSON(http.StatusCreated, concert)
}

// ListConcerts - GET /api/concerts
// Optional ?query= runs a full-text search; search results bypass the cache.
func (h *Handlers) ListConcerts(c *gin.Context) {
	query := c.Query("query")

	shouldCache := query == "" && h.cacheClient != nil

	if shouldCache {
		rawJSON, err := h.cacheClient.GetConcertListRaw(c.Request.Context())
		if err == nil {
			c.Data(http.StatusOK, "application/json", rawJSON)
			return
		}
		slog.Debug("Cache miss for concert list", "error", err)
	}

	concerts, err := h.services.Concerts.List(c.Request.Context(), query)
	if err != nil {
		h.handleServiceError(c, err, "Failed to list concerts")
		return
	}
	if concerts == nil {
		concerts = []models.Concert{}
	}

	if shouldCache {
		if err := h.cacheClient.SetConcertList(c.Request.Context(), concerts); err != nil {
			slog.Debug("Failed to cache concert list", "error", err)
		}
	}

	c.JSON(http.StatusOK, concerts)
}

// GetConcert - GET /api/concerts/:id
func (h *Handlers) GetConcert(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid concert id format"})
		return
	}

	concert, err := h.services.Concerts.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "Failed to get concert")
		return
	}

	c.JSON(http.StatusOK, concert)
}

// UpdateConcert - PATCH /api/concerts/:id (admin)
// The field set is closed and unknown fields are rejected, so the seat
// counters cannot be overwritten through this endpoint.
func (h *Handlers) UpdateConcert(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid concert id format"})
		return
	}

	var req models.UpdateConcertRequest
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	concert, err := h.services.Concerts.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err, "Failed to update concert")
		return
	}

	c.JSON(http.StatusOK, concert)
}

// DeleteConcert - DELETE /api/concerts/:id (admin)
func (h *Handlers) DeleteConcert(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid concert id format"})
		return
	}

	if err := h.services.Concerts.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err, "Failed to delete concert")
		return
	}

	c.Status(http.StatusNoContent)
}
