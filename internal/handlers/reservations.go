package handlers

import (
	"net/http"

	"stagepass/internal/auth"
	"stagepass/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Reservations handlers

// CreateReservation - POST /api/reservations
// Reserves one seat for the verified caller.
func (h *Handlers) CreateReservation(c *gin.Context) {
	identity, ok := auth.IdentityFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user identity is required"})
		return
	}

	var req models.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reservation, err := h.services.Reservations.Create(c.Request.Context(), identity.UserID, &req)
	if err != nil {
		h.handleServiceError(c, err, "Failed to create reservation")
		return
	}

	c.JSON(http.StatusCreated, reservation)
}

// ListReservations - GET /api/reservations (admin)
// Returns every reservation with concert and user display data.
func (h *Handlers) ListReservations(c *gin.Context) {
	details, err := h.services.Reservations.ListAll(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err, "Failed to list reservations")
		return
	}
	if details == nil {
		details = []models.ReservationDetail{}
	}

	c.JSON(http.StatusOK, details)
}

// ListMyReservations - GET /api/reservations/my
func (h *Handlers) ListMyReservations(c *gin.Context) {
	identity, ok := auth.IdentityFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user identity is required"})
		return
	}

	details, err := h.services.Reservations.ListByUser(c.Request.Context(), identity.UserID)
	if err != nil {
		h.handleServiceError(c, err, "Failed to list reservations")
		return
	}
	if details == nil {
		details = []models.ReservationDetail{}
	}

	c.JSON(http.StatusOK, details)
}

// CancelReservation - PATCH /api/reservations/:id/cancel
// Cancelling twice is rejected, not absorbed.
func (h *Handlers) CancelReservation(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reservation id format"})
		return
	}

	reservation, err := h.services.Reservations.Cancel(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "Failed to cancel reservation")
		return
	}

	c.JSON(http.StatusOK, reservation)
}
