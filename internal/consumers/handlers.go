package consumers

import (
	"encoding/json"
	"log/slog"

	"stagepass/internal/models"

	"github.com/nats-io/stan.go"
)

// Handlers turns domain events into audit log entries.
type Handlers struct{}

func NewHandlers() *Handlers {
	return &Handlers{}
}

func (h *Handlers) OnReservationCreated(msg *stan.Msg) {
	var event models.ReservationCreatedEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		slog.Error("Failed to decode reservation created event", "error", err)
		return
	}

	slog.Info("audit: reservation created",
		"reservation_id", event.ReservationID,
		"concert_id", event.ConcertID,
		"user_id", event.UserID,
		"seats_remaining", event.SeatsRemaining,
		"occurred_at", event.Timestamp)
}

func (h *Handlers) OnReservationCancelled(msg *stan.Msg) {
	var event models.ReservationCancelledEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		slog.Error("Failed to decode reservation cancelled event", "error", err)
		return
	}

	slog.Info("audit: reservation cancelled",
		"reservation_id", event.ReservationID,
		"concert_id", event.ConcertID,
		"user_id", event.UserID,
		"seats_remaining", event.SeatsRemaining,
		"occurred_at", event.Timestamp)
}

func (h *Handlers) OnConcertCreated(msg *stan.Msg) {
	var event models.ConcertCreatedEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		slog.Error("Failed to decode concert created event", "error", err)
		return
	}

	slog.Info("audit: concert created",
		"concert_id", event.ConcertID,
		"name", event.Name,
		"total_seats", event.TotalSeats,
		"occurred_at", event.Timestamp)
}

func (h *Handlers) OnConcertDeleted(msg *stan.Msg) {
	var event models.ConcertDeletedEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		slog.Error("Failed to decode concert deleted event", "error", err)
		return
	}

	slog.Info("audit: concert deleted",
		"concert_id", event.ConcertID,
		"occurred_at", event.Timestamp)
}
