package models

import "time"

// NATS subjects for domain events
const (
	EventReservationCreated   = "reservation.created"
	EventReservationCancelled = "reservation.cancelled"
	EventConcertCreated       = "concert.created"
	EventConcertDeleted       = "concert.deleted"
)

// ReservationCreatedEvent is published after a seat has been reserved
type ReservationCreatedEvent struct {
	ReservationID  string    `json:"reservation_id"`
	ConcertID      string    `json:"concert_id"`
	UserID         string    `json:"user_id"`
	SeatsRemaining int       `json:"seats_remaining"`
	Timestamp      time.Time `json:"timestamp"`
}

// ReservationCancelledEvent is published after a reservation has been cancelled
type ReservationCancelledEvent struct {
	ReservationID  string    `json:"reservation_id"`
	ConcertID      string    `json:"concert_id"`
	UserID         string    `json:"user_id"`
	SeatsRemaining int       `json:"seats_remaining"`
	Timestamp      time.Time `json:"timestamp"`
}

// ConcertCreatedEvent is published after a concert has been created
type ConcertCreatedEvent struct {
	ConcertID  string    `json:"concert_id"`
	Name       string    `json:"name"`
	TotalSeats int       `json:"total_seats"`
	Timestamp  time.Time `json:"timestamp"`
}

// ConcertDeletedEvent is published after a concert has been deleted
type ConcertDeletedEvent struct {
	ConcertID string    `json:"concert_id"`
	Timestamp time.Time `json:"timestamp"`
}
