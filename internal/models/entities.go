package models

import (
	"time"
)

// Reservation statuses. A reservation transitions at most once,
// active -> cancelled.
const (
	ReservationActive    = "active"
	ReservationCancelled = "cancelled"
)

// User roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents a registered user
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Concert represents a concert with a fixed seat capacity.
// Invariant: 0 <= AvailableSeats <= TotalSeats.
type Concert struct {
	ID             string    `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Description    string    `json:"description" db:"description"`
	TotalSeats     int       `json:"total_seats" db:"total_seats"`
	AvailableSeats int       `json:"available_seats" db:"available_seats"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// Reservation represents a single-seat booking by one user against one concert
type Reservation struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	ConcertID string    `json:"concert_id" db:"concert_id"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ReservationDetail is a reservation joined with concert and user display
// data for the admin read path. Never used for writes.
type ReservationDetail struct {
	Reservation
	ConcertName string `json:"concert_name" db:"concert_name"`
	UserName    string `json:"user_name" db:"user_name"`
	UserEmail   string `json:"user_email" db:"user_email"`
}
