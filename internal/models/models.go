package models

// CreateConcertRequest - payload for creating a concert
type CreateConcertRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description" binding:"required"`
	TotalSeats  int    `json:"total_seats" binding:"required,min=1"`
}

// UpdateConcertRequest - closed set of patchable concert fields.
// Seat counters are deliberately not reachable through this type.
type UpdateConcertRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// CreateReservationRequest - payload for reserving a seat
type CreateReservationRequest struct {
	ConcertID string `json:"concert_id" binding:"required,uuid"`
}

// RegisterUserRequest - payload for user registration
type RegisterUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=admin user"`
}

// LoginRequest - payload for credential verification
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the identity the caller sends back in X-User-Id
type LoginResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
