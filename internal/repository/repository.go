package repository

import (
	"stagepass/internal/database"
)

type Repositories struct {
	Concerts     *ConcertRepository
	Reservations *ReservationRepository
	Users        *UserRepository
}

func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		Concerts:     NewConcertRepository(db),
		Reservations: NewReservationRepository(db),
		Users:        NewUserRepository(db),
	}
}
