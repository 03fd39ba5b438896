package service

import (
	"context"

	"stagepass/internal/cache"
	"stagepass/internal/messaging"
	"stagepass/internal/metrics"
	"stagepass/internal/models"
	"stagepass/internal/repository"
)

// ConcertStore owns concert records and their seat counters. Seat counts
// are never written through this interface; they change only inside the
// reservation transactions of ReservationStore.
type ConcertStore interface {
	Create(ctx context.Context, concert *models.Concert) error
	GetByID(ctx context.Context, id string) (*models.Concert, error)
	List(ctx context.Context, query string) ([]models.Concert, error)
	UpdateDetails(ctx context.Context, id string, name, description *string) (*models.Concert, error)
	Delete(ctx context.Context, id string) error
}

// ReservationStore owns reservation records. CreateActive and CancelActive
// are atomic with respect to the owning concert's seat counter; both
// return the seats available after the mutation.
type ReservationStore interface {
	CreateActive(ctx context.Context, userID, concertID string) (*models.Reservation, int, error)
	CancelActive(ctx context.Context, id string) (*models.Reservation, int, error)
	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	ListAll(ctx context.Context) ([]models.ReservationDetail, error)
	ListByUser(ctx context.Context, userID string) ([]models.ReservationDetail, error)
}

// UserStore owns user records.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type Services struct {
	Concerts     *ConcertService
	Reservations *ReservationService
	Users        *UserService
}

func NewServices(repos *repository.Repositories, natsClient *messaging.NATSClient, cacheClient *cache.Client, m *metrics.Metrics) *Services {
	return &Services{
		Concerts:     NewConcertService(repos.Concerts, natsClient, cacheClient),
		Reservations: NewReservationService(repos.Reservations, natsClient, cacheClient, m),
		Users:        NewUserService(repos.Users),
	}
}
