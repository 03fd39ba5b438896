// Package testutil provides an in-memory store implementing the service
// layer's store interfaces, with the same atomicity guarantees the SQL
// repositories provide through row locks.
package testutil

import (
	"context"
	"strings"
	"sync"

	"stagepass/internal/errors"
	"stagepass/internal/models"

	"github.com/google/uuid"
)

// MemStore holds the shared state behind the per-entity store views. A
// single lock covers every operation, which mirrors the per-concert
// serialization of the real repositories closely enough for invariant
// tests.
type MemStore struct {
	mu           sync.Mutex
	concerts     map[string]*models.Concert
	reservations map[string]*models.Reservation
	users        map[string]*models.User
	emailIndex   map[string]string
}

func NewMemStore() *MemStore {
	return &MemStore{
		concerts:     make(map[string]*models.Concert),
		reservations: make(map[string]*models.Reservation),
		users:        make(map[string]*models.User),
		emailIndex:   make(map[string]string),
	}
}

// Concerts returns the view implementing service.ConcertStore.
func (m *MemStore) Concerts() *MemConcertStore { return &MemConcertStore{s: m} }

// Reservations returns the view implementing service.ReservationStore.
func (m *MemStore) Reservations() *MemReservationStore { return &MemReservationStore{s: m} }

// Users returns the view implementing service.UserStore.
func (m *MemStore) Users() *MemUserStore { return &MemUserStore{s: m} }

// ActiveReservationCount reports active reservations for a concert,
// for test assertions.
func (m *MemStore) ActiveReservationCount(concertID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, reservation := range m.reservations {
		if reservation.ConcertID == concertID && reservation.Status == models.ReservationActive {
			count++
		}
	}
	return count
}

// ReservationCount reports all reservation rows, for test assertions.
func (m *MemStore) ReservationCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.reservations)
}

type MemConcertStore struct {
	s *MemStore
}

func (c *MemConcertStore) Create(ctx context.Context, concert *models.Concert) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	concert.ID = uuid.New().String()
	concert.AvailableSeats = concert.TotalSeats
	stored := *concert
	c.s.concerts[concert.ID] = &stored
	return nil
}

func (c *MemConcertStore) GetByID(ctx context.Context, id string) (*models.Concert, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	concert, ok := c.s.concerts[id]
	if !ok {
		return nil, nil
	}
	copied := *concert
	return &copied, nil
}

func (c *MemConcertStore) List(ctx context.Context, query string) ([]models.Concert, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	var result []models.Concert
	for _, concert := range c.s.concerts {
		if query != "" && !strings.Contains(strings.ToLower(concert.Name), strings.ToLower(query)) {
			continue
		}
		result = append(result, *concert)
	}
	return result, nil
}

func (c *MemConcertStore) UpdateDetails(ctx context.Context, id string, name, description *string) (*models.Concert, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	concert, ok := c.s.concerts[id]
	if !ok {
		return nil, errors.ErrConcertNotFound
	}
	if name != nil {
		concert.Name = *name
	}
	if description != nil {
		concert.Description = *description
	}
	copied := *concert
	return &copied, nil
}

func (c *MemConcertStore) Delete(ctx context.Context, id string) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if _, ok := c.s.concerts[id]; !ok {
		return errors.ErrConcertNotFound
	}
	for _, reservation := range c.s.reservations {
		if reservation.ConcertID == id && reservation.Status == models.ReservationActive {
			return errors.ErrHasActiveReservations
		}
	}
	for rid, reservation := range c.s.reservations {
		if reservation.ConcertID == id {
			delete(c.s.reservations, rid)
		}
	}
	delete(c.s.concerts, id)
	return nil
}

type MemReservationStore struct {
	s *MemStore
}

func (r *MemReservationStore) CreateActive(ctx context.Context, userID, concertID string) (*models.Reservation, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	concert, ok := r.s.concerts[concertID]
	if !ok {
		return nil, 0, errors.ErrConcertNotFound
	}
	if concert.AvailableSeats <= 0 {
		return nil, 0, errors.ErrNoSeatsAvailable
	}

	reservation := &models.Reservation{
		ID:        uuid.New().String(),
		UserID:    userID,
		ConcertID: concertID,
		Status:    models.ReservationActive,
	}
	r.s.reservations[reservation.ID] = reservation
	concert.AvailableSeats--

	copied := *reservation
	return &copied, concert.AvailableSeats, nil
}

func (r *MemReservationStore) CancelActive(ctx context.Context, id string) (*models.Reservation, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	reservation, ok := r.s.reservations[id]
	if !ok {
		return nil, 0, errors.ErrReservationNotFound
	}
	if reservation.Status == models.ReservationCancelled {
		return nil, 0, errors.ErrAlreadyCancelled
	}

	reservation.Status = models.ReservationCancelled

	remaining := 0
	if concert, ok := r.s.concerts[reservation.ConcertID]; ok {
		concert.AvailableSeats++
		if concert.AvailableSeats > concert.TotalSeats {
			concert.AvailableSeats = concert.TotalSeats
		}
		remaining = concert.AvailableSeats
	}

	copied := *reservation
	return &copied, remaining, nil
}

func (r *MemReservationStore) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	reservation, ok := r.s.reservations[id]
	if !ok {
		return nil, nil
	}
	copied := *reservation
	return &copied, nil
}

func (r *MemReservationStore) ListAll(ctx context.Context) ([]models.ReservationDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var result []models.ReservationDetail
	for _, reservation := range r.s.reservations {
		result = append(result, r.s.detail(reservation))
	}
	return result, nil
}

func (r *MemReservationStore) ListByUser(ctx context.Context, userID string) ([]models.ReservationDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var result []models.ReservationDetail
	for _, reservation := range r.s.reservations {
		if reservation.UserID == userID {
			result = append(result, r.s.detail(reservation))
		}
	}
	return result, nil
}

func (m *MemStore) detail(reservation *models.Reservation) models.ReservationDetail {
	d := models.ReservationDetail{Reservation: *reservation}
	if concert, ok := m.concerts[reservation.ConcertID]; ok {
		d.ConcertName = concert.Name
	}
	if user, ok := m.users[reservation.UserID]; ok {
		d.UserName = user.Name
		d.UserEmail = user.Email
	}
	return d
}

type MemUserStore struct {
	s *MemStore
}

func (u *MemUserStore) Create(ctx context.Context, user *models.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	if _, taken := u.s.emailIndex[user.Email]; taken {
		return errors.ErrEmailExists
	}

	user.ID = uuid.New().String()
	stored := *user
	u.s.users[user.ID] = &stored
	u.s.emailIndex[user.Email] = user.ID
	return nil
}

func (u *MemUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	user, ok := u.s.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (u *MemUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	id, ok := u.s.emailIndex[email]
	if !ok {
		return nil, nil
	}
	copied := *u.s.users[id]
	return &copied, nil
}
