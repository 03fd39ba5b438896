package service

import (
	"context"
	"fmt"
	"time"

	"stagepass/internal/cache"
	"stagepass/internal/errors"
	"stagepass/internal/logger"
	"stagepass/internal/messaging"
	"stagepass/internal/metrics"
	"stagepass/internal/models"
)

// ReservationService coordinates reservation lifecycle against the
// reservation and concert stores. All seat-count consistency lives in the
// store's atomic operations; this layer adds identity, events, metrics
// and cache invalidation on top. Storage errors propagate untouched so
// the handler layer can classify them.
type ReservationService struct {
	store       ReservationStore
	natsClient  *messaging.NATSClient
	cacheClient *cache.Client
	metrics     *metrics.Metrics
}

func NewReservationService(store ReservationStore, natsClient *messaging.NATSClient, cacheClient *cache.Client, m *metrics.Metrics) *ReservationService {
	return &ReservationService{
		store:       store,
		natsClient:  natsClient,
		cacheClient: cacheClient,
		metrics:     m,
	}
}

// Create reserves one seat on the concert for the given user. Fails with
// ErrConcertNotFound or ErrNoSeatsAvailable; a zero-seat concert is always
// rejected with no mutation.
func (s *ReservationService) Create(ctx context.Context, userID string, req *models.CreateReservationRequest) (*models.Reservation, error) {
	reservation, remaining, err := s.store.CreateActive(ctx, userID, req.ConcertID)
	if err != nil {
		if s.metrics != nil && errors.IsPrecondition(err) {
			s.metrics.ReservationsRejected.WithLabelValues("no_seats").Inc()
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ReservationsCreated.Inc()
	}
	s.invalidateConcertCache(ctx)

	event := models.ReservationCreatedEvent{
		ReservationID:  reservation.ID,
		ConcertID:      reservation.ConcertID,
		UserID:         reservation.UserID,
		SeatsRemaining: remaining,
		Timestamp:      time.Now(),
	}
	if err := s.natsClient.Publish(models.EventReservationCreated, event); err != nil {
		logger.Get().Error("Failed to publish reservation created event",
			"error", err,
			"reservation_id", reservation.ID)
	}

	return reservation, nil
}

// Cancel transitions a reservation active -> cancelled and returns its
// seat. A second cancel is an error, not a no-op.
func (s *ReservationService) Cancel(ctx context.Context, id string) (*models.Reservation, error) {
	reservation, remaining, err := s.store.CancelActive(ctx, id)
	if err != nil {
		if s.metrics != nil && errors.IsPrecondition(err) {
			s.metrics.ReservationsRejected.WithLabelValues("already_cancelled").Inc()
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ReservationsCancelled.Inc()
	}
	s.invalidateConcertCache(ctx)

	event := models.ReservationCancelledEvent{
		ReservationID:  reservation.ID,
		ConcertID:      reservation.ConcertID,
		UserID:         reservation.UserID,
		SeatsRemaining: remaining,
		Timestamp:      time.Now(),
	}
	if err := s.natsClient.Publish(models.EventReservationCancelled, event); err != nil {
		logger.Get().Error("Failed to publish reservation cancelled event",
			"error", err,
			"reservation_id", reservation.ID)
	}

	return reservation, nil
}

func (s *ReservationService) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	reservation, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	if reservation == nil {
		return nil, errors.ErrReservationNotFound
	}
	return reservation, nil
}

func (s *ReservationService) ListAll(ctx context.Context) ([]models.ReservationDetail, error) {
	details, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return details, nil
}

func (s *ReservationService) ListByUser(ctx context.Context, userID string) ([]models.ReservationDetail, error) {
	details, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations for user: %w", err)
	}
	return details, nil
}

// invalidateConcertCache drops the cached catalog after a seat count
// changed. Best-effort, like event publishing.
func (s *ReservationService) invalidateConcertCache(ctx context.Context) {
	if s.cacheClient == nil {
		return
	}
	if err := s.cacheClient.InvalidateConcertList(ctx); err != nil {
		logger.Get().Error("Failed to invalidate concert cache", "error", err)
	}
}
