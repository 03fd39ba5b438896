package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stagepass/internal/cache"
	"stagepass/internal/errors"
	"stagepass/internal/logger"
	"stagepass/internal/messaging"
	"stagepass/internal/models"
)

const maxConcertNameLen = 255

type ConcertService struct {
	store       ConcertStore
	natsClient  *messaging.NATSClient
	cacheClient *cache.Client
}

func NewConcertService(store ConcertStore, natsClient *messaging.NATSClient, cacheClient *cache.Client) *ConcertService {
	return &ConcertService{
		store:       store,
		natsClient:  natsClient,
		cacheClient: cacheClient,
	}
}

// Create creates a concert with all seats available.
func (s *ConcertService) Create(ctx context.Context, req *models.CreateConcertRequest) (*models.Concert, error) {
	if err := validateConcertFields(&req.Name, &req.Description); err != nil {
		return nil, err
	}
	if req.TotalSeats < 1 {
		return nil, errors.Validation("total seats must be at least 1")
	}

	concert := &models.Concert{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		TotalSeats:  req.TotalSeats,
	}

	if err := s.store.Create(ctx, concert); err != nil {
		return nil, fmt.Errorf("failed to create concert: %w", err)
	}

	s.invalidateCache(ctx)

	event := models.ConcertCreatedEvent{
		ConcertID:  concert.ID,
		Name:       concert.Name,
		TotalSeats: concert.TotalSeats,
		Timestamp:  time.Now(),
	}
	if err := s.natsClient.Publish(models.EventConcertCreated, event); err != nil {
		logger.Get().Error("Failed to publish concert created event",
			"error", err,
			"concert_id", concert.ID)
	}

	return concert, nil
}

func (s *ConcertService) GetByID(ctx context.Context, id string) (*models.Concert, error) {
	concert, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get concert: %w", err)
	}
	if concert == nil {
		return nil, errors.ErrConcertNotFound
	}
	return concert, nil
}

func (s *ConcertService) List(ctx context.Context, query string) ([]models.Concert, error) {
	concerts, err := s.store.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list concerts: %w", err)
	}
	return concerts, nil
}

// Update patches the closed set of editable concert fields. Seat counters
// cannot be reached through this operation.
func (s *ConcertService) Update(ctx context.Context, id string, req *models.UpdateConcertRequest) (*models.Concert, error) {
	if req.Name == nil && req.Description == nil {
		return nil, errors.Validation("no updatable fields provided")
	}
	if err := validateConcertFields(req.Name, req.Description); err != nil {
		return nil, err
	}

	concert, err := s.store.UpdateDetails(ctx, id, req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)

	return concert, nil
}

// Delete removes a concert. Concerts with active reservations are
// rejected with ErrHasActiveReservations; callers must cancel them first.
func (s *ConcertService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateCache(ctx)

	event := models.ConcertDeletedEvent{
		ConcertID: id,
		Timestamp: time.Now(),
	}
	if err := s.natsClient.Publish(models.EventConcertDeleted, event); err != nil {
		logger.Get().Error("Failed to publish concert deleted event",
			"error", err,
			"concert_id", id)
	}

	return nil
}

func (s *ConcertService) invalidateCache(ctx context.Context) {
	if s.cacheClient == nil {
		return
	}
	if err := s.cacheClient.InvalidateConcertList(ctx); err != nil {
		logger.Get().Error("Failed to invalidate concert cache", "error", err)
	}
}

// validateConcertFields checks the editable text fields. Nil means the
// field is not being set.
func validateConcertFields(name, description *string) error {
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return errors.Validation("concert name is required")
		}
		if len(trimmed) > maxConcertNameLen {
			return errors.Validation("concert name must not exceed 255 characters")
		}
	}
	if description != nil && strings.TrimSpace(*description) == "" {
		return errors.Validation("description is required")
	}
	return nil
}
