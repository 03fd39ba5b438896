package consumers

import (
	"context"
	"fmt"

	"stagepass/internal/config"
	"stagepass/internal/messaging"
	"stagepass/internal/models"

	"github.com/nats-io/stan.go"
)

// Service subscribes to the domain event subjects and writes the audit
// trail. Subscriptions are durable so restarting the consumer misses
// nothing.
type Service struct {
	nats     *messaging.NATSClient
	handlers *Handlers
	subs     []stan.Subscription
}

func NewService(cfg *config.Config) (*Service, error) {
	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		return nil, err
	}

	return &Service{
		nats:     natsClient,
		handlers: NewHandlers(),
	}, nil
}

func (s *Service) Start() error {
	subscriptions := map[string]stan.MsgHandler{
		models.EventReservationCreated:   s.handlers.OnReservationCreated,
		models.EventReservationCancelled: s.handlers.OnReservationCancelled,
		models.EventConcertCreated:       s.handlers.OnConcertCreated,
		models.EventConcertDeleted:       s.handlers.OnConcertDeleted,
	}

	for subject, handler := range subscriptions {
		sub, err := s.nats.SubscribeQueue(subject, "audit", handler)
		if err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", subject, err)
		}
		s.subs = append(s.subs, sub)
	}

	return nil
}

func (s *Service) Shutdown(ctx context.Context) error {
	for _, sub := range s.subs {
		_ = sub.Close()
	}
	return s.nats.Close()
}
