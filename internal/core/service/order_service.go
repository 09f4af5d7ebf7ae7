package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/fleetpulse/tracking-api/internal/core/domain"
	"github.com/fleetpulse/tracking-api/internal/core/ports"
)

// Mongo field names stamped on transitions.
const (
	fieldStartedAt   = "started_at"
	fieldCompletedAt = "completed_at"
)

// OrderService enforces the order lifecycle: pending → in_progress → completed.
type OrderService struct {
	repo ports.OrderRepository
	log  zerolog.Logger
}

func NewOrderService(repo ports.OrderRepository, log zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, log: log}
}

// AssignedOrders returns every order assigned to agentID. Unknown agents get
// an empty slice, never an error.
func (s *OrderService) AssignedOrders(ctx context.Context, agentID string) ([]domain.Order, error) {
	orders, err := s.repo.FindByAgent(ctx, agentID)
	if err != nil {
		return nil, fmt.Errorf("assigned orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.repo.FindByID(ctx, orderID)
}

// Start moves a pending order to in_progress and stamps started_at.
func (s *OrderService) Start(ctx context.Context, orderID string) error {
	return s.transition(ctx, orderID, domain.StatusPending, domain.StatusInProgress, fieldStartedAt)
}

// Complete moves an in_progress order to completed and stamps completed_at.
func (s *OrderService) Complete(ctx context.Context, orderID string) error {
	return s.transition(ctx, orderID, domain.StatusInProgress, domain.StatusCompleted, fieldCompletedAt)
}

// transition performs the conditional update. The repository matches on the
// expected current status, so two devices racing the same transition cannot
// both win: the loser's update matches zero documents and is reported as
// ErrInvalidTransition (order exists, wrong state) or ErrOrderNotFound.
func (s *OrderService) transition(ctx context.Context, orderID string, from, to domain.OrderStatus, field string) error {
	err := s.repo.Transition(ctx, orderID, from, to, field, time.Now().UTC())
	if err == nil {
		s.log.Info().
			Str("order_id", orderID).
			Str("from", string(from)).
			Str("to", string(to)).
			Msg("order transitioned")
		return nil
	}

	if !errors.Is(err, domain.ErrOrderNotFound) {
		return fmt.Errorf("transition order: %w", err)
	}

	// Zero documents matched: distinguish a missing order from one that is
	// not in the expected state.
	if _, findErr := s.repo.FindByID(ctx, orderID); findErr != nil {
		return findErr
	}
	return fmt.Errorf("%w: order %s is not %s", domain.ErrInvalidTransition, orderID, from)
}
