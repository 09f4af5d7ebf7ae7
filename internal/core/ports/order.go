package ports

import (
	"context"
	"time"

	"github.com/fleetpulse/tracking-api/internal/core/domain"
)

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	// FindByAgent returns the orders assigned to agentID, capped at the
	// repository's page limit. An unknown agent yields an empty slice.
	FindByAgent(ctx context.Context, agentID string) ([]domain.Order, error)

	// FindByID returns domain.ErrOrderNotFound for unknown or malformed ids.
	FindByID(ctx context.Context, orderID string) (*domain.Order, error)

	// Transition atomically moves the order from one status to another and
	// stamps timestampField. The current status is part of the match filter,
	// so a lost race surfaces as domain.ErrOrderNotFound (zero documents
	// matched) rather than a silent overwrite.
	Transition(ctx context.Context, orderID string, from, to domain.OrderStatus, timestampField string, ts time.Time) error
}

// OrderService defines the order lifecycle use cases.
type OrderService interface {
	AssignedOrders(ctx context.Context, agentID string) ([]domain.Order, error)
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	// Start moves a pending order to in_progress and stamps started_at.
	Start(ctx context.Context, orderID string) error
	// Complete moves an in_progress order to completed and stamps completed_at.
	Complete(ctx context.Context, orderID string) error
}
