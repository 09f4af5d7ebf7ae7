package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fleetpulse/tracking-api/internal/core/domain"
)

const (
	demoUsername = "agent1"
	demoPassword = "password123"
)

// EnsureDemoData provisions a demo agent with two pending orders so a fresh
// environment can be exercised end to end. It is idempotent: nothing is
// written when the demo agent already exists.
func EnsureDemoData(ctx context.Context, agents *AgentRepository, orders *OrderRepository, log zerolog.Logger) error {
	if _, err := agents.FindByUsername(ctx, demoUsername); err == nil {
		log.Debug().Msg("demo data already present, skipping seed")
		return nil
	} else if !errors.Is(err, domain.ErrAgentNotFound) {
		return fmt.Errorf("check demo agent: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	agent, err := agents.Create(ctx, &domain.Agent{
		Username:     demoUsername,
		Name:         "John Doe",
		Phone:        "+1234567890",
		Status:       domain.AgentActive,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("seed demo agent: %w", err)
	}

	now := time.Now().UTC()
	demoOrders := []mongoOrder{
		{
			OrderNumber: "ORD001",
			PickupLocation: domain.Location{
				Lat: 37.7749, Lng: -122.4194,
				Address: "123 Market St, San Francisco, CA",
			},
			DeliveryLocation: domain.Location{
				Lat: 37.7849, Lng: -122.4094,
				Address: "456 Mission St, San Francisco, CA",
			},
			AssignedAgentID: agent.ID,
			Status:          string(domain.StatusPending),
			CustomerInfo:    domain.CustomerInfo{Name: "Alice Smith", Phone: "+1987654321"},
			CreatedAt:       now,
		},
		{
			OrderNumber: "ORD002",
			PickupLocation: domain.Location{
				Lat: 37.8044, Lng: -122.2712,
				Address: "789 Broadway, Oakland, CA",
			},
			DeliveryLocation: domain.Location{
				Lat: 37.8144, Lng: -122.2612,
				Address: "321 Grand Ave, Oakland, CA",
			},
			AssignedAgentID: agent.ID,
			Status:          string(domain.StatusPending),
			CustomerInfo:    domain.CustomerInfo{Name: "Bob Jones", Phone: "+1122334455"},
			CreatedAt:       now,
		},
	}

	seedCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs := make([]interface{}, 0, len(demoOrders))
	for _, o := range demoOrders {
		docs = append(docs, o)
	}
	if _, err := orders.coll.InsertMany(seedCtx, docs); err != nil {
		return fmt.Errorf("seed demo orders: %w", err)
	}

	log.Info().
		Str("agent_id", agent.ID).
		Int("orders", len(demoOrders)).
		Msg("seeded demo agent and orders")
	return nil
}
