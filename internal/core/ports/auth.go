package ports

import (
	"context"

	"github.com/fleetpulse/tracking-api/internal/core/domain"
)

// AgentRepository defines persistence operations for delivery agents.
type AgentRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.Agent, error)
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Agent domain.Agent
	Token string
}

// AuthService authenticates agents and issues session tokens.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}
