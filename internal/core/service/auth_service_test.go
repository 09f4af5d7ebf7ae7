package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fleetpulse/tracking-api/internal/core/domain"
)

type stubAgentRepo struct {
	agents  map[string]*domain.Agent
	findErr error
}

func newStubAgentRepo() *stubAgentRepo {
	return &stubAgentRepo{agents: make(map[string]*domain.Agent)}
}

func (r *stubAgentRepo) FindByUsername(_ context.Context, username string) (*domain.Agent, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	a, ok := r.agents[username]
	if !ok {
		return nil, domain.ErrAgentNotFound
	}
	clone := *a
	return &clone, nil
}

func seedAgent(t *testing.T, repo *stubAgentRepo, username, password string) *domain.Agent {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	a := &domain.Agent{
		ID:           "agent-" + username,
		Username:     username,
		Name:         "Test Agent",
		Phone:        "+1234567890",
		Status:       domain.AgentActive,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	repo.agents[username] = a
	return a
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAgentRepo()
	seeded := seedAgent(t, repo, "agent1", "password123")
	svc := NewAuthService(repo, "secret", time.Hour, zerolog.Nop())

	result, err := svc.Login(context.Background(), "agent1", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected token, got empty")
	}
	if result.Agent.ID != seeded.ID || result.Agent.Username != "agent1" {
		t.Fatalf("unexpected agent in result: %+v", result.Agent)
	}
	if result.Agent.Name != seeded.Name || result.Agent.Phone != seeded.Phone || result.Agent.Status != seeded.Status {
		t.Fatalf("profile does not match stored agent: %+v", result.Agent)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(result.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["agent_id"] != seeded.ID {
		t.Fatalf("expected agent_id claim %q, got %v", seeded.ID, claims["agent_id"])
	}
	if claims["username"] != "agent1" {
		t.Fatalf("expected username claim, got %v", claims["username"])
	}
	if _, ok := claims["exp"]; !ok {
		t.Fatal("expected exp claim on token")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubAgentRepo()
	seedAgent(t, repo, "agent1", "password123")
	svc := NewAuthService(repo, "secret", time.Hour, zerolog.Nop())

	_, err := svc.Login(context.Background(), "agent1", "nope")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	repo := newStubAgentRepo()
	svc := NewAuthService(repo, "secret", time.Hour, zerolog.Nop())

	// Unknown user must yield the same error class as a wrong password.
	_, err := svc.Login(context.Background(), "ghost", "password123")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	repo := newStubAgentRepo()
	svc := NewAuthService(repo, "secret", time.Hour, zerolog.Nop())

	if _, err := svc.Login(context.Background(), "", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty username, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "agent1", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got %v", err)
	}
}

func TestAuthService_Login_RepoError(t *testing.T) {
	repo := newStubAgentRepo()
	repo.findErr = errors.New("db unavailable")
	svc := NewAuthService(repo, "secret", time.Hour, zerolog.Nop())

	_, err := svc.Login(context.Background(), "agent1", "password123")
	if err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
}
