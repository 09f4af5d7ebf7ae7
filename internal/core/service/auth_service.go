package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fleetpulse/tracking-api/internal/core/domain"
	"github.com/fleetpulse/tracking-api/internal/core/ports"
)

// AuthService implements agent login.
type AuthService struct {
	repo      ports.AgentRepository
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(repo ports.AgentRepository, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

// Login verifies the agent's credentials and issues a signed token. An
// unknown username and a wrong password both yield ErrInvalidCredentials so
// the response never reveals which of the two failed.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	agent, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAgentNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(agent.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(agent)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("agent_id", agent.ID).Str("username", agent.Username).Msg("agent logged in")

	return &ports.LoginResult{Agent: *agent, Token: token}, nil
}

func (s *AuthService) generateToken(agent *domain.Agent) (string, error) {
	claims := jwt.MapClaims{
		"agent_id": agent.ID,
		"username": agent.Username,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
