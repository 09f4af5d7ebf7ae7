package domain

import (
	"errors"
	"time"
)

// AgentStatus reflects whether an agent is available for dispatch.
type AgentStatus string

const (
	AgentActive   AgentStatus = "active"
	AgentInactive AgentStatus = "inactive"
)

var ErrAgentNotFound = errors.New("agent not found")
var ErrInvalidCredentials = errors.New("invalid credentials")

// Agent models a delivery courier. Agents are provisioned out of band and
// never deleted; status is flipped by operational tooling.
type Agent struct {
	ID           string      `json:"id"`
	Username     string      `json:"username"`
	Name         string      `json:"name"`
	Phone        string      `json:"phone"`
	Status       AgentStatus `json:"status"`
	PasswordHash string      `json:"-"`
	CreatedAt    time.Time   `json:"created_at"`
}
