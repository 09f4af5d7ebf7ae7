package domain

import (
	"errors"
	"time"
)

// OrderStatus represents the lifecycle state of a delivery order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusInProgress OrderStatus = "in_progress"
	StatusCompleted  OrderStatus = "completed"
)

// validTransitions defines the allowed state machine transitions.
// completed is terminal; pending cannot jump straight to completed.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusInProgress},
	StatusInProgress: {StatusCompleted},
}

var ErrOrderNotFound = errors.New("order not found")
var ErrInvalidTransition = errors.New("invalid status transition")

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Location is a geographic point with a human-readable address.
type Location struct {
	Lat     float64 `json:"lat" bson:"lat"`
	Lng     float64 `json:"lng" bson:"lng"`
	Address string  `json:"address" bson:"address"`
}

// CustomerInfo identifies the order's recipient.
type CustomerInfo struct {
	Name  string `json:"name" bson:"name"`
	Phone string `json:"phone" bson:"phone"`
}

// Order is the core aggregate: a delivery task assigned to an agent.
// StartedAt is set exactly when the order enters in_progress, CompletedAt
// exactly when it enters completed.
type Order struct {
	ID               string       `json:"id"`
	OrderNumber      string       `json:"order_number"`
	PickupLocation   Location     `json:"pickup_location"`
	DeliveryLocation Location     `json:"delivery_location"`
	AssignedAgentID  string       `json:"assigned_agent_id"`
	Status           OrderStatus  `json:"status"`
	CustomerInfo     CustomerInfo `json:"customer_info"`
	CreatedAt        time.Time    `json:"created_at"`
	StartedAt        *time.Time   `json:"started_at,omitempty"`
	CompletedAt      *time.Time   `json:"completed_at,omitempty"`
}
