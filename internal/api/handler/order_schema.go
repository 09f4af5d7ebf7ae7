package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// Response-only types owned by the transport layer.
// These are intentionally separate from domain types so the JSON contract is
// not coupled to internal service changes.

type locationResponse struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

type customerInfoResponse struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type orderResponse struct {
	ID               string               `json:"id"`
	OrderNumber      string               `json:"order_number"`
	PickupLocation   locationResponse     `json:"pickup_location"`
	DeliveryLocation locationResponse     `json:"delivery_location"`
	AssignedAgentID  string               `json:"assigned_agent_id"`
	Status           string               `json:"status"`
	CustomerInfo     customerInfoResponse `json:"customer_info"`
	CreatedAt        time.Time            `json:"created_at"`
	StartedAt        *time.Time           `json:"started_at,omitempty"`
	CompletedAt      *time.Time           `json:"completed_at,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type agentLocationResponse struct {
	AgentID   string    `json:"agent_id"`
	OrderID   string    `json:"order_id"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Timestamp time.Time `json:"timestamp"`
}
