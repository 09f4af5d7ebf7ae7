package domain

import (
	"errors"
	"time"
)

var ErrLocationNotFound = errors.New("location not found")

// LocationSample is one timestamped GPS reading tied to an agent and order.
// Samples are append-only and immutable once stored; duplicates and
// out-of-order arrival are tolerated.
type LocationSample struct {
	AgentID   string    `json:"agent_id"`
	OrderID   string    `json:"order_id"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Timestamp time.Time `json:"timestamp"`
}
