package hub

import "encoding/json"

// Wire event names. Inbound location_update is relayed to every connected
// session as agent_location_update with the payload untouched.
const (
	EventConnectionResponse  = "connection_response"
	EventLocationUpdate      = "location_update"
	EventAgentLocationUpdate = "agent_location_update"
)

// Envelope is the JSON frame exchanged on the realtime channel.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// LocationUpdate is the payload of a location_update event.
type LocationUpdate struct {
	AgentID string  `json:"agent_id" validate:"required"`
	OrderID string  `json:"order_id" validate:"required"`
	Lat     float64 `json:"lat"      validate:"min=-90,max=90"`
	Lng     float64 `json:"lng"      validate:"min=-180,max=180"`
}

// connectionResponse acknowledges a new session. Delivery is best-effort;
// clients must not depend on receiving it.
type connectionResponse struct {
	Status string `json:"status"`
	SID    string `json:"sid"`
}
