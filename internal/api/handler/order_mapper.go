package handler

import (
	"github.com/fleetpulse/tracking-api/internal/core/domain"
)

// --- Domain → HTTP response ---

func toOrderResponse(o *domain.Order) orderResponse {
	return orderResponse{
		ID:               o.ID,
		OrderNumber:      o.OrderNumber,
		PickupLocation:   toLocationResponse(o.PickupLocation),
		DeliveryLocation: toLocationResponse(o.DeliveryLocation),
		AssignedAgentID:  o.AssignedAgentID,
		Status:           string(o.Status),
		CustomerInfo: customerInfoResponse{
			Name:  o.CustomerInfo.Name,
			Phone: o.CustomerInfo.Phone,
		},
		CreatedAt:   o.CreatedAt.UTC(),
		StartedAt:   o.StartedAt,
		CompletedAt: o.CompletedAt,
	}
}

func toLocationResponse(l domain.Location) locationResponse {
	return locationResponse{
		Lat:     l.Lat,
		Lng:     l.Lng,
		Address: l.Address,
	}
}

func toOrderListResponse(orders []domain.Order) []orderResponse {
	out := make([]orderResponse, len(orders))
	for i := range orders {
		out[i] = toOrderResponse(&orders[i])
	}
	return out
}

func toAgentLocationResponse(s *domain.LocationSample) agentLocationResponse {
	return agentLocationResponse{
		AgentID:   s.AgentID,
		OrderID:   s.OrderID,
		Lat:       s.Lat,
		Lng:       s.Lng,
		Timestamp: s.Timestamp.UTC(),
	}
}
