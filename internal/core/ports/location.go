package ports

import (
	"context"

	"github.com/fleetpulse/tracking-api/internal/core/domain"
)

// LocationStore is the append-only time series of agent position samples.
type LocationStore interface {
	Append(ctx context.Context, sample domain.LocationSample) error
}

// LocationCache holds the most recent position per agent.
type LocationCache interface {
	SetLatest(ctx context.Context, sample domain.LocationSample) error
	// Latest returns domain.ErrLocationNotFound when no recent sample exists.
	Latest(ctx context.Context, agentID string) (*domain.LocationSample, error)
}

// LocationService ingests location samples and serves the latest position.
type LocationService interface {
	// Record persists the sample and refreshes the latest-position cache.
	// Cache failures are non-fatal; store failures are returned for the
	// caller to log. Record never blocks a broadcast.
	Record(ctx context.Context, sample domain.LocationSample) error
	Latest(ctx context.Context, agentID string) (*domain.LocationSample, error)
}
