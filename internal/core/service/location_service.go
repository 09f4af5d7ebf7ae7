package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/fleetpulse/tracking-api/internal/core/domain"
	"github.com/fleetpulse/tracking-api/internal/core/ports"
)

// LocationService persists location samples and keeps the latest-position
// cache fresh. It sits behind the dispatcher, off the broadcast path.
type LocationService struct {
	store ports.LocationStore
	cache ports.LocationCache
	log   zerolog.Logger
}

func NewLocationService(store ports.LocationStore, cache ports.LocationCache, log zerolog.Logger) *LocationService {
	return &LocationService{store: store, cache: cache, log: log}
}

// Record appends the sample to the time series and refreshes the cache.
// The timestamp is server-assigned; a zero timestamp gets stamped here.
// Cache write failures are logged and swallowed; only a store failure is
// returned, and the caller logs it without retrying.
func (s *LocationService) Record(ctx context.Context, sample domain.LocationSample) error {
	if sample.Timestamp.IsZero() {
		sample.Timestamp = time.Now().UTC()
	}

	if err := s.store.Append(ctx, sample); err != nil {
		return fmt.Errorf("append location sample: %w", err)
	}

	if err := s.cache.SetLatest(ctx, sample); err != nil {
		s.log.Warn().Err(err).Str("agent_id", sample.AgentID).Msg("failed to refresh location cache")
	}

	return nil
}

// Latest serves the most recent cached position for an agent.
func (s *LocationService) Latest(ctx context.Context, agentID string) (*domain.LocationSample, error) {
	return s.cache.Latest(ctx, agentID)
}
