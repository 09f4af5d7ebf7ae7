package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fleetpulse/tracking-api/internal/core/domain"
)

const (
	locationKeyPrefix = "agent:location:"
	locationTTL       = 10 * time.Minute
)

// LocationCache keeps the most recent GPS sample per agent in Redis so the
// latest-position endpoint never scans the Mongo history. Entries expire so
// a stale position is not served for an agent that went offline.
type LocationCache struct {
	client *redis.Client
}

func NewLocationCache(client *redis.Client) *LocationCache {
	return &LocationCache{client: client}
}

func locationKey(agentID string) string {
	return locationKeyPrefix + agentID
}

func (c *LocationCache) SetLatest(ctx context.Context, sample domain.LocationSample) error {
	payload, err := json.Marshal(sample)
	if err != nil {
		return fmt.Errorf("marshal location sample: %w", err)
	}
	if err := c.client.Set(ctx, locationKey(sample.AgentID), payload, locationTTL).Err(); err != nil {
		return fmt.Errorf("cache location sample: %w", err)
	}
	return nil
}

func (c *LocationCache) Latest(ctx context.Context, agentID string) (*domain.LocationSample, error) {
	raw, err := c.client.Get(ctx, locationKey(agentID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrLocationNotFound
		}
		return nil, fmt.Errorf("read cached location: %w", err)
	}

	var sample domain.LocationSample
	if err := json.Unmarshal(raw, &sample); err != nil {
		return nil, fmt.Errorf("decode cached location: %w", err)
	}
	return &sample, nil
}
