package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fleetpulse/tracking-api/internal/core/domain"
)

const locationsCollection = "location_history"

// LocationRepository persists the append-only GPS history.
type LocationRepository struct {
	coll *mongo.Collection
}

func NewLocationRepository(db *mongo.Database) *LocationRepository {
	return &LocationRepository{coll: db.Collection(locationsCollection)}
}

type mongoLocationSample struct {
	AgentID   string    `bson:"agent_id"`
	OrderID   string    `bson:"order_id"`
	Lat       float64   `bson:"lat"`
	Lng       float64   `bson:"lng"`
	Timestamp time.Time `bson:"timestamp"`
}

func (r *LocationRepository) Append(ctx context.Context, sample domain.LocationSample) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoLocationSample{
		AgentID:   sample.AgentID,
		OrderID:   sample.OrderID,
		Lat:       sample.Lat,
		Lng:       sample.Lng,
		Timestamp: sample.Timestamp.UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert location sample: %w", err)
	}
	return nil
}

// EnsureIndexes creates the per-agent history index, newest first.
func (r *LocationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "agent_id", Value: 1}, {Key: "timestamp", Value: -1}},
	})
	return err
}
