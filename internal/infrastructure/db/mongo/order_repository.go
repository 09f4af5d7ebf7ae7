package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fleetpulse/tracking-api/internal/core/domain"
)

const ordersCollection = "orders"

const defaultPageLimit = 100

type OrderRepository struct {
	coll      *mongo.Collection
	pageLimit int64
}

// NewOrderRepository creates an OrderRepository. pageLimit caps FindByAgent
// results; non-positive values fall back to the default of 100.
func NewOrderRepository(db *mongo.Database, pageLimit int) *OrderRepository {
	if pageLimit <= 0 {
		pageLimit = defaultPageLimit
	}
	return &OrderRepository{coll: db.Collection(ordersCollection), pageLimit: int64(pageLimit)}
}

type mongoOrder struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty"`
	OrderNumber      string              `bson:"order_number"`
	PickupLocation   domain.Location     `bson:"pickup_location"`
	DeliveryLocation domain.Location     `bson:"delivery_location"`
	AssignedAgentID  string              `bson:"assigned_agent_id"`
	Status           string              `bson:"status"`
	CustomerInfo     domain.CustomerInfo `bson:"customer_info"`
	CreatedAt        time.Time           `bson:"created_at"`
	StartedAt        *time.Time          `bson:"started_at,omitempty"`
	CompletedAt      *time.Time          `bson:"completed_at,omitempty"`
}

// FindByAgent returns the orders assigned to agentID, capped at the page
// limit. An unknown agent matches nothing and yields an empty slice.
func (r *OrderRepository) FindByAgent(ctx context.Context, agentID string) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx,
		bson.M{"assigned_agent_id": agentID},
		options.Find().SetLimit(r.pageLimit),
	)
	if err != nil {
		return nil, fmt.Errorf("find orders by agent: %w", err)
	}
	defer cur.Close(ctx)

	orders := make([]domain.Order, 0)
	for cur.Next(ctx) {
		var mo mongoOrder
		if err := cur.Decode(&mo); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
		orders = append(orders, *mo.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, nil
}

// FindByID retrieves an order by its hex id. A malformed id is reported the
// same as a missing document.
func (r *OrderRepository) FindByID(ctx context.Context, orderID string) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mo mongoOrder
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mo); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return mo.toDomain(), nil
}

// Transition is a compare-and-swap on the order status: the filter includes
// the expected current status, so a concurrent transition that already moved
// the order makes this update match zero documents.
func (r *OrderRepository) Transition(ctx context.Context, orderID string, from, to domain.OrderStatus, timestampField string, ts time.Time) error {
	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return domain.ErrOrderNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "status": string(from)}
	update := bson.M{"$set": bson.M{
		"status":       string(to),
		timestampField: ts.UTC(),
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// EnsureIndexes creates the assigned-agent and unique order-number indexes.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "assigned_agent_id", Value: 1}}},
		{
			Keys:    bson.D{{Key: "order_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (mo *mongoOrder) toDomain() *domain.Order {
	return &domain.Order{
		ID:               mo.ID.Hex(),
		OrderNumber:      mo.OrderNumber,
		PickupLocation:   mo.PickupLocation,
		DeliveryLocation: mo.DeliveryLocation,
		AssignedAgentID:  mo.AssignedAgentID,
		Status:           domain.OrderStatus(mo.Status),
		CustomerInfo:     mo.CustomerInfo,
		CreatedAt:        mo.CreatedAt,
		StartedAt:        mo.StartedAt,
		CompletedAt:      mo.CompletedAt,
	}
}
