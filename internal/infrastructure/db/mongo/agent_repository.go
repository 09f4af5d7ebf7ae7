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

const agentsCollection = "delivery_agents"

type AgentRepository struct {
	coll *mongo.Collection
}

func NewAgentRepository(db *mongo.Database) *AgentRepository {
	return &AgentRepository{coll: db.Collection(agentsCollection)}
}

type mongoAgent struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Name         string             `bson:"name"`
	Phone        string             `bson:"phone"`
	Status       string             `bson:"status"`
	PasswordHash string             `bson:"password"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (r *AgentRepository) FindByUsername(ctx context.Context, username string) (*domain.Agent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ma mongoAgent
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAgentNotFound
		}
		return nil, fmt.Errorf("find agent: %w", err)
	}

	return ma.toDomain(), nil
}

// Create inserts a new agent and returns it with the generated id. Used by
// provisioning and the dev seeder.
func (r *AgentRepository) Create(ctx context.Context, agent *domain.Agent) (*domain.Agent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoAgent{
		Username:     agent.Username,
		Name:         agent.Name,
		Phone:        agent.Phone,
		Status:       string(agent.Status),
		PasswordHash: agent.PasswordHash,
		CreatedAt:    agent.CreatedAt.UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert agent: %w", err)
	}

	created := *agent
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

// EnsureIndexes creates the unique username index.
func (r *AgentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (ma *mongoAgent) toDomain() *domain.Agent {
	return &domain.Agent{
		ID:           ma.ID.Hex(),
		Username:     ma.Username,
		Name:         ma.Name,
		Phone:        ma.Phone,
		Status:       domain.AgentStatus(ma.Status),
		PasswordHash: ma.PasswordHash,
		CreatedAt:    ma.CreatedAt,
	}
}
