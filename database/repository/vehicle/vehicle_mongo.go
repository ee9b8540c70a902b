package vehicleRepo

import (
	"context"
	"fmt"
	"time"

	"conjunto/config"
	"conjunto/database"
	"conjunto/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSessionRepo implements SessionRepository using MongoDB.
type MongoSessionRepo struct {
	coll *mongo.Collection
}

// NewMongoSessionRepo creates a new instance of SessionRepository using MongoDB.
func NewMongoSessionRepo() SessionRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("visitor_sessions")
	repo := &MongoSessionRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries. The
// partial unique index on plate enforces the one-active-session-per-plate
// invariant at the store level.
func (r *MongoSessionRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys: bson.D{{Key: "plate", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"active": true}),
		},
		{Keys: bson.D{{Key: "entry_time", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoSessionRepo) Create(ctx context.Context, s *models.VisitorSession) error {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(cctx, s); err != nil {
		return fmt.Errorf("failed to insert visitor session: %w", err)
	}
	return nil
}

func (r *MongoSessionRepo) Update(ctx context.Context, s *models.VisitorSession) error {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.ReplaceOne(cctx, bson.M{"id": s.ID}, s)
	if err != nil {
		return fmt.Errorf("failed to update visitor session %s: %w", s.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("visitor session %s not found", s.ID)
	}
	return nil
}

func (r *MongoSessionRepo) FindByID(ctx context.Context, id string) (*models.VisitorSession, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoSessionRepo) FindActiveByPlate(ctx context.Context, plate string) (*models.VisitorSession, error) {
	return r.findOne(ctx, bson.M{"plate": plate, "active": true})
}

func (r *MongoSessionRepo) findOne(ctx context.Context, filter bson.M) (*models.VisitorSession, error) {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var s models.VisitorSession
	err := r.coll.FindOne(cctx, filter).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch visitor session: %w", err)
	}
	return &s, nil
}

func (r *MongoSessionRepo) FindAll(ctx context.Context) ([]models.VisitorSession, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *MongoSessionRepo) FindActive(ctx context.Context) ([]models.VisitorSession, error) {
	return r.findMany(ctx, bson.M{"active": true})
}

func (r *MongoSessionRepo) FindByEntryRange(ctx context.Context, from, to time.Time) ([]models.VisitorSession, error) {
	return r.findMany(ctx, bson.M{"entry_time": bson.M{"$gte": from, "$lt": to}})
}

func (r *MongoSessionRepo) findMany(ctx context.Context, filter bson.M) ([]models.VisitorSession, error) {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "entry_time", Value: -1}})
	cur, err := r.coll.Find(cctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query visitor sessions: %w", err)
	}
	defer cur.Close(cctx)

	var sessions []models.VisitorSession
	if err := cur.All(cctx, &sessions); err != nil {
		return nil, fmt.Errorf("failed to decode visitor sessions: %w", err)
	}
	return sessions, nil
}
