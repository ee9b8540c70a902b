package receiptRepo

import (
	"context"
	"fmt"
	"time"

	"conjunto/config"
	"conjunto/database"
	"conjunto/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoReceiptRepo implements ReceiptRepository using MongoDB.
type MongoReceiptRepo struct {
	coll *mongo.Collection
}

// NewMongoReceiptRepo creates a new instance of ReceiptRepository using MongoDB.
func NewMongoReceiptRepo() ReceiptRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("parking_receipts")
	repo := &MongoReceiptRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// ensureIndexes creates indexes; the unique session_id index guarantees at
// most one receipt per checkout.
func (r *MongoReceiptRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "session_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "generated_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoReceiptRepo) Append(ctx context.Context, receipt *models.ParkingReceipt) error {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	if _, err := r.coll.InsertOne(cctx, receipt); err != nil {
		return fmt.Errorf("failed to append parking receipt: %w", err)
	}
	return nil
}

func (r *MongoReceiptRepo) FindByID(ctx context.Context, id string) (*models.ParkingReceipt, error) {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var receipt models.ParkingReceipt
	err := r.coll.FindOne(cctx, bson.M{"id": id}).Decode(&receipt)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch parking receipt %s: %w", id, err)
	}
	return &receipt, nil
}

func (r *MongoReceiptRepo) FindAll(ctx context.Context) ([]models.ParkingReceipt, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *MongoReceiptRepo) FindByGeneratedRange(ctx context.Context, from, to time.Time) ([]models.ParkingReceipt, error) {
	return r.findMany(ctx, bson.M{"generated_at": bson.M{"$gte": from, "$lt": to}})
}

func (r *MongoReceiptRepo) findMany(ctx context.Context, filter bson.M) ([]models.ParkingReceipt, error) {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "generated_at", Value: -1}})
	cur, err := r.coll.Find(cctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query parking receipts: %w", err)
	}
	defer cur.Close(cctx)

	var receipts []models.ParkingReceipt
	if err := cur.All(cctx, &receipts); err != nil {
		return nil, fmt.Errorf("failed to decode parking receipts: %w", err)
	}
	return receipts, nil
}
