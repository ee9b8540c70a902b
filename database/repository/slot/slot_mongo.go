package slotRepo

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

// MongoSlotRepo implements SlotRepository using MongoDB.
type MongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo creates a new instance of SlotRepository using MongoDB.
func NewMongoSlotRepo() SlotRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("parking_slots")
	repo := &MongoSlotRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoSlotRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "number", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoSlotRepo) Get(ctx context.Context, number string) (*models.ParkingSlot, error) {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var slot models.ParkingSlot
	err := r.coll.FindOne(cctx, bson.M{"number": number}).Decode(&slot)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch parking slot %s: %w", number, err)
	}
	return &slot, nil
}

func (r *MongoSlotRepo) Save(ctx context.Context, slot *models.ParkingSlot) error {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(cctx, bson.M{"number": slot.Number}, slot, opts); err != nil {
		return fmt.Errorf("failed to save parking slot %s: %w", slot.Number, err)
	}
	return nil
}

func (r *MongoSlotRepo) FindAll(ctx context.Context) ([]models.ParkingSlot, error) {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "number", Value: 1}})
	cur, err := r.coll.Find(cctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query parking slots: %w", err)
	}
	defer cur.Close(cctx)

	var slots []models.ParkingSlot
	if err := cur.All(cctx, &slots); err != nil {
		return nil, fmt.Errorf("failed to decode parking slots: %w", err)
	}
	return slots, nil
}
