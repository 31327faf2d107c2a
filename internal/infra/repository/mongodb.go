package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DesignerNewsStories/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository archives crawled stories keyed by their Designer News ID.
type MongoRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
}

var _ domain.Repository = (*MongoRepository)(nil)

func NewMongoRepository(client *mongo.Client, dbName, collectionName string) (*MongoRepository, error) {
	db := client.Database(dbName)
	repo := &MongoRepository{
		db:         db,
		collection: db.Collection(collectionName),
	}

	if err := repo.createIndexes(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return repo, nil
}

func (r *MongoRepository) createIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("created_at_idx"),
		},
		{
			Keys:    bson.D{{Key: "fetched_at", Value: -1}},
			Options: options.Index().SetName("fetched_at_idx"),
		},
	}

	opts := options.CreateIndexes().SetMaxTime(10 * time.Second)
	_, err := r.collection.Indexes().CreateMany(ctx, models, opts)
	return err
}

func (r *MongoRepository) BulkUpsert(ctx context.Context, stories []domain.Story) error {
	if len(stories) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, 0, len(stories))
	for _, story := range stories {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": story.ID}).
			SetUpdate(bson.M{"$set": story}).
			SetUpsert(true))
	}

	opts := options.BulkWrite().SetOrdered(false)
	if _, err := r.collection.BulkWrite(ctx, models, opts); err != nil {
		return fmt.Errorf("failed to bulk upsert stories: %w", err)
	}
	return nil
}

// GetLatest returns the most recently created archived story, or nil when the archive is empty.
func (r *MongoRepository) GetLatest(ctx context.Context) (*domain.Story, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var story domain.Story
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&story)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find latest story: %w", err)
	}
	return &story, nil
}

func (r *MongoRepository) GetContentHashes(ctx context.Context, ids []int64) (map[int64]string, error) {
	filter := bson.M{"_id": bson.M{"$in": ids}}
	opts := options.Find().SetProjection(bson.M{"_id": 1, "content_hash": 1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query content hashes: %w", err)
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			slog.Warn("Failed to close cursor", "error", err)
		}
	}()

	results := make(map[int64]string)
	for cursor.Next(ctx) {
		var doc struct {
			ID          int64  `bson:"_id"`
			ContentHash string `bson:"content_hash"`
		}
		if err := cursor.Decode(&doc); err != nil {
			slog.Warn("Skipping malformed hash document", "error", err)
			continue
		}
		results[doc.ID] = doc.ContentHash
	}
	return results, cursor.Err()
}
