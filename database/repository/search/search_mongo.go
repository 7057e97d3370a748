package searchRepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"buscalocal/database"
	"buscalocal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSearchRepo implements SearchRepository using MongoDB.
type MongoSearchRepo struct {
	coll *mongo.Collection
}

// NewMongoSearchRepo creates a new instance of SearchRepository using MongoDB.
func NewMongoSearchRepo() SearchRepository {
	coll := database.MongoClient.Database("buscalocal").Collection("searches")
	repo := &MongoSearchRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoSearchRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new search document. Queries are stored lowercased and
// trimmed so frequency counts group naturally.
func (r *MongoSearchRepo) Create(search *models.Search) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	search.Query = strings.ToLower(strings.TrimSpace(search.Query))
	search.CreatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, search)
	if err != nil {
		return fmt.Errorf("failed to create search: %w", err)
	}
	return nil
}

// PopularQueries aggregates query frequency since the given time.
func (r *MongoSearchRepo) PopularQueries(since time.Time, limit int) ([]string, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"createdAt": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{"_id": "$query", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate popular queries: %w", err)
	}
	defer cursor.Close(ctx)

	var queries []string
	for cursor.Next(ctx) {
		var row struct {
			Query string `bson:"_id"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode popular query: %w", err)
		}
		if row.Query != "" {
			queries = append(queries, row.Query)
		}
	}
	return queries, nil
}

// RecentByUser returns the user's latest queries since the given time.
func (r *MongoSearchRepo) RecentByUser(userID string, since time.Time, limit int) ([]string, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"userId":    userID,
		"createdAt": bson.M{"$gte": since},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent searches for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var queries []string
	for cursor.Next(ctx) {
		var s models.Search
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode search: %w", err)
		}
		queries = append(queries, s.Query)
	}
	return queries, nil
}
