package favoriteRepo

import (
	"context"
	"fmt"
	"time"

	"buscalocal/database"
	"buscalocal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoFavoriteRepo implements FavoriteRepository using MongoDB.
type MongoFavoriteRepo struct {
	coll *mongo.Collection
}

// NewMongoFavoriteRepo creates a new instance of FavoriteRepository using MongoDB.
func NewMongoFavoriteRepo() FavoriteRepository {
	coll := database.MongoClient.Database("buscalocal").Collection("favorites")
	repo := &MongoFavoriteRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoFavoriteRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Upsert saves a favorite keyed by its composite ID.
func (r *MongoFavoriteRepo) Upsert(fav *models.Favorite) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	fav.CreatedAt = time.Now()
	filter := bson.M{"id": fav.ID}
	update := bson.M{"$set": fav}
	opts := options.Update().SetUpsert(true)

	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save favorite %s: %w", fav.ID, err)
	}
	return nil
}

// Delete removes a favorite by user and business ID.
func (r *MongoFavoriteRepo) Delete(userID, businessID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	id := userID + "_" + businessID
	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete favorite %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("favorite %s not found", id)
	}
	return nil
}

// GetByUser retrieves all favorites saved by a user.
func (r *MongoFavoriteRepo) GetByUser(userID string) ([]models.Favorite, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch favorites for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var favorites []models.Favorite
	for cursor.Next(ctx) {
		var f models.Favorite
		if err := cursor.Decode(&f); err != nil {
			return nil, fmt.Errorf("failed to decode favorite: %w", err)
		}
		favorites = append(favorites, f)
	}
	return favorites, nil
}
