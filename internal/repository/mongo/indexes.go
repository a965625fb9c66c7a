package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// userDateIndex backs ListByDate and ListByRange on the entry collections.
func userDateIndex() mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}},
		Options: options.Index().SetName("user_date"),
	}
}

// EnsureIndexes creates the indexes every collection relies on.
// Call this once during application startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	byCollection := map[string][]mongo.IndexModel{
		userCollectionName: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		foodCollectionName:        {userDateIndex()},
		exerciseCollectionName:    {userDateIndex()},
		workSessionCollectionName: {userDateIndex()},
		goalCollectionName: {
			{
				Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "deadline", Value: 1}},
				Options: options.Index(),
			},
		},
		reportCollectionName: {
			{
				Keys:    bson.D{{Key: "userId", Value: 1}},
				Options: options.Index(),
			},
		},
	}

	for name, indexes := range byCollection {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("create indexes for %s: %w", name, err)
		}
	}
	return nil
}
