package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"alcyxob/lifetrack/internal/domain"
	"alcyxob/lifetrack/internal/repository"
)

const profileCollectionName = "profiles"

type mongoProfileRepository struct {
	collection *mongo.Collection
}

// NewMongoProfileRepository creates a profile repository backed by MongoDB.
// Profiles use the owning user's ID as _id.
func NewMongoProfileRepository(db *mongo.Database) repository.ProfileRepository {
	return &mongoProfileRepository{
		collection: db.Collection(profileCollectionName),
	}
}

func (r *mongoProfileRepository) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	var p domain.Profile
	if err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Upsert replaces the whole profile document, creating it if needed.
func (r *mongoProfileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	if profile.UserID == "" {
		return errors.New("profile user id is required")
	}
	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"_id": profile.UserID},
		profile,
		options.Replace().SetUpsert(true),
	)
	return err
}
