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

const goalCollectionName = "goals"

// mongoGoalRepository implements repository.GoalRepository
type mongoGoalRepository struct {
	collection *mongo.Collection
}

// NewMongoGoalRepository creates a new Goal repository backed by MongoDB.
func NewMongoGoalRepository(db *mongo.Database) repository.GoalRepository {
	return &mongoGoalRepository{
		collection: db.Collection(goalCollectionName),
	}
}

// Create inserts a new goal into the database.
func (r *mongoGoalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	if goal.ID == "" || goal.UserID == "" {
		return errors.New("goal id and user id are required")
	}
	now := time.Now().UTC()
	goal.CreatedAt = now
	goal.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, goal)
	return err
}

// GetByID retrieves one of the user's goals.
func (r *mongoGoalRepository) GetByID(ctx context.Context, userID, id string) (*domain.Goal, error) {
	var goal domain.Goal
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&goal)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &goal, nil
}

// ListByUser retrieves all goals for a user, nearest deadline first.
func (r *mongoGoalRepository) ListByUser(ctx context.Context, userID string) ([]domain.Goal, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "deadline", Value: 1}, {Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	goals := []domain.Goal{}
	if err = cursor.All(ctx, &goals); err != nil {
		return nil, err
	}
	return goals, cursor.Err()
}

// Update sets only the fields present in patch and returns the updated document.
func (r *mongoGoalRepository) Update(ctx context.Context, userID, id string, patch domain.GoalPatch) (*domain.Goal, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Type != nil {
		set["type"] = *patch.Type
	}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Target != nil {
		set["target"] = *patch.Target
	}
	if patch.Current != nil {
		set["current"] = *patch.Current
	}
	if patch.Unit != nil {
		set["unit"] = *patch.Unit
	}
	if patch.Deadline != nil {
		set["deadline"] = *patch.Deadline
	}
	if patch.Achieved != nil {
		set["achieved"] = *patch.Achieved
	}

	var goal domain.Goal
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "userId": userID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&goal)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &goal, nil
}

// Delete removes a goal, ensuring it belongs to the user.
func (r *mongoGoalRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
