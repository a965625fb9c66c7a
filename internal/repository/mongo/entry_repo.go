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

const (
	foodCollectionName        = "food_entries"
	exerciseCollectionName    = "exercises"
	workSessionCollectionName = "work_sessions"
)

// entryRepository is the shared implementation behind the food, exercise and
// work session collections. All three store userId and date at the top level.
type entryRepository[T domain.Entry] struct {
	collection *mongo.Collection
}

// NewMongoFoodRepository creates the food entry repository.
func NewMongoFoodRepository(db *mongo.Database) repository.FoodRepository {
	return &entryRepository[domain.FoodEntry]{collection: db.Collection(foodCollectionName)}
}

// NewMongoExerciseRepository creates the exercise repository.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &entryRepository[domain.Exercise]{collection: db.Collection(exerciseCollectionName)}
}

func (r *entryRepository[T]) Create(ctx context.Context, entry *T) error {
	_, err := r.collection.InsertOne(ctx, entry)
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicate
	}
	return err
}

func (r *entryRepository[T]) ListByDate(ctx context.Context, userID, date string) ([]T, error) {
	return r.find(ctx, bson.M{"userId": userID, "date": date})
}

// ListByRange returns entries with from <= date <= to. YYYY-MM-DD strings
// sort chronologically, so a plain string range is enough.
func (r *entryRepository[T]) ListByRange(ctx context.Context, userID, from, to string) ([]T, error) {
	return r.find(ctx, bson.M{
		"userId": userID,
		"date":   bson.M{"$gte": from, "$lte": to},
	})
}

func (r *entryRepository[T]) Delete(ctx context.Context, userID, id string) error {
	// Filtering on userId as well stops one user deleting another's entry.
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *entryRepository[T]) find(ctx context.Context, filter bson.M) ([]T, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []T{}
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, cursor.Err()
}

// mongoWorkSessionRepository adds timer handling on top of the generic entry store.
type mongoWorkSessionRepository struct {
	*entryRepository[domain.WorkSession]
}

// NewMongoWorkSessionRepository creates the work session repository.
func NewMongoWorkSessionRepository(db *mongo.Database) repository.WorkSessionRepository {
	return &mongoWorkSessionRepository{
		entryRepository: &entryRepository[domain.WorkSession]{collection: db.Collection(workSessionCollectionName)},
	}
}

func (r *mongoWorkSessionRepository) GetByID(ctx context.Context, userID, id string) (*domain.WorkSession, error) {
	var ws domain.WorkSession
	if err := r.collection.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&ws); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &ws, nil
}

func (r *mongoWorkSessionRepository) Finish(ctx context.Context, userID, id string, end time.Time, minutes float64, completed bool) error {
	filter := bson.M{
		"_id":     id,
		"userId":  userID,
		"endTime": bson.M{"$exists": false},
	}
	update := bson.M{
		"$set": bson.M{
			"endTime":   end,
			"duration":  minutes,
			"completed": completed,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
