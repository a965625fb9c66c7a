package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"alcyxob/lifetrack/internal/domain"
	"alcyxob/lifetrack/internal/repository"
)

const reportCollectionName = "reports"

// mongoReportRepository implements repository.ReportRepository
type mongoReportRepository struct {
	collection *mongo.Collection
}

// NewMongoReportRepository creates a new Report repository backed by MongoDB.
func NewMongoReportRepository(db *mongo.Database) repository.ReportRepository {
	return &mongoReportRepository{
		collection: db.Collection(reportCollectionName),
	}
}

// Create inserts new report metadata into the database.
func (r *mongoReportRepository) Create(ctx context.Context, report *domain.Report) error {
	if report.ID == "" || report.UserID == "" || report.S3ObjectKey == "" {
		return errors.New("report requires id, userId and s3ObjectKey")
	}
	now := time.Now().UTC()
	report.UploadedAt = now
	report.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, report)
	return err
}

// GetByID retrieves report metadata owned by userID.
func (r *mongoReportRepository) GetByID(ctx context.Context, userID, id string) (*domain.Report, error) {
	var report domain.Report
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

// SetAnalysis stores the analyzer output and moves the report to status.
func (r *mongoReportRepository) SetAnalysis(ctx context.Context, id string, status domain.ReportStatus, analysis *domain.HealthAnalysis) error {
	update := bson.M{
		"$set": bson.M{
			"status":    status,
			"analysis":  analysis,
			"updatedAt": time.Now().UTC(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes report metadata, ensuring it belongs to the user.
func (r *mongoReportRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
