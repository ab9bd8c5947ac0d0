package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noah-isme/college-portal-api/internal/models"
	"github.com/noah-isme/college-portal-api/pkg/database"
)

// ReportRepository stores compiled reports.
type ReportRepository struct {
	coll *mongo.Collection
}

// NewReportRepository constructs the repository.
func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{coll: db.Collection(database.CollectionReports)}
}

// Create inserts report and fills its id.
func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	res, err := r.coll.InsertOne(ctx, report)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		report.ID = oid
	}
	return nil
}

// List returns all reports, newest first.
func (r *ReportRepository) List(ctx context.Context) ([]models.Report, error) {
	reports, err := findAll[models.Report](ctx, r.coll, bson.M{}, sortedBy("createdDate", -1))
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

// Delete removes a report and returns it, or mongo.ErrNoDocuments.
func (r *ReportRepository) Delete(ctx context.Context, id string) (*models.Report, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	var report models.Report
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&report); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		return nil, fmt.Errorf("delete report: %w", err)
	}
	return &report, nil
}

// Count returns the number of reports.
func (r *ReportRepository) Count(ctx context.Context) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count reports: %w", err)
	}
	return int(n), nil
}
