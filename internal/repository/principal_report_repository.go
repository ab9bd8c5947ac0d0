package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noah-isme/college-portal-api/internal/models"
	"github.com/noah-isme/college-portal-api/pkg/database"
)

// PrincipalReportRepository stores review requests from the principal's office.
type PrincipalReportRepository struct {
	coll *mongo.Collection
}

// NewPrincipalReportRepository constructs the repository.
func NewPrincipalReportRepository(db *mongo.Database) *PrincipalReportRepository {
	return &PrincipalReportRepository{coll: db.Collection(database.CollectionPrincipalReports)}
}

// List returns all reports ordered by date descending.
func (r *PrincipalReportRepository) List(ctx context.Context) ([]models.PrincipalReport, error) {
	reports, err := findAll[models.PrincipalReport](ctx, r.coll, bson.M{}, sortedBy("date", -1))
	if err != nil {
		return nil, fmt.Errorf("list principal reports: %w", err)
	}
	return reports, nil
}

// Update writes a response and returns the updated document, or
// mongo.ErrNoDocuments.
func (r *PrincipalReportRepository) Update(ctx context.Context, id string, update models.PrincipalReportUpdate) (*models.PrincipalReport, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var report models.PrincipalReport
	set := principalReportUpdateDoc(update)
	if len(set) == 0 {
		err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&report)
	} else {
		err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, returnAfter()).Decode(&report)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		return nil, fmt.Errorf("update principal report: %w", err)
	}
	return &report, nil
}

// InsertMany stores reports, used for default data.
func (r *PrincipalReportRepository) InsertMany(ctx context.Context, reports []models.PrincipalReport) error {
	if len(reports) == 0 {
		return nil
	}
	docs := make([]interface{}, len(reports))
	for i := range reports {
		docs[i] = reports[i]
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert principal reports: %w", err)
	}
	return nil
}

// Count returns the number of principal reports.
func (r *PrincipalReportRepository) Count(ctx context.Context) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count principal reports: %w", err)
	}
	return int(n), nil
}

func principalReportUpdateDoc(u models.PrincipalReportUpdate) bson.M {
	set := bson.M{}
	if u.Response != "" {
		set["response"] = u.Response
	}
	if u.Status != "" {
		set["status"] = u.Status
	}
	if u.ResponseDate != "" {
		set["responseDate"] = u.ResponseDate
	}
	return set
}
