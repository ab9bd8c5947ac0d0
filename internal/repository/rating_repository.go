package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noah-isme/college-portal-api/internal/models"
	"github.com/noah-isme/college-portal-api/pkg/database"
)

// RatingRepository stores lecturer ratings.
type RatingRepository struct {
	coll *mongo.Collection
}

// NewRatingRepository constructs the repository.
func NewRatingRepository(db *mongo.Database) *RatingRepository {
	return &RatingRepository{coll: db.Collection(database.CollectionRatings)}
}

// Create inserts rating and fills its id.
func (r *RatingRepository) Create(ctx context.Context, rating *models.Rating) error {
	res, err := r.coll.InsertOne(ctx, rating)
	if err != nil {
		return fmt.Errorf("insert rating: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		rating.ID = oid
	}
	return nil
}

// List returns ratings matching filter, newest first.
func (r *RatingRepository) List(ctx context.Context, filter models.RatingFilter) ([]models.Rating, error) {
	ratings, err := findAll[models.Rating](ctx, r.coll, ratingFilter(filter), sortedBy("submittedDate", -1))
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	return ratings, nil
}

// Summary returns the count and mean score of all ratings.
func (r *RatingRepository) Summary(ctx context.Context) (models.RatingSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "average", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return models.RatingSummary{}, fmt.Errorf("aggregate ratings: %w", err)
	}
	var rows []struct {
		Count   int     `bson:"count"`
		Average float64 `bson:"average"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return models.RatingSummary{}, fmt.Errorf("decode rating summary: %w", err)
	}
	if len(rows) == 0 {
		return models.RatingSummary{}, nil
	}
	return models.RatingSummary{Count: rows[0].Count, Average: rows[0].Average}, nil
}

func ratingFilter(f models.RatingFilter) bson.M {
	filter := bson.M{}
	if f.Lecturer != "" {
		filter["lecturerName"] = containsRegex(f.Lecturer)
	}
	if f.Course != "" {
		filter["courseName"] = containsRegex(f.Course)
	}
	bounds := bson.M{}
	if f.MinRating != nil {
		bounds["$gte"] = *f.MinRating
	}
	if f.MaxRating != nil {
		bounds["$lte"] = *f.MaxRating
	}
	if len(bounds) > 0 {
		filter["rating"] = bounds
	}
	return filter
}
