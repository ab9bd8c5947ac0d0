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

// ChallengeRepository stores student challenges.
type ChallengeRepository struct {
	coll *mongo.Collection
}

// NewChallengeRepository constructs the repository.
func NewChallengeRepository(db *mongo.Database) *ChallengeRepository {
	return &ChallengeRepository{coll: db.Collection(database.CollectionChallenges)}
}

// Create inserts challenge and fills its id.
func (r *ChallengeRepository) Create(ctx context.Context, challenge *models.Challenge) error {
	res, err := r.coll.InsertOne(ctx, challenge)
	if err != nil {
		return fmt.Errorf("insert challenge: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		challenge.ID = oid
	}
	return nil
}

// List returns challenges matching filter, newest first.
func (r *ChallengeRepository) List(ctx context.Context, filter models.ChallengeFilter) ([]models.Challenge, error) {
	challenges, err := findAll[models.Challenge](ctx, r.coll, challengeFilter(filter), sortedBy("submittedDate", -1))
	if err != nil {
		return nil, fmt.Errorf("list challenges: %w", err)
	}
	return challenges, nil
}

// Update applies a review and returns the updated document, or
// mongo.ErrNoDocuments.
func (r *ChallengeRepository) Update(ctx context.Context, id string, update models.ChallengeUpdate) (*models.Challenge, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var challenge models.Challenge
	set := challengeUpdateDoc(update)
	if len(set) == 0 {
		err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&challenge)
	} else {
		err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, returnAfter()).Decode(&challenge)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		return nil, fmt.Errorf("update challenge: %w", err)
	}
	return &challenge, nil
}

// CountByStatus returns the number of challenges per status.
func (r *ChallengeRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$status"}, {Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate challenge status: %w", err)
	}
	var groups []struct {
		Status string `bson:"_id"`
		Count  int    `bson:"count"`
	}
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, fmt.Errorf("decode challenge status: %w", err)
	}
	counts := make(map[string]int, len(groups))
	for _, g := range groups {
		counts[g.Status] += g.Count
	}
	return counts, nil
}

func challengeFilter(f models.ChallengeFilter) bson.M {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Priority != "" {
		filter["priority"] = f.Priority
	}
	if f.Lecturer != "" {
		filter["lecturer"] = containsRegex(f.Lecturer)
	}
	return filter
}

func challengeUpdateDoc(u models.ChallengeUpdate) bson.M {
	set := bson.M{}
	if u.Status != "" {
		set["status"] = u.Status
	}
	if u.Priority != "" {
		set["priority"] = u.Priority
	}
	if u.Response != "" {
		set["response"] = u.Response
	}
	if u.Resolution != "" {
		set["resolution"] = u.Resolution
	}
	if u.ReviewedBy != "" {
		set["reviewedBy"] = u.ReviewedBy
	}
	if u.ReviewedDate != nil {
		set["reviewedDate"] = *u.ReviewedDate
	}
	return set
}
