package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/noah-isme/college-portal-api/pkg/config"
)

// Collection names of the document store.
const (
	CollectionChallenges       = "challenges"
	CollectionRatings          = "ratings"
	CollectionReports          = "reports"
	CollectionPrincipalReports = "principalreports"
)

// NewMongo connects to the document store and returns the client together
// with the configured database handle.
func NewMongo(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// MongoIndex describes one index to create on a collection.
type MongoIndex struct {
	Collection string
	Keys       bson.D
	Unique     bool
}

// DefaultMongoIndexes covers the sort and filter paths of the list endpoints.
func DefaultMongoIndexes(feedbackCollections ...string) []MongoIndex {
	indexes := []MongoIndex{
		{Collection: CollectionChallenges, Keys: bson.D{{Key: "submittedDate", Value: -1}}},
		{Collection: CollectionChallenges, Keys: bson.D{{Key: "status", Value: 1}, {Key: "priority", Value: 1}}},
		{Collection: CollectionRatings, Keys: bson.D{{Key: "submittedDate", Value: -1}}},
		{Collection: CollectionRatings, Keys: bson.D{{Key: "lecturerName", Value: 1}}},
		{Collection: CollectionReports, Keys: bson.D{{Key: "createdDate", Value: -1}}},
		{Collection: CollectionPrincipalReports, Keys: bson.D{{Key: "date", Value: -1}}},
	}
	for _, name := range feedbackCollections {
		indexes = append(indexes, MongoIndex{Collection: name, Keys: bson.D{{Key: "submittedDate", Value: -1}}})
	}
	return indexes
}

// EnsureMongoIndexes creates the given indexes, ignoring ones that exist.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database, indexes []MongoIndex) error {
	for _, idx := range indexes {
		model := mongo.IndexModel{Keys: idx.Keys, Options: options.Index().SetUnique(idx.Unique)}
		if _, err := db.Collection(idx.Collection).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", idx.Collection, err)
		}
	}
	return nil
}
