package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noah-isme/college-portal-api/internal/models"
)

func TestChallengeFilter(t *testing.T) {
	assert.Empty(t, challengeFilter(models.ChallengeFilter{}))

	filter := challengeFilter(models.ChallengeFilter{Status: "submitted", Lecturer: "mr. m"})
	assert.Equal(t, "submitted", filter["status"])
	assert.Equal(t, primitive.Regex{Pattern: `mr\. m`, Options: "i"}, filter["lecturer"])
	assert.NotContains(t, filter, "priority")
}

func TestChallengeUpdateDocSkipsEmptyFields(t *testing.T) {
	reviewed := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	set := challengeUpdateDoc(models.ChallengeUpdate{Priority: models.PriorityHigh, ReviewedBy: "Dr. P", ReviewedDate: &reviewed})
	assert.Equal(t, bson.M{"priority": models.PriorityHigh, "reviewedBy": "Dr. P", "reviewedDate": reviewed}, set)
	assert.Empty(t, challengeUpdateDoc(models.ChallengeUpdate{}))
}

func TestRatingFilterBounds(t *testing.T) {
	lo, hi := 3.0, 4.5
	filter := ratingFilter(models.RatingFilter{Course: "web", MinRating: &lo, MaxRating: &hi})
	assert.Equal(t, bson.M{"$gte": 3.0, "$lte": 4.5}, filter["rating"])
	assert.Equal(t, primitive.Regex{Pattern: "web", Options: "i"}, filter["courseName"])

	filter = ratingFilter(models.RatingFilter{MinRating: &lo})
	assert.Equal(t, bson.M{"$gte": 3.0}, filter["rating"])
}

func TestTicketFilterUsesTagPaths(t *testing.T) {
	filter := ticketFilter(models.TicketFilter{Status: "pending", Tags: map[string]string{"program": "IT", "week": ""}})
	assert.Equal(t, bson.M{"status": "pending", "tags.program": "IT"}, filter)
}

func TestPrincipalReportUpdateDoc(t *testing.T) {
	set := principalReportUpdateDoc(models.PrincipalReportUpdate{Status: models.PrincipalReportSubmitted, ResponseDate: "2024-01-25"})
	assert.Equal(t, bson.M{"status": models.PrincipalReportSubmitted, "responseDate": "2024-01-25"}, set)
}

func TestParseObjectIDMalformed(t *testing.T) {
	_, err := parseObjectID("nope")
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)

	oid := primitive.NewObjectID()
	parsed, err := parseObjectID(oid.Hex())
	assert.NoError(t, err)
	assert.Equal(t, oid, parsed)
}
