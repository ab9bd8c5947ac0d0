package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/noah-isme/college-portal-api/internal/models"
	appErrors "github.com/noah-isme/college-portal-api/pkg/errors"
)

var fixedNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func newChallengeServiceForTest() (*ChallengeService, *fakeChallengeRepo) {
	repo := &fakeChallengeRepo{}
	svc := NewChallengeService(repo, nil, validator.New(), zap.NewNop())
	svc.now = func() time.Time { return fixedNow }
	return svc, repo
}

func TestChallengeServiceSubmitDefaults(t *testing.T) {
	svc, repo := newChallengeServiceForTest()

	c, err := svc.Submit(context.Background(), models.CreateChallengeRequest{StudentID: "STU-9", Challenge: "Lab computers are too slow"})
	require.NoError(t, err)
	assert.Equal(t, models.AnonymousStudent, c.StudentName)
	assert.Equal(t, models.NotSpecified, c.Program)
	assert.Equal(t, models.NotSpecified, c.Lecturer)
	assert.Equal(t, models.ChallengeSubmitted, c.Status)
	assert.Equal(t, models.PriorityMedium, c.Priority)
	assert.Equal(t, fixedNow, c.SubmittedDate)
	assert.False(t, c.ID.IsZero())
	assert.Len(t, repo.challenges, 1)
}

func TestChallengeServiceSubmitValidation(t *testing.T) {
	svc, _ := newChallengeServiceForTest()
	_, err := svc.Submit(context.Background(), models.CreateChallengeRequest{StudentID: "STU-9", Challenge: "   "})
	require.Error(t, err)
	assert.Equal(t, "Challenge description and student ID are required", appErrors.FromError(err).Message)
}

func TestChallengeServiceReview(t *testing.T) {
	svc, _ := newChallengeServiceForTest()
	c, err := svc.Submit(context.Background(), models.CreateChallengeRequest{StudentID: "STU-9", Challenge: "Timetable clash"})
	require.NoError(t, err)

	updated, err := svc.Review(context.Background(), c.ID.Hex(), models.UpdateChallengeRequest{Priority: models.PriorityHigh})
	require.NoError(t, err)
	assert.Equal(t, models.PriorityHigh, updated.Priority)
	assert.Equal(t, models.ChallengeSubmitted, updated.Status)
	assert.Nil(t, updated.ReviewedDate)

	updated, err = svc.Review(context.Background(), c.ID.Hex(), models.UpdateChallengeRequest{Status: models.ChallengeReviewed, ReviewedBy: "Dr. Principal"})
	require.NoError(t, err)
	assert.Equal(t, models.ChallengeReviewed, updated.Status)
	require.NotNil(t, updated.ReviewedDate)
	assert.Equal(t, fixedNow, *updated.ReviewedDate)

	_, err = svc.Review(context.Background(), primitive.NewObjectID().Hex(), models.UpdateChallengeRequest{Status: models.ChallengeResolved})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 404, appErr.Status)
	assert.Equal(t, "Challenge not found", appErr.Message)

	_, err = svc.Review(context.Background(), c.ID.Hex(), models.UpdateChallengeRequest{Status: "archived"})
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}

func TestBuildChallengeStats(t *testing.T) {
	var challenges []models.Challenge
	for i := 0; i < 12; i++ {
		status := models.ChallengeSubmitted
		if i%3 == 0 {
			status = models.ChallengeResolved
		}
		lecturer := "Mr. Molao"
		if i%2 == 0 {
			lecturer = ""
		}
		challenges = append(challenges, models.Challenge{Status: status, Priority: models.PriorityMedium, Lecturer: lecturer})
	}

	stats := buildChallengeStats(challenges)
	assert.Equal(t, 12, stats.TotalChallenges)
	assert.Equal(t, 4, stats.ByStatus["resolved"])
	assert.Equal(t, 8, stats.ByStatus["submitted"])
	assert.Equal(t, 0, stats.ByStatus["reviewed"])
	assert.Equal(t, 12, stats.ByPriority["medium"])
	assert.Equal(t, 0, stats.ByPriority["high"])
	assert.Equal(t, 6, stats.ByLecturer["Unknown"])
	assert.Equal(t, 6, stats.ByLecturer["Mr. Molao"])
	assert.Len(t, stats.RecentChallenges, 10)

	sum := 0
	for _, n := range stats.ByStatus {
		sum += n
	}
	assert.Equal(t, stats.TotalChallenges, sum)
}
