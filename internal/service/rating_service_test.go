package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/college-portal-api/internal/models"
	appErrors "github.com/noah-isme/college-portal-api/pkg/errors"
)

func newRatingServiceForTest(lecturers *fakeLecturerRepo) (*RatingService, *fakeRatingRepo) {
	ratings := &fakeRatingRepo{}
	svc := NewRatingService(ratings, lecturers, nil, validator.New(), nil, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }
	return svc, ratings
}

func TestRatingServiceSubmitUpdatesLecturerAggregate(t *testing.T) {
	lecturers := &fakeLecturerRepo{lecturers: []models.Lecturer{{
		ID:            "lec-1",
		Name:          "Mr. Molao",
		Courses:       []string{"Programming Principles"},
		OverallRating: 4.0,
		TotalRatings:  3,
	}}}
	svc, ratings := newRatingServiceForTest(lecturers)

	res, err := svc.Submit(context.Background(), models.CreateRatingRequest{
		LecturerName: "mr. molao",
		CourseName:   "Advanced Programming",
		Rating:       "excellent",
	})
	require.NoError(t, err)
	assert.True(t, res.LecturerUpdated)
	assert.Equal(t, 5.0, res.Rating.Rating)
	assert.True(t, res.Rating.IsAnonymous)
	assert.Equal(t, models.AnonymousStudent, res.Rating.StudentName)
	require.Len(t, ratings.ratings, 1)

	updated := lecturers.lecturers[0]
	assert.InDelta(t, 4.25, updated.OverallRating, 1e-9)
	assert.Equal(t, 4, updated.TotalRatings)
	assert.Equal(t, []string{"Programming Principles", "Advanced Programming"}, []string(updated.Courses))
}

func TestRatingServiceSubmitUnknownLecturer(t *testing.T) {
	svc, ratings := newRatingServiceForTest(&fakeLecturerRepo{})

	res, err := svc.Submit(context.Background(), models.CreateRatingRequest{
		StudentName:  "Lerato",
		LecturerName: "Dr. Nobody",
		CourseName:   "Databases",
		Rating:       "meh",
	})
	require.NoError(t, err)
	assert.False(t, res.LecturerUpdated)
	assert.False(t, res.Rating.IsAnonymous)
	assert.Equal(t, models.DefaultRatingScore, res.Rating.Rating)
	assert.Len(t, ratings.ratings, 1)
}

func TestRatingServiceSubmitAggregateFailureKeepsRating(t *testing.T) {
	lecturers := &fakeLecturerRepo{
		lecturers: []models.Lecturer{{ID: "lec-1", Name: "Mr. Makheka"}},
		updateErr: errors.New("connection reset"),
	}
	svc, ratings := newRatingServiceForTest(lecturers)

	res, err := svc.Submit(context.Background(), models.CreateRatingRequest{LecturerName: "Mr. Makheka", CourseName: "Web", Rating: "good"})
	require.NoError(t, err)
	assert.False(t, res.LecturerUpdated)
	assert.Len(t, ratings.ratings, 1)
	assert.Equal(t, 0, lecturers.lecturers[0].TotalRatings)
}

func TestRatingServiceSubmitValidation(t *testing.T) {
	svc, ratings := newRatingServiceForTest(&fakeLecturerRepo{})
	_, err := svc.Submit(context.Background(), models.CreateRatingRequest{LecturerName: "Mr. Molao", Rating: "good"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "Lecturer name, course name, and rating are required", appErr.Message)
	assert.Empty(t, ratings.ratings)
}

func TestBuildRatingStats(t *testing.T) {
	scores := []float64{5, 4.6, 4, 3.5, 3, 2.5, 2, 1}
	ratings := make([]models.Rating, 0, len(scores)+5)
	for _, s := range scores {
		ratings = append(ratings, models.Rating{Rating: s})
	}
	for i := 0; i < 5; i++ {
		ratings = append(ratings, models.Rating{Rating: 3})
	}
	top := []models.Lecturer{{Name: "A", OverallRating: 4.8, TotalRatings: 10, Courses: []string{"X"}}}

	stats := buildRatingStats(ratings, top)
	assert.Equal(t, len(ratings), stats.TotalRatings)
	d := stats.RatingDistribution
	assert.Equal(t, 2, d.Excellent)
	assert.Equal(t, 2, d.Good)
	assert.Equal(t, 7, d.Average)
	assert.Equal(t, 2, d.Poor)
	assert.Equal(t, stats.TotalRatings, d.Excellent+d.Good+d.Average+d.Poor)
	assert.InDelta(t, 40.6/13, stats.AverageRating, 1e-9)
	assert.Len(t, stats.RecentSubmissions, 10)
	require.Len(t, stats.TopLecturers, 1)
	assert.Equal(t, "A", stats.TopLecturers[0].Name)
}

func TestBuildRatingStatsEmpty(t *testing.T) {
	stats := buildRatingStats(nil, nil)
	assert.Zero(t, stats.TotalRatings)
	assert.Zero(t, stats.AverageRating)
	assert.NotNil(t, stats.RecentSubmissions)
	assert.NotNil(t, stats.TopLecturers)
}
