package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/college-portal-api/internal/models"
)

type ratingServiceStub struct {
	result     *models.RatingResult
	ratings    []models.Rating
	err        error
	lastFilter models.RatingFilter
}

func (s *ratingServiceStub) Submit(ctx context.Context, req models.CreateRatingRequest) (*models.RatingResult, error) {
	return s.result, s.err
}

func (s *ratingServiceStub) List(ctx context.Context, filter models.RatingFilter) ([]models.Rating, error) {
	s.lastFilter = filter
	return s.ratings, s.err
}

func (s *ratingServiceStub) Stats(ctx context.Context) (*models.RatingStats, error) {
	return &models.RatingStats{}, s.err
}

func TestRatingHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &ratingServiceStub{result: &models.RatingResult{
		Rating:          &models.Rating{LecturerName: "Mr. Molao", CourseName: "Web Design", Rating: 5, RatingLabel: "excellent"},
		LecturerUpdated: true,
	}}
	handler := NewRatingHandler(svc)

	payload := []byte(`{"lecturerName":"Mr. Molao","courseName":"Web Design","rating":"excellent"}`)
	c, w := newGinContext(http.MethodPost, "/api/ratings", payload)
	handler.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Rating submitted successfully for Mr. Molao - Web Design", body["message"])
	assert.Equal(t, true, body["lecturerUpdated"])
	rating := body["rating"].(map[string]interface{})
	assert.Equal(t, float64(5), rating["rating"])
}

func TestRatingHandlerListParsesBounds(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &ratingServiceStub{ratings: []models.Rating{}}
	handler := NewRatingHandler(svc)

	c, w := newGinContext(http.MethodGet, "/api/ratings?lecturer=molao&minRating=3.5&maxRating=5", nil)
	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "molao", svc.lastFilter.Lecturer)
	require.NotNil(t, svc.lastFilter.MinRating)
	require.NotNil(t, svc.lastFilter.MaxRating)
	assert.Equal(t, 3.5, *svc.lastFilter.MinRating)
	assert.Equal(t, 5.0, *svc.lastFilter.MaxRating)
	assert.Equal(t, "[]", w.Body.String())
}

func TestRatingHandlerListRejectsNonNumericBound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewRatingHandler(&ratingServiceStub{})

	c, w := newGinContext(http.MethodGet, "/api/ratings?minRating=high", nil)
	handler.List(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "minRating must be a number", decodeBody(t, w)["error"])
}
