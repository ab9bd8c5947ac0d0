package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/college-portal-api/internal/models"
	appErrors "github.com/noah-isme/college-portal-api/pkg/errors"
	"github.com/noah-isme/college-portal-api/pkg/response"
)

type ratingService interface {
	Submit(ctx context.Context, req models.CreateRatingRequest) (*models.RatingResult, error)
	List(ctx context.Context, filter models.RatingFilter) ([]models.Rating, error)
	Stats(ctx context.Context) (*models.RatingStats, error)
}

// RatingHandler exposes lecturer rating endpoints.
type RatingHandler struct {
	service ratingService
}

// NewRatingHandler constructs the handler.
func NewRatingHandler(svc ratingService) *RatingHandler {
	return &RatingHandler{service: svc}
}

type ratingCreatedResponse struct {
	Message         string         `json:"message"`
	Rating          *models.Rating `json:"rating"`
	LecturerUpdated bool           `json:"lecturerUpdated"`
}

// Create godoc
// @Summary Rate a lecturer
// @Description Store a rating and fold it into the lecturer's running average
// @Tags Ratings
// @Accept json
// @Produce json
// @Param payload body models.CreateRatingRequest true "Rating"
// @Success 201 {object} ratingCreatedResponse
// @Failure 400 {object} response.ErrorBody
// @Router /ratings [post]
func (h *RatingHandler) Create(c *gin.Context) {
	var req models.CreateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "Lecturer name, course name, and rating are required"))
		return
	}
	result, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, ratingCreatedResponse{
		Message:         fmt.Sprintf("Rating submitted successfully for %s - %s", result.Rating.LecturerName, result.Rating.CourseName),
		Rating:          result.Rating,
		LecturerUpdated: result.LecturerUpdated,
	})
}

// List godoc
// @Summary List ratings
// @Tags Ratings
// @Produce json
// @Param lecturer query string false "Lecturer name fragment"
// @Param course query string false "Course name fragment"
// @Param minRating query number false "Inclusive lower bound"
// @Param maxRating query number false "Inclusive upper bound"
// @Success 200 {array} models.Rating
// @Failure 400 {object} response.ErrorBody
// @Router /ratings [get]
func (h *RatingHandler) List(c *gin.Context) {
	filter := models.RatingFilter{
		Lecturer: strings.TrimSpace(c.Query("lecturer")),
		Course:   strings.TrimSpace(c.Query("course")),
	}
	var err error
	if filter.MinRating, err = optionalFloat(c, "minRating"); err != nil {
		response.Error(c, err)
		return
	}
	if filter.MaxRating, err = optionalFloat(c, "maxRating"); err != nil {
		response.Error(c, err)
		return
	}

	ratings, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ratings)
}

// Stats godoc
// @Summary Rating statistics
// @Tags Ratings
// @Produce json
// @Success 200 {object} models.RatingStats
// @Router /ratings/stats [get]
func (h *RatingHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}

func optionalFloat(c *gin.Context, key string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s must be a number", key))
	}
	return &value, nil
}
