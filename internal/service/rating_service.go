package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/college-portal-api/internal/models"
)

const topLecturerLimit = 5

type ratingRepository interface {
	Create(ctx context.Context, rating *models.Rating) error
	List(ctx context.Context, filter models.RatingFilter) ([]models.Rating, error)
}

type ratingLecturerRepository interface {
	FindByName(ctx context.Context, name string) (*models.Lecturer, error)
	ApplyRating(ctx context.Context, id string, score float64, course string) (*models.Lecturer, error)
	TopRated(ctx context.Context, limit int) ([]models.Lecturer, error)
}

// RatingService records ratings and maintains lecturer aggregates.
type RatingService struct {
	ratings   ratingRepository
	lecturers ratingLecturerRepository
	cache     *CacheService
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
	now       func() time.Time
}

// NewRatingService constructs the service.
func NewRatingService(ratings ratingRepository, lecturers ratingLecturerRepository, cache *CacheService, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *RatingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RatingService{ratings: ratings, lecturers: lecturers, cache: cache, validator: validate, metrics: metrics, logger: logger, now: time.Now}
}

// Submit persists the rating, then folds its score into the lecturer whose
// name matches case-insensitively. The rating and the aggregate are separate
// writes: a failed aggregate update is logged and reported as
// lecturerUpdated=false without failing the rating.
func (s *RatingService) Submit(ctx context.Context, req models.CreateRatingRequest) (*models.RatingResult, error) {
	trimAll(&req.LecturerName, &req.CourseName, &req.Rating, &req.StudentName)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "Lecturer name, course name, and rating are required")
	}

	rating := &models.Rating{
		StudentID:     req.StudentID,
		StudentName:   orDefault(req.StudentName, models.AnonymousStudent),
		LecturerName:  req.LecturerName,
		CourseName:    req.CourseName,
		Rating:        models.ScoreForLabel(req.Rating),
		RatingLabel:   req.Rating,
		Comments:      req.Comments,
		SubmittedDate: s.now().UTC(),
		IsAnonymous:   req.StudentName == "",
	}
	if err := s.ratings.Create(ctx, rating); err != nil {
		return nil, internalError(err, "Failed to save rating")
	}

	updated := s.applyToLecturer(ctx, rating)
	s.metrics.RecordRatingUpdate(updated)
	s.cache.Invalidate(ctx, dashboardCacheKey)

	return &models.RatingResult{Rating: rating, LecturerUpdated: updated}, nil
}

func (s *RatingService) applyToLecturer(ctx context.Context, rating *models.Rating) bool {
	log := s.logger.With(zap.String("lecturer", rating.LecturerName), zap.String("rating_id", rating.ID.Hex()))

	lecturer, err := s.lecturers.FindByName(ctx, rating.LecturerName)
	if err != nil {
		if !isNotFound(err) {
			log.Warn("lecturer lookup failed", zap.Error(err))
		}
		return false
	}

	if _, err := s.lecturers.ApplyRating(ctx, lecturer.ID, rating.Rating, rating.CourseName); err != nil {
		log.Warn("lecturer aggregate update failed", zap.Error(err))
		return false
	}
	return true
}

// List returns ratings matching filter, newest first.
func (s *RatingService) List(ctx context.Context, filter models.RatingFilter) ([]models.Rating, error) {
	ratings, err := s.ratings.List(ctx, filter)
	if err != nil {
		return nil, internalError(err, "Failed to fetch ratings")
	}
	return ratings, nil
}

// Stats summarises every rating together with the top rated lecturers.
func (s *RatingService) Stats(ctx context.Context) (*models.RatingStats, error) {
	ratings, err := s.ratings.List(ctx, models.RatingFilter{})
	if err != nil {
		return nil, internalError(err, "Failed to fetch rating statistics")
	}
	top, err := s.lecturers.TopRated(ctx, topLecturerLimit)
	if err != nil {
		return nil, internalError(err, "Failed to fetch rating statistics")
	}
	stats := buildRatingStats(ratings, top)
	return &stats, nil
}

// buildRatingStats expects ratings newest first.
func buildRatingStats(ratings []models.Rating, top []models.Lecturer) models.RatingStats {
	stats := models.RatingStats{
		TotalRatings: len(ratings),
		TopLecturers: make([]models.TopLecturer, 0, len(top)),
	}

	var sum float64
	for _, r := range ratings {
		sum += r.Rating
		stats.RatingDistribution.Add(r.Rating)
	}
	if len(ratings) > 0 {
		stats.AverageRating = sum / float64(len(ratings))
	}

	for _, l := range top {
		stats.TopLecturers = append(stats.TopLecturers, models.TopLecturer{
			Name:          l.Name,
			Department:    l.Department,
			OverallRating: l.OverallRating,
			TotalRatings:  l.TotalRatings,
			Courses:       append([]string{}, l.Courses...),
		})
	}

	recent := ratings
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	stats.RecentSubmissions = append([]models.Rating{}, recent...)
	return stats
}
