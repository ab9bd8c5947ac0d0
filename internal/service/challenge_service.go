package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/college-portal-api/internal/models"
)

const recentLimit = 10

type challengeRepository interface {
	Create(ctx context.Context, challenge *models.Challenge) error
	List(ctx context.Context, filter models.ChallengeFilter) ([]models.Challenge, error)
	Update(ctx context.Context, id string, update models.ChallengeUpdate) (*models.Challenge, error)
}

// ChallengeService handles student challenge submissions and reviews.
type ChallengeService struct {
	repo      challengeRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewChallengeService constructs the service.
func NewChallengeService(repo challengeRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ChallengeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChallengeService{repo: repo, cache: cache, validator: validate, logger: logger, now: time.Now}
}

// Submit stores a new challenge with status submitted and priority medium.
func (s *ChallengeService) Submit(ctx context.Context, req models.CreateChallengeRequest) (*models.Challenge, error) {
	trimAll(&req.StudentID, &req.Challenge)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "Challenge description and student ID are required")
	}

	challenge := &models.Challenge{
		StudentID:     req.StudentID,
		StudentName:   orDefault(req.StudentName, models.AnonymousStudent),
		Program:       orDefault(req.Program, models.NotSpecified),
		Level:         orDefault(req.Level, models.NotSpecified),
		Semester:      orDefault(req.Semester, models.NotSpecified),
		Course:        orDefault(req.Course, models.NotSpecified),
		Lecturer:      orDefault(req.Lecturer, models.NotSpecified),
		Challenge:     req.Challenge,
		Status:        models.ChallengeSubmitted,
		Priority:      models.PriorityMedium,
		SubmittedDate: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, challenge); err != nil {
		return nil, internalError(err, "Failed to save challenge")
	}
	s.cache.Invalidate(ctx, dashboardCacheKey)

	s.logger.Info("challenge submitted", zap.String("challenge_id", challenge.ID.Hex()), zap.String("student_id", challenge.StudentID))
	return challenge, nil
}

// List returns challenges matching filter, newest first.
func (s *ChallengeService) List(ctx context.Context, filter models.ChallengeFilter) ([]models.Challenge, error) {
	challenges, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, internalError(err, "Failed to fetch challenges")
	}
	return challenges, nil
}

// Review applies the provided fields. Setting reviewedBy stamps reviewedDate.
func (s *ChallengeService) Review(ctx context.Context, id string, req models.UpdateChallengeRequest) (*models.Challenge, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "Invalid status or priority")
	}

	update := models.ChallengeUpdate{
		Status:     req.Status,
		Priority:   req.Priority,
		Response:   req.Response,
		Resolution: req.Resolution,
		ReviewedBy: req.ReviewedBy,
	}
	if req.ReviewedBy != "" {
		reviewedAt := s.now().UTC()
		update.ReviewedDate = &reviewedAt
	}

	challenge, err := s.repo.Update(ctx, id, update)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("Challenge not found")
		}
		return nil, internalError(err, "Failed to update challenge")
	}
	s.cache.Invalidate(ctx, dashboardCacheKey)
	return challenge, nil
}

// Stats summarises every challenge.
func (s *ChallengeService) Stats(ctx context.Context) (*models.ChallengeStats, error) {
	challenges, err := s.repo.List(ctx, models.ChallengeFilter{})
	if err != nil {
		return nil, internalError(err, "Failed to fetch challenge statistics")
	}
	stats := buildChallengeStats(challenges)
	return &stats, nil
}

// buildChallengeStats expects challenges newest first.
func buildChallengeStats(challenges []models.Challenge) models.ChallengeStats {
	stats := models.ChallengeStats{
		TotalChallenges: len(challenges),
		ByStatus: map[string]int{
			string(models.ChallengeSubmitted): 0,
			string(models.ChallengeReviewed):  0,
			string(models.ChallengeResolved):  0,
		},
		ByPriority: map[string]int{
			string(models.PriorityHigh):   0,
			string(models.PriorityMedium): 0,
			string(models.PriorityLow):    0,
		},
		ByLecturer: map[string]int{},
	}
	for _, c := range challenges {
		stats.ByStatus[string(c.Status)]++
		stats.ByPriority[string(c.Priority)]++
		stats.ByLecturer[orDefault(c.Lecturer, "Unknown")]++
	}

	recent := challenges
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	stats.RecentChallenges = append([]models.Challenge{}, recent...)
	return stats
}
