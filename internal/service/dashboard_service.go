package service

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/college-portal-api/internal/models"
)

const dashboardCacheKey = "dash:stats"

type challengeStatusCounter interface {
	CountByStatus(ctx context.Context) (map[string]int, error)
}

type ratingSummarizer interface {
	Summary(ctx context.Context) (models.RatingSummary, error)
}

type entityCounter interface {
	Count(ctx context.Context) (int, error)
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Challenges challengeStatusCounter
	Ratings    ratingSummarizer
	Lecturers  entityCounter
	Courses    entityCounter
	Reports    entityCounter
	Cache      *CacheService
	Metrics    *MetricsService
	Logger     *zap.Logger
	CacheTTL   time.Duration
}

// DashboardService composes the dashboard from independent store reads.
type DashboardService struct {
	challenges challengeStatusCounter
	ratings    ratingSummarizer
	lecturers  entityCounter
	courses    entityCounter
	reports    entityCounter
	cache      *CacheService
	metrics    *MetricsService
	logger     *zap.Logger
	cacheTTL   time.Duration
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := params.CacheTTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &DashboardService{
		challenges: params.Challenges,
		ratings:    params.Ratings,
		lecturers:  params.Lecturers,
		courses:    params.Courses,
		reports:    params.Reports,
		cache:      params.Cache,
		metrics:    params.Metrics,
		logger:     logger,
		cacheTTL:   ttl,
	}
}

// Stats returns dashboard statistics and whether they came from the cache.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, bool, error) {
	var cached models.DashboardStats
	if s.cache.Get(ctx, dashboardCacheKey, &cached) {
		return &cached, true, nil
	}

	stats, err := s.compose(ctx)
	if err != nil {
		return nil, false, internalError(err, "Failed to fetch dashboard statistics")
	}
	s.cache.Set(ctx, dashboardCacheKey, stats, s.cacheTTL)
	return stats, false, nil
}

// compose runs the five reads concurrently; the first failure cancels the rest.
func (s *DashboardService) compose(ctx context.Context) (*models.DashboardStats, error) {
	var (
		byStatus  map[string]int
		summary   models.RatingSummary
		lecturers int
		courses   int
		reports   int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer s.timed("mongo", "challenges_by_status")()
		var err error
		byStatus, err = s.challenges.CountByStatus(gctx)
		return err
	})
	g.Go(func() error {
		defer s.timed("mongo", "ratings_summary")()
		var err error
		summary, err = s.ratings.Summary(gctx)
		return err
	})
	g.Go(func() error {
		defer s.timed("postgres", "lecturers_count")()
		var err error
		lecturers, err = s.lecturers.Count(gctx)
		return err
	})
	g.Go(func() error {
		defer s.timed("postgres", "assigned_courses_count")()
		var err error
		courses, err = s.courses.Count(gctx)
		return err
	})
	g.Go(func() error {
		defer s.timed("mongo", "reports_count")()
		var err error
		reports, err = s.reports.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := buildDashboardStats(byStatus, summary, lecturers, courses, reports)
	return &stats, nil
}

func (s *DashboardService) timed(store, query string) func() {
	start := time.Now()
	return func() {
		s.metrics.ObserveStoreQuery(store, query, time.Since(start))
	}
}

func buildDashboardStats(byStatus map[string]int, summary models.RatingSummary, lecturers, courses, reports int) models.DashboardStats {
	totalChallenges := 0
	for _, n := range byStatus {
		totalChallenges += n
	}
	return models.DashboardStats{
		Overview: models.DashboardOverview{
			TotalLecturers:       lecturers,
			TotalAssignedCourses: courses,
			TotalChallenges:      totalChallenges,
			TotalRatings:         summary.Count,
			TotalReports:         reports,
		},
		Challenges: models.DashboardChallenges{
			Pending:  byStatus[string(models.ChallengeSubmitted)],
			Reviewed: byStatus[string(models.ChallengeReviewed)],
			Resolved: byStatus[string(models.ChallengeResolved)],
		},
		Ratings: models.DashboardRatings{
			AverageRating: roundTenth(summary.Average, summary.Count),
			TotalRatings:  summary.Count,
		},
	}
}

func roundTenth(avg float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return math.Round(avg*10) / 10
}
