package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/college-portal-api/internal/models"
)

type assignedCourseRepository interface {
	Create(ctx context.Context, course *models.AssignedCourse) error
	List(ctx context.Context) ([]models.AssignedCourse, error)
	Delete(ctx context.Context, id string) (*models.AssignedCourse, error)
}

// CourseService manages lecturer course assignments.
type CourseService struct {
	repo      assignedCourseRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewCourseService constructs the service.
func NewCourseService(repo assignedCourseRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, cache: cache, validator: validate, logger: logger, now: time.Now}
}

// Assign records a new assignment, defaulting week, semester and year.
func (s *CourseService) Assign(ctx context.Context, req models.AssignCourseRequest) (*models.AssignedCourse, error) {
	trimAll(&req.Program, &req.Course, &req.Code, &req.Lecturer, &req.Day, &req.Time)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "All fields are required")
	}

	week := req.Week
	if week <= 0 {
		week = models.DefaultAssignmentWeek
	}
	course := &models.AssignedCourse{
		Program:      req.Program,
		Course:       req.Course,
		Code:         req.Code,
		Lecturer:     req.Lecturer,
		Day:          req.Day,
		Time:         req.Time,
		Week:         week,
		Semester:     orDefault(req.Semester, models.DefaultAssignmentSemester),
		Year:         orDefault(req.Year, models.DefaultAssignmentYear),
		AssignedDate: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, internalError(err, "Failed to assign course")
	}
	s.cache.Invalidate(ctx, dashboardCacheKey)

	s.logger.Info("course assigned", zap.String("assignment_id", course.ID), zap.String("lecturer", course.Lecturer), zap.String("code", course.Code))
	return course, nil
}

// List returns assignments, newest first.
func (s *CourseService) List(ctx context.Context) ([]models.AssignedCourse, error) {
	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(err, "Failed to fetch assigned courses")
	}
	return courses, nil
}

// Delete removes one assignment.
func (s *CourseService) Delete(ctx context.Context, id string) (*models.AssignedCourse, error) {
	course, err := s.repo.Delete(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("Assignment not found")
		}
		return nil, internalError(err, "Failed to remove assignment")
	}
	s.cache.Invalidate(ctx, dashboardCacheKey)
	return course, nil
}
