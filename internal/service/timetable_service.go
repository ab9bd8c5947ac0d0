package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/college-portal-api/internal/models"
)

type timetableRepository interface {
	Upsert(ctx context.Context, entry *models.TimetableEntry) (bool, error)
	List(ctx context.Context, filter models.TimetableFilter) ([]models.TimetableEntry, error)
	DeleteByKey(ctx context.Context, key models.TimetableKey) error
}

// TimetableService maintains one entry per timetable slot.
type TimetableService struct {
	repo      timetableRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTimetableService constructs the service.
func NewTimetableService(repo timetableRepository, validate *validator.Validate, logger *zap.Logger) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{repo: repo, validator: validate, logger: logger}
}

// Upsert writes the occupant of a slot, replacing any previous entry.
func (s *TimetableService) Upsert(ctx context.Context, req models.UpsertTimetableRequest) (*models.TimetableUpsertResult, error) {
	trimKey(&req.TimetableKey)
	trimAll(&req.Course, &req.Lecturer, &req.Code)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "Program, level, year, semester, week, day, time, course, and lecturer are required")
	}

	entry := &models.TimetableEntry{
		TimetableKey: req.TimetableKey,
		Course:       req.Course,
		Lecturer:     req.Lecturer,
		Code:         req.Code,
	}
	created, err := s.repo.Upsert(ctx, entry)
	if err != nil {
		return nil, internalError(err, "Failed to save timetable entry")
	}

	s.logger.Debug("timetable slot written",
		zap.String("program", entry.Program),
		zap.Int("week", entry.Week),
		zap.String("day", entry.Day),
		zap.String("time", entry.Time),
		zap.Bool("created", created),
	)
	return &models.TimetableUpsertResult{Entry: entry, Created: created}, nil
}

// List returns entries matching filter.
func (s *TimetableService) List(ctx context.Context, filter models.TimetableFilter) ([]models.TimetableEntry, error) {
	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, internalError(err, "Failed to fetch timetable")
	}
	return entries, nil
}

// Delete clears the slot identified by key.
func (s *TimetableService) Delete(ctx context.Context, key models.TimetableKey) error {
	trimKey(&key)
	if err := s.validator.Struct(key); err != nil {
		return validationError(err, "Program, level, year, semester, week, day, and time are required")
	}
	if err := s.repo.DeleteByKey(ctx, key); err != nil {
		if isNotFound(err) {
			return notFound("Timetable entry not found")
		}
		return internalError(err, "Failed to delete timetable entry")
	}
	return nil
}

func trimKey(key *models.TimetableKey) {
	trimAll(&key.Program, &key.Level, &key.Year, &key.Semester, &key.Day, &key.Time)
}
