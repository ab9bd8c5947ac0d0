package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/college-portal-api/internal/models"
	appErrors "github.com/noah-isme/college-portal-api/pkg/errors"
)

type lecturerRepository interface {
	List(ctx context.Context) ([]models.Lecturer, error)
	FindByID(ctx context.Context, id string) (*models.Lecturer, error)
	Search(ctx context.Context, term string) ([]models.Lecturer, error)
}

// LecturerService serves the lecturer directory.
type LecturerService struct {
	repo   lecturerRepository
	logger *zap.Logger
}

// NewLecturerService constructs the service.
func NewLecturerService(repo lecturerRepository, logger *zap.Logger) *LecturerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LecturerService{repo: repo, logger: logger}
}

// List returns all lecturers by name.
func (s *LecturerService) List(ctx context.Context) ([]models.Lecturer, error) {
	lecturers, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(err, "Failed to fetch lecturers")
	}
	return lecturers, nil
}

// Get returns one lecturer.
func (s *LecturerService) Get(ctx context.Context, id string) (*models.Lecturer, error) {
	lecturer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("Lecturer not found")
		}
		return nil, internalError(err, "Failed to fetch lecturer")
	}
	return lecturer, nil
}

// Search matches query against names, departments and courses.
func (s *LecturerService) Search(ctx context.Context, query string) ([]models.Lecturer, error) {
	term := strings.TrimSpace(query)
	if term == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Search query is required")
	}
	lecturers, err := s.repo.Search(ctx, term)
	if err != nil {
		return nil, internalError(err, "Failed to search lecturers")
	}
	return lecturers, nil
}
