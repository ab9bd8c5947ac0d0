package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/college-portal-api/internal/models"
)

const responseDateLayout = "2006-01-02"

type principalReportRepository interface {
	List(ctx context.Context) ([]models.PrincipalReport, error)
	Update(ctx context.Context, id string, update models.PrincipalReportUpdate) (*models.PrincipalReport, error)
}

// PrincipalReportService records program leadership responses.
type PrincipalReportService struct {
	repo      principalReportRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewPrincipalReportService constructs the service.
func NewPrincipalReportService(repo principalReportRepository, validate *validator.Validate, logger *zap.Logger) *PrincipalReportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PrincipalReportService{repo: repo, validator: validate, logger: logger, now: time.Now}
}

// List returns principal reports by date, newest first.
func (s *PrincipalReportService) List(ctx context.Context) ([]models.PrincipalReport, error) {
	reports, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(err, "Failed to fetch principal reports")
	}
	return reports, nil
}

// Respond writes the response and status. Moving to submitted stamps
// responseDate with the current day.
func (s *PrincipalReportService) Respond(ctx context.Context, id string, req models.RespondPrincipalReportRequest) (*models.PrincipalReport, error) {
	req.Response = strings.TrimSpace(req.Response)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "Invalid report status")
	}

	update := models.PrincipalReportUpdate{Response: req.Response, Status: req.Status}
	if req.Status == models.PrincipalReportSubmitted {
		update.ResponseDate = s.now().UTC().Format(responseDateLayout)
	}

	report, err := s.repo.Update(ctx, id, update)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("Report not found")
		}
		return nil, internalError(err, "Failed to update report")
	}

	s.logger.Info("principal report responded", zap.String("report_id", id), zap.String("status", string(report.Status)))
	return report, nil
}
