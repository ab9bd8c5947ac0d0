package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/noah-isme/college-portal-api/internal/models"
)

// reportDateLayout renders the compiled date as a short display string.
const reportDateLayout = "1/2/2006"

type compiledReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	List(ctx context.Context) ([]models.Report, error)
	Delete(ctx context.Context, id string) (*models.Report, error)
}

// ReportService compiles program reports with an opaque data payload.
type ReportService struct {
	repo      compiledReportRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewReportService constructs the service.
func NewReportService(repo compiledReportRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ReportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{repo: repo, cache: cache, validator: validate, logger: logger, now: time.Now}
}

// Compile stores a report with status Compiled.
func (s *ReportService) Compile(ctx context.Context, req models.CreateReportRequest) (*models.Report, error) {
	trimAll(&req.Type, &req.Program, &req.Period)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "Report type, program, and period are required")
	}

	now := s.now()
	data := bson.M{}
	for k, v := range req.Data {
		data[k] = v
	}
	report := &models.Report{
		Type:        req.Type,
		Program:     req.Program,
		Period:      req.Period,
		Date:        now.Format(reportDateLayout),
		Status:      models.ReportStatusCompiled,
		Data:        data,
		CreatedDate: now.UTC(),
	}
	if err := s.repo.Create(ctx, report); err != nil {
		return nil, internalError(err, "Failed to save report")
	}
	s.cache.Invalidate(ctx, dashboardCacheKey)

	s.logger.Info("report compiled", zap.String("report_id", report.ID.Hex()), zap.String("type", report.Type), zap.String("program", report.Program))
	return report, nil
}

// List returns reports, newest first.
func (s *ReportService) List(ctx context.Context) ([]models.Report, error) {
	reports, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(err, "Failed to fetch reports")
	}
	return reports, nil
}

// Delete removes a report and returns it.
func (s *ReportService) Delete(ctx context.Context, id string) (*models.Report, error) {
	report, err := s.repo.Delete(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("Report not found")
		}
		return nil, internalError(err, "Failed to delete report")
	}
	s.cache.Invalidate(ctx, dashboardCacheKey)
	return report, nil
}
