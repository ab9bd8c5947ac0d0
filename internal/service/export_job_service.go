package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/college-portal-api/internal/models"
	"github.com/noah-isme/college-portal-api/internal/repository"
	appErrors "github.com/noah-isme/college-portal-api/pkg/errors"
	"github.com/noah-isme/college-portal-api/pkg/export"
	"github.com/noah-isme/college-portal-api/pkg/jobs"
)

const exportTaskKind = "export"

type exportJobStore interface {
	Create(ctx context.Context, job *models.ExportJob) error
	GetByID(ctx context.Context, id string) (*models.ExportJob, error)
	Update(ctx context.Context, id string, update repository.ExportJobUpdate) error
	ListQueued(ctx context.Context, limit int) ([]models.ExportJob, error)
	ListFinishedBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.ExportJob, error)
}

type taskDispatcher interface {
	Submit(task jobs.Task) error
}

type exportGenerator interface {
	Generate(ctx context.Context, job *models.ExportJob) (*ExportResult, error)
}

// ExportJobConfig governs queue recovery and cleanup.
type ExportJobConfig struct {
	ResultTTL       time.Duration
	CleanupInterval time.Duration
}

// ExportDownload is a resolved, opened export file.
type ExportDownload struct {
	File        *os.File
	Filename    string
	ContentType string
	ExpiresAt   time.Time
}

// ExportJobService manages the export job lifecycle.
type ExportJobService struct {
	repo      exportJobStore
	queue     taskDispatcher
	exporter  *ExportService
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
	cfg       ExportJobConfig
}

// NewExportJobService constructs the service.
func NewExportJobService(repo exportJobStore, queue taskDispatcher, exporter *ExportService, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger, cfg ExportJobConfig) *ExportJobService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	return &ExportJobService{
		repo:      repo,
		queue:     queue,
		exporter:  exporter,
		validator: validate,
		metrics:   metrics,
		logger:    logger,
		cfg:       cfg,
	}
}

// SetQueue attaches the dispatcher once the worker pool exists.
func (s *ExportJobService) SetQueue(queue taskDispatcher) {
	s.queue = queue
}

// Create persists a QUEUED job and hands it to the worker pool.
func (s *ExportJobService) Create(ctx context.Context, req models.CreateExportRequest, actorID string) (*models.ExportJob, error) {
	req.Format = strings.ToLower(strings.TrimSpace(req.Format))
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "Dataset and format (csv or pdf) are required")
	}
	if !req.Dataset.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Unsupported export dataset")
	}

	job := &models.ExportJob{
		Dataset:   req.Dataset,
		Params:    models.ExportJobParams{Format: req.Format, Filters: req.Filters},
		Status:    models.ExportStatusQueued,
		CreatedBy: actorID,
	}
	if err := s.repo.Create(ctx, job); err != nil {
		return nil, internalError(err, "Failed to create export job")
	}
	s.metrics.RecordExportJob(string(job.Dataset), string(job.Status))

	if err := s.dispatch(job.ID); err != nil {
		status := models.ExportStatusFailed
		msg := "failed to enqueue job"
		progress := 100
		now := time.Now().UTC()
		if updateErr := s.repo.Update(ctx, job.ID, repository.ExportJobUpdate{
			Status:       &status,
			Progress:     &progress,
			ErrorMessage: &msg,
			FinishedAt:   &now,
		}); updateErr != nil {
			s.logger.Warn("failed to mark export job failed", zap.String("job_id", job.ID), zap.Error(updateErr))
		}
		s.metrics.RecordExportJob(string(job.Dataset), string(status))
		return nil, internalError(err, "Failed to enqueue export job")
	}
	return job, nil
}

func (s *ExportJobService) dispatch(id string) error {
	if s.queue == nil {
		return jobs.ErrNotRunning
	}
	return s.queue.Submit(jobs.Task{ID: id, Kind: exportTaskKind})
}

// Get returns a job. Lecturers only see their own jobs.
func (s *ExportJobService) Get(ctx context.Context, id, actorID string, role models.UserRole) (*models.ExportJob, error) {
	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("Export job not found")
		}
		return nil, internalError(err, "Failed to load export job")
	}
	if role == models.RoleLecturer && job.CreatedBy != actorID {
		return nil, appErrors.ErrForbidden
	}
	return job, nil
}

// ResolveDownload validates token and opens the stored export file.
func (s *ExportJobService) ResolveDownload(ctx context.Context, token string) (*ExportDownload, error) {
	decoded, err := s.exporter.ParseToken(token, false)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "Invalid or expired download token")
	}
	job, err := s.repo.GetByID(ctx, decoded.JobID)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("Export job not found")
		}
		return nil, internalError(err, "Failed to load export job")
	}
	if job.ResultURL == nil || !strings.HasSuffix(*job.ResultURL, token) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "Download token mismatch")
	}
	if job.Status != models.ExportStatusFinished {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "Export not ready")
	}
	file, err := s.exporter.Open(decoded.Path)
	if err != nil {
		return nil, internalError(err, "Failed to open export file")
	}
	return &ExportDownload{
		File:        file,
		Filename:    filepath.Base(decoded.Path),
		ContentType: export.Format(job.Params.Format).ContentType(),
		ExpiresAt:   decoded.ExpiresAt,
	}, nil
}

// RecoverPending requeues jobs left QUEUED by a previous process.
func (s *ExportJobService) RecoverPending(ctx context.Context) {
	pending, err := s.repo.ListQueued(ctx, 50)
	if err != nil {
		s.logger.Warn("failed to recover queued export jobs", zap.Error(err))
		return
	}
	for _, job := range pending {
		if err := s.dispatch(job.ID); err != nil {
			s.logger.Warn("failed to requeue export job", zap.String("job_id", job.ID), zap.Error(err))
		}
	}
}

// StartCleanup purges expired exports every CleanupInterval until ctx ends.
func (s *ExportJobService) StartCleanup(ctx context.Context) {
	if s.cfg.CleanupInterval <= 0 {
		return
	}
	ticker := time.NewTicker(s.cfg.CleanupInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.cleanupExpired(ctx)
			}
		}
	}()
}

func (s *ExportJobService) cleanupExpired(ctx context.Context) {
	const batch = 100
	cutoff := time.Now().Add(-s.cfg.ResultTTL)
	expired, err := s.repo.ListFinishedBefore(ctx, cutoff, batch)
	if err != nil {
		s.logger.Warn("export cleanup list failed", zap.Error(err))
		return
	}
	for _, job := range expired {
		if job.ResultURL == nil {
			continue
		}
		decoded, err := s.exporter.ParseToken(extractToken(*job.ResultURL), true)
		if err != nil {
			continue
		}
		if err := s.exporter.Delete(decoded.Path); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("export cleanup delete failed", zap.String("job_id", job.ID), zap.Error(err))
		}
	}
	if removed, err := s.exporter.Cleanup(); err != nil {
		s.logger.Warn("export filesystem cleanup failed", zap.Error(err))
	} else if removed > 0 {
		s.logger.Info("expired exports removed", zap.Int("files", removed))
	}
}

func extractToken(url string) string {
	if i := strings.LastIndex(url, "/"); i >= 0 {
		return url[i+1:]
	}
	return url
}

// ExportWorker processes queued export tasks.
type ExportWorker struct {
	repo       exportJobStore
	exporter   exportGenerator
	metrics    *MetricsService
	logger     *zap.Logger
	maxRetries int
}

// NewExportWorker constructs a worker; maxRetries must match the pool's.
func NewExportWorker(repo exportJobStore, exporter exportGenerator, metrics *MetricsService, maxRetries int, logger *zap.Logger) *ExportWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &ExportWorker{repo: repo, exporter: exporter, metrics: metrics, logger: logger, maxRetries: maxRetries}
}

// Handle processes one task. A returned error lets the pool retry it.
func (w *ExportWorker) Handle(ctx context.Context, task jobs.Task) error {
	record, err := w.repo.GetByID(ctx, task.ID)
	if err != nil {
		return fmt.Errorf("load export job %s: %w", task.ID, err)
	}

	processing := models.ExportStatusProcessing
	progress := 10
	if err := w.repo.Update(ctx, task.ID, repository.ExportJobUpdate{Status: &processing, Progress: &progress}); err != nil {
		return err
	}

	result, err := w.exporter.Generate(ctx, record)
	if err != nil {
		w.recordFailure(ctx, record, task, err)
		return err
	}

	finished := models.ExportStatusFinished
	progress = 100
	now := time.Now().UTC()
	url := result.URL
	noError := ""
	if err := w.repo.Update(ctx, task.ID, repository.ExportJobUpdate{
		Status:       &finished,
		Progress:     &progress,
		ResultURL:    &url,
		ErrorMessage: &noError,
		FinishedAt:   &now,
	}); err != nil {
		w.logger.Warn("failed to mark export job finished", zap.String("job_id", task.ID), zap.Error(err))
		return err
	}
	w.metrics.RecordExportJob(string(record.Dataset), string(finished))
	return nil
}

func (w *ExportWorker) recordFailure(ctx context.Context, record *models.ExportJob, task jobs.Task, cause error) {
	msg := cause.Error()
	update := repository.ExportJobUpdate{ErrorMessage: &msg}
	status := models.ExportStatusQueued
	progress := 0
	if task.Attempt >= w.maxRetries {
		status = models.ExportStatusFailed
		progress = 100
		now := time.Now().UTC()
		update.FinishedAt = &now
		w.metrics.RecordExportJob(string(record.Dataset), string(status))
	}
	update.Status = &status
	update.Progress = &progress
	if err := w.repo.Update(ctx, task.ID, update); err != nil {
		w.logger.Warn("failed to record export failure", zap.String("job_id", task.ID), zap.String("status", string(status)), zap.Error(err))
	}
}
