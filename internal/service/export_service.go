package service

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/college-portal-api/internal/models"
	"github.com/noah-isme/college-portal-api/pkg/export"
	"github.com/noah-isme/college-portal-api/pkg/storage"
)

type exportChallengeSource interface {
	List(ctx context.Context, filter models.ChallengeFilter) ([]models.Challenge, error)
}

type exportRatingSource interface {
	List(ctx context.Context, filter models.RatingFilter) ([]models.Rating, error)
}

type exportLecturerSource interface {
	List(ctx context.Context) ([]models.Lecturer, error)
}

type exportCourseSource interface {
	List(ctx context.Context) ([]models.AssignedCourse, error)
}

type exportTimetableSource interface {
	List(ctx context.Context, filter models.TimetableFilter) ([]models.TimetableEntry, error)
}

type fileStorage interface {
	Save(name string, data []byte) (string, error)
	Open(name string) (*os.File, error)
	Delete(name string) error
	CleanupOlderThan(ttl time.Duration) (int, error)
}

// ExportSources groups the repositories an export can read from.
type ExportSources struct {
	Challenges exportChallengeSource
	Ratings    exportRatingSource
	Lecturers  exportLecturerSource
	Courses    exportCourseSource
	Timetables exportTimetableSource
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// ExportResult captures successful generation metadata.
type ExportResult struct {
	RelativePath string
	Token        string
	URL          string
	ExpiresAt    time.Time
}

// ExportService builds datasets and persists rendered files.
type ExportService struct {
	sources ExportSources
	storage fileStorage
	signer  *storage.Signer
	logger  *zap.Logger
	cfg     ExportConfig
	now     func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(sources ExportSources, files fileStorage, signer *storage.Signer, cfg ExportConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if cfg.APIPrefix == "" {
		cfg.APIPrefix = "/api"
	}
	return &ExportService{sources: sources, storage: files, signer: signer, logger: logger, cfg: cfg, now: time.Now}
}

// Generate renders the job's dataset and stores it behind a signed link.
func (s *ExportService) Generate(ctx context.Context, job *models.ExportJob) (*ExportResult, error) {
	if job == nil {
		return nil, fmt.Errorf("job nil")
	}
	format := export.Format(job.Params.Format)
	renderer, err := export.RendererFor(format)
	if err != nil {
		return nil, err
	}
	dataset, err := s.buildDataset(ctx, job.Dataset, job.Params.Filters)
	if err != nil {
		return nil, err
	}
	payload, err := renderer.Render(dataset)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}

	relPath, err := s.storage.Save(s.filename(job), payload)
	if err != nil {
		return nil, err
	}
	token, expiresAt, err := s.signer.Sign(job.ID, relPath)
	if err != nil {
		return nil, err
	}

	return &ExportResult{
		RelativePath: relPath,
		Token:        token,
		URL:          fmt.Sprintf("%s/exports/download/%s", strings.TrimRight(s.cfg.APIPrefix, "/"), token),
		ExpiresAt:    expiresAt,
	}, nil
}

// ParseToken validates a download token.
func (s *ExportService) ParseToken(token string, allowExpired bool) (storage.DownloadToken, error) {
	return s.signer.Verify(token, allowExpired)
}

// Open returns a handle to the stored file.
func (s *ExportService) Open(relPath string) (*os.File, error) {
	return s.storage.Open(relPath)
}

// Delete removes a stored export file.
func (s *ExportService) Delete(relPath string) error {
	return s.storage.Delete(relPath)
}

// Cleanup removes files older than the configured result TTL.
func (s *ExportService) Cleanup() (int, error) {
	return s.storage.CleanupOlderThan(s.cfg.ResultTTL)
}

func (s *ExportService) filename(job *models.ExportJob) string {
	return fmt.Sprintf("%s_%s_%s.%s", job.Dataset, s.now().UTC().Format("20060102_150405"), shortID(job.ID), job.Params.Format)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (s *ExportService) buildDataset(ctx context.Context, dataset models.ExportDataset, filters map[string]string) (export.Dataset, error) {
	switch dataset {
	case models.DatasetChallenges:
		return s.challengeDataset(ctx, filters)
	case models.DatasetRatings:
		return s.ratingDataset(ctx, filters)
	case models.DatasetLecturers:
		return s.lecturerDataset(ctx)
	case models.DatasetAssignedCourses:
		return s.courseDataset(ctx)
	case models.DatasetTimetables:
		return s.timetableDataset(ctx, filters)
	default:
		return export.Dataset{}, fmt.Errorf("unsupported dataset %s", dataset)
	}
}

func (s *ExportService) challengeDataset(ctx context.Context, filters map[string]string) (export.Dataset, error) {
	rows, err := s.sources.Challenges.List(ctx, models.ChallengeFilter{
		Status:   filters["status"],
		Priority: filters["priority"],
		Lecturer: filters["lecturer"],
	})
	if err != nil {
		return export.Dataset{}, err
	}
	data := export.Dataset{
		Title:   "Student Challenges",
		Columns: []string{"Submitted", "Student", "Program", "Course", "Lecturer", "Challenge", "Status", "Priority"},
	}
	for _, c := range rows {
		data.AddRow(formatExportTime(c.SubmittedDate), c.StudentName, c.Program, c.Course, c.Lecturer, c.Challenge, string(c.Status), string(c.Priority))
	}
	return data, nil
}

func (s *ExportService) ratingDataset(ctx context.Context, filters map[string]string) (export.Dataset, error) {
	filter := models.RatingFilter{Lecturer: filters["lecturer"], Course: filters["course"]}
	if v, err := strconv.ParseFloat(filters["minRating"], 64); err == nil {
		filter.MinRating = &v
	}
	if v, err := strconv.ParseFloat(filters["maxRating"], 64); err == nil {
		filter.MaxRating = &v
	}
	rows, err := s.sources.Ratings.List(ctx, filter)
	if err != nil {
		return export.Dataset{}, err
	}
	data := export.Dataset{
		Title:   "Lecturer Ratings",
		Columns: []string{"Submitted", "Student", "Lecturer", "Course", "Rating", "Label", "Comments"},
	}
	for _, r := range rows {
		data.AddRow(formatExportTime(r.SubmittedDate), r.StudentName, r.LecturerName, r.CourseName, fmt.Sprintf("%.1f", r.Rating), r.RatingLabel, r.Comments)
	}
	return data, nil
}

func (s *ExportService) lecturerDataset(ctx context.Context) (export.Dataset, error) {
	rows, err := s.sources.Lecturers.List(ctx)
	if err != nil {
		return export.Dataset{}, err
	}
	data := export.Dataset{
		Title:   "Lecturers",
		Columns: []string{"Name", "Department", "Email", "Courses", "Overall Rating", "Total Ratings", "Office"},
	}
	for _, l := range rows {
		data.AddRow(l.Name, l.Department, l.Email, strings.Join(l.Courses, "; "), fmt.Sprintf("%.2f", l.OverallRating), strconv.Itoa(l.TotalRatings), l.Office)
	}
	return data, nil
}

func (s *ExportService) courseDataset(ctx context.Context) (export.Dataset, error) {
	rows, err := s.sources.Courses.List(ctx)
	if err != nil {
		return export.Dataset{}, err
	}
	data := export.Dataset{
		Title:   "Assigned Courses",
		Columns: []string{"Program", "Code", "Course", "Lecturer", "Day", "Time", "Week", "Semester", "Year"},
	}
	for _, c := range rows {
		data.AddRow(c.Program, c.Code, c.Course, c.Lecturer, c.Day, c.Time, strconv.Itoa(c.Week), c.Semester, c.Year)
	}
	return data, nil
}

func (s *ExportService) timetableDataset(ctx context.Context, filters map[string]string) (export.Dataset, error) {
	filter := models.TimetableFilter{
		Program:  filters["program"],
		Level:    filters["level"],
		Year:     filters["year"],
		Semester: filters["semester"],
	}
	if week, err := strconv.Atoi(filters["week"]); err == nil {
		filter.Week = week
	}
	rows, err := s.sources.Timetables.List(ctx, filter)
	if err != nil {
		return export.Dataset{}, err
	}
	data := export.Dataset{
		Title:   "Timetable",
		Columns: []string{"Program", "Level", "Year", "Semester", "Week", "Day", "Time", "Course", "Code", "Lecturer"},
	}
	for _, e := range rows {
		data.AddRow(e.Program, e.Level, e.Year, e.Semester, strconv.Itoa(e.Week), e.Day, e.Time, e.Course, e.Code, e.Lecturer)
	}
	return data, nil
}

func formatExportTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
