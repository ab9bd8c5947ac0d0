package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/college-portal-api/internal/models"
)

type lecturerSeeder interface {
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, lecturer *models.Lecturer) error
}

type principalReportSeeder interface {
	Count(ctx context.Context) (int, error)
	InsertMany(ctx context.Context, reports []models.PrincipalReport) error
}

// SeedService installs default data into empty stores.
type SeedService struct {
	lecturers lecturerSeeder
	reports   principalReportSeeder
	logger    *zap.Logger
}

// NewSeedService constructs the service.
func NewSeedService(lecturers lecturerSeeder, reports principalReportSeeder, logger *zap.Logger) *SeedService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SeedService{lecturers: lecturers, reports: reports, logger: logger}
}

// Run seeds each store only when it is empty.
func (s *SeedService) Run(ctx context.Context) error {
	count, err := s.lecturers.Count(ctx)
	if err != nil {
		return fmt.Errorf("count lecturers: %w", err)
	}
	if count == 0 {
		for _, l := range defaultLecturers() {
			lecturer := l
			if err := s.lecturers.Create(ctx, &lecturer); err != nil {
				return fmt.Errorf("seed lecturer %s: %w", lecturer.Name, err)
			}
		}
		s.logger.Info("default lecturers created")
	}

	count, err = s.reports.Count(ctx)
	if err != nil {
		return fmt.Errorf("count principal reports: %w", err)
	}
	if count == 0 {
		if err := s.reports.InsertMany(ctx, defaultPrincipalReports()); err != nil {
			return fmt.Errorf("seed principal reports: %w", err)
		}
		s.logger.Info("default principal reports created")
	}
	return nil
}

func defaultLecturers() []models.Lecturer {
	return []models.Lecturer{
		{
			Name:       "Mr. Molao",
			Department: "IT",
			Email:      "molao@college.ac.za",
			Courses:    []string{"Programming Principles", "Advanced Programming"},
			Contact:    "+27 11 123 4567",
			Office:     "IT Building Room 101",
		},
		{
			Name:       "Mr. Makheka",
			Department: "IT",
			Email:      "makheka@college.ac.za",
			Courses:    []string{"Web Technologies", "Web Application Development"},
			Contact:    "+27 11 123 4568",
			Office:     "IT Building Room 102",
		},
		{
			Name:       "Mr. Thokoane",
			Department: "IT",
			Email:      "thokoane@college.ac.za",
			Courses:    []string{"Database Systems", "Database Management"},
			Contact:    "+27 11 123 4569",
			Office:     "IT Building Room 103",
		},
	}
}

func defaultPrincipalReports() []models.PrincipalReport {
	return []models.PrincipalReport{
		{
			Title:    "Program Performance Review - Q1 2024",
			Priority: "high",
			From:     "Principal Office",
			Date:     "2024-01-20",
			DueDate:  "2024-01-27",
			Subject:  "IT Program Performance Analysis - Semester 1 2024",
			KeyConcerns: []string{
				"Attendance rate dropped by 8% compared to previous semester",
				"Student performance in advanced programming courses below expectations",
				"Industry feedback suggests need for updated curriculum in web technologies",
			},
			ActionRequired: "Please provide detailed response addressing these concerns and proposed improvement plan.",
			Status:         models.PrincipalReportPending,
		},
		{
			Title:    "Resource Allocation Review",
			Priority: "medium",
			From:     "Academic Committee",
			Date:     "2024-01-18",
			DueDate:  "2024-02-01",
			Subject:  "IT Department Resource Utilization and Requirements",
			KeyPoints: []string{
				"Review current laboratory equipment utilization rates",
				"Assess software licensing needs for next academic year",
				"Provide justification for additional teaching staff requests",
			},
			ActionRequired: "Submit detailed resource assessment and requirements proposal.",
			Status:         models.PrincipalReportPending,
		},
	}
}
