package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noah-isme/college-portal-api/internal/models"
)

type fakeLecturerRepo struct {
	mu        sync.Mutex
	lecturers []models.Lecturer
	listErr   error
	updateErr error
	updates   int
}

func (f *fakeLecturerRepo) List(ctx context.Context) ([]models.Lecturer, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Lecturer{}, f.lecturers...), nil
}

func (f *fakeLecturerRepo) FindByID(ctx context.Context, id string) (*models.Lecturer, error) {
	for _, l := range f.lecturers {
		if l.ID == id {
			found := l
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeLecturerRepo) FindByName(ctx context.Context, name string) (*models.Lecturer, error) {
	for _, l := range f.lecturers {
		if strings.EqualFold(l.Name, name) {
			found := l
			found.Courses = append([]string{}, l.Courses...)
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeLecturerRepo) Search(ctx context.Context, term string) ([]models.Lecturer, error) {
	var out []models.Lecturer
	term = strings.ToLower(term)
	for _, l := range f.lecturers {
		if strings.Contains(strings.ToLower(l.Name), term) || strings.Contains(strings.ToLower(l.Department), term) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLecturerRepo) TopRated(ctx context.Context, limit int) ([]models.Lecturer, error) {
	out := append([]models.Lecturer{}, f.lecturers...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeLecturerRepo) ApplyRating(ctx context.Context, id string, score float64, course string) (*models.Lecturer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for i := range f.lecturers {
		l := &f.lecturers[i]
		if l.ID != id {
			continue
		}
		l.OverallRating = (l.OverallRating*float64(l.TotalRatings) + score) / float64(l.TotalRatings+1)
		l.TotalRatings++
		listed := course == ""
		for _, c := range l.Courses {
			listed = listed || c == course
		}
		if !listed {
			l.Courses = append(l.Courses, course)
		}
		f.updates++
		updated := *l
		return &updated, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeLecturerRepo) Create(ctx context.Context, lecturer *models.Lecturer) error {
	lecturer.ID = fmt.Sprintf("lec-%d", len(f.lecturers)+1)
	f.lecturers = append(f.lecturers, *lecturer)
	return nil
}

func (f *fakeLecturerRepo) Count(ctx context.Context) (int, error) {
	return len(f.lecturers), nil
}

type fakeChallengeRepo struct {
	challenges []models.Challenge
	byStatus   map[string]int
	countErr   error
}

func (f *fakeChallengeRepo) Create(ctx context.Context, c *models.Challenge) error {
	c.ID = primitive.NewObjectID()
	f.challenges = append([]models.Challenge{*c}, f.challenges...)
	return nil
}

func (f *fakeChallengeRepo) List(ctx context.Context, filter models.ChallengeFilter) ([]models.Challenge, error) {
	return append([]models.Challenge{}, f.challenges...), nil
}

func (f *fakeChallengeRepo) Update(ctx context.Context, id string, u models.ChallengeUpdate) (*models.Challenge, error) {
	for i := range f.challenges {
		if f.challenges[i].ID.Hex() != id {
			continue
		}
		c := &f.challenges[i]
		if u.Status != "" {
			c.Status = u.Status
		}
		if u.Priority != "" {
			c.Priority = u.Priority
		}
		if u.Response != "" {
			c.Response = u.Response
		}
		if u.Resolution != "" {
			c.Resolution = u.Resolution
		}
		if u.ReviewedBy != "" {
			c.ReviewedBy = u.ReviewedBy
		}
		if u.ReviewedDate != nil {
			c.ReviewedDate = u.ReviewedDate
		}
		updated := *c
		return &updated, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeChallengeRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	return f.byStatus, f.countErr
}

type fakeRatingRepo struct {
	ratings []models.Rating
	summary models.RatingSummary
}

func (f *fakeRatingRepo) Create(ctx context.Context, r *models.Rating) error {
	r.ID = primitive.NewObjectID()
	f.ratings = append([]models.Rating{*r}, f.ratings...)
	return nil
}

func (f *fakeRatingRepo) List(ctx context.Context, filter models.RatingFilter) ([]models.Rating, error) {
	return append([]models.Rating{}, f.ratings...), nil
}

func (f *fakeRatingRepo) Summary(ctx context.Context) (models.RatingSummary, error) {
	return f.summary, nil
}

type fakeCounter struct {
	n     int
	err   error
	delay time.Duration
}

func (f fakeCounter) Count(ctx context.Context) (int, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	return f.n, f.err
}
