package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/college-portal-api/internal/models"
)

const lecturerColumns = `id, name, department, email, courses, overall_rating, total_ratings, contact, office, created_at, updated_at`

// LecturerRepository manages the lecturer directory.
type LecturerRepository struct {
	db *sqlx.DB
}

// NewLecturerRepository constructs the repository.
func NewLecturerRepository(db *sqlx.DB) *LecturerRepository {
	return &LecturerRepository{db: db}
}

// List returns every lecturer ordered by name.
func (r *LecturerRepository) List(ctx context.Context) ([]models.Lecturer, error) {
	const query = `SELECT ` + lecturerColumns + ` FROM lecturers ORDER BY name ASC`
	lecturers := []models.Lecturer{}
	if err := r.db.SelectContext(ctx, &lecturers, query); err != nil {
		return nil, fmt.Errorf("list lecturers: %w", err)
	}
	return lecturers, nil
}

// FindByID returns a lecturer or sql.ErrNoRows.
func (r *LecturerRepository) FindByID(ctx context.Context, id string) (*models.Lecturer, error) {
	const query = `SELECT ` + lecturerColumns + ` FROM lecturers WHERE id = $1`
	var lecturer models.Lecturer
	if err := r.db.GetContext(ctx, &lecturer, query, id); err != nil {
		if err = normalizeLookupErr(err); errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find lecturer: %w", err)
	}
	return &lecturer, nil
}

// FindByName matches the full name case-insensitively. When several rows
// share a name the oldest one wins.
func (r *LecturerRepository) FindByName(ctx context.Context, name string) (*models.Lecturer, error) {
	const query = `SELECT ` + lecturerColumns + ` FROM lecturers WHERE LOWER(name) = LOWER($1) ORDER BY created_at ASC LIMIT 1`
	var lecturer models.Lecturer
	if err := r.db.GetContext(ctx, &lecturer, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find lecturer by name: %w", err)
	}
	return &lecturer, nil
}

// Search matches term as a case-insensitive substring of the name, the
// department or any course.
func (r *LecturerRepository) Search(ctx context.Context, term string) ([]models.Lecturer, error) {
	const query = `SELECT ` + lecturerColumns + ` FROM lecturers
WHERE name ILIKE $1 OR department ILIKE $1 OR EXISTS (SELECT 1 FROM unnest(courses) AS c WHERE c ILIKE $1)
ORDER BY name ASC`
	lecturers := []models.Lecturer{}
	if err := r.db.SelectContext(ctx, &lecturers, query, containsPattern(term)); err != nil {
		return nil, fmt.Errorf("search lecturers: %w", err)
	}
	return lecturers, nil
}

// TopRated returns the highest rated lecturers.
func (r *LecturerRepository) TopRated(ctx context.Context, limit int) ([]models.Lecturer, error) {
	if limit <= 0 {
		limit = 5
	}
	const query = `SELECT ` + lecturerColumns + ` FROM lecturers ORDER BY overall_rating DESC, name ASC LIMIT $1`
	lecturers := []models.Lecturer{}
	if err := r.db.SelectContext(ctx, &lecturers, query, limit); err != nil {
		return nil, fmt.Errorf("top rated lecturers: %w", err)
	}
	return lecturers, nil
}

// ApplyRating folds score into the running average of lecturer id in a
// single statement, so concurrent ratings serialize on the row. course is
// appended when it is non-empty and not yet listed (exact match).
func (r *LecturerRepository) ApplyRating(ctx context.Context, id string, score float64, course string) (*models.Lecturer, error) {
	const query = `UPDATE lecturers SET
	overall_rating = (overall_rating * total_ratings + $2::double precision) / (total_ratings + 1),
	total_ratings = total_ratings + 1,
	courses = CASE WHEN $3::text = '' OR $3::text = ANY(courses) THEN courses ELSE array_append(courses, $3::text) END,
	updated_at = $4
WHERE id = $1
RETURNING ` + lecturerColumns
	var lecturer models.Lecturer
	if err := r.db.GetContext(ctx, &lecturer, query, id, score, course, time.Now().UTC()); err != nil {
		if err = normalizeLookupErr(err); errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("apply lecturer rating: %w", err)
	}
	return &lecturer, nil
}

// Create inserts a lecturer. A taken email yields ErrDuplicate.
func (r *LecturerRepository) Create(ctx context.Context, lecturer *models.Lecturer) error {
	now := time.Now().UTC()
	if lecturer.ID == "" {
		lecturer.ID = uuid.NewString()
	}
	if lecturer.Courses == nil {
		lecturer.Courses = pq.StringArray{}
	}
	lecturer.CreatedAt, lecturer.UpdatedAt = now, now

	const query = `INSERT INTO lecturers (` + lecturerColumns + `)
VALUES (:id, :name, :department, :email, :courses, :overall_rating, :total_ratings, :contact, :office, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, lecturer); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("create lecturer: %w", err)
	}
	return nil
}

// Count returns the number of lecturers.
func (r *LecturerRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM lecturers`); err != nil {
		return 0, fmt.Errorf("count lecturers: %w", err)
	}
	return total, nil
}
