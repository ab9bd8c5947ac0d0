package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/college-portal-api/internal/models"
)

const assignedCourseColumns = `id, program, course, code, lecturer, day, time, week, semester, year, assigned_date`

// AssignedCourseRepository stores course-to-lecturer assignments.
type AssignedCourseRepository struct {
	db *sqlx.DB
}

// NewAssignedCourseRepository constructs the repository.
func NewAssignedCourseRepository(db *sqlx.DB) *AssignedCourseRepository {
	return &AssignedCourseRepository{db: db}
}

// Create inserts an assignment with a generated id and timestamp.
func (r *AssignedCourseRepository) Create(ctx context.Context, course *models.AssignedCourse) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	if course.AssignedDate.IsZero() {
		course.AssignedDate = time.Now().UTC()
	}
	const query = `INSERT INTO assigned_courses (` + assignedCourseColumns + `)
VALUES (:id, :program, :course, :code, :lecturer, :day, :time, :week, :semester, :year, :assigned_date)`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("create assigned course: %w", err)
	}
	return nil
}

// List returns assignments, newest first.
func (r *AssignedCourseRepository) List(ctx context.Context) ([]models.AssignedCourse, error) {
	const query = `SELECT ` + assignedCourseColumns + ` FROM assigned_courses ORDER BY assigned_date DESC`
	courses := []models.AssignedCourse{}
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list assigned courses: %w", err)
	}
	return courses, nil
}

// Delete removes an assignment and returns it, or sql.ErrNoRows.
func (r *AssignedCourseRepository) Delete(ctx context.Context, id string) (*models.AssignedCourse, error) {
	const query = `DELETE FROM assigned_courses WHERE id = $1 RETURNING ` + assignedCourseColumns
	var course models.AssignedCourse
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		if err = normalizeLookupErr(err); errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("delete assigned course: %w", err)
	}
	return &course, nil
}

// Count returns the number of assignments.
func (r *AssignedCourseRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM assigned_courses`); err != nil {
		return 0, fmt.Errorf("count assigned courses: %w", err)
	}
	return total, nil
}
