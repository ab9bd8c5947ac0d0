package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/college-portal-api/internal/models"
)

const timetableColumns = `id, program, level, year, semester, week, day, time, course, lecturer, code, created_at, updated_at`

// TimetableRepository stores timetable slots keyed by
// (program, level, year, semester, week, day, time).
type TimetableRepository struct {
	db *sqlx.DB
}

// NewTimetableRepository constructs the repository.
func NewTimetableRepository(db *sqlx.DB) *TimetableRepository {
	return &TimetableRepository{db: db}
}

type timetableRow struct {
	models.TimetableEntry
	Inserted bool `db:"inserted"`
}

// Upsert writes entry into its slot. An occupied slot keeps its id and
// creation time; course, lecturer, code and updated_at are replaced.
func (r *TimetableRepository) Upsert(ctx context.Context, entry *models.TimetableEntry) (bool, error) {
	now := time.Now().UTC()
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	entry.CreatedAt, entry.UpdatedAt = now, now

	const query = `INSERT INTO timetables (` + timetableColumns + `)
VALUES (:id, :program, :level, :year, :semester, :week, :day, :time, :course, :lecturer, :code, :created_at, :updated_at)
ON CONFLICT (program, level, year, semester, week, day, time)
DO UPDATE SET course = EXCLUDED.course, lecturer = EXCLUDED.lecturer, code = EXCLUDED.code, updated_at = EXCLUDED.updated_at
RETURNING ` + timetableColumns + `, (xmax = 0) AS inserted`

	rows, err := r.db.NamedQueryContext(ctx, query, entry)
	if err != nil {
		return false, fmt.Errorf("upsert timetable: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return false, fmt.Errorf("upsert timetable: %w", err)
		}
		return false, fmt.Errorf("upsert timetable: no row returned")
	}
	var row timetableRow
	if err := rows.StructScan(&row); err != nil {
		return false, fmt.Errorf("scan timetable: %w", err)
	}
	*entry = row.TimetableEntry
	return row.Inserted, nil
}

// List returns entries matching filter ordered by week, day and time.
func (r *TimetableRepository) List(ctx context.Context, filter models.TimetableFilter) ([]models.TimetableEntry, error) {
	conditions, args := timetableConditions(filter)
	query := `SELECT ` + timetableColumns + ` FROM timetables`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY week ASC, day ASC, time ASC"

	entries := []models.TimetableEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list timetables: %w", err)
	}
	return entries, nil
}

// DeleteByKey removes the slot, returning sql.ErrNoRows when it is empty.
func (r *TimetableRepository) DeleteByKey(ctx context.Context, key models.TimetableKey) error {
	const query = `DELETE FROM timetables WHERE program = $1 AND level = $2 AND year = $3 AND semester = $4 AND week = $5 AND day = $6 AND time = $7`
	res, err := r.db.ExecContext(ctx, query, key.Program, key.Level, key.Year, key.Semester, key.Week, key.Day, key.Time)
	if err != nil {
		return fmt.Errorf("delete timetable: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete timetable rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func timetableConditions(filter models.TimetableFilter) ([]string, []interface{}) {
	var conditions []string
	var args []interface{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if filter.Program != "" {
		add("program", filter.Program)
	}
	if filter.Level != "" {
		add("level", filter.Level)
	}
	if filter.Year != "" {
		add("year", filter.Year)
	}
	if filter.Semester != "" {
		add("semester", filter.Semester)
	}
	if filter.Week > 0 {
		add("week", filter.Week)
	}
	return conditions, args
}
