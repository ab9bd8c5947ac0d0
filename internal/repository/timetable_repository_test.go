package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/college-portal-api/internal/models"
)

func sampleKey() models.TimetableKey {
	return models.TimetableKey{Program: "IT", Level: "1", Year: "diploma", Semester: "semester1", Week: 2, Day: "Monday", Time: "08:30"}
}

func TestTimetableUpsertReportsInsertOrUpdate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	created := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
	columns := []string{"id", "program", "level", "year", "semester", "week", "day", "time", "course", "lecturer", "code", "created_at", "updated_at", "inserted"}
	key := sampleKey()

	mock.ExpectQuery("INSERT INTO timetables .*ON CONFLICT \\(program, level, year, semester, week, day, time\\)").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("existing-id", key.Program, key.Level, key.Year, key.Semester, key.Week, key.Day, key.Time, "Java", "Mr. Makheka", "JAV110", created, time.Now(), false))

	entry := &models.TimetableEntry{TimetableKey: key, Course: "Java", Lecturer: "Mr. Makheka", Code: "JAV110"}
	inserted, err := repo.Upsert(context.Background(), entry)
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, "existing-id", entry.ID)
	assert.Equal(t, created, entry.CreatedAt)
	assert.Equal(t, "Java", entry.Course)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableListBuildsConditions(t *testing.T) {
	conditions, args := timetableConditions(models.TimetableFilter{Program: "IT", Week: 3})
	assert.Equal(t, []string{"program = $1", "week = $2"}, conditions)
	assert.Equal(t, []interface{}{"IT", 3}, args)

	conditions, args = timetableConditions(models.TimetableFilter{})
	assert.Empty(t, conditions)
	assert.Empty(t, args)
}

func TestTimetableDeleteMissingSlot(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	key := sampleKey()
	mock.ExpectExec("DELETE FROM timetables").
		WithArgs(key.Program, key.Level, key.Year, key.Semester, key.Week, key.Day, key.Time).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.DeleteByKey(context.Background(), key), sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
