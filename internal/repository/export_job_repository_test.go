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

func TestExportJobGetByIDDecodesParams(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewExportJobRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "dataset", "params", "status", "progress", "result_url", "error_message", "created_by", "created_at", "updated_at", "finished_at"}).
		AddRow("job-1", "timetables", []byte(`{"format":"pdf","filters":{"program":"IT"}}`), "FINISHED", 100, "/api/exports/download/tok", nil, "u-1", now, now, now)
	mock.ExpectQuery("FROM export_jobs WHERE id = \\$1").WithArgs("job-1").WillReturnRows(rows)

	job, err := repo.GetByID(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, models.DatasetTimetables, job.Dataset)
	assert.Equal(t, "pdf", job.Params.Format)
	assert.Equal(t, "IT", job.Params.Filters["program"])
	require.NotNil(t, job.ResultURL)
	assert.Nil(t, job.ErrorMessage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExportJobUpdateOnlySetsProvidedFields(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewExportJobRepository(db)

	status := models.ExportStatusProcessing
	progress := 10
	mock.ExpectExec("UPDATE export_jobs SET status = \\$1, progress = \\$2, updated_at = \\$3 WHERE id = \\$4").
		WithArgs(status, progress, sqlmock.AnyArg(), "job-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), "job-1", ExportJobUpdate{Status: &status, Progress: &progress}))
	require.NoError(t, repo.Update(context.Background(), "job-1", ExportJobUpdate{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignedCourseDeleteMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAssignedCourseRepository(db)

	mock.ExpectQuery("DELETE FROM assigned_courses WHERE id = \\$1 RETURNING").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
