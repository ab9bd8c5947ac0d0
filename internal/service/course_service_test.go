package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/college-portal-api/internal/models"
	appErrors "github.com/noah-isme/college-portal-api/pkg/errors"
)

type fakeCourseRepo struct {
	courses []models.AssignedCourse
}

func (f *fakeCourseRepo) Create(ctx context.Context, c *models.AssignedCourse) error {
	c.ID = fmt.Sprintf("course-%d", len(f.courses)+1)
	f.courses = append(f.courses, *c)
	return nil
}

func (f *fakeCourseRepo) List(ctx context.Context) ([]models.AssignedCourse, error) {
	return f.courses, nil
}

func (f *fakeCourseRepo) Delete(ctx context.Context, id string) (*models.AssignedCourse, error) {
	for i, c := range f.courses {
		if c.ID == id {
			f.courses = append(f.courses[:i], f.courses[i+1:]...)
			return &c, nil
		}
	}
	return nil, sql.ErrNoRows
}

func TestCourseServiceAssignDefaults(t *testing.T) {
	repo := &fakeCourseRepo{}
	svc := NewCourseService(repo, nil, validator.New(), zap.NewNop())

	course, err := svc.Assign(context.Background(), models.AssignCourseRequest{
		Program: "Diploma in IT", Course: "Web Technologies", Code: "WT101",
		Lecturer: "Mr. Makheka", Day: "Monday", Time: "08:30",
	})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultAssignmentWeek, course.Week)
	assert.Equal(t, models.DefaultAssignmentSemester, course.Semester)
	assert.Equal(t, models.DefaultAssignmentYear, course.Year)
	assert.False(t, course.AssignedDate.IsZero())

	_, err = svc.Assign(context.Background(), models.AssignCourseRequest{Program: "Diploma in IT"})
	require.Error(t, err)
	assert.Equal(t, "All fields are required", appErrors.FromError(err).Message)
}

func TestCourseServiceDelete(t *testing.T) {
	repo := &fakeCourseRepo{}
	svc := NewCourseService(repo, nil, validator.New(), zap.NewNop())
	course, err := svc.Assign(context.Background(), models.AssignCourseRequest{
		Program: "BSc IT", Course: "Databases", Code: "DB1", Lecturer: "Mr. Thokoane", Day: "Friday", Time: "10:00", Week: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, course.Week)

	removed, err := svc.Delete(context.Background(), course.ID)
	require.NoError(t, err)
	assert.Equal(t, course.ID, removed.ID)

	_, err = svc.Delete(context.Background(), course.ID)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 404, appErr.Status)
	assert.Equal(t, "Assignment not found", appErr.Message)
}
